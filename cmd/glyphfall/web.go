package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/contact"
	"github.com/san-kum/glyphfall/internal/dom"
	"github.com/san-kum/glyphfall/internal/nav"
	"github.com/san-kum/glyphfall/internal/server"
)

var (
	formName     string
	formEmail    string
	formMessage  string
	endpoint     string
	placeholder  bool
	httpTimeout  time.Duration
	addr         string
	noCSRF       bool
	withCSRF     bool
	navThreshold float64
)

var (
	bannerOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#22c55e")).Padding(0, 1)
	bannerFail = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#ef4444")).Padding(0, 1)
	navSolid   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#0b3d0b")).Bold(true)
	navClear   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func webCommands() []*cobra.Command {
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "send the contact form",
		Long: `Send the contact form to an endpoint.

A default "glyphfall serve" requires a CSRF token: pass --csrf to fetch one
from the endpoint's /csrf, or start the server with --no-csrf.`,
		RunE: submitForm,
	}
	submitCmd.Flags().StringVar(&formName, "name", "", "sender name")
	submitCmd.Flags().StringVar(&formEmail, "email", "", "sender email")
	submitCmd.Flags().StringVar(&formMessage, "message", "", "message body")
	submitCmd.Flags().StringVar(&endpoint, "endpoint", config.DefaultEndpoint, "form action URL")
	submitCmd.Flags().BoolVar(&placeholder, "placeholder", false, `send {"username":"example"} instead of the fields`)
	submitCmd.Flags().BoolVar(&withCSRF, "csrf", false, "fetch a token from the endpoint's /csrf and send it")
	submitCmd.Flags().DurationVar(&httpTimeout, "timeout", config.DefaultHTTPTimeout, "request timeout")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the contact endpoint",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT or :5050)")
	serveCmd.Flags().BoolVar(&noCSRF, "no-csrf", false, "accept submissions without a CSRF token")

	navCmd := &cobra.Command{
		Use:   "nav [scroll_y...]",
		Short: "show the navigation bar state for a sequence of scroll positions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  navScroll,
	}
	navCmd.Flags().Float64Var(&navThreshold, "threshold", nav.DefaultThreshold, "scroll offset where the bar turns solid")

	return []*cobra.Command{submitCmd, serveCmd, navCmd}
}

func submitForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Contact.Endpoint = endpoint
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Contact.Timeout = httpTimeout
	}
	if placeholder {
		cfg.Contact.Placeholder = true
	}

	opts := []contact.Option{
		contact.WithClient(&http.Client{Timeout: cfg.Contact.Timeout}),
		contact.WithMethod(cfg.Contact.Method),
		contact.WithLogger(slog.Default()),
	}
	if cfg.Contact.Placeholder {
		opts = append(opts, contact.PlaceholderPayload())
	}
	if withCSRF {
		tokenURL, err := contact.TokenURL(cfg.Contact.Endpoint)
		if err != nil {
			return err
		}
		opts = append(opts, contact.WithCSRF(tokenURL))
	}

	banner := dom.NewElement("formMessage", "hidden")
	h, err := contact.New(cfg.Contact.Endpoint, banner, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = h.Submit(ctx, contact.Form{Name: formName, Email: formEmail, Message: formMessage})
	style := bannerOK
	if banner.Classes.Contains("bg-red-500") {
		style = bannerFail
	}
	fmt.Println(style.Render(banner.Text()))
	return err
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	listen := cfg.Server.Addr
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q", port)
		}
		listen = ":" + port
	}
	if addr != "" {
		listen = addr
	}

	srv := server.New(server.Options{
		Addr:        listen,
		RequireCSRF: cfg.Server.RequireCSRF && !noCSRF,
		TokenTTL:    cfg.Server.TokenTTL,
		Logger:      slog.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("serving contact endpoint on %s\n", listen)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func navScroll(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	threshold := cfg.Nav.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = navThreshold
	}

	el := dom.NewElement("navigation", nav.TransparentClasses...)
	tg := nav.New(el, threshold)
	for _, a := range args {
		y, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid scroll position %q", a)
		}
		changed := tg.OnScroll(y)
		style, mark := navClear, " "
		if tg.Solid() {
			style = navSolid
		}
		if changed {
			mark = "*"
		}
		fmt.Printf("%s %7.1f  %s\n", mark, y, style.Render(fmt.Sprintf(" %-28s", el.Classes.String())))
	}
	return nil
}
