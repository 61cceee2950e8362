// Package server is the HTTP endpoint the contact form posts to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/san-kum/glyphfall/internal/contact"
)

const (
	maxBodyBytes = 1 << 20

	MsgSuccess     = "Contact form submitted successfully"
	MsgBadMethod   = "Method not allowed"
	MsgInvalidCSRF = "Invalid CSRF token"
	MsgBadBody     = "invalid request body"
)

var (
	errNameRequired    = errors.New("name is required")
	errInvalidEmail    = errors.New("invalid email")
	errMessageRequired = errors.New("message is required")
)

type Options struct {
	Addr        string
	RequireCSRF bool
	TokenTTL    time.Duration
	Logger      *slog.Logger
}

type Server struct {
	opts   Options
	tokens *Tokens
	log    *slog.Logger
	mux    *http.ServeMux
}

type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type submission struct {
	contact.Form
	CSRF string `json:"csrf"`
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		opts:   opts,
		tokens: NewTokens(opts.TokenTTL),
		log:    opts.Logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/csrf", s.handleCSRF)
	s.mux.HandleFunc("/contact", s.handleContact)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) Tokens() *Tokens { return s.tokens }

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", s.opts.Addr, "csrf", s.opts.RequireCSRF)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleCSRF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, response{"error", MsgBadMethod})
		return
	}
	token, exp, err := s.tokens.Issue()
	if err != nil {
		s.log.Error("issue csrf token", "err", err)
		writeJSON(w, http.StatusInternalServerError, response{"error", "token unavailable"})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "expires_at": exp.UTC()})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		s.contactJSON(w, r)
		return
	}
	s.contactRedirect(w, r)
}

func (s *Server) contactJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, response{"error", MsgBadMethod})
		return
	}
	sub, err := decode(w, r)
	if err != nil {
		s.log.Debug("bad contact body", "err", err)
		writeJSON(w, http.StatusBadRequest, response{"error", MsgBadBody})
		return
	}
	if !s.csrfOK(r, sub) {
		s.log.Warn("invalid csrf token", "remote", r.RemoteAddr)
		writeJSON(w, http.StatusForbidden, response{"error", MsgInvalidCSRF})
		return
	}
	if err := validate(sub.Form); err != nil {
		writeJSON(w, http.StatusBadRequest, response{"error", err.Error()})
		return
	}
	s.accept(sub.Form)
	writeJSON(w, http.StatusOK, response{"success", MsgSuccess})
}

func (s *Server) contactRedirect(w http.ResponseWriter, r *http.Request) {
	status := "error"
	defer func() {
		target := url.URL{Path: "/", RawQuery: url.Values{"status": {status}}.Encode(), Fragment: "contactForm"}
		http.Redirect(w, r, target.String(), http.StatusSeeOther)
	}()

	if r.Method != http.MethodPost {
		return
	}
	sub, err := decode(w, r)
	if err != nil {
		s.log.Debug("bad contact body", "err", err)
		return
	}
	if !s.csrfOK(r, sub) {
		s.log.Warn("invalid csrf token", "remote", r.RemoteAddr)
		return
	}
	if err := validate(sub.Form); err != nil {
		s.log.Debug("rejected contact form", "err", err)
		return
	}
	s.accept(sub.Form)
	status = "success"
}

func (s *Server) csrfOK(r *http.Request, sub submission) bool {
	if !s.opts.RequireCSRF {
		return true
	}
	token := sub.CSRF
	if token == "" {
		token = r.Header.Get("X-CSRF-Token")
	}
	return s.tokens.Valid(token)
}

func (s *Server) accept(f contact.Form) {
	s.log.Info("received contact form submission", "name", f.Name, "email", f.Email, "length", len(f.Message))
}

func decode(w http.ResponseWriter, r *http.Request) (submission, error) {
	var sub submission
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&sub)
		return sub, err
	}
	if err := r.ParseForm(); err != nil {
		return sub, err
	}
	sub.Form = contact.FormFromValues(r.PostForm)
	sub.CSRF = r.PostForm.Get("csrf")
	return sub, nil
}

func validate(f contact.Form) error {
	if strings.TrimSpace(f.Name) == "" {
		return errNameRequired
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return errInvalidEmail
	}
	if strings.TrimSpace(f.Message) == "" {
		return errMessageRequired
	}
	return nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
