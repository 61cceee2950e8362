// Package contact submits the contact form and reports the outcome on a
// status banner.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/san-kum/glyphfall/internal/dom"
)

const (
	SuccessText = "Message sent successfully"
	ErrorPrefix = "Error: "

	classHidden  = "hidden"
	classSuccess = "bg-green-500"
	classFailure = "bg-red-500"
)

// Form holds the collected field values.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FormFromValues reads the named fields, ignoring anything else.
func FormFromValues(v url.Values) Form {
	return Form{
		Name:    v.Get("name"),
		Email:   v.Get("email"),
		Message: v.Get("message"),
	}
}

func (f Form) Values() url.Values {
	return url.Values{
		"name":    {f.Name},
		"email":   {f.Email},
		"message": {f.Message},
	}
}

type Option func(*Handler)

func WithClient(c *http.Client) Option {
	return func(h *Handler) { h.client = c }
}

func WithMethod(m string) Option {
	return func(h *Handler) {
		if m != "" {
			h.method = strings.ToUpper(m)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// PlaceholderPayload sends {"username":"example"} instead of the form fields.
func PlaceholderPayload() Option {
	return func(h *Handler) { h.placeholder = true }
}

// WithCSRF fetches a fresh token from tokenURL before every submission and
// sends it in the X-CSRF-Token header.
func WithCSRF(tokenURL string) Option {
	return func(h *Handler) { h.tokenURL = tokenURL }
}

// TokenURL is the /csrf address on the same host as endpoint.
func TokenURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("contact: endpoint %q is not absolute", endpoint)
	}
	u.Path, u.RawPath, u.RawQuery, u.Fragment = "/csrf", "", "", ""
	return u.String(), nil
}

// Handler posts forms to a fixed endpoint. Submissions are not de-duplicated:
// every call to Submit issues its own request.
type Handler struct {
	client      *http.Client
	endpoint    string
	method      string
	banner      *dom.Element
	log         *slog.Logger
	placeholder bool
	tokenURL    string
}

func New(endpoint string, banner *dom.Element, opts ...Option) (*Handler, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if banner == nil {
		banner = dom.NewElement("formMessage", classHidden)
	}
	h := &Handler{
		client:   http.DefaultClient,
		endpoint: endpoint,
		method:   http.MethodPost,
		banner:   banner,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(h)
	}
	return h, nil
}

func (h *Handler) Banner() *dom.Element { return h.banner }

// Submit sends f and updates the banner with the outcome. The returned error
// is a *ServerError for non-2xx replies and a *TransportError otherwise.
func (h *Handler) Submit(ctx context.Context, f Form) error {
	body, err := h.payload(f)
	if err != nil {
		return h.fail(&TransportError{Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, h.method, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return h.fail(&TransportError{Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.tokenURL != "" {
		token, err := h.fetchToken(ctx)
		if err != nil {
			return h.fail(&TransportError{Err: fmt.Errorf("fetch csrf token: %w", err)})
		}
		req.Header.Set("X-CSRF-Token", token)
	}

	h.log.Debug("submitting contact form", "endpoint", h.endpoint, "method", h.method)
	resp, err := h.client.Do(req)
	if err != nil {
		return h.fail(&TransportError{Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		h.succeed()
		h.log.Info("contact form sent", "status", resp.StatusCode)
		return nil
	}

	var reply struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return h.fail(&TransportError{Err: fmt.Errorf("decode %d response: %w", resp.StatusCode, err)})
	}
	if reply.Message == "" {
		reply.Message = http.StatusText(resp.StatusCode)
	}
	return h.fail(&ServerError{Status: resp.StatusCode, Message: reply.Message})
}

func (h *Handler) fetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.tokenURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var reply struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", err
	}
	if reply.Token == "" {
		return "", errors.New("empty token")
	}
	return reply.Token, nil
}

func (h *Handler) payload(f Form) ([]byte, error) {
	if h.placeholder {
		return json.Marshal(map[string]string{"username": "example"})
	}
	return json.Marshal(f)
}

func (h *Handler) succeed() {
	h.banner.Classes.Remove(classHidden, classFailure)
	h.banner.Classes.Add(classSuccess)
	h.banner.SetText(SuccessText)
}

func (h *Handler) fail(err error) error {
	msg := err.Error()
	var se *ServerError
	var te *TransportError
	switch {
	case errors.As(err, &se):
		msg = se.Message
	case errors.As(err, &te):
		msg = te.Err.Error()
	}
	h.banner.Classes.Remove(classHidden, classSuccess)
	h.banner.Classes.Add(classFailure)
	h.banner.SetText(ErrorPrefix + msg)
	h.log.Warn("contact form failed", "err", err)
	return err
}
