package server

import (
	"html/template"
	"net/http"

	"github.com/san-kum/glyphfall/internal/dom"
)

// MsgSubmitError is shown on the home page after a rejected form post.
const MsgSubmitError = "An error occurred while submitting the contact form"

var homePage = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>glyphfall</title>
</head>
<body>
<nav id="navbar" class="bg-transparent"></nav>
<section id="contact">
<div id="{{.Banner.ID}}" class="{{.Banner.Classes}}">{{.Banner.Text}}</div>
<form id="contactForm" method="post" action="/contact">
{{- if .CSRF}}
<input type="hidden" name="csrf" value="{{.CSRF}}">
{{- end}}
<input type="text" name="name" required>
<input type="email" name="email" required>
<textarea name="message" required></textarea>
<button type="submit">Send</button>
</form>
</section>
</body>
</html>
`))

type homeData struct {
	Banner *dom.Element
	CSRF   string
}

// Banner maps the status query value left by a contact redirect onto the
// page's status element. Unknown or empty values keep it hidden.
func Banner(status string) *dom.Element {
	el := dom.NewElement("contactStatus")
	switch status {
	case "success":
		el.Classes.Add("border-green-500")
		el.SetText(MsgSuccess)
	case "error":
		el.Classes.Add("border-red-500")
		el.SetText(MsgSubmitError)
	default:
		el.Classes.Add("hidden")
	}
	return el
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, MsgBadMethod, http.StatusMethodNotAllowed)
		return
	}

	data := homeData{Banner: Banner(r.URL.Query().Get("status"))}
	if s.opts.RequireCSRF {
		token, _, err := s.tokens.Issue()
		if err != nil {
			s.log.Error("issue csrf token", "err", err)
			http.Error(w, "token unavailable", http.StatusInternalServerError)
			return
		}
		data.CSRF = token
	}
	if !data.Banner.Hidden() {
		s.log.Info("contact form status", "message", data.Banner.Text())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := homePage.Execute(w, data); err != nil {
		s.log.Error("render home", "err", err)
	}
}
