package httpx

import (
	"html/template"
	"log/slog"
	"net/http"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
)

// pageTemplate is the shared shell for the browser pages. The pages are
// deliberately thin: the real rendering happens client-side, but the routes
// must exist so the gatekeeper and the page-level session resolver have
// something to guard.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>{{.Title}} | trackr</title>
</head>
<body>
	<header>
		<h1>{{.Title}}</h1>
		{{if .Identity}}<p>Signed in as {{.Identity.Email}} ({{.Identity.Role}})</p>{{end}}
	</header>
	<main id="app" data-page="{{.Page}}"></main>
</body>
</html>
`

// pageData feeds the page shell template.
type pageData struct {
	Title    string
	Page     string
	Identity *domainauth.Identity
}

// UIHandlers serves the browser page shells.
type UIHandlers struct {
	Logger *slog.Logger

	tmpl *template.Template
}

// NewUIHandlers parses the page shell template once up front.
func NewUIHandlers(logger *slog.Logger) (*UIHandlers, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return &UIHandlers{Logger: logger, tmpl: tmpl}, nil
}

// Page returns a handler that renders the shell for the named page. The
// session identity, when present, is rendered into the header.
func (h *UIHandlers) Page(title, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Title: title, Page: page}
		if identity, ok := IdentityFromContext(r.Context()); ok {
			data.Identity = &identity
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.tmpl.Execute(w, data); err != nil && h.Logger != nil {
			h.Logger.Error("render page", slog.String("page", page), slog.Any("error", err))
		}
	}
}
