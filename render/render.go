// Package render produces the search modal markup: the static shell carrying
// the DOM contract, the result list, and the status region texts.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/fwojciec/folio"
)

// Messages are the localized texts of the search modal.
type Messages struct {
	Label       string
	Placeholder string
	Close       string
	Idle        string
	Loading     string
	NoResults   string // format with the query
	Error       string
}

var messages = map[folio.Locale]Messages{
	folio.LocaleEN: {
		Label:       "Search",
		Placeholder: "Search articles and apps...",
		Close:       "Close search",
		Idle:        "Type to search...",
		Loading:     "Loading index...",
		NoResults:   "No results for \"%s\"",
		Error:       "Error loading search.",
	},
	folio.LocaleES: {
		Label:       "Buscar",
		Placeholder: "Buscar artículos y apps...",
		Close:       "Cerrar búsqueda",
		Idle:        "Escribe para buscar...",
		Loading:     "Cargando índice...",
		NoResults:   "No encontramos resultados para \"%s\"",
		Error:       "Error al cargar el buscador.",
	},
}

// MessagesFor returns the texts of locale, falling back to the default
// locale.
func MessagesFor(l folio.Locale) Messages {
	if m, ok := messages[l]; ok {
		return m
	}
	return messages[folio.DefaultLocale]
}

var funcs = template.FuncMap{
	"icon": func(kind string) string {
		if kind == folio.CollectionApps.Kind() {
			return "android"
		}
		return "article"
	},
}

var shellTemplate = template.Must(template.New("shell").Parse(`<button id="search-button" type="button" aria-label="{{.Messages.Label}}" aria-haspopup="dialog" aria-expanded="false" aria-controls="search-modal"><span class="material-icons">search</span></button>
<div id="search-modal" class="hidden" role="dialog" aria-modal="true" aria-label="{{.Messages.Label}}" data-locale="{{.Locale}}" data-index="{{.IndexURL}}">
  <div class="search-dialog">
    <div class="search-header">
      <input id="search-input" type="search" autocomplete="off" placeholder="{{.Messages.Placeholder}}" aria-controls="search-results">
      <kbd id="search-escape-hint">Esc</kbd>
      <button id="close-search" type="button" aria-label="{{.Messages.Close}}"><span class="material-icons">close</span></button>
    </div>
    <div id="search-results" class="hidden" role="listbox"></div>
    <div id="search-status" role="status" aria-live="polite" data-state="idle">{{.Messages.Idle}}</div>
  </div>
</div>
`))

var resultsTemplate = template.Must(template.New("results").Funcs(funcs).Parse(
	`{{range .}}<a href="{{.Entry.Path}}" class="search-result" data-kind="{{.Entry.Kind}}">` +
		`<span class="material-icons">{{icon .Entry.Kind}}</span>` +
		`<h4>{{.Entry.Title}}</h4>` +
		`<p>{{.Entry.Excerpt}}</p>` +
		`<span class="badge">{{.Entry.Kind}}</span>` +
		`</a>{{end}}`))

// Renderer renders the search modal for one locale.
type Renderer struct {
	Locale   folio.Locale
	Messages Messages
}

// NewRenderer returns a Renderer for locale.
func NewRenderer(l folio.Locale) *Renderer {
	return &Renderer{Locale: l, Messages: MessagesFor(l)}
}

// RenderShell writes the static modal markup. Every element of the DOM
// contract appears exactly once.
func (r *Renderer) RenderShell(w io.Writer) error {
	return shellTemplate.Execute(w, struct {
		Locale   folio.Locale
		IndexURL string
		Messages Messages
	}{r.Locale, "/" + folio.IndexAssetPath(r.Locale), r.Messages})
}

// RenderResults returns the HTML of the result list.
func (r *Renderer) RenderResults(hits []folio.Hit) (string, error) {
	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, hits); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StatusText returns the status region text for out. It is empty when the
// outcome has results, since the status region is hidden then.
func (r *Renderer) StatusText(out folio.Outcome) string {
	switch out.State {
	case folio.SearchLoading:
		return r.Messages.Loading
	case folio.SearchNoResults:
		return fmt.Sprintf(r.Messages.NoResults, out.Query)
	case folio.SearchFailed:
		return r.Messages.Error
	case folio.SearchResults:
		return ""
	default:
		return r.Messages.Idle
	}
}
