package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/cskov/ddo/app/dictionary"

	"github.com/pkg/errors"
)

const panelTitle = "Den Danske Ordbog"

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiItalic = "\033[3m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiCyan   = "\033[36m"
)

const entryTemplate = `{{ panel .Headword .PartOfSpeech }}
{{- if .Inflections }}
{{ bold "Bøjning:" }} {{ .Inflections }}
{{- end }}
{{ bold "Udtale:" }} {{ with .Pronunciation }}{{ deref . }}{{ else }}N/A{{ end }}
{{- with .Etymology }}
{{ bold "Etymologi:" }} {{ deref . }}
{{- end }}
{{- if .Definitions }}

{{ bold "Betydninger:" }}
{{- range $d := .Definitions }}
{{ indent $d.Depth }}{{ with $d.Level }}{{ green . }} {{ end }}{{ $d.Text }}{{ with $d.Style }} {{ italic (printf "[%s]" (deref .)) }}{{ end }}
{{- with $d.Example }}
{{ indent (inc $d.Depth) }}{{ dim (italic (printf "Example: %s" (deref .))) }}
{{- end }}
{{- end }}
{{- else }}
{{ italic "No definitions found." }}
{{- end }}
{{- if .Synonyms }}

{{ bold "Synonymer & Relateret:" }} {{ join .Synonyms ", " }}
{{- end }}
{{- if .Others }}

{{ bold "Andre matches:" }} {{ join .Others ", " }}
{{- end }}
`

// entryData is what the template sees: one entry plus the headwords of the
// other matches when the primary-entry policy is in effect.
type entryData struct {
	dictionary.Entry
	Others []string
}

// Renderer writes parsed entries to a terminal. Color degrades to plain
// text when disabled; All switches from primary-plus-list to rendering
// every matched entry in full.
type Renderer struct {
	color bool
	all   bool
	tmpl  *template.Template
}

// New builds a Renderer with its template parsed once.
func New(color, all bool) (*Renderer, error) {
	r := &Renderer{color: color, all: all}
	tmpl, err := template.New("entry").Funcs(template.FuncMap{
		"bold":   func(s string) string { return r.wrap(ansiBold, s) },
		"dim":    func(s string) string { return r.wrap(ansiDim, s) },
		"italic": func(s string) string { return r.wrap(ansiItalic, s) },
		"green":  func(s string) string { return r.wrap(ansiGreen, s) },
		"panel":  r.panel,
		"indent": func(depth int) string { return strings.Repeat("  ", depth) },
		"inc":    func(i int) int { return i + 1 },
		"join":   strings.Join,
		"deref": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
	}).Parse(entryTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parse entry template")
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes entries to w. An empty sequence renders the distinct
// no-results state; otherwise the first entry is shown in full with the
// remaining headwords listed, or every entry in full when All is set.
func (r *Renderer) Render(w io.Writer, entries []dictionary.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, r.wrap(ansiRed, "No results found."))
		return err
	}
	if r.all {
		for i, entry := range entries {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := r.tmpl.Execute(w, entryData{Entry: entry}); err != nil {
				return errors.Wrap(err, "render entry")
			}
		}
		return nil
	}
	others := make([]string, 0, len(entries)-1)
	for _, entry := range entries[1:] {
		others = append(others, entry.Headword)
	}
	if err := r.tmpl.Execute(w, entryData{Entry: entries[0], Others: others}); err != nil {
		return errors.Wrap(err, "render entry")
	}
	return nil
}

func (r *Renderer) wrap(code, s string) string {
	if !r.color || s == "" {
		return s
	}
	return code + s + ansiReset
}

// panel frames the headword/part-of-speech header in a titled box. Width
// math runs on the plain strings; styling is applied after.
func (r *Renderer) panel(headword, partOfSpeech string) string {
	plain := headword + "  " + partOfSpeech
	styled := r.wrap(ansiBold+ansiCyan, headword) + "  " + r.wrap(ansiItalic, partOfSpeech)
	title := " " + panelTitle + " "

	width := utf8.RuneCountInString(plain) + 2
	if tw := utf8.RuneCountInString(title) + 2; tw > width {
		width = tw
	}
	var b strings.Builder
	b.WriteString("╭─" + title + strings.Repeat("─", width-utf8.RuneCountInString(title)-1) + "╮\n")
	b.WriteString("│ " + styled + strings.Repeat(" ", width-utf8.RuneCountInString(plain)-1) + "│\n")
	b.WriteString("╰" + strings.Repeat("─", width) + "╯")
	return b.String()
}
