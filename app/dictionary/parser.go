package dictionary

import (
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Markup discriminators used by the DDO web service. Everything is a span
// with a class; the class tells the regions apart.
const (
	selEntry        = "span.ar"
	selHead         = "span.head"
	selKeyword      = "span.k"
	selPartOfSpeech = "span.pos"
	selPhonetic     = "span.phon"
	selInflections  = "span.m"
	selEtymology    = "span.etym"
	selDefinition   = "span.def"
	selLevel        = "span.l"
	selGloss        = "span.dtrn"
	selStyle        = "span.style"
	selExample      = "span.ex"
	selRelated      = `span[class*="onyms"]`
)

// Parse reads an HTML document returned by the query endpoint and extracts
// every dictionary entry it contains. query is the word exactly as the user
// typed it; it serves as headword fallback and excludes self-referential
// synonyms.
func Parse(r io.Reader, query string) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	return ParseEntries(doc, query), nil
}

// ParseEntries extracts all entry regions of doc in document order. A
// document without entry regions yields an empty slice, not an error.
func ParseEntries(doc *goquery.Document, query string) []Entry {
	entries := []Entry{}
	doc.Find(selEntry).Each(func(_ int, region *goquery.Selection) {
		entries = append(entries, parseEntry(region, query))
	})
	return entries
}

// parseEntry extracts the scalar fields of one entry region and delegates
// its definition container to the tree parser. Every field marker is
// optional; absence maps to the field's default.
func parseEntry(region *goquery.Selection, query string) Entry {
	entry := Entry{
		Headword:     query,
		PartOfSpeech: NoPartOfSpeech,
		Definitions:  []Definition{},
		Synonyms:     []string{},
	}
	if k := region.Find(selHead).First().Find(selKeyword).First(); k.Length() > 0 {
		if headword := normalizeSpace(k.Text()); headword != "" {
			entry.Headword = headword
		}
	}
	if pos := region.Find(selPartOfSpeech).First(); pos.Length() > 0 {
		entry.PartOfSpeech = normalizeSpace(pos.Text())
	}
	if phon := region.Find(selPhonetic).First(); phon.Length() > 0 {
		text := flattenText(phon)
		entry.Pronunciation = &text
	}
	if m := region.Find(selInflections).First(); m.Length() > 0 {
		entry.Inflections = normalizeSpace(m.Text())
	}
	if etym := region.Find(selEtymology).First(); etym.Length() > 0 {
		text := flattenText(etym)
		entry.Etymology = &text
	}
	container := region.Find(selDefinition).First()
	if container.Length() == 0 {
		return entry
	}
	definitions, synonyms := parseDefinitions(container, entry.Headword, 0)
	entry.Definitions = definitions
	entry.Synonyms = dedupe(synonyms)
	return entry
}

// parseDefinitions walks the direct-child definition markers of sel and
// returns the senses in pre-order together with every related term harvested
// from their subtrees. Markers nested two or more levels down are sub-senses
// of the intervening child and are reached through the recursive call, never
// flattened into the current level. Each call returns its own synonym slice;
// callers merge on the way back up and the entry dedupes once at the top.
func parseDefinitions(sel *goquery.Selection, headword string, depth int) ([]Definition, []string) {
	definitions := []Definition{}
	synonyms := []string{}
	sel.ChildrenFiltered(selDefinition).Each(func(_ int, def *goquery.Selection) {
		d := Definition{Depth: depth}
		if l := def.Find(selLevel).First(); l.Length() > 0 {
			d.Level = normalizeSpace(l.Text())
		}
		if gloss := def.Find(selGloss).First(); gloss.Length() > 0 {
			full := flattenText(gloss)
			if styleTag := gloss.Find(selStyle).First(); styleTag.Length() > 0 {
				style := flattenText(styleTag)
				d.Style = &style
				if strings.HasPrefix(full, style) {
					full = strings.TrimPrefix(full, style)
				} else {
					full = strings.Replace(full, style, "", 1)
				}
			}
			d.Text = normalizeSpace(full)
		}
		if ex := def.Find(selExample).First(); ex.Length() > 0 {
			text := flattenText(ex)
			d.Example = &text
		}
		def.Find(selRelated).Each(func(_ int, group *goquery.Selection) {
			group.Find(selKeyword).Each(func(_ int, term *goquery.Selection) {
				text := flattenText(term)
				if text != "" && !strings.EqualFold(text, headword) {
					synonyms = append(synonyms, text)
				}
			})
		})
		definitions = append(definitions, d)

		children, childSynonyms := parseDefinitions(def, headword, depth+1)
		definitions = append(definitions, children...)
		synonyms = append(synonyms, childSynonyms...)
	})
	return definitions, synonyms
}

// flattenText returns the text content of sel with element boundaries
// joined by single spaces and every whitespace run collapsed.
func flattenText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := normalizeSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// normalizeSpace collapses consecutive whitespace to single spaces and trims
// both ends. Idempotent.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dedupe removes exact duplicates and sorts the result for stable output.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
