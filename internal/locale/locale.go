// Package locale provides localized, plural-aware activity phrases.
//
// Phrases live in embedded TOML files, one per language, and are compiled
// into an x/text catalog. Phrases containing a %d verb are count-parameterized
// and select their plural form with the language's CLDR rules.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/wppstatus/internal/activity"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.toml
var files embed.FS

// Fallback is used for unknown languages and missing phrases.
var Fallback = language.English

type forms struct {
	Zero  string `toml:"zero"`
	One   string `toml:"one"`
	Two   string `toml:"two"`
	Few   string `toml:"few"`
	Many  string `toml:"many"`
	Other string `toml:"other"`
}

func (f forms) counted() bool {
	for _, s := range []string{f.Zero, f.One, f.Two, f.Few, f.Many, f.Other} {
		if strings.Contains(s, "%d") {
			return true
		}
	}
	return false
}

func (f forms) message() catalog.Message {
	var cases []any
	for _, c := range []struct{ sel, text string }{
		{"zero", f.Zero}, {"one", f.One}, {"two", f.Two},
		{"few", f.Few}, {"many", f.Many}, {"other", f.Other},
	} {
		if c.text != "" {
			cases = append(cases, c.sel, c.text)
		}
	}
	return plural.Selectf(1, "%d", cases...)
}

type localeFile struct {
	Phrases map[string]forms `toml:"phrases"`
}

type bundle struct {
	catalog *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
	known   map[string]bool
	counted map[string]bool
}

var loadBundle = sync.OnceValues(func() (*bundle, error) {
	return build(files)
})

func build(fsys fs.FS) (*bundle, error) {
	b := &bundle{
		catalog: catalog.NewBuilder(catalog.Fallback(Fallback)),
		known:   make(map[string]bool),
		counted: make(map[string]bool),
	}

	entries, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	tags := []language.Tag{Fallback}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".toml")
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", e.Name(), err)
		}

		var lf localeFile
		if _, err := toml.DecodeFS(fsys, path.Join("locales", e.Name()), &lf); err != nil {
			return nil, fmt.Errorf("decode locale %q: %w", e.Name(), err)
		}

		for key, f := range lf.Phrases {
			if f.Other == "" {
				return nil, fmt.Errorf("locale %q: phrase %q has no \"other\" form", name, key)
			}
			counted := f.counted()
			if prev, seen := b.counted[key]; seen && prev != counted {
				return nil, fmt.Errorf("locale %q: phrase %q disagrees with other locales on taking a count", name, key)
			}
			b.counted[key] = counted
			b.known[key] = true

			if counted {
				err = b.catalog.Set(tag, key, f.message())
			} else {
				err = b.catalog.SetString(tag, key, f.Other)
			}
			if err != nil {
				return nil, fmt.Errorf("locale %q: phrase %q: %w", name, key, err)
			}
		}

		if tag != Fallback {
			tags = append(tags, tag)
		}
	}

	b.tags = tags
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

// Languages returns the available languages, fallback first.
func Languages() ([]language.Tag, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return b.tags, nil
}

// Provider resolves activity phrases for one language.
type Provider struct {
	tag     language.Tag
	printer *message.Printer
	b       *bundle
}

// New returns a provider for lang (a BCP 47 tag such as "pt-BR"). Languages
// without phrases fall back to English.
func New(lang string) (*Provider, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}

	want := Fallback
	if lang != "" {
		want, err = language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", lang, err)
		}
	}

	_, idx, conf := b.matcher.Match(want)
	tag := b.tags[idx]
	if conf == language.No {
		tag = Fallback
	}

	return &Provider{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
		b:       b,
	}, nil
}

// Tag returns the language the provider resolved to.
func (p *Provider) Tag() language.Tag {
	return p.tag
}

// Phrase implements activity.Phrases. Unknown keys are returned verbatim.
func (p *Provider) Phrase(key activity.PhraseKey, count int) string {
	k := string(key)
	if !p.b.known[k] {
		return k
	}
	if p.b.counted[k] {
		return p.printer.Sprintf(k, count)
	}
	return p.printer.Sprintf(k)
}
