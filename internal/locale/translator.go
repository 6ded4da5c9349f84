// README: Translation catalog backed by go-i18n with embedded TOML message files.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var catalogFS embed.FS

// Translator resolves user-facing strings. Missing keys resolve to the key itself.
type Translator interface {
	T(key string, data map[string]any) string
	Language() language.Tag
}

// Catalog holds every loaded language and picks the best one per request.
type Catalog struct {
	bundle   *i18n.Bundle
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
}

// NewCatalog loads the embedded catalogs. defaultLang must be one of them.
func NewCatalog(defaultLang string) (*Catalog, error) {
	fallback, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("locale: parse default language: %w", err)
	}

	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(catalogFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		if _, err := bundle.LoadMessageFileFS(catalogFS, name); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", path.Base(name), err)
		}
	}

	tags := bundle.LanguageTags()
	if !hasTag(tags, fallback) {
		return nil, fmt.Errorf("locale: no catalog for default language %q", defaultLang)
	}
	// The fallback goes first so the matcher prefers it on weak matches.
	ordered := []language.Tag{fallback}
	for _, t := range tags {
		if t != fallback {
			ordered = append(ordered, t)
		}
	}

	return &Catalog{
		bundle:   bundle,
		tags:     ordered,
		matcher:  language.NewMatcher(ordered),
		fallback: fallback,
	}, nil
}

// Languages lists supported languages, default first.
func (c *Catalog) Languages() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

// Match picks a supported language from an explicit choice and/or an Accept-Language header.
func (c *Catalog) Match(explicit, acceptLanguage string) language.Tag {
	var wanted []language.Tag
	if explicit != "" {
		if t, err := language.Parse(explicit); err == nil {
			wanted = append(wanted, t)
		}
	}
	if acceptLanguage != "" {
		if ts, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			wanted = append(wanted, ts...)
		}
	}
	if len(wanted) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(wanted...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// For returns a Translator for tag.
func (c *Catalog) For(tag language.Tag) *Localizer {
	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(c.bundle, tag.String(), c.fallback.String()),
	}
}

// Localizer implements Translator for a single language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

func (l *Localizer) Language() language.Tag {
	return l.tag
}

func (l *Localizer) T(key string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if errors.As(err, &notFound) || msg == "" {
			return key
		}
	}
	return msg
}

func hasTag(tags []language.Tag, want language.Tag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
