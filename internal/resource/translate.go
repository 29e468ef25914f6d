package resource

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/talgya/hexworks/internal/ident"
)

// TranslateRaw is one locale file: display strings keyed by "namespace:name".
type TranslateRaw struct {
	Items map[ident.RawID]string `json:"items"`
	Tiles map[ident.RawID]string `json:"tiles"`
	Gui   map[ident.RawID]string `json:"gui"`
}

// Translate holds the display strings of the selected locale.
type Translate struct {
	Items map[ident.ID]string
	Tiles map[ident.ID]string
	Gui   map[ident.ID]string
}

// Translates returns the loaded translation tables.
func (m *Manager) Translates() Translate {
	return m.translates
}

// Locale returns the locale whose translations were loaded, or language.Und
// when none were.
func (m *Manager) Locale() language.Tag {
	return m.locale
}

// localeTag maps a file stem such as "en_US" onto a language tag.
func localeTag(stem string) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(stem, "_", "-"))
}

// loadTranslates picks the single locale file that best matches the
// configured locale and loads it. Files for other locales are ignored.
func (m *Manager) loadTranslates() {
	paths := m.discover(TranslateDir, JSONExt)
	if len(paths) == 0 {
		return
	}

	var (
		tags  []language.Tag
		files []string
	)
	for _, path := range paths {
		tag, err := localeTag(stem(path))
		if err != nil {
			slog.Warn("skipping translation with unknown locale", "path", path, "error", err)
			continue
		}
		tags = append(tags, tag)
		files = append(files, path)
	}
	if len(tags) == 0 {
		return
	}
	// The matcher falls back to its first entry.
	for i, tag := range tags {
		if tag.String() == language.AmericanEnglish.String() {
			tags[0], tags[i] = tags[i], tags[0]
			files[0], files[i] = files[i], files[0]
			break
		}
	}

	want := m.cfg.Locale
	if want.IsRoot() {
		want = language.AmericanEnglish
	}
	_, index, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		slog.Warn("no translation matches locale, using fallback",
			"locale", want, "fallback", tags[index])
	}

	path := files[index]
	slog.Info("loading translation", "locale", tags[index], "path", path)
	if err := m.loadTranslate(path); err != nil {
		m.fail(path, err)
		return
	}
	m.locale = tags[index]
}

func (m *Manager) loadTranslate(path string) error {
	var raw TranslateRaw
	if err := readJSON(path, &raw); err != nil {
		return err
	}

	m.translates = Translate{
		Items: m.resolveStrings(raw.Items),
		Tiles: m.resolveStrings(raw.Tiles),
		Gui:   m.resolveStrings(raw.Gui),
	}
	return nil
}

func (m *Manager) resolveStrings(in map[ident.RawID]string) map[ident.ID]string {
	out := make(map[ident.ID]string, len(in))
	for raw, s := range in {
		out[raw.Resolve(m.interner)] = s
	}
	return out
}
