// Package resource discovers and loads content files, resolves every
// identifier they mention through one Interner, and assembles the Registry
// plus the ancillary tables (translations, audio clips, models, functions).
package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/registry"
)

// File extensions per category.
const (
	JSONExt = "json"
	LuaExt  = "lua"
	WavExt  = "wav"
)

// Category subdirectories under the content root.
const (
	ItemsDir     = "items"
	ScriptsDir   = "scripts"
	TagsDir      = "tags"
	TilesDir     = "tiles"
	FunctionsDir = "functions"
	TranslateDir = "translates"
	AudioDir     = "audio"
	ModelsDir    = "models"
)

// Config holds loader inputs.
type Config struct {
	Root       string                   // Content root directory
	Namespace  string                   // Namespace for ids derived from file stems (functions)
	Locale     language.Tag             // Preferred translation locale
	Duplicates registry.DuplicatePolicy // Handling of ids defined twice

	// CheckFunction validates a function's source at load time. Optional.
	CheckFunction func(name, source string) error
}

// DefaultConfig returns a configuration for the "resources" directory.
func DefaultConfig() Config {
	return Config{
		Root:       "resources",
		Namespace:  "hexworks",
		Locale:     language.AmericanEnglish,
		Duplicates: registry.OverwriteDuplicates,
	}
}

// Manager owns the interner, the registry and every loaded table.
type Manager struct {
	cfg      Config
	interner *ident.Interner
	builder  *registry.Builder
	registry *registry.Registry

	translates Translate
	locale     language.Tag
	functions  map[ident.ID]Function
	audio      map[string]Clip
	rawModels  map[ident.ID]Model

	// Filled by CompileModels.
	AllVertices []Vertex
	AllIndices  []uint32
	Faces       map[ident.ID]Face

	errs []*LoadError
}

// NewManager creates a manager with a fresh interner. The well-known ids are
// interned before anything else.
func NewManager(cfg Config) *Manager {
	in := ident.NewInterner()
	return &Manager{
		cfg:       cfg,
		interner:  in,
		builder:   registry.NewBuilder(in, cfg.Duplicates),
		functions: make(map[ident.ID]Function),
		audio:     make(map[string]Clip),
		rawModels: make(map[ident.ID]Model),
		Faces:     make(map[ident.ID]Face),
		translates: Translate{
			Items: map[ident.ID]string{},
			Tiles: map[ident.ID]string{},
			Gui:   map[ident.ID]string{},
		},
	}
}

// Load runs the whole one-shot load pass. Bad files are skipped and collected;
// the returned error is a *LoadErrors listing all of them together with every
// dangling reference, or nil when everything loaded cleanly.
func (m *Manager) Load() error {
	if m.builder == nil {
		return errors.New("load resources: already loaded")
	}

	slog.Info("loading resources", "root", m.cfg.Root, "duplicates", m.cfg.Duplicates)

	m.loadCategory(ItemsDir, JSONExt, m.loadItem)
	m.loadCategory(ScriptsDir, JSONExt, m.loadScript)
	m.loadCategory(TagsDir, JSONExt, m.loadTag)
	m.loadCategory(TilesDir, JSONExt, m.loadTile)
	m.loadCategory(FunctionsDir, LuaExt, m.loadFunction)
	m.loadTranslates()
	m.loadCategory(AudioDir, WavExt, m.loadAudio)
	m.loadCategory(ModelsDir, JSONExt, m.loadModel)

	m.registry = m.builder.Build()
	m.builder = nil
	m.CompileModels()

	for _, d := range m.registry.Validate(m.HasFunction, m.HasModel) {
		m.errs = append(m.errs, &LoadError{
			Path: m.interner.Name(d.Owner),
			Kind: KindDangling,
			Err:  errors.New(d.Describe(m.interner)),
		})
	}

	tiles, scripts, tags, items := m.registry.Counts()
	slog.Info("resources loaded",
		"tiles", tiles,
		"scripts", scripts,
		"tags", tags,
		"items", items,
		"functions", len(m.functions),
		"audio", len(m.audio),
		"models", len(m.rawModels),
		"ids", m.interner.Len(),
		"failures", len(m.errs),
	)

	if len(m.errs) > 0 {
		return &LoadErrors{Errors: m.errs}
	}
	return nil
}

// Interner returns the interner every id was resolved through.
func (m *Manager) Interner() *ident.Interner {
	return m.interner
}

// Registry returns the loaded registry, or nil before Load.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Config returns the configuration the manager was created with.
func (m *Manager) Config() Config {
	return m.cfg
}

// loadCategory enumerates <root>/<category>/*.<ext> in name order and feeds
// each file to load. Failures are recorded and do not stop the pass.
func (m *Manager) loadCategory(category, ext string, load func(path string) error) {
	paths := m.discover(category, ext)
	failed := 0
	for _, path := range paths {
		slog.Debug("loading resource", "category", category, "path", path)
		if err := load(path); err != nil {
			failed++
			m.fail(path, err)
		}
	}
	if len(paths) > 0 {
		slog.Info("category loaded", "category", category, "files", len(paths), "failed", failed)
	}
}

// discover lists regular, non-hidden files with the given extension.
// A missing directory is not an error.
func (m *Manager) discover(category, ext string) []string {
	dir := filepath.Join(m.cfg.Root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("resource directory missing", "dir", dir)
			return nil
		}
		m.fail(dir, accessErr(err))
		return nil
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), "."+ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

func (m *Manager) fail(path string, err error) {
	le := classify(path, err)
	slog.Warn("resource failed to load", "path", path, "kind", le.Kind, "error", le.Err)
	m.errs = append(m.errs, le)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, accessErr(err)
	}
	return data, nil
}

// readJSON reads and decodes one record file.
func readJSON(path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return parseErr(err)
	}
	return nil
}

// insertErr maps a builder rejection onto a duplicate load error.
func insertErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, registry.ErrDuplicate) {
		return &LoadError{Kind: KindDuplicate, Err: err}
	}
	return fmt.Errorf("insert: %w", err)
}

// stem returns the file name without directory and extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
