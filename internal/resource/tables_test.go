package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"golang.org/x/text/language"
)

func writeTranslations(t *testing.T, root string) {
	t.Helper()
	writeFile(t, root, "translates/en_US.json",
		`{"items": {"core:ore": "Ore"}, "tiles": {"core:wall": "Wall"}, "gui": {"<engine>:gui/options_menu": "Options"}}`)
	writeFile(t, root, "translates/de_DE.json",
		`{"items": {"core:ore": "Erz"}, "tiles": {"core:wall": "Wand"}, "gui": {}}`)
}

func TestTranslationLocaleSelection(t *testing.T) {
	tests := []struct {
		locale   language.Tag
		wantWall string
		wantTag  language.Tag
	}{
		{locale: language.German, wantWall: "Wand", wantTag: language.MustParse("de-DE")},
		{locale: language.AmericanEnglish, wantWall: "Wall", wantTag: language.AmericanEnglish},
		{locale: language.Japanese, wantWall: "Wall", wantTag: language.AmericanEnglish},
		{locale: language.Und, wantWall: "Wall", wantTag: language.AmericanEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.locale.String(), func(t *testing.T) {
			root := t.TempDir()
			writeTranslations(t, root)

			cfg := testConfig(root)
			cfg.Locale = tt.locale
			m := NewManager(cfg)
			if err := m.Load(); err != nil {
				t.Fatalf("load: %v", err)
			}

			if m.Locale().String() != tt.wantTag.String() {
				t.Fatalf("locale = %v, want %v", m.Locale(), tt.wantTag)
			}
			if got := m.TileName(rawID(t, m, "core", "wall")); got != tt.wantWall {
				t.Fatalf("wall = %q, want %q", got, tt.wantWall)
			}
		})
	}
}

func TestTranslationGuiNames(t *testing.T) {
	root := t.TempDir()
	writeTranslations(t, root)
	m := NewManager(testConfig(root))
	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	reg := m.Registry()
	if got := m.GuiName(reg.GuiIDs.OptionsMenu); got != "Options" {
		t.Fatalf("options menu = %q", got)
	}
	if got := m.GuiName(reg.GuiIDs.DebugMenu); got != "<unnamed>" {
		t.Fatalf("debug menu = %q", got)
	}
	if got := m.ItemName(rawID(t, m, "core", "ore")); got != "Ore" {
		t.Fatalf("ore = %q", got)
	}
	if len(m.Translates().Tiles) != 1 {
		t.Fatalf("tiles table = %v", m.Translates().Tiles)
	}
}

func TestBrokenTranslationIsReported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "translates/en_US.json", `{"tiles": {"nocolon": "x"}}`)
	m := NewManager(testConfig(root))
	le := loadErrors(t, m.Load())
	if len(le.Of(KindParse)) != 1 {
		t.Fatalf("errors = %v", le)
	}
	if m.Locale() != language.Und {
		t.Fatalf("locale set despite failure: %v", m.Locale())
	}
}

func writeWav(t *testing.T, path string, samples int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestAudioClipsAndTrack(t *testing.T) {
	root := t.TempDir()
	writeWav(t, filepath.Join(root, "audio", "click.wav"), 400)
	writeFile(t, root, "audio/garbage.wav", "not a wav file")

	m := NewManager(testConfig(root))
	le := loadErrors(t, m.Load())
	if len(le.Errors) != 1 || le.Errors[0].Kind != KindParse || filepath.Base(le.Errors[0].Path) != "garbage.wav" {
		t.Fatalf("errors = %v", le)
	}

	clip, ok := m.Audio("click")
	if !ok {
		t.Fatal("click not loaded")
	}
	if clip.Buffer.Len() != 400 {
		t.Fatalf("click has %d samples, want 400", clip.Buffer.Len())
	}
	if clip.Format.SampleRate != 8000 {
		t.Fatalf("sample rate = %d", clip.Format.SampleRate)
	}
	if names := m.AudioNames(); len(names) != 1 || names[0] != "click" {
		t.Fatalf("AudioNames = %v", names)
	}

	track := m.NewTrack()
	if track.Play("missing") {
		t.Fatal("played an unknown clip")
	}
	if !track.Play("click") || !track.Play("click") {
		t.Fatal("click did not play")
	}
	if track.Playing() != 2 {
		t.Fatalf("playing = %d, want 2", track.Playing())
	}
	track.Stop()
	if track.Playing() != 0 {
		t.Fatalf("playing after stop = %d", track.Playing())
	}
}

func TestModelsCompile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "models/a_tri.json", `{"id": "core:tri",
		"vertices": [{"pos": [0,0,0], "color": [1,0,0,1]}, {"pos": [1,0,0], "color": [0,1,0,1]}, {"pos": [0,1,0], "color": [0,0,1,1]}],
		"indices": [0, 1, 2]}`)
	writeFile(t, root, "models/b_quad.json", `{"id": "core:quad",
		"vertices": [{"pos": [0,0,0]}, {"pos": [1,0,0]}, {"pos": [1,1,0]}, {"pos": [0,1,0]}],
		"indices": [0, 1, 2, 0, 2, 3]}`)
	writeFile(t, root, "models/c_bad.json", `{"id": "core:bad", "vertices": [{"pos": [0,0,0]}], "indices": [0, 1, 2]}`)

	m := NewManager(testConfig(root))
	le := loadErrors(t, m.Load())
	if len(le.Of(KindParse)) != 1 {
		t.Fatalf("errors = %v", le)
	}

	tri, quad := rawID(t, m, "core", "tri"), rawID(t, m, "core", "quad")
	if len(m.AllVertices) != 7 || len(m.AllIndices) != 9 {
		t.Fatalf("buffers = %d vertices, %d indices", len(m.AllVertices), len(m.AllIndices))
	}
	// tri is interned first, so it is packed first.
	if f := m.Faces[tri]; f != (Face{VertexOffset: 0, IndexOffset: 0, IndexCount: 3}) {
		t.Fatalf("tri face = %+v", f)
	}
	if f := m.Faces[quad]; f != (Face{VertexOffset: 3, IndexOffset: 3, IndexCount: 6}) {
		t.Fatalf("quad face = %+v", f)
	}
	if m.AllVertices[0].Color != [4]float32{1, 0, 0, 1} {
		t.Fatalf("first vertex = %+v", m.AllVertices[0])
	}
	if _, ok := m.Interner().Lookup("core", "bad"); ok {
		t.Fatal("invalid model interned its id")
	}
	if _, ok := m.Model(tri); !ok {
		t.Fatal("Model(tri) missing")
	}
}

func TestFunctions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "functions/spin.lua", "return function(c) return c end")
	writeFile(t, root, "functions/broken.lua", "return function(")
	writeFile(t, root, "tiles/rotor.json", `{"type": "Model", "id": "core:rotor", "function": "hexworks:spin"}`)
	writeFile(t, root, "tiles/ghost.json", `{"type": "Model", "id": "core:ghost", "function": "hexworks:missing"}`)

	errBroken := errors.New("syntax error")
	cfg := testConfig(root)
	cfg.CheckFunction = func(name, source string) error {
		if name == "broken" {
			return errBroken
		}
		return nil
	}
	m := NewManager(cfg)
	le := loadErrors(t, m.Load())

	if parse := le.Of(KindParse); len(parse) != 1 || !errors.Is(parse[0], errBroken) {
		t.Fatalf("parse errors = %v", parse)
	}
	if dangling := le.Of(KindDangling); len(dangling) != 1 || dangling[0].Path != "core:ghost" {
		t.Fatalf("dangling = %v", dangling)
	}

	spin := rawID(t, m, "hexworks", "spin")
	if !m.HasFunction(spin) {
		t.Fatal("spin not loaded")
	}
	f, _ := m.Function(spin)
	if f.Source != "return function(c) return c end" || filepath.Base(f.Path) != "spin.lua" {
		t.Fatalf("function = %+v", f)
	}
	if fs := m.Functions(); len(fs) != 1 {
		t.Fatalf("Functions = %v", fs)
	}
	if _, ok := m.Interner().Lookup("hexworks", "broken"); ok {
		t.Fatal("rejected function interned its id")
	}
}
