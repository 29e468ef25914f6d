package resource

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/talgya/hexworks/internal/registry"
)

// Clip is a decoded audio file held in memory.
type Clip struct {
	Format beep.Format
	Buffer *beep.Buffer
}

// Bytes returns the decoded size of the clip.
func (c Clip) Bytes() uint64 {
	return uint64(c.Buffer.Len()) * uint64(c.Format.Width())
}

// loadAudio decodes one wav file into a buffer keyed by the file stem.
func (m *Manager) loadAudio(path string) error {
	key := stem(path)
	if _, exists := m.audio[key]; exists && m.cfg.Duplicates == registry.RejectDuplicates {
		return &LoadError{Kind: KindDuplicate, Err: fmt.Errorf("%w: audio %s", registry.ErrDuplicate, key)}
	}

	f, err := os.Open(path)
	if err != nil {
		return accessErr(err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return parseErr(fmt.Errorf("decode wav: %w", err))
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return parseErr(fmt.Errorf("read wav: %w", err))
	}

	clip := Clip{Format: format, Buffer: buf}
	m.audio[key] = clip
	slog.Debug("audio decoded", "clip", key,
		"rate", int(format.SampleRate),
		"length", format.SampleRate.D(buf.Len()),
		"size", humanize.Bytes(clip.Bytes()))
	return nil
}

// Audio returns the clip loaded from "<stem>.wav".
func (m *Manager) Audio(stem string) (Clip, bool) {
	c, ok := m.audio[stem]
	return c, ok
}

// AudioNames returns every loaded clip name in order.
func (m *Manager) AudioNames() []string {
	names := make([]string, 0, len(m.audio))
	for name := range m.audio {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Track mixes clips for playback. Hand Streamer to a speaker to hear it.
type Track struct {
	manager *Manager
	mixer   *beep.Mixer
}

// NewTrack creates an empty track fed from the manager's clips.
func (m *Manager) NewTrack() *Track {
	return &Track{manager: m, mixer: &beep.Mixer{}}
}

// Play queues the named clip from the start. It reports false for unknown names.
func (t *Track) Play(stem string) bool {
	clip, ok := t.manager.Audio(stem)
	if !ok {
		return false
	}
	t.mixer.Add(clip.Buffer.Streamer(0, clip.Buffer.Len()))
	return true
}

// Playing returns the number of clips still streaming.
func (t *Track) Playing() int {
	return t.mixer.Len()
}

// Stop drops every queued clip.
func (t *Track) Stop() {
	t.mixer.Clear()
}

// Streamer exposes the mixed output.
func (t *Track) Streamer() beep.Streamer {
	return t.mixer
}
