package resource

import (
	"log/slog"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/registry"
)

// Vertex is one model vertex as uploaded to the GPU.
type Vertex struct {
	Pos   [3]float32 `json:"pos"`
	Color [4]float32 `json:"color"`
}

// vertexSize is the packed size of a Vertex in bytes.
const vertexSize = 7 * 4

// Model is a single indexed mesh.
type Model struct {
	Vertices []Vertex
	Indices  []uint32
}

// Face locates a model inside the shared buffers.
type Face struct {
	VertexOffset int32
	IndexOffset  uint32
	IndexCount   uint32
}

// ModelRaw is a model record.
type ModelRaw struct {
	ID       ident.RawID `json:"id"`
	Vertices []Vertex    `json:"vertices"`
	Indices  []uint32    `json:"indices"`
}

func (m *Manager) loadModel(path string) error {
	var raw ModelRaw
	if err := readJSON(path, &raw); err != nil {
		return err
	}
	if raw.ID.IsZero() {
		return parseErrf("model: missing id")
	}
	if len(raw.Indices)%3 != 0 {
		return parseErrf("model %s: %d indices is not a whole number of triangles", raw.ID, len(raw.Indices))
	}
	for _, i := range raw.Indices {
		if int(i) >= len(raw.Vertices) {
			return parseErrf("model %s: index %d out of range (%d vertices)", raw.ID, i, len(raw.Vertices))
		}
	}

	id := raw.ID.Resolve(m.interner)
	if _, exists := m.rawModels[id]; exists && m.cfg.Duplicates == registry.RejectDuplicates {
		return insertErr(registry.ErrDuplicate)
	}
	m.rawModels[id] = Model{Vertices: raw.Vertices, Indices: raw.Indices}
	return nil
}

// HasModel reports whether a model file defined id.
func (m *Manager) HasModel(id ident.ID) bool {
	_, ok := m.rawModels[id]
	return ok
}

// Model returns the mesh loaded for id.
func (m *Manager) Model(id ident.ID) (Model, bool) {
	model, ok := m.rawModels[id]
	return model, ok
}

// CompileModels packs every model into AllVertices and AllIndices in id order
// and records where each one landed in Faces. Indices stay model-relative;
// draw calls add the face's VertexOffset.
func (m *Manager) CompileModels() {
	ids := make([]ident.ID, 0, len(m.rawModels))
	for id := range m.rawModels {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	m.AllVertices = m.AllVertices[:0]
	m.AllIndices = m.AllIndices[:0]
	clear(m.Faces)

	for _, id := range ids {
		model := m.rawModels[id]
		m.Faces[id] = Face{
			VertexOffset: int32(len(m.AllVertices)),
			IndexOffset:  uint32(len(m.AllIndices)),
			IndexCount:   uint32(len(model.Indices)),
		}
		m.AllVertices = append(m.AllVertices, model.Vertices...)
		m.AllIndices = append(m.AllIndices, model.Indices...)
	}

	if len(ids) > 0 {
		slog.Info("models compiled",
			"models", len(ids),
			"vertices", len(m.AllVertices),
			"indices", len(m.AllIndices),
			"size", humanize.Bytes(uint64(len(m.AllVertices)*vertexSize+len(m.AllIndices)*4)),
		)
	}
}
