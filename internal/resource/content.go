package resource

import (
	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/registry"
)

// ItemRaw is an item record.
type ItemRaw struct {
	ID    ident.RawID  `json:"id"`
	Model *ident.RawID `json:"model"`
}

func (m *Manager) loadItem(path string) error {
	var raw ItemRaw
	if err := readJSON(path, &raw); err != nil {
		return err
	}
	if raw.ID.IsZero() {
		return parseErrf("item: missing id")
	}

	item := registry.Item{ID: raw.ID.Resolve(m.interner)}
	if raw.Model != nil {
		item.Model = raw.Model.Resolve(m.interner)
		item.HasModel = true
	}
	return insertErr(m.builder.PutItem(item))
}

// ScriptRaw is a machine script record.
type ScriptRaw struct {
	ID           ident.RawID `json:"id"`
	Instructions struct {
		Inputs []ItemStackRaw `json:"inputs"`
		Output ItemStackRaw   `json:"output"`
	} `json:"instructions"`
}

func (m *Manager) loadScript(path string) error {
	var raw ScriptRaw
	if err := readJSON(path, &raw); err != nil {
		return err
	}
	if raw.ID.IsZero() {
		return parseErrf("script: missing id")
	}
	for _, in := range raw.Instructions.Inputs {
		if err := in.validate(); err != nil {
			return err
		}
	}
	if err := raw.Instructions.Output.validate(); err != nil {
		return err
	}

	script := registry.Script{
		ID:     raw.ID.Resolve(m.interner),
		Inputs: make([]registry.ItemStack, len(raw.Instructions.Inputs)),
		Output: raw.Instructions.Output.Resolve(m.interner),
	}
	for i, in := range raw.Instructions.Inputs {
		script.Inputs[i] = in.Resolve(m.interner)
	}
	return insertErr(m.builder.PutScript(script))
}

// TagRaw is a tag record.
type TagRaw struct {
	ID      ident.RawID   `json:"id"`
	Entries []ident.RawID `json:"entries"`
}

func (m *Manager) loadTag(path string) error {
	var raw TagRaw
	if err := readJSON(path, &raw); err != nil {
		return err
	}
	if raw.ID.IsZero() {
		return parseErrf("tag: missing id")
	}

	tag := registry.Tag{
		ID:      raw.ID.Resolve(m.interner),
		Entries: make([]ident.ID, len(raw.Entries)),
	}
	for i, e := range raw.Entries {
		tag.Entries[i] = e.Resolve(m.interner)
	}
	return insertErr(m.builder.PutTag(tag))
}
