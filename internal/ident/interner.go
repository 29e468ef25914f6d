package ident

import (
	"fmt"
	"sync"
)

// Interner maps namespaced names to dense IDs and back. The table only
// grows: a name keeps its ID for the lifetime of the interner.
//
// Interning happens during the single-threaded load phase. Afterwards the
// interner is read-only and may be shared freely.
type Interner struct {
	mu    sync.RWMutex
	names []RawID
	index map[RawID]ID
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{
		index: make(map[RawID]ID),
	}
}

// Intern returns the ID for (namespace, name), allocating the next one on
// first sight. It never fails.
func (in *Interner) Intern(namespace, name string) ID {
	key := RawID{Namespace: namespace, Name: name}

	in.mu.RLock()
	id, ok := in.index[key]
	in.mu.RUnlock()
	if ok {
		return id
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	// double-check
	if id, ok := in.index[key]; ok {
		return id
	}
	id = ID(len(in.names))
	in.names = append(in.names, key)
	in.index[key] = id
	return id
}

// Lookup returns the ID of an already interned name without growing the table.
func (in *Interner) Lookup(namespace, name string) (ID, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.index[RawID{Namespace: namespace, Name: name}]
	return id, ok
}

// Resolve returns the namespaced name behind id. Passing an ID this interner
// never produced is a programming error and panics.
func (in *Interner) Resolve(id ID) RawID {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.names) {
		panic(fmt.Sprintf("ident: id %d was not produced by this interner (size %d)", id, len(in.names)))
	}
	return in.names[id]
}

// Name is Resolve rendered as "namespace:name", for diagnostics.
func (in *Interner) Name(id ID) string {
	return in.Resolve(id).String()
}

// Len returns the number of distinct names interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.names)
}
