// Package ident provides two-stage content identifiers: the portable
// (namespace, name) RawID authored in data files, and the dense ID handle
// produced by interning it.
package ident

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// EngineNamespace is reserved for identifiers the engine defines itself.
const EngineNamespace = "<engine>"

// ErrMalformed is returned when a textual identifier cannot be parsed.
var ErrMalformed = errors.New("malformed identifier")

// ID is a resolved identifier. It is only meaningful together with the
// Interner that produced it and never appears in persisted or wire data.
type ID uint32

// RawID is a namespaced name as written in data files. Two raw ids are equal
// iff both strings are equal.
type RawID struct {
	Namespace string
	Name      string
}

// Static builds a RawID for a well-known identifier.
func Static(namespace, name string) RawID {
	return RawID{Namespace: namespace, Name: name}
}

// Well-known raw identifiers resolved once per registry.
var (
	NoneRaw = Static(EngineNamespace, "none")
	AnyRaw  = Static(EngineNamespace, "#any")
)

// Resolve interns the raw id. Repeated calls with the same interner return
// the same ID and grow the table at most once.
func (r RawID) Resolve(in *Interner) ID {
	return in.Intern(r.Namespace, r.Name)
}

// String renders "namespace:name".
func (r RawID) String() string {
	return r.Namespace + ":" + r.Name
}

// IsZero reports whether both parts are empty.
func (r RawID) IsZero() bool {
	return r.Namespace == "" && r.Name == ""
}

// ParseRawID parses the "namespace:name" text form.
func ParseRawID(s string) (RawID, error) {
	ns, name, ok := strings.Cut(s, ":")
	if !ok || ns == "" || name == "" {
		return RawID{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return RawID{Namespace: ns, Name: name}, nil
}

// MarshalText is used for JSON object keys.
func (r RawID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses "namespace:name".
func (r *RawID) UnmarshalText(text []byte) error {
	parsed, err := ParseRawID(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON writes the two-field form ["namespace", "name"].
func (r RawID) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Namespace, r.Name})
}

// UnmarshalJSON accepts either ["namespace", "name"] or "namespace:name".
// null leaves r unchanged.
func (r *RawID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return fmt.Errorf("%w: %s", ErrMalformed, data)
		}
		*r = RawID{Namespace: pair[0], Name: pair[1]}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, data)
	}
	return r.UnmarshalText([]byte(text))
}
