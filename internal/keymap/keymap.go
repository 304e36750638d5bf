// Package keymap maps symbolic key names to actions from a fixed registry.
// Bindings are validated once, when loaded, and never change afterwards.
package keymap

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/llehouerou/sift/internal/track"
)

// ErrConflict is returned when two bound keys produce the same terminal
// input but name different actions.
var ErrConflict = errors.New("conflicting bindings")

// Binding is one validated key to action entry.
type Binding struct {
	Key    Key
	Action Action
}

// Table is an immutable set of bindings.
type Table struct {
	bindings   map[Key]Action
	byTerminal map[string]Key
	byName     map[Name][]Key
}

// Load validates bindings (key symbol to action spec) and builds a table.
// Every entry is checked; the returned error joins all problems found.
func Load(bindings map[string]string, vocab *track.Vocabulary) (*Table, error) {
	t := &Table{
		bindings:   make(map[Key]Action, len(bindings)),
		byTerminal: make(map[string]Key),
		byName:     make(map[Name][]Key),
	}

	names := make([]string, 0, len(bindings))
	for k := range bindings {
		names = append(names, k)
	}
	slices.Sort(names)

	var errs []error
	for _, raw := range names {
		k, err := ParseKey(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a, err := ParseAction(bindings[raw], vocab)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", raw, err))
			continue
		}
		if err := t.add(k, a); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for name, keys := range t.byName {
		slices.Sort(keys)
		t.byName[name] = keys
	}
	return t, nil
}

func (t *Table) add(k Key, a Action) error {
	for _, term := range k.Terminal() {
		if other, ok := t.byTerminal[term]; ok && t.bindings[other] != a {
			return fmt.Errorf("%w: %s and %s", ErrConflict, other, k)
		}
	}
	t.bindings[k] = a
	for _, term := range k.Terminal() {
		if _, ok := t.byTerminal[term]; !ok {
			t.byTerminal[term] = k
		}
	}
	t.byName[a.Name] = append(t.byName[a.Name], k)
	return nil
}

// Resolve returns the action bound to k.
func (t *Table) Resolve(k Key) (Action, bool) {
	a, ok := t.bindings[k]
	return a, ok
}

// FromTerminal returns the bound key producing the terminal key string s.
func (t *Table) FromTerminal(s string) (Key, bool) {
	k, ok := t.byTerminal[s]
	return k, ok
}

// KeysFor returns the keys bound to an action name, sorted.
func (t *Table) KeysFor(name Name) []Key {
	return t.byName[name]
}

// Bindings returns every binding, ordered by action then key.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.bindings))
	for k, a := range t.bindings {
		out = append(out, Binding{Key: k, Action: a})
	}
	slices.SortFunc(out, func(x, y Binding) int {
		return cmp.Or(
			cmp.Compare(slices.Index(Names, x.Action.Name), slices.Index(Names, y.Action.Name)),
			cmp.Compare(x.Action.String(), y.Action.String()),
			cmp.Compare(x.Key, y.Key),
		)
	})
	return out
}

// TagKeys maps each tag with a set_tag binding to the display name of its
// first key.
func (t *Table) TagKeys() map[string]string {
	out := make(map[string]string)
	for _, b := range t.Bindings() {
		if b.Action.Name != SetTag {
			continue
		}
		if _, ok := out[b.Action.Tag]; !ok {
			out[b.Action.Tag] = b.Key.Display()
		}
	}
	return out
}
