package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpMap exposes the table to a bubbles help.Model.
type HelpMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// shortNames are the actions shown in the one-line help.
var shortNames = []Name{TogglePlayPause, PlayNext, PlayPrevious, IncrementRating, MoveToTrash, KeepFile, Quit}

// Help builds help bindings grouped by action. Keys bound to the same
// action and argument share one entry.
func (t *Table) Help() HelpMap {
	type group struct {
		action Action
		keys   []Key
	}
	var groups []group
	for _, b := range t.Bindings() {
		if n := len(groups); n > 0 && groups[n-1].action == b.Action {
			groups[n-1].keys = append(groups[n-1].keys, b.Key)
			continue
		}
		groups = append(groups, group{action: b.Action, keys: []Key{b.Key}})
	}

	var h HelpMap
	var playback, rating []key.Binding
	for _, g := range groups {
		var terms, labels []string
		for _, k := range g.keys {
			terms = append(terms, k.Terminal()...)
			labels = append(labels, k.Display())
		}
		kb := key.NewBinding(
			key.WithKeys(terms...),
			key.WithHelp(strings.Join(labels, "/"), g.action.Description()),
		)
		switch g.action.Name {
		case IncrementRating, SetTag, MoveToTrash, KeepFile:
			rating = append(rating, kb)
		default:
			playback = append(playback, kb)
		}
		for _, n := range shortNames {
			if g.action.Name == n {
				h.short = append(h.short, kb)
				break
			}
		}
	}
	h.full = [][]key.Binding{playback, rating}
	return h
}

// ShortHelp implements help.KeyMap.
func (h HelpMap) ShortHelp() []key.Binding { return h.short }

// FullHelp implements help.KeyMap.
func (h HelpMap) FullHelp() [][]key.Binding { return h.full }
