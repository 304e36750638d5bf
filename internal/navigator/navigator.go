// Package navigator owns the current selection within a track list.
//
// The selection is either absent or a valid index. Relative moves wrap
// around both ends of the list:
//
//	absent --By(+1)--> 0 --By(+1)--> 1 ... L-1 --By(+1)--> 0
//	absent --By(-1)--> L-1
//
// An empty list always has an absent selection.
package navigator

import (
	"errors"

	"github.com/llehouerou/sift/internal/track"
)

// ErrInvalidArgument is the panic value (wrapped) for a Select call that
// does not name exactly one of ToIndex or By.
var ErrInvalidArgument = errors.New("navigator: exactly one of ToIndex or By is required")

// Navigator tracks which track of a list is selected.
type Navigator struct {
	list    *track.List
	index   int
	present bool
}

// New returns a navigator over list with no selection.
func New(list *track.List) *Navigator {
	if list == nil {
		list = track.Build(nil, nil)
	}
	return &Navigator{list: list}
}

// SelectOption names the target of a Select call.
type SelectOption func(*selectArgs)

type selectArgs struct {
	index    int
	hasIndex bool
	delta    int
	hasDelta bool
}

// ToIndex selects an absolute index. Out-of-range values wrap.
func ToIndex(i int) SelectOption {
	return func(a *selectArgs) {
		a.index = i
		a.hasIndex = true
	}
}

// By moves the selection by delta positions. By(0) with no selection leaves
// it absent.
func By(delta int) SelectOption {
	return func(a *selectArgs) {
		a.delta = delta
		a.hasDelta = true
	}
}

// Select updates the selection. Exactly one of ToIndex or By must be given;
// anything else is a programming error and panics.
func (n *Navigator) Select(opts ...SelectOption) {
	var a selectArgs
	for _, opt := range opts {
		opt(&a)
	}
	if a.hasIndex == a.hasDelta {
		panic(ErrInvalidArgument)
	}

	length := n.list.Len()
	if length == 0 {
		n.index, n.present = 0, false
		return
	}

	raw := a.index
	if a.hasDelta {
		if !n.present && a.delta == 0 {
			return
		}
		start := n.index
		if !n.present {
			if a.delta > 0 {
				start = -1
			} else {
				start = length
			}
		}
		raw = start + a.delta
	}

	n.index = ((raw % length) + length) % length
	n.present = true
}

// Next moves the selection forward by one.
func (n *Navigator) Next() { n.Select(By(1)) }

// Previous moves the selection back by one.
func (n *Navigator) Previous() { n.Select(By(-1)) }

// Index returns the selected index and whether a selection exists.
func (n *Navigator) Index() (int, bool) {
	return n.index, n.present
}

// Current returns the selected track, or nil when nothing is selected.
func (n *Navigator) Current() *track.Track {
	if !n.present {
		return nil
	}
	t, err := n.list.Get(n.index)
	if err != nil {
		return nil
	}
	return t
}

// List returns the list being navigated.
func (n *Navigator) List() *track.List { return n.list }

// Reset switches to a new list and clears the selection.
func (n *Navigator) Reset(list *track.List) {
	if list == nil {
		list = track.Build(nil, nil)
	}
	n.list = list
	n.index, n.present = 0, false
}
