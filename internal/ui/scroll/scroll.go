// Package scroll keeps a window of list rows positioned around a selection
// that lives elsewhere.
//
// The list length and viewport height are passed to methods rather than
// stored, since both change with the terminal and the loaded folder.
package scroll

// Window is the scroll offset of a list view.
type Window struct {
	offset int // first visible row
	margin int // rows kept visible above/below the selection
}

// New creates a Window with the given scroll margin.
func New(margin int) Window {
	return Window{margin: margin}
}

// Offset returns the first visible row.
func (w Window) Offset() int {
	return w.offset
}

// Follow scrolls just enough to keep pos visible with the margin applied.
// A negative pos means nothing is selected and only clamps the offset.
func (w *Window) Follow(pos, listLen, height int) {
	if height <= 0 || listLen == 0 {
		w.offset = 0
		return
	}
	if pos >= 0 {
		margin := min(w.margin, (height-1)/2)
		if pos < w.offset+margin {
			w.offset = pos - margin
		}
		if pos >= w.offset+height-margin {
			w.offset = pos - height + margin + 1
		}
	}
	w.clamp(listLen, height)
}

// Scroll moves the window by delta rows without touching the selection.
func (w *Window) Scroll(delta, listLen, height int) {
	w.offset += delta
	w.clamp(listLen, height)
}

func (w *Window) clamp(listLen, height int) {
	w.offset = min(w.offset, max(listLen-height, 0))
	w.offset = max(w.offset, 0)
}

// VisibleRange returns the visible indices [start, end).
func (w Window) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(w.offset, listLen)
	return start, min(start+height, listLen)
}

// IndexAt maps a row inside the window to a list index.
func (w Window) IndexAt(row, listLen, height int) (int, bool) {
	if row < 0 || row >= height {
		return 0, false
	}
	i := w.offset + row
	if i >= listLen {
		return 0, false
	}
	return i, true
}

// Reset scrolls back to the top.
func (w *Window) Reset() {
	w.offset = 0
}
