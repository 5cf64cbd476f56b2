// Package screen owns the 10-line text grid: the snapshot handed between
// cores, how host state is laid out on it, and how it is drawn.
package screen

// Rows is the number of text lines on the display.
const Rows = 10

// Line is one slot of the grid.
type Line struct {
	Text string
	// Dirty marks a line whose content changed since the snapshot was last
	// published. Rendering redraws every line regardless.
	Dirty bool
	// Set is false for an empty slot.
	Set bool
}

// Table is the full grid snapshot. Empty slots stay in place, so a Table
// always has exactly Rows entries.
type Table [Rows]Line

// SetLine stores text in slot i.
func (t *Table) SetLine(i int, text string) {
	if i < 0 || i >= Rows {
		return
	}
	l := &t[i]
	if l.Set && l.Text == text {
		return
	}
	l.Text, l.Set, l.Dirty = text, true, true
}

// ClearLine empties slot i.
func (t *Table) ClearLine(i int) {
	if i < 0 || i >= Rows {
		return
	}
	l := &t[i]
	if !l.Set {
		return
	}
	*l = Line{Dirty: true}
}

// Dirty reports whether any slot changed since ClearDirty.
func (t *Table) Dirty() bool {
	for i := range t {
		if t[i].Dirty {
			return true
		}
	}
	return false
}

// ClearDirty resets every dirty mark.
func (t *Table) ClearDirty() {
	for i := range t {
		t[i].Dirty = false
	}
}
