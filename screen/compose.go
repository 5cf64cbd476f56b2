package screen

import (
	"strings"

	"picodeck/keypad"
	"picodeck/proto"
)

const (
	// Columns is how many 6 px glyphs fit in the text region of a line.
	Columns = TextWidth / 6

	// Greeting is shown until the first host frame arrives.
	Greeting = "hw! core1"

	titleRow    = 0
	firstData   = 1
	statusRow   = Rows - 1
	greetingRow = 5
)

// Composer lays host state and the last sent key onto a Table.
//
//	row 0     title and paginator
//	rows 1-8  data lines, '>' marks the cursor
//	row 9     ip, battery and last key
type Composer struct {
	table   Table
	state   proto.HostState
	lastKey byte
}

// NewComposer returns a composer showing the greeting.
func NewComposer() *Composer {
	c := &Composer{}
	c.table.SetLine(greetingRow, Greeting)
	return c
}

// Table returns the composed grid. It stays owned by the composer.
func (c *Composer) Table() *Table { return &c.table }

// ApplyHostState replaces the previous host state with s.
func (c *Composer) ApplyHostState(s proto.HostState) {
	c.state = s

	if s.Title != nil || s.Paginator != nil {
		c.table.SetLine(titleRow, clip(joinNonEmpty(deref(s.Title), deref(s.Paginator))))
	} else {
		c.table.ClearLine(titleRow)
	}

	for i := 0; i < proto.MaxDataLines; i++ {
		row := firstData + i
		if i >= len(s.DataLines) || s.DataLines[i] == nil {
			if s.CursorIndex != nil && int(*s.CursorIndex) == i {
				c.table.SetLine(row, ">")
				continue
			}
			c.table.ClearLine(row)
			continue
		}
		mark := " "
		if s.CursorIndex != nil && int(*s.CursorIndex) == i {
			mark = ">"
		}
		c.table.SetLine(row, clip(mark+*s.DataLines[i]))
	}
	c.status()
}

// NoteKey records the key of an event just sent to the host.
func (c *Composer) NoteKey(ev keypad.Event) {
	c.lastKey = ev.Key.Char()
	c.status()
}

func (c *Composer) status() {
	var b strings.Builder
	if c.state.IP != nil && *c.state.IP != "" {
		b.WriteString(*c.state.IP)
	}
	if c.state.Battery != nil && *c.state.Battery != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(*c.state.Battery)
		b.WriteByte('%')
	}
	if c.lastKey != 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("kc: ")
		b.WriteByte(c.lastKey)
	}
	if b.Len() == 0 {
		c.table.ClearLine(statusRow)
		return
	}
	c.table.SetLine(statusRow, clip(b.String()))
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

func clip(s string) string {
	s, _ = TakeRunes(s, Columns)
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
