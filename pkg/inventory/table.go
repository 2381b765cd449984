package inventory

import "strconv"

// CountState tells an unset field apart from one whose OCR text could not be parsed.
type CountState uint8

const (
	Unknown CountState = iota
	Unreadable
	Known
)

// Count is an optional resource amount.
type Count struct {
	State CountState
	Value int
}

// KnownCount wraps a value read from a screenshot.
func KnownCount(v int) Count { return Count{State: Known, Value: v} }

// UnreadableCount marks a matched cell whose number could not be read.
func UnreadableCount() Count { return Count{State: Unreadable} }

// Get returns the value and whether it is known.
func (c Count) Get() (int, bool) {
	return c.Value, c.State == Known
}

func (c Count) String() string {
	switch c.State {
	case Known:
		return strconv.Itoa(c.Value)
	case Unreadable:
		return "!"
	}
	return "?"
}

// Field selects one of the three resource amounts of a Record.
type Field int

const (
	Memorial Field = iota
	Memento
	Autograph
)

func (f Field) String() string {
	switch f {
	case Memorial:
		return "memorial"
	case Memento:
		return "memento"
	case Autograph:
		return "autograph"
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// Record holds the three resource amounts of one member.
type Record struct {
	Memorial  Count
	Memento   Count
	Autograph Count
}

// Set stores c into field f.
func (r *Record) Set(f Field, c Count) {
	switch f {
	case Memorial:
		r.Memorial = c
	case Memento:
		r.Memento = c
	case Autograph:
		r.Autograph = c
	}
}

// Get returns field f.
func (r *Record) Get(f Field) Count {
	switch f {
	case Memorial:
		return r.Memorial
	case Memento:
		return r.Memento
	}
	return r.Autograph
}

// Table maps group -> member -> record. Every roster member has a record from the
// start so a member that was never detected still shows up with Unknown fields.
type Table struct {
	roster  *Roster
	records map[Group]map[string]*Record
}

// NewTable pre-populates a record for every member of the roster.
func NewTable(r *Roster) *Table {
	t := &Table{roster: r, records: make(map[Group]map[string]*Record, len(Groups))}
	for _, g := range Groups {
		m := make(map[string]*Record, len(r.members[g]))
		for _, name := range r.members[g] {
			m[name] = &Record{}
		}
		t.records[g] = m
	}
	return t
}

// Roster returns the roster the table was built from.
func (t *Table) Roster() *Roster { return t.roster }

// Record returns the mutable record of name within g.
func (t *Table) Record(g Group, name string) (*Record, bool) {
	rec, ok := t.records[g][name]
	return rec, ok
}

// Lookup finds a member's record through the roster's group membership.
func (t *Table) Lookup(name string) (Group, *Record, bool) {
	g, ok := t.roster.GroupOf(name)
	if !ok {
		return 0, nil, false
	}
	rec, ok := t.records[g][name]
	return g, rec, ok
}

// Row is one member's record in roster order.
type Row struct {
	Group  Group
	Name   string
	Record Record
}

// Rows returns a copy of every record, group by group in roster order.
func (t *Table) Rows() []Row {
	var out []Row
	for _, g := range Groups {
		for _, name := range t.roster.members[g] {
			out = append(out, Row{Group: g, Name: name, Record: *t.records[g][name]})
		}
	}
	return out
}
