package inventory

import (
	"fmt"
	"strings"
)

// Group is one of the three fixed member groups.
type Group int

const (
	Muse Group = iota + 1
	Aqours
	Nijigasaki
)

// Groups lists every group in report order.
var Groups = []Group{Muse, Aqours, Nijigasaki}

func (g Group) String() string {
	switch g {
	case Muse:
		return "Muse"
	case Aqours:
		return "Aqours"
	case Nijigasaki:
		return "Nijigasaki"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// ParseGroup resolves a group by its name, case-insensitive.
func ParseGroup(s string) (Group, error) {
	for _, g := range Groups {
		if strings.EqualFold(g.String(), strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown group %q", s)
}

// Roster is the static group membership table. It is built once and never mutated;
// accessors hand out copies.
type Roster struct {
	members map[Group][]string
	groupOf map[string]Group
}

// DefaultMembers is the built-in membership, in the order the game lists them.
var DefaultMembers = map[Group][]string{
	Muse:       {"Hanayo", "Maki", "Umi", "Eli", "Honoka", "Kotori", "Rin", "Nozomi", "Nico"},
	Aqours:     {"Mari", "Yoshiko", "Dia", "Riko", "Chika", "Kanan", "You", "Hanamaru", "Ruby"},
	Nijigasaki: {"Kanata", "Mia", "Karin", "Rina", "Kasumi", "Setsuna", "Ayumu", "Emma", "Shizuku", "Shioriko", "Ai", "Lanzhu"},
}

// NewRoster validates members and builds a Roster. Every group must have at least one
// member and a name may belong to one group only.
func NewRoster(members map[Group][]string) (*Roster, error) {
	r := &Roster{
		members: make(map[Group][]string, len(Groups)),
		groupOf: map[string]Group{},
	}
	for _, g := range Groups {
		names := members[g]
		if len(names) == 0 {
			return nil, fmt.Errorf("group %s has no members", g)
		}
		list := make([]string, 0, len(names))
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				return nil, fmt.Errorf("group %s: empty member name", g)
			}
			if prev, dup := r.groupOf[n]; dup {
				return nil, fmt.Errorf("member %q listed in both %s and %s", n, prev, g)
			}
			r.groupOf[n] = g
			list = append(list, n)
		}
		r.members[g] = list
	}
	return r, nil
}

// DefaultRoster returns the built-in roster.
func DefaultRoster() *Roster {
	r, err := NewRoster(DefaultMembers)
	if err != nil {
		panic(err)
	}
	return r
}

// Members returns the ordered member names of g.
func (r *Roster) Members(g Group) []string {
	return append([]string(nil), r.members[g]...)
}

// All returns every member of every group, group by group.
func (r *Roster) All() []string {
	var out []string
	for _, g := range Groups {
		out = append(out, r.members[g]...)
	}
	return out
}

// GroupOf reports which group a member belongs to.
func (r *Roster) GroupOf(name string) (Group, bool) {
	g, ok := r.groupOf[name]
	return g, ok
}
