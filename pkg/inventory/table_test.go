package inventory

import "testing"

func TestNewTablePrepopulatesUnknown(t *testing.T) {
	r := DefaultRoster()
	tbl := NewTable(r)
	rows := tbl.Rows()
	if len(rows) != 30 {
		t.Fatalf("expected 30 rows got %d", len(rows))
	}
	for _, row := range rows {
		if row.Record.Memorial.State != Unknown || row.Record.Memento.State != Unknown || row.Record.Autograph.State != Unknown {
			t.Fatalf("expected unknown fields for %s got %+v", row.Name, row.Record)
		}
	}
	if rows[0].Name != "Hanayo" || rows[len(rows)-1].Name != "Lanzhu" {
		t.Fatalf("rows not in roster order: first=%s last=%s", rows[0].Name, rows[len(rows)-1].Name)
	}
}

func TestLookupResolvesGroup(t *testing.T) {
	tbl := NewTable(DefaultRoster())
	g, rec, ok := tbl.Lookup("Setsuna")
	if !ok || g != Nijigasaki {
		t.Fatalf("expected Nijigasaki got %v ok=%v", g, ok)
	}
	rec.Set(Autograph, KnownCount(12))
	again, _ := tbl.Record(Nijigasaki, "Setsuna")
	if v, known := again.Autograph.Get(); !known || v != 12 {
		t.Fatalf("expected autograph 12 got %v", again.Autograph)
	}
	if _, _, ok := tbl.Lookup("Nobody"); ok {
		t.Fatalf("unexpected lookup hit for unknown member")
	}
}

func TestCountStates(t *testing.T) {
	if s := (Count{}).String(); s != "?" {
		t.Fatalf("unknown renders %q", s)
	}
	if s := UnreadableCount().String(); s != "!" {
		t.Fatalf("unreadable renders %q", s)
	}
	if _, ok := UnreadableCount().Get(); ok {
		t.Fatalf("unreadable must not be known")
	}
	if v, ok := KnownCount(0).Get(); !ok || v != 0 {
		t.Fatalf("zero must be a known value")
	}
}

func TestNewRosterRejectsDuplicates(t *testing.T) {
	_, err := NewRoster(map[Group][]string{
		Muse:       {"A", "B"},
		Aqours:     {"C", "A"},
		Nijigasaki: {"D"},
	})
	if err == nil {
		t.Fatalf("expected duplicate member error")
	}
	_, err = NewRoster(map[Group][]string{Muse: {"A"}, Aqours: {"B"}})
	if err == nil {
		t.Fatalf("expected error for empty group")
	}
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup(" aqours ")
	if err != nil || g != Aqours {
		t.Fatalf("expected Aqours got %v err=%v", g, err)
	}
	if _, err := ParseGroup("liella"); err == nil {
		t.Fatalf("expected error for unknown group")
	}
}
