package ocr

import (
	"errors"
	"testing"
)

func TestParseCountStripsSeparators(t *testing.T) {
	n, err := ParseCount(" 12,345\n")
	if err != nil || n != 12345 {
		t.Fatalf("expected 12345 got %d err=%v", n, err)
	}
	n2, err2 := ParseCount("1234")
	if err2 != nil || n2 != 1234 {
		t.Fatalf("expected 1234 got %d err=%v", n2, err2)
	}
	// wide digit groups come back space separated
	n4, err4 := ParseCount("1 234")
	if err4 != nil || n4 != 1234 {
		t.Fatalf("expected 1234 got %d err=%v", n4, err4)
	}
	n3, err3 := ParseCount("0")
	if err3 != nil || n3 != 0 {
		t.Fatalf("expected 0 got %d err=%v", n3, err3)
	}
}

func TestParseCountUnreadable(t *testing.T) {
	for _, in := range []string{"", "   \n", "12a", "-5", "O1", ",,", "99999999999999999999999"} {
		n, err := ParseCount(in)
		if !errors.Is(err, ErrUnreadable) {
			t.Fatalf("%q: expected ErrUnreadable got n=%d err=%v", in, n, err)
		}
		if n != 0 {
			t.Fatalf("%q: unreadable must not carry a value, got %d", in, n)
		}
	}
}
