// Package report prints the inventory table of a run.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"resourceocr/pkg/inventory"
	"resourceocr/process/classify"
)

// Legend explains the placeholders used for counts that carry no number.
const Legend = "? = not found, ! = unreadable"

var printer = message.NewPrinter(language.English)

// FormatCount renders c with thousands separators.
func FormatCount(c inventory.Count) string {
	if v, ok := c.Get(); ok {
		return printer.Sprintf("%d", v)
	}
	return c.String()
}

// Write prints rows group by group followed by the missing members.
func Write(w io.Writer, rows []inventory.Row, missing []classify.MissingMember) error {
	var current inventory.Group
	for _, r := range rows {
		if r.Group != current {
			if current != 0 {
				fmt.Fprintln(w)
			}
			current = r.Group
			fmt.Fprintf(w, "== %s ==\n", r.Group)
			fmt.Fprintf(w, "%-10s %10s %10s %10s\n", "name", "memorial", "memento", "autograph")
		}
		_, err := fmt.Fprintf(w, "%-10s %10s %10s %10s\n", r.Name,
			FormatCount(r.Record.Memorial), FormatCount(r.Record.Memento), FormatCount(r.Record.Autograph))
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\n(%s)\n", Legend)
	if len(missing) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nwarnings:")
	for _, m := range missing {
		fields := make([]string, 0, len(m.Missing))
		for _, f := range m.Missing {
			fields = append(fields, f.String())
		}
		if _, err := fmt.Fprintf(w, "  %s/%s not found: %s\n", m.Group, m.Name, strings.Join(fields, ", ")); err != nil {
			return err
		}
	}
	return nil
}
