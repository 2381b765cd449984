// Package screening sorts raw screenshots into memorial screens per group,
// autograph screens and unrelated captures by looking at the first grid cell.
package screening

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
	"resourceocr/pkg/match"
)

const (
	DefaultMemorialConfidence  = 0.93
	DefaultAutographConfidence = 0.92
)

// Kind is the triage verdict of one screenshot.
type Kind int

const (
	Unrecognized Kind = iota
	MemorialScreen
	AutographScreen
)

func (k Kind) String() string {
	switch k {
	case MemorialScreen:
		return "memorial"
	case AutographScreen:
		return "autograph"
	default:
		return "unrecognized"
	}
}

// Verdict is the triage result of a single screenshot.
type Verdict struct {
	Path  string
	Kind  Kind
	Group inventory.Group
	// Name is the member whose icon decided the verdict.
	Name string
}

// Triage lists the screenshots of each kind in chronological order.
type Triage struct {
	Memorials  map[inventory.Group][]string
	Autographs []string
	Discarded  []string
	Verdicts   []Verdict
}

// Screener classifies screenshots using reduced template sets: memorial variant 0
// of every member, then every autograph.
type Screener struct {
	Locator             *grid.Locator
	Catalog             *catalog.Catalog
	Matcher             match.Matcher
	Roster              *inventory.Roster
	MemorialConfidence  float64
	AutographConfidence float64
}

func NewScreener(loc *grid.Locator, cat *catalog.Catalog, m match.Matcher, r *inventory.Roster) *Screener {
	return &Screener{
		Locator:             loc,
		Catalog:             cat,
		Matcher:             m,
		Roster:              r,
		MemorialConfidence:  DefaultMemorialConfidence,
		AutographConfidence: DefaultAutographConfidence,
	}
}

// Classify takes the recent window newest first, as discovery returns it, and
// processes it oldest first. The returned Triage is filled even when validation
// fails so callers can report what was found.
func (s *Screener) Classify(paths []string) (*Triage, error) {
	t := &Triage{Memorials: map[inventory.Group][]string{}}
	for i := len(paths) - 1; i >= 0; i-- {
		v, err := s.Screen(paths[i])
		if err != nil {
			return t, err
		}
		t.add(v)
	}
	return t, t.Validate()
}

func (t *Triage) add(v Verdict) {
	t.Verdicts = append(t.Verdicts, v)
	switch v.Kind {
	case MemorialScreen:
		t.Memorials[v.Group] = append(t.Memorials[v.Group], v.Path)
	case AutographScreen:
		t.Autographs = append(t.Autographs, v.Path)
	default:
		t.Discarded = append(t.Discarded, v.Path)
	}
}

// Screen classifies one screenshot. Files that fail to decode or show no grid are
// Unrecognized; only matcher failures are returned as errors.
func (s *Screener) Screen(path string) (Verdict, error) {
	v := Verdict{Path: path}
	img, err := imaging.Open(path)
	if err != nil {
		log.Printf("triage skip %s: %v", path, err)
		return v, nil
	}
	f, err := s.Locator.Locate(img)
	if errors.Is(err, grid.ErrFrameNotFound) {
		log.Printf("triage skip %s: no grid", path)
		return v, nil
	}
	if err != nil {
		return v, fmt.Errorf("%s: %w", path, err)
	}
	icon := f.IconRegion(0, 0)

	for _, g := range inventory.Groups {
		for _, name := range s.Roster.Members(g) {
			tpl, ok := s.Catalog.Memorial(name, 0)
			if !ok {
				continue
			}
			_, hit, err := s.Matcher.Locate(tpl, icon, s.MemorialConfidence, true)
			if err != nil {
				return v, fmt.Errorf("%s: %w", path, err)
			}
			if hit {
				v.Kind, v.Group, v.Name = MemorialScreen, g, name
				log.Printf("triage %s: memorial %s (%s)", path, g, name)
				return v, nil
			}
		}
	}
	for _, name := range s.Roster.All() {
		tpl, ok := s.Catalog.Autograph(name)
		if !ok {
			continue
		}
		_, hit, err := s.Matcher.Locate(tpl, icon, s.AutographConfidence, true)
		if err != nil {
			return v, fmt.Errorf("%s: %w", path, err)
		}
		if hit {
			v.Kind, v.Name = AutographScreen, name
			v.Group, _ = s.Roster.GroupOf(name)
			log.Printf("triage %s: autograph (%s)", path, name)
			return v, nil
		}
	}
	log.Printf("triage %s: unrecognized", path)
	return v, nil
}

// Validate requires a memorial screenshot for every group and at least one
// autograph screenshot.
func (t *Triage) Validate() error {
	var missing []string
	for _, g := range inventory.Groups {
		if len(t.Memorials[g]) == 0 {
			missing = append(missing, "memorial "+g.String())
		}
	}
	if len(t.Autographs) == 0 {
		missing = append(missing, "autograph")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: none for %s", ErrInsufficientInput, strings.Join(missing, ", "))
	}
	return nil
}
