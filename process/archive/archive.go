package archive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resourceocr/models"
	"resourceocr/pkg/inventory"
	"resourceocr/process/classify"
	"resourceocr/process/pipeline"
)

// ErrNoRuns is returned by Latest on an empty archive.
var ErrNoRuns = errors.New("no archived runs")

// FromResult converts a run outcome into its archive rows. res may be nil when the
// run failed before producing anything; runErr marks the run as failed.
func FromResult(res *pipeline.Result, screenshotDir string, runErr error) *models.Run {
	run := &models.Run{ScreenshotDir: screenshotDir, Status: models.RunCompleted, StartedAt: time.Now()}
	if runErr != nil {
		run.Status = models.RunFailed
		run.Error = truncate(runErr.Error(), 1024)
	}
	if res == nil {
		return run
	}
	run.StartedAt = res.StartedAt
	if !res.FinishedAt.IsZero() {
		t := res.FinishedAt
		run.FinishedAt = &t
	}
	if res.Table != nil {
		for i, row := range res.Table.Rows() {
			r := models.Resource{GroupName: row.Group.String(), Member: row.Name, Position: i}
			r.Memorial, r.MemorialUnreadable = toColumns(row.Record.Memorial)
			r.Memento, r.MementoUnreadable = toColumns(row.Record.Memento)
			r.Autograph, r.AutographUnreadable = toColumns(row.Record.Autograph)
			run.Resources = append(run.Resources, r)
		}
	}
	if res.Triage != nil {
		for i, v := range res.Triage.Verdicts {
			s := models.Screenshot{Path: v.Path, Kind: v.Kind.String(), Member: v.Name, Position: i}
			if v.Group != 0 {
				s.GroupName = v.Group.String()
			}
			run.Screenshots = append(run.Screenshots, s)
		}
	}
	for _, m := range res.Missing() {
		fields := make([]string, 0, len(m.Missing))
		for _, f := range m.Missing {
			fields = append(fields, f.String())
		}
		run.Warnings = append(run.Warnings, models.Warning{GroupName: m.Group.String(), Member: m.Name, Fields: strings.Join(fields, ",")})
	}
	return run
}

func toColumns(c inventory.Count) (*int64, bool) {
	switch c.State {
	case inventory.Known:
		v := int64(c.Value)
		return &v, false
	case inventory.Unreadable:
		return nil, true
	}
	return nil, false
}

func fromColumns(v *int64, unreadable bool) inventory.Count {
	if v != nil {
		return inventory.KnownCount(int(*v))
	}
	if unreadable {
		return inventory.UnreadableCount()
	}
	return inventory.Count{}
}

// Rows rebuilds the report view of an archived run.
func Rows(run *models.Run) ([]inventory.Row, []classify.MissingMember, error) {
	rows := make([]inventory.Row, 0, len(run.Resources))
	for _, r := range run.Resources {
		g, err := inventory.ParseGroup(r.GroupName)
		if err != nil {
			return nil, nil, fmt.Errorf("resource %d: %w", r.ID, err)
		}
		rows = append(rows, inventory.Row{Group: g, Name: r.Member, Record: inventory.Record{
			Memorial:  fromColumns(r.Memorial, r.MemorialUnreadable),
			Memento:   fromColumns(r.Memento, r.MementoUnreadable),
			Autograph: fromColumns(r.Autograph, r.AutographUnreadable),
		}})
	}
	var missing []classify.MissingMember
	for _, w := range run.Warnings {
		g, err := inventory.ParseGroup(w.GroupName)
		if err != nil {
			return nil, nil, fmt.Errorf("warning %d: %w", w.ID, err)
		}
		m := classify.MissingMember{Group: g, Name: w.Member}
		for _, f := range strings.Split(w.Fields, ",") {
			switch f {
			case "memorial":
				m.Missing = append(m.Missing, inventory.Memorial)
			case "memento":
				m.Missing = append(m.Missing, inventory.Memento)
			case "autograph":
				m.Missing = append(m.Missing, inventory.Autograph)
			}
		}
		missing = append(missing, m)
	}
	return rows, missing, nil
}

// Save inserts run with its resources, screenshots and warnings in one transaction.
func Save(gdb *gorm.DB, run *models.Run) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
}

func withChildren(gdb *gorm.DB) *gorm.DB {
	return gdb.
		Preload("Resources", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Screenshots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Warnings", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// Get loads run id with all of its rows.
func Get(gdb *gorm.DB, id uint) (*models.Run, error) {
	var run models.Run
	if err := withChildren(gdb).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Latest loads the most recent completed run.
func Latest(gdb *gorm.DB) (*models.Run, error) {
	var run models.Run
	err := withChildren(gdb).Where("status = ?", models.RunCompleted).Order("started_at desc, id desc").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns run headers, newest first.
func List(gdb *gorm.DB, limit int) ([]models.Run, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var runs []models.Run
	if err := gdb.Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
