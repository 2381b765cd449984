package archive

import (
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"resourceocr/models"
	"resourceocr/pkg/inventory"
	"resourceocr/process/classify"
	"resourceocr/process/pipeline"
	"resourceocr/process/screening"
)

func sampleResult() *pipeline.Result {
	table := inventory.NewTable(inventory.DefaultRoster())
	rec, _ := table.Record(inventory.Aqours, "Riko")
	rec.Set(inventory.Memorial, inventory.KnownCount(1200))
	rec.Set(inventory.Memento, inventory.UnreadableCount())
	rec.Set(inventory.Autograph, inventory.KnownCount(0))
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return &pipeline.Result{
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Table:      table,
		Triage: &screening.Triage{Verdicts: []screening.Verdict{
			{Path: "Screenshot_01.png", Kind: screening.MemorialScreen, Group: inventory.Aqours, Name: "Mari"},
			{Path: "Screenshot_02.png"},
		}},
		Memorials: []classify.Report{{Missing: []classify.MissingMember{
			{Group: inventory.Muse, Name: "Nico", Missing: []inventory.Field{inventory.Memento}},
		}}},
		Autograph: classify.Report{Missing: []classify.MissingMember{
			{Group: inventory.Nijigasaki, Name: "Lanzhu", Missing: []inventory.Field{inventory.Autograph}},
		}},
	}
}

func TestFromResultRoundTrip(t *testing.T) {
	res := sampleResult()
	run := FromResult(res, "/shots", nil)
	if run.Status != models.RunCompleted || run.FinishedAt == nil {
		t.Fatalf("unexpected run header %+v", run)
	}
	if len(run.Resources) != 30 || len(run.Screenshots) != 2 || len(run.Warnings) != 2 {
		t.Fatalf("unexpected children %d/%d/%d", len(run.Resources), len(run.Screenshots), len(run.Warnings))
	}
	if run.Screenshots[0].Kind != "memorial" || run.Screenshots[0].GroupName != "Aqours" || run.Screenshots[1].GroupName != "" {
		t.Fatalf("unexpected screenshots %+v", run.Screenshots)
	}

	rows, missing, err := Rows(run)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if !reflect.DeepEqual(rows, res.Table.Rows()) {
		t.Fatalf("rows differ after round trip")
	}
	if !reflect.DeepEqual(missing, res.Missing()) {
		t.Fatalf("missing differ: %+v vs %+v", missing, res.Missing())
	}
}

func TestFromResultFailed(t *testing.T) {
	run := FromResult(nil, "/shots", errors.New("insufficient screenshots: none for autograph"))
	if run.Status != models.RunFailed || run.Error == "" || len(run.Resources) != 0 {
		t.Fatalf("unexpected failed run %+v", run)
	}
}

// TestSaveAndLoad needs a database; set DB_DSN_TEST=1 and DB_DSN (and DB_DRIVER) to run it.
func TestSaveAndLoad(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gdb, err := OpenFromEnv()
	if err != nil || gdb == nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	run := FromResult(sampleResult(), "/shots", nil)
	if err := Save(gdb, run); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Get(gdb, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Resources) != 30 || got.Resources[0].Member != "Hanayo" {
		t.Fatalf("resources not loaded in order")
	}
	if _, err := Latest(gdb); err != nil {
		t.Fatalf("latest: %v", err)
	}
	gdb.Delete(&models.Run{}, run.ID)
}
