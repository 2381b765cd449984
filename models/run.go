package models

import "time"

// Run statuses.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Run is one archived extraction. A failed run keeps whatever triage found.
type Run struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	StartedAt     time.Time `gorm:"index;not null"`
	FinishedAt    *time.Time
	ScreenshotDir string       `gorm:"size:512"`
	Status        string       `gorm:"size:16;index;not null"`
	Error         string       `gorm:"size:1024"`
	OperatorID    *uint        `gorm:"index"`
	Resources     []Resource   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Screenshots   []Screenshot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Warnings      []Warning    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Resource mirrors one table record. A nil amount with its Unreadable flag unset
// means the cell was never found.
type Resource struct {
	ID                  uint   `gorm:"primaryKey"`
	RunID               uint   `gorm:"index;not null;uniqueIndex:idx_run_member"`
	GroupName           string `gorm:"size:32;not null"`
	Member              string `gorm:"size:64;not null;uniqueIndex:idx_run_member"`
	Position            int    `gorm:"not null"`
	Memorial            *int64
	MemorialUnreadable  bool `gorm:"default:false"`
	Memento             *int64
	MementoUnreadable   bool `gorm:"default:false"`
	Autograph           *int64
	AutographUnreadable bool `gorm:"default:false"`
}

// Screenshot is the triage verdict of one input file.
type Screenshot struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     uint   `gorm:"index;not null"`
	Path      string `gorm:"size:512;not null"`
	Kind      string `gorm:"size:16;not null"`
	GroupName string `gorm:"size:32"`
	Member    string `gorm:"size:64"`
	Position  int    `gorm:"not null"`
}

// Warning is a member a pass left unresolved.
type Warning struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     uint   `gorm:"index;not null"`
	GroupName string `gorm:"size:32;not null"`
	Member    string `gorm:"size:64;not null"`
	// Fields is a comma separated list of the fields never found.
	Fields string `gorm:"size:64;not null"`
}
