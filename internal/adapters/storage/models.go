package storage

import "time"

// TrackedPullRequestModel is the GORM model for tracked_pull_requests.
// ID is autoincrement and gives the insertion order.
type TrackedPullRequestModel struct {
	AddedAt   time.Time  `gorm:"not null"`
	ClosedAt  *time.Time `gorm:"default:null"`
	CreatedAt time.Time
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	Mergeable string     `gorm:"not null;default:''"`
	Merged    bool       `gorm:"not null"`
	Number    int        `gorm:"not null;uniqueIndex:idx_tracked_number"`
	Owner     string     `gorm:"not null"`
	Repo      string     `gorm:"not null"`
	State     string     `gorm:"not null;index:idx_tracked_state;check:state IN ('open','closed')"`
	Title     string     `gorm:"not null;default:''"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (TrackedPullRequestModel) TableName() string { return "tracked_pull_requests" }

// SettingsModel is the GORM model for the single-row settings table
type SettingsModel struct {
	ID                     uint   `gorm:"primaryKey"`
	NotificationsEnabled   bool   `gorm:"not null"`
	RefreshIntervalSeconds int    `gorm:"not null;check:refresh_interval_seconds > 0"`
	Theme                  string `gorm:"not null;check:theme IN ('system','light','dark')"`
	UpdatedAt              time.Time
}

// TableName specifies the table name for GORM
func (SettingsModel) TableName() string { return "settings" }

// CredentialModel is the GORM model for the single-row credentials table.
// The token is stored as plain text.
type CredentialModel struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (CredentialModel) TableName() string { return "credentials" }

// singletonID is the primary key of the single-row tables
const singletonID = 1
