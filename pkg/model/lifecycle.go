package model

import "time"

//go:generate go run github.com/dmarkham/enumer -type Status -trimprefix Status -transform lower -json -output status.gen.go

// Status is the lifecycle state shared by every governed entity.
// The numeric values match the stored smallint column.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
	StatusDeleted
)

// Lifecycle carries the shared status/soft-delete columns.
// Invariant: Status == StatusDeleted exactly when DeletedAt is set.
type Lifecycle struct {
	Status    Status     `gorm:"column:status;not null;default:1" json:"status"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// SoftDelete marks the entity deleted as of now.
func (l *Lifecycle) SoftDelete(now time.Time) {
	l.Status = StatusDeleted
	l.DeletedAt = &now
}

// Restore reverts a soft delete and reactivates the entity.
func (l *Lifecycle) Restore() {
	l.Status = StatusActive
	l.DeletedAt = nil
}

// IsActive reports whether the entity is in the Active state.
func (l Lifecycle) IsActive() bool {
	return l.Status == StatusActive
}

// IsDeleted reports whether the entity has been soft-deleted.
func (l Lifecycle) IsDeleted() bool {
	return l.Status == StatusDeleted
}
