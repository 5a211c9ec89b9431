package audit

import "fmt"

// PruneEvent represents a denylist maintenance audit event
type PruneEvent struct {
	Removed int64
	Error   string
}

func (e PruneEvent) MessageID() string {
	return "prune"
}

func (e PruneEvent) Message() string {
	if e.Error != "" {
		return "denylist prune failed: " + e.Error
	}
	return fmt.Sprintf("denylist prune removed %d expired entries", e.Removed)
}

func (e PruneEvent) Severity() Severity {
	if e.Error != "" {
		return SeverityError
	}
	return SeverityInfo
}

func (e PruneEvent) Facility() int {
	return FacilityAuth
}

func (e PruneEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "prune",
			"removed":   fmt.Sprintf("%d", e.Removed),
		},
	}
}
