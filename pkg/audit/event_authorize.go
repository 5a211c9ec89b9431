package audit

import "fmt"

// AuthorizeEvent represents a permission check audit event
type AuthorizeEvent struct {
	Subject  string
	ClientIP string
	Service  string
	Action   string
	Allowed  bool
}

func (e AuthorizeEvent) MessageID() string {
	return "authz"
}

func (e AuthorizeEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s checked permission %s on %s: allowed", e.Subject, e.Action, e.Service)
	}
	return fmt.Sprintf("%s checked permission %s on %s: denied", e.Subject, e.Action, e.Service)
}

func (e AuthorizeEvent) Severity() Severity {
	return SeverityInfo
}

func (e AuthorizeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthorizeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Subject,
		},
		SDIDSubject: {
			"service": e.Service,
			"action":  e.Action,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authorize",
			"result":    result,
		},
	}
}
