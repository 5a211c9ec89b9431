package audit

import "fmt"

// RevokeEvent represents a token revocation audit event
type RevokeEvent struct {
	Subject  string
	ClientIP string
	JTI      string
	RJTI     string
}

func (e RevokeEvent) MessageID() string {
	return "revoke"
}

func (e RevokeEvent) Message() string {
	return fmt.Sprintf("%s revoked token pair (jti=%s rjti=%s)", e.Subject, e.JTI, e.RJTI)
}

func (e RevokeEvent) Severity() Severity {
	return SeverityNotice
}

func (e RevokeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RevokeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Subject,
		},
		SDIDSubject: {
			"jti":  e.JTI,
			"rjti": e.RJTI,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "revoke",
		},
	}
}
