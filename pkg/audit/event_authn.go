package audit

import "fmt"

// AuthenticateEvent represents a credential or refresh authentication audit event
type AuthenticateEvent struct {
	Login        string
	ClientIP     string
	GrantType    string // "password" or "refresh"
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated via %s grant", e.Login, e.GrantType)
	}
	msg := fmt.Sprintf("%s failed to authenticate via %s grant", e.Login, e.GrantType)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"grant": e.GrantType,
			"user":  e.Login,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
