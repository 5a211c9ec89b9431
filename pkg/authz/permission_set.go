package authz

import (
	"sort"

	"github.com/openagri/aegis/pkg/model"
)

// Grant is one resolved (service, action) authorization. Service is the
// service code, or empty for a global permission. Virtual grants exist for
// menu/UI visibility and never satisfy a backend authorization check.
type Grant struct {
	Service string       `json:"service"`
	Action  model.Action `json:"action"`
	Virtual bool         `json:"virtual"`
}

type tuple struct {
	service string
	action  model.Action
}

// PermissionSet is the effective authorization of one principal: a pure
// union of direct grants, group grants and coarse group-service grants.
// Set semantics: a tuple appears once no matter how many paths grant it,
// and a tuple reachable both virtually and non-virtually is non-virtual
// (most permissive wins; there is no deny).
type PermissionSet struct {
	grants map[tuple]Grant
}

// NewPermissionSet returns an empty set.
func NewPermissionSet() *PermissionSet {
	return &PermissionSet{grants: make(map[tuple]Grant)}
}

// Add merges a grant into the set.
func (s *PermissionSet) Add(g Grant) {
	key := tuple{service: g.Service, action: g.Action}
	if existing, ok := s.grants[key]; ok {
		// Non-virtual beats virtual.
		if existing.Virtual && !g.Virtual {
			s.grants[key] = g
		}
		return
	}
	s.grants[key] = g
}

// AddAllActions grants every action on a service, as a coarse
// group-service grant does.
func (s *PermissionSet) AddAllActions(service string) {
	for _, action := range model.AllActions {
		s.Add(Grant{Service: service, Action: action})
	}
}

// Allows reports whether the principal may perform action on service for
// real backend authorization. Virtual grants do not count.
func (s *PermissionSet) Allows(service string, action model.Action) bool {
	g, ok := s.grants[tuple{service: service, action: action}]
	return ok && !g.Virtual
}

// Contains reports whether the tuple is present at all, virtual or not.
// Intended for menu/UI visibility decisions.
func (s *PermissionSet) Contains(service string, action model.Action) bool {
	_, ok := s.grants[tuple{service: service, action: action}]
	return ok
}

// Len returns the number of distinct tuples in the set.
func (s *PermissionSet) Len() int {
	return len(s.grants)
}

// Grants returns the set contents ordered by service then action, for
// stable API output.
func (s *PermissionSet) Grants() []Grant {
	out := make([]Grant, 0, len(s.grants))
	for _, g := range s.grants {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Action < out[j].Action
	})
	return out
}
