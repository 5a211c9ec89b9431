package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openagri/aegis/pkg/model"
)

func TestPermissionSetUnion(t *testing.T) {
	set := NewPermissionSet()

	set.Add(Grant{Service: "farm_calendar", Action: model.ActionView})
	set.Add(Grant{Service: "farm_calendar", Action: model.ActionView}) // duplicate path
	set.Add(Grant{Service: "irrigation", Action: model.ActionEdit})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Allows("farm_calendar", model.ActionView))
	assert.True(t, set.Allows("irrigation", model.ActionEdit))
	assert.False(t, set.Allows("irrigation", model.ActionDelete))
}

func TestVirtualGrantsNeverAuthorize(t *testing.T) {
	set := NewPermissionSet()
	set.Add(Grant{Service: "farm_calendar", Action: model.ActionAdd, Virtual: true})

	assert.False(t, set.Allows("farm_calendar", model.ActionAdd))
	// Still visible for menu purposes.
	assert.True(t, set.Contains("farm_calendar", model.ActionAdd))
}

func TestNonVirtualBeatsVirtual(t *testing.T) {
	set := NewPermissionSet()

	set.Add(Grant{Service: "farm_calendar", Action: model.ActionView, Virtual: true})
	set.Add(Grant{Service: "farm_calendar", Action: model.ActionView})

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Allows("farm_calendar", model.ActionView))

	// Order must not matter.
	reversed := NewPermissionSet()
	reversed.Add(Grant{Service: "farm_calendar", Action: model.ActionView})
	reversed.Add(Grant{Service: "farm_calendar", Action: model.ActionView, Virtual: true})
	assert.True(t, reversed.Allows("farm_calendar", model.ActionView))
}

func TestAddAllActions(t *testing.T) {
	set := NewPermissionSet()
	set.AddAllActions("irrigation")

	assert.Equal(t, len(model.AllActions), set.Len())
	for _, action := range model.AllActions {
		assert.True(t, set.Allows("irrigation", action))
	}
}

func TestGlobalPermissionUsesEmptyService(t *testing.T) {
	set := NewPermissionSet()
	set.Add(Grant{Service: "", Action: model.ActionView})

	assert.True(t, set.Allows("", model.ActionView))
	// A global tuple does not leak onto named services.
	assert.False(t, set.Allows("farm_calendar", model.ActionView))
}

func TestGrantsOrdering(t *testing.T) {
	set := NewPermissionSet()
	set.Add(Grant{Service: "irrigation", Action: model.ActionView})
	set.Add(Grant{Service: "farm_calendar", Action: model.ActionDelete})
	set.Add(Grant{Service: "farm_calendar", Action: model.ActionAdd})

	grants := set.Grants()
	assert.Equal(t, "farm_calendar", grants[0].Service)
	assert.Equal(t, model.ActionAdd, grants[0].Action)
	assert.Equal(t, "farm_calendar", grants[1].Service)
	assert.Equal(t, model.ActionDelete, grants[1].Action)
	assert.Equal(t, "irrigation", grants[2].Service)
}
