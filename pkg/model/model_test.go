package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleTransitions(t *testing.T) {
	l := Lifecycle{Status: StatusActive}
	require.True(t, l.IsActive())
	require.False(t, l.IsDeleted())

	now := time.Now()
	l.SoftDelete(now)
	assert.Equal(t, StatusDeleted, l.Status)
	require.NotNil(t, l.DeletedAt)
	assert.Equal(t, now, *l.DeletedAt)
	assert.True(t, l.IsDeleted())

	l.Restore()
	assert.Equal(t, StatusActive, l.Status)
	assert.Nil(t, l.DeletedAt)
	assert.True(t, l.IsActive())
}

func TestActionRoundTrip(t *testing.T) {
	for _, action := range AllActions {
		v, err := action.Value()
		require.NoError(t, err)

		var scanned Action
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, action, scanned)
	}
}

func TestActionScanRejectsUnknown(t *testing.T) {
	var a Action
	assert.Error(t, a.Scan("frobnicate"))
	assert.Error(t, a.Scan(42))
}

func TestActionValueRejectsInvalid(t *testing.T) {
	_, err := Action(99).Value()
	assert.Error(t, err)
}

func TestUserPassword(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.SetPassword("s3cret"))

	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.False(t, (&User{}).CheckPassword("s3cret"))
}
