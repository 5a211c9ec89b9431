package model

import (
	"database/sql/driver"
	"fmt"
)

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -transform lower -json -output action.gen.go

// Action is a fine-grained operation on a registered service.
type Action int

const (
	ActionAdd Action = iota
	ActionEdit
	ActionView
	ActionDelete
)

// AllActions lists every action, in declaration order. Coarse group-service
// grants expand to this full set.
var AllActions = []Action{ActionAdd, ActionEdit, ActionView, ActionDelete}

// Value stores the action as its lowercase string form, matching the
// varchar column in permission_master.
func (i Action) Value() (driver.Value, error) {
	if !i.IsAAction() {
		return nil, fmt.Errorf("invalid action value %d", int(i))
	}
	return i.String(), nil
}

// Scan reads the action back from its stored string form.
func (i *Action) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		action, err := ActionString(v)
		if err != nil {
			return err
		}
		*i = action
		return nil
	case []byte:
		action, err := ActionString(string(v))
		if err != nil {
			return err
		}
		*i = action
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Action", src)
	}
}
