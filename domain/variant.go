package domain

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/waypoint"
)

// A Variant decides what data the homepage template receives.
type Variant string

const (
	// Plain renders the homepage with no data.
	Plain Variant = "plain"

	// WithTasks renders the homepage with the task list under "tasks".
	WithTasks Variant = "tasks"
)

// ParseVariant casts s into a valid Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if err := v.Valid(); err != nil {
		return "", err
	}

	return v, nil
}

func (v Variant) String() string { return string(v) }

func (v Variant) Valid() error {
	switch v {
	case Plain, WithTasks:
		return nil
	default:
		return fmt.Errorf("%w: variant %q", waypoint.ErrNotValid, string(v))
	}
}

// Tasks returns the TaskList the Variant renders,
// which is nil for Plain.
func (v Variant) Tasks() TaskList {
	if v != WithTasks {
		return nil
	}

	return DefaultTasks()
}
