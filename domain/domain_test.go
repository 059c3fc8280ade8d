package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/domain"
)

func TestDefaultTasks(t *testing.T) {
	expected := domain.TaskList{"buy groceries", "refill gas", "go shopping", "pickup friend"}
	actual := domain.DefaultTasks()
	require.Equal(t, expected, actual)

	actual[0] = "sell groceries"
	require.Equal(t, expected, domain.DefaultTasks())
}

func TestParseVariant(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    string
		expected domain.Variant
		err      error
	}{
		{"Plain", "plain", domain.Plain, nil},
		{"Tasks-Upper", " TASKS ", domain.WithTasks, nil},
		{"Empty", "", "", waypoint.ErrNotValid},
		{"Unknown", "fancy", "", waypoint.ErrNotValid},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := domain.ParseVariant(tc.input)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestVariantTasks(t *testing.T) {
	require.Nil(t, domain.Plain.Tasks())
	require.Equal(t, domain.DefaultTasks(), domain.WithTasks.Tasks())
}
