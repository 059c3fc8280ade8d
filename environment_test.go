package waypoint_test

import (
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
)

func TestEnvVarOrBool(t *testing.T) {
	for _, tc := range []struct {
		name     string
		val      string
		def      bool
		expected bool
	}{
		{"Unset", "", true, true},
		{"True", "TRUE", false, true},
		{"One", "1", false, true},
		{"False", "false", true, false},
		{"Garbage", "yes please", false, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("WAYPOINT_TEST_BOOL", tc.val)
			require.Equal(t, tc.expected, waypoint.EnvVarOrBool("WAYPOINT_TEST_BOOL", tc.def))
		})
	}
}

func TestEnvVarOrEnv(t *testing.T) {
	t.Setenv("WAYPOINT_TEST_ENV", "")
	require.Equal(t, waypoint.Development, waypoint.EnvVarOrEnv("WAYPOINT_TEST_ENV", waypoint.Development))

	t.Setenv("WAYPOINT_TEST_ENV", "production")
	require.Equal(t, waypoint.Production, waypoint.EnvVarOrEnv("WAYPOINT_TEST_ENV", waypoint.Development))

	t.Setenv("WAYPOINT_TEST_ENV", "moon")
	require.Equal(t, waypoint.Testing, waypoint.EnvVarOrEnv("WAYPOINT_TEST_ENV", waypoint.Testing))
}

func TestEnvVarOrDuration(t *testing.T) {
	t.Setenv("WAYPOINT_TEST_DUR", "")
	require.Equal(t, time.Second, waypoint.EnvVarOrDuration("WAYPOINT_TEST_DUR", time.Second))

	t.Setenv("WAYPOINT_TEST_DUR", "90s")
	require.Equal(t, 90*time.Second, waypoint.EnvVarOrDuration("WAYPOINT_TEST_DUR", time.Second))
}

func TestEnvVarOrLogLevel(t *testing.T) {
	for _, tc := range []struct {
		name     string
		val      string
		expected slog.Level
	}{
		{"Unset", "", slog.LevelInfo},
		{"Debug", "DEBUG", slog.LevelDebug},
		{"Lower", "warn", slog.LevelWarn},
		{"Unknown", "LOUD", slog.LevelInfo},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("WAYPOINT_TEST_LVL", tc.val)
			require.Equal(t, tc.expected, waypoint.EnvVarOrLogLevel("WAYPOINT_TEST_LVL", slog.LevelInfo))
		})
	}
}

func TestNewLogLevel(t *testing.T) {
	_, err := waypoint.NewLogLevel("nope")
	require.ErrorIs(t, err, waypoint.ErrNotValid)
}

func TestMask(t *testing.T) {
	for _, tc := range []struct {
		name string
		vals url.Values
		key  string
		want url.Values
	}{
		{"zero", url.Values{}, "", url.Values{}},
		{
			"mismatch",
			url.Values{"password": []string{"hunter2"}},
			"passwrod",
			url.Values{"password": []string{"hunter2"}},
		},
		{
			"squash-multiple",
			url.Values{"password": []string{"hunter2", "hunter3"}},
			"password",
			url.Values{"password": []string{waypoint.LogMaskVal}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			waypoint.Mask(tc.vals, tc.key)
			require.Equal(t, tc.want, tc.vals)
		})
	}
}
