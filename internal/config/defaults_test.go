package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name        string
		configLines []string
		key         string
		wantValue   string
		wantFound   bool
	}{
		{
			name:      "default prompt",
			key:       "prompt",
			wantValue: "> ",
			wantFound: true,
		},
		{
			name:      "default log_level",
			key:       "log_level",
			wantValue: "warn",
			wantFound: true,
		},
		{
			name:        "config overrides default",
			configLines: []string{"log_level=error"},
			key:         "log_level",
			wantValue:   "error",
			wantFound:   true,
		},
		{
			name:        "unknown key only in file",
			configLines: []string{"custom=1"},
			key:         "custom",
			wantValue:   "1",
			wantFound:   true,
		},
		{
			name:      "unknown key",
			key:       "missing",
			wantFound: false,
		},
		{
			name:        "malformed file falls back to defaults",
			configLines: []string{"not a pair"},
			key:         "history_limit",
			wantValue:   "20",
			wantFound:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTempConfig(t)
			if tt.configLines != nil {
				require.NoError(t, WriteLines(tt.configLines))
			}

			got, found := Get(tt.key)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantValue, got)
		})
	}
}

func TestGetAll_MergesCorrectly(t *testing.T) {
	setupTempConfig(t)
	require.NoError(t, WriteLines([]string{"color=never", "extra=x"}))

	all, err := GetAll()
	require.NoError(t, err)
	require.Equal(t, "never", all["color"])
	require.Equal(t, "x", all["extra"])
	require.Equal(t, "true", all["record_history"])
	require.Len(t, all, len(Defaults)+1)
}

func TestGetAll_NoConfigFile(t *testing.T) {
	configPath := setupTempConfig(t)
	require.NoError(t, os.RemoveAll(configPath))

	all, err := GetAll()
	require.NoError(t, err)
	require.Len(t, all, len(Defaults))
}

func TestGetBoolAndInt(t *testing.T) {
	setupTempConfig(t)
	require.NoError(t, WriteLines([]string{"enable_log=false", "history_limit=oops"}))

	require.False(t, GetBool("enable_log", true))
	require.True(t, GetBool("record_history", false))
	require.True(t, GetBool("missing", true))
	require.Equal(t, 7, GetInt("history_limit", 7))
	require.Equal(t, 3, GetInt("missing", 3))
}
