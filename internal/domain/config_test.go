package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigKeys_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, key := range ConfigKeys {
		require.False(t, seen[key.Name], "duplicate key %s", key.Name)
		seen[key.Name] = true
		require.Contains(t, ConfigSections(), key.Section, key.Name)
	}
}

func TestGetDefaultValue(t *testing.T) {
	v, ok := GetDefaultValue("prompt")
	require.True(t, ok)
	require.Equal(t, "> ", v)

	_, ok = GetDefaultValue("theme")
	require.False(t, ok)
	require.False(t, IsValidConfigKey("theme"))
}

func TestVisibleConfigKeyNames(t *testing.T) {
	require.Equal(t, []string{"prompt", "pager", "color", "display_date", "display_time", "enable_log", "log_level", "record_history", "history_limit"}, VisibleConfigKeyNames())
}

func TestHistoryEntry_Succeeded(t *testing.T) {
	require.True(t, HistoryEntry{Result: ResultOK}.Succeeded())
	require.False(t, HistoryEntry{Result: "UnknownArgument"}.Succeeded())
}

func TestSourceOf(t *testing.T) {
	admin := Source{User: "ada", Level: LevelAdmin}

	tests := []struct {
		name string
		src  any
		want Source
	}{
		{"value", admin, admin},
		{"pointer", &admin, admin},
		{"nil pointer", (*Source)(nil), Source{User: "anonymous"}},
		{"other", "ada", Source{User: "anonymous"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SourceOf(tt.src))
		})
	}
}

func TestSourceLevelName(t *testing.T) {
	require.Equal(t, "guest", Source{Level: -1}.LevelName())
	require.Equal(t, "member", Source{Level: 1}.LevelName())
	require.Equal(t, "admin", Source{Level: 2}.LevelName())
	require.Equal(t, "level 5", Source{Level: 5}.LevelName())
}
