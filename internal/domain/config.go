package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `config list`
	Hidden      bool   // Hidden keys are not shown or suggested
}

// ConfigKeys defines all available configuration keys.
// Order determines display order in `config list`.
var ConfigKeys = []ConfigKey{
	// Console
	{
		Name:        "prompt",
		Default:     "> ",
		Description: "Prompt shown by the interactive console",
		Section:     "Console",
	},
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager for long one-shot output such as `tree`; cat disables it",
		Section:     "Console",
	},
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colored output: auto, always or never",
		Section:     "Console",
	},
	{
		Name:        "display_date",
		Default:     "yyyy-mm-dd",
		Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd or a Go layout",
		Section:     "Console",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 24h or 12h",
		Section:     "Console",
	},

	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Write a log file",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "warn",
		Description: "Minimum level written to the log: debug, info, warn, error",
		Section:     "Logging",
	},

	// History
	{
		Name:        "record_history",
		Default:     "true",
		Description: "Record executed commands in the history database",
		Section:     "History",
	},
	{
		Name:        "history_limit",
		Default:     "20",
		Description: "Entries shown by `history`",
		Section:     "History",
	},
}

var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// GetDefaultValue returns the default value for a config key.
func GetDefaultValue(name string) (string, bool) {
	if key, ok := configKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// VisibleConfigKeyNames returns the names of VisibleConfigKeys, in order.
func VisibleConfigKeyNames() []string {
	keys := VisibleConfigKeys()
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.Name
	}
	return names
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Console", "Logging", "History"}
}

// ConfigKeysBySection returns visible config keys grouped by section.
func ConfigKeysBySection() map[string][]ConfigKey {
	result := make(map[string][]ConfigKey)
	for _, key := range ConfigKeys {
		if !key.Hidden {
			result[key.Section] = append(result[key.Section], key)
		}
	}
	return result
}
