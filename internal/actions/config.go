package actions

import (
	"fmt"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
)

// ConfigGet prints the value of the "key" binding.
func (a *Actions) ConfigGet(_ any, ctx dispatchers.Context) error {
	key := ctx.String("key")
	value, ok := a.deps.Config.Get(key)
	if !ok {
		return fmt.Errorf("config: unknown key %q", key)
	}
	_, _ = a.deps.Println(value)
	return nil
}

// ConfigList prints every visible key grouped by section. Values that
// differ from the default are highlighted.
func (a *Actions) ConfigList(_ any, _ dispatchers.Context) error {
	values, err := a.deps.Config.GetAll()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	bySection := domain.ConfigKeysBySection()
	for i, section := range domain.ConfigSections() {
		if i > 0 {
			_, _ = a.deps.Println()
		}
		_, _ = a.deps.Println(a.deps.Styler.Header(section))
		for _, key := range bySection[section] {
			value := values[key.Name]
			shown := a.deps.Styler.Muted(fmt.Sprintf("%q", value))
			if value != key.Default {
				shown = a.deps.Styler.Info(fmt.Sprintf("%q", value))
			}
			_, _ = a.deps.Printf("  %s = %s\n", key.Name, shown)
		}
	}
	return nil
}

// ConfigSet writes the "value" binding to the "key" binding.
func (a *Actions) ConfigSet(_ any, ctx dispatchers.Context) error {
	key, value := ctx.String("key"), ctx.String("value")
	if err := a.deps.Config.Set(key, value); err != nil {
		return err
	}
	_, _ = a.deps.Println(a.deps.Styler.Success(fmt.Sprintf("%s = %q", key, value)))
	return nil
}

// ConfigUnset restores the default of the "key" binding.
func (a *Actions) ConfigUnset(_ any, ctx dispatchers.Context) error {
	key := ctx.String("key")
	if err := a.deps.Config.Unset(key); err != nil {
		return err
	}
	def, _ := domain.GetDefaultValue(key)
	_, _ = a.deps.Println(a.deps.Styler.Success(fmt.Sprintf("%s reset to %q", key, def)))
	return nil
}

// ConfigReset rewrites the config file with the defaults.
func (a *Actions) ConfigReset(_ any, _ dispatchers.Context) error {
	if err := a.deps.Config.Reset(); err != nil {
		return err
	}
	_, _ = a.deps.Println(a.deps.Styler.Success("Configuration reset to defaults"))
	return nil
}
