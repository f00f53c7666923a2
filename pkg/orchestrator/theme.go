package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeVarPrefix is prepended to token names to form CSS custom properties.
// Token names are therefore written without dashes: "color-primary" becomes
// "--color-primary".
const ThemeVarPrefix = "--"

// newThemeSelector registers manifest in a fresh go-theme registry and
// returns a selector defaulting to it.
func newThemeSelector(manifest *theme.Manifest, variant string) (theme.Selector, error) {
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return theme.Selector{}, fmt.Errorf("orchestrator: register theme: %w", err)
	}
	return theme.Selector{
		Registry:       registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: variant,
	}, nil
}

// resolveTheme returns the CSS variables of the selected theme, or nil when
// no theme is configured. Unknown variants fall back to the base tokens.
func (o *Orchestrator) resolveTheme(req Request) (map[string]string, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := firstNonEmpty(req.ThemeName, o.themeName)
	variant := firstNonEmpty(req.ThemeVariant, o.themeVariant)
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, errors.New("orchestrator: theme selection has no manifest")
	}
	return selection.CSSVariables(ThemeVarPrefix), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
