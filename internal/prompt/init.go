package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-sheetsite/pkg/config"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

var sourceOptions = []string{
	"Published Google Sheet",
	"Local .xlsx workbook",
}

// InitConfig asks for the values of a new site configuration, starting from
// base. The result is validated before it is returned.
func InitConfig(ctx context.Context, driver Driver, base config.Config) (config.Config, error) {
	if driver == nil {
		return config.Config{}, errors.New("prompt: driver is required")
	}
	cfg := base
	if cfg.Sections == nil {
		cfg.Sections = map[string]string{}
	}

	source, err := driver.Select(ctx, SelectConfig{
		Message: "Where does the content live?",
		Options: sourceOptions,
	})
	if err != nil {
		return config.Config{}, err
	}

	if source == 1 {
		workbook, err := driver.Input(ctx, InputConfig{
			Message:   "Workbook path",
			Default:   cfg.Workbook,
			Help:      "Each section is read from the tab named after it (settings, hero, services...).",
			Validator: required("workbook path"),
		})
		if err != nil {
			return config.Config{}, err
		}
		cfg.Workbook = strings.TrimSpace(workbook)
	} else {
		publication, err := driver.Input(ctx, InputConfig{
			Message:   "Publication id",
			Default:   cfg.PublicationID,
			Help:      "The 2PACX-... segment of the File > Share > Publish to web link.",
			Validator: required("publication id"),
		})
		if err != nil {
			return config.Config{}, err
		}
		cfg.PublicationID = strings.TrimSpace(publication)
		cfg.Workbook = ""
	}

	ids := sheet.Sections()
	options := make([]string, len(ids))
	defaults := make([]int, 0, len(ids))
	for idx, id := range ids {
		options[idx] = id.String()
		if _, ok := cfg.Sections[id.String()]; ok || len(cfg.Sections) == 0 {
			defaults = append(defaults, idx)
		}
	}
	selected, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Sections to publish",
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return config.Config{}, err
	}
	if len(selected) == 0 {
		return config.Config{}, errors.New("prompt: select at least one section")
	}

	sections := make(map[string]string, len(selected))
	for _, idx := range selected {
		name := options[idx]
		if cfg.Workbook != "" {
			sections[name] = ""
			continue
		}
		gid, err := driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Tab id (gid) for %s", name),
			Default:   cfg.Sections[name],
			Validator: required("gid"),
		})
		if err != nil {
			return config.Config{}, err
		}
		sections[name] = strings.TrimSpace(gid)
	}
	cfg.Sections = sections

	timeout, err := driver.Input(ctx, InputConfig{
		Message:   "Request timeout",
		Default:   cfg.RequestTimeout.String(),
		Validator: validDuration,
	})
	if err != nil {
		return config.Config{}, err
	}
	cfg.RequestTimeout, _ = time.ParseDuration(strings.TrimSpace(timeout))

	strict, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Fail the whole page when one section cannot be loaded?",
		Default: cfg.Strict,
	})
	if err != nil {
		return config.Config{}, err
	}
	cfg.Strict = strict

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := driver.Info(ctx, fmt.Sprintf("Configured %d section(s).", len(cfg.Sections))); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func required(label string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validDuration(value string) error {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if d <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}
