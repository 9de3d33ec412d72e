package settings

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/classlog/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Database             *string `help:"Database path or PostgreSQL connection string."`
	Timezone             *string `help:"IANA timezone used for dates (empty for local time)."`
	LogLevel             *string `help:"Log level (debug, info, warn, error)."`
	Debug                *bool   `help:"Enable debug logging."`
	NotificationsEnabled *bool   `help:"Enable or disable reminder notifications."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	if cfg == nil {
		return errors.New("no configuration loaded")
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Config file:           %s\n", cfg.FilePath())
		ctx.Printf("  Database:              %s\n", cfg.Database)
		ctx.Printf("  User ID:               %s\n", valueOr(cfg.UserID, "(not set)"))
		ctx.Printf("  Timezone:              %s\n", valueOr(cfg.Timezone, "(local)"))
		ctx.Printf("  Log level:             %s\n", valueOr(cfg.LogLevel, "(default)"))
		ctx.Printf("  Debug:                 %v\n", cfg.Debug)
		ctx.Println("\nNotification Settings:")
		ctx.Printf("  Notifications Enabled: %v\n", cfg.NotificationsEnabled)
		return nil
	}

	updates := map[string]string{}
	if c.Database != nil {
		updates["database"] = *c.Database
	}
	if c.Timezone != nil {
		updates["timezone"] = *c.Timezone
	}
	if c.LogLevel != nil {
		updates["log_level"] = *c.LogLevel
	}
	if c.Debug != nil {
		updates["debug"] = strconv.FormatBool(*c.Debug)
	}
	if c.NotificationsEnabled != nil {
		updates["notifications_enabled"] = strconv.FormatBool(*c.NotificationsEnabled)
	}

	if len(updates) == 0 {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	for key, value := range updates {
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
