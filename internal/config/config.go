// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SinkWebhook = "webhook"
	SinkSheets  = "sheets"
)

type Config struct {
	Port   string
	DBPath string

	SinkKind         string
	SinkURL          string
	SinkStrictStatus bool
	DispatchTimeout  time.Duration

	SheetsCredentials   string
	SheetsSpreadsheetID string
	SheetsSheetName     string

	StrictHours bool
	LogLevel    slog.Level
}

// Load reads .env (a missing file is only logged) and then the process
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults. Malformed values
// are errors; whether the sink is usable is left to Validate.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	c := Config{
		Port:                get("PORT", "8080"),
		DBPath:              get("DB_PATH", "tasklog.db"),
		SinkKind:            strings.ToLower(get("SINK_KIND", SinkWebhook)),
		SinkURL:             get("SINK_URL", ""),
		SheetsCredentials:   get("SHEETS_CREDENTIALS", "credentials.json"),
		SheetsSpreadsheetID: get("SHEETS_SPREADSHEET_ID", ""),
		SheetsSheetName:     get("SHEETS_SHEET_NAME", "Tasks"),
	}

	var errs []error
	var err error
	if c.SinkStrictStatus, err = strconv.ParseBool(get("SINK_STRICT_STATUS", "false")); err != nil {
		errs = append(errs, fmt.Errorf("SINK_STRICT_STATUS: %w", err))
	}
	if c.StrictHours, err = strconv.ParseBool(get("STRICT_HOURS", "false")); err != nil {
		errs = append(errs, fmt.Errorf("STRICT_HOURS: %w", err))
	}
	if c.DispatchTimeout, err = time.ParseDuration(get("DISPATCH_TIMEOUT", "30s")); err != nil {
		errs = append(errs, fmt.Errorf("DISPATCH_TIMEOUT: %w", err))
	} else if c.DispatchTimeout < 0 {
		errs = append(errs, errors.New("DISPATCH_TIMEOUT: must not be negative"))
	}
	if err := c.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if len(errs) > 0 {
		return c, errors.Join(errs...)
	}
	return c, nil
}

// Validate checks that the chosen sink has what it needs. Commands that only
// read the journal skip it.
func (c Config) Validate() error {
	switch c.SinkKind {
	case SinkWebhook:
		if c.SinkURL == "" {
			return errors.New("SINK_URL is required for the webhook sink")
		}
	case SinkSheets:
		if c.SheetsSpreadsheetID == "" {
			return errors.New("SHEETS_SPREADSHEET_ID is required for the sheets sink")
		}
	default:
		return fmt.Errorf("SINK_KIND: unknown sink %q", c.SinkKind)
	}
	return nil
}

// Logger returns a text logger on stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
