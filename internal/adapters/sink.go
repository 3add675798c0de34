// Package adapters selects the record sink named by the configuration.
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/sheets"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/webhook"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/config"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/ports"
)

// NewSink builds the configured sink. For Sheets the target tab and header
// row are created when missing; a failure there is only logged so an
// unreachable API does not stop the process from starting.
func NewSink(ctx context.Context, cfg config.Config, log *slog.Logger) (ports.RecordSink, error) {
	switch cfg.SinkKind {
	case config.SinkWebhook:
		s := webhook.New(cfg.SinkURL, &http.Client{})
		s.StrictStatus = cfg.SinkStrictStatus
		return s, nil
	case config.SinkSheets:
		s, err := sheets.NewFromCredentials(ctx, cfg.SheetsCredentials, cfg.SheetsSpreadsheetID, cfg.SheetsSheetName)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureHeader(ctx); err != nil {
			log.Warn("could not prepare sheet", "sheet", cfg.SheetsSheetName, "err", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.SinkKind)
	}
}
