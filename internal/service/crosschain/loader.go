package crosschain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/repository"
)

type SettingsReader interface {
	GetSetting(ctx context.Context, id string) ([]byte, int64, error)
}

// Loader - перечитывает документ настроек и подменяет таблицу.
// Периодически запускается планировщиком.
type Loader struct {
	repo    SettingsReader
	table   *Table
	docID   string
	lastRev int64
	logger  *slog.Logger
}

func NewLoader(repo SettingsReader, table *Table, docID string, logger *slog.Logger) *Loader {
	return &Loader{repo: repo, table: table, docID: docID, logger: logger}
}

func (l *Loader) Name() string { return "crosschain-reload" }

// Run - документа нет: остаётся текущая таблица
func (l *Loader) Run(ctx context.Context) error {
	raw, rev, err := l.repo.GetSetting(ctx, l.docID)
	if errors.Is(err, repository.ErrNotFound) {
		l.logger.Debug("cross-chain mapping document not found", slog.String("id", l.docID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", l.docID, err)
	}
	if rev == l.lastRev && rev != 0 {
		return nil
	}

	mapping, skipped, err := ParseMapping(raw)
	if err != nil {
		return err
	}
	for _, e := range skipped {
		l.logger.Warn("cross-chain entry skipped", slog.String("error", e.Error()))
	}
	l.table.Store(mapping)
	l.lastRev = rev
	l.logger.Info("cross-chain mapping reloaded",
		slog.Int64("rev", rev),
		slog.Int("entries", len(mapping)),
	)
	return nil
}
