package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/repository"
)

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks

// DocRepository - документы с ревизиями
type DocRepository interface {
	BulkGet(ctx context.Context, ids []string) (map[string]domain.StoredDocument, error)
	// BulkSave возвращает id, не записанные из-за конфликта ревизий
	BulkSave(ctx context.Context, docs []domain.StoredDocument) ([]string, error)
}

const defaultMaxAttempts = 3

// Store - долговременное хранилище курсов: один документ на bucket.
// Запись — read-merge-write с повтором при конфликте, курсы только добавляются.
type Store struct {
	repo        DocRepository
	maxAttempts int
	logger      *slog.Logger
}

func New(repo DocRepository, maxAttempts int, logger *slog.Logger) *Store {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Store{repo: repo, maxAttempts: maxAttempts, logger: logger}
}

// Fetch - отсутствующие и удалённые документы считаются пустыми
func (s *Store) Fetch(ctx context.Context, want map[string]domain.DocKeys) (map[string]domain.RateDocument, error) {
	ids := slices.Sorted(maps.Keys(want))
	stored, err := s.repo.BulkGet(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("bulk get: %w: %w", errs.ErrStoreUnavailable, err)
	}
	out := make(map[string]domain.RateDocument, len(stored))
	for id, d := range stored {
		if d.Deleted {
			continue
		}
		out[id] = d.Doc
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, docs map[string]domain.RateDocument) error {
	pending := docs
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		conflicts, err := s.saveOnce(ctx, pending)
		if err != nil {
			return err
		}
		if len(conflicts) == 0 {
			return nil
		}
		s.logger.Debug("document conflict, retrying",
			slog.Int("attempt", attempt),
			slog.Any("ids", conflicts),
		)
		next := make(map[string]domain.RateDocument, len(conflicts))
		for _, id := range conflicts {
			next[id] = docs[id]
		}
		pending = next
	}
	return fmt.Errorf("%d documents after %d attempts: %w", len(pending), s.maxAttempts, repository.ErrConflict)
}

func (s *Store) saveOnce(ctx context.Context, docs map[string]domain.RateDocument) ([]string, error) {
	ids := slices.Sorted(maps.Keys(docs))
	current, err := s.repo.BulkGet(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("bulk get: %w: %w", errs.ErrStoreUnavailable, err)
	}

	toSave := make([]domain.StoredDocument, 0, len(ids))
	for _, id := range ids {
		cur, exists := current[id]
		merged := domain.NewRateDocument()
		if exists && !cur.Deleted {
			merged.Merge(cur.Doc)
		}
		changed := merged.Merge(docs[id])
		if exists && !cur.Deleted && !changed {
			continue
		}
		toSave = append(toSave, domain.StoredDocument{ID: id, Doc: merged, Rev: cur.Rev})
	}
	if len(toSave) == 0 {
		return nil, nil
	}

	conflicts, err := s.repo.BulkSave(ctx, toSave)
	if err != nil {
		return nil, fmt.Errorf("bulk save: %w: %w", errs.ErrStoreUnavailable, err)
	}
	return conflicts, nil
}
