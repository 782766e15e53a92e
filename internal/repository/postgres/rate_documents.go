package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
)

// DocumentRepo — документы курсов по bucket'ам (таблица rate_documents).
// Запись с оптимистичной блокировкой по rev.
type DocumentRepo struct {
	db *pgxpool.Pool
}

func NewDocumentRepo(db *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// BulkGet - документы по id; отсутствующих id в ответе нет
func (r *DocumentRepo) BulkGet(ctx context.Context, ids []string) (map[string]domain.StoredDocument, error) {
	out := make(map[string]domain.StoredDocument, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const query = `
		SELECT id, doc, rev, deleted
		FROM rate_documents
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d   domain.StoredDocument
			raw []byte
		)
		if err := rows.Scan(&d.ID, &raw, &d.Rev, &d.Deleted); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &d.Doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", d.ID, err)
		}
		out[d.ID] = d
	}
	return out, rows.Err()
}

// BulkSave - пишет документы одним batch'ем. Rev == 0 — вставка нового,
// иначе обновление при совпадении ревизии. Возвращает id, которые не записались из-за конфликта.
func (r *DocumentRepo) BulkSave(ctx context.Context, docs []domain.StoredDocument) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	const (
		insertQuery = `
			INSERT INTO rate_documents (id, doc, rev, deleted, updated_at)
			VALUES ($1, $2, 1, FALSE, NOW())
			ON CONFLICT (id) DO NOTHING
			RETURNING id
		`
		updateQuery = `
			UPDATE rate_documents
			SET doc = $2, rev = rev + 1, deleted = FALSE, updated_at = NOW()
			WHERE id = $1 AND rev = $3
			RETURNING id
		`
	)

	batch := &pgx.Batch{}
	for _, d := range docs {
		raw, err := json.Marshal(d.Doc)
		if err != nil {
			return nil, fmt.Errorf("encode document %s: %w", d.ID, err)
		}
		if d.Rev == 0 {
			batch.Queue(insertQuery, d.ID, raw)
		} else {
			batch.Queue(updateQuery, d.ID, raw, d.Rev)
		}
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	var conflicts []string
	for _, d := range docs {
		var id string
		err := br.QueryRow().Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			conflicts = append(conflicts, d.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("save document %s: %w", d.ID, err)
		}
	}
	return conflicts, nil
}
