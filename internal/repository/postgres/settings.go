package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/repository"
)

// SettingsRepo — служебные документы (например, таблица кросс-чейн отображений)
type SettingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSetting - сырой JSON документа и его ревизия
func (r *SettingsRepo) GetSetting(ctx context.Context, id string) ([]byte, int64, error) {
	const query = `SELECT doc, rev FROM settings WHERE id = $1`

	var (
		raw []byte
		rev int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&raw, &rev)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, repository.ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return raw, rev, nil
}
