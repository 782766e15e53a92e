package crosschain

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
)

// Destination - канонический актив, на который отображается исходный ключ
type Destination struct {
	DestChain string  `json:"destChain"`
	TokenID   *string `json:"tokenId"`
}

func (d Destination) Asset() domain.AssetKey {
	return domain.AssetKey{ChainID: d.DestChain, TokenID: d.TokenID}
}

// Mapping - исходный плоский ключ -> канонический актив
type Mapping map[string]Destination

// ParseMapping - разбирает документ настроек {originalFlat: {destChain, tokenId}}.
// Некорректные записи отбрасываются, чтобы одна опечатка не ломала всю таблицу.
func ParseMapping(raw []byte) (Mapping, []error, error) {
	var in map[string]Destination
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, nil, fmt.Errorf("decode cross-chain mapping: %w", err)
	}
	out := make(Mapping, len(in))
	var skipped []error
	for from, dest := range in {
		if _, err := domain.ParseAssetKey(from); err != nil {
			skipped = append(skipped, fmt.Errorf("source %q: %w", from, err))
			continue
		}
		if err := dest.Asset().Validate(); err != nil {
			skipped = append(skipped, fmt.Errorf("destination of %q: %w", from, err))
			continue
		}
		out[from] = dest
	}
	return out, skipped, nil
}

// Table - текущая таблица; перезагружается снаружи, читается без блокировок
type Table struct {
	current atomic.Pointer[Mapping]
}

func NewTable(initial Mapping) *Table {
	t := &Table{}
	t.Store(initial)
	return t
}

func (t *Table) Load() Mapping {
	if m := t.current.Load(); m != nil {
		return *m
	}
	return nil
}

func (t *Table) Store(m Mapping) {
	if m == nil {
		m = Mapping{}
	}
	t.current.Store(&m)
}

// Canonicalize - заменяет актив каждого запроса на канонический, если есть отображение.
// Порядок и количество запросов сохраняются; lookup: исходный плоский ключ -> канонический.
func Canonicalize(m Mapping, queries []domain.CryptoQuery) ([]domain.CryptoQuery, map[string]string) {
	out := make([]domain.CryptoQuery, len(queries))
	lookup := make(map[string]string, len(queries))
	for i, q := range queries {
		from := q.Asset.Flat()
		out[i] = q
		lookup[from] = from
		dest, ok := m[from]
		if !ok {
			continue
		}
		asset := dest.Asset()
		if asset.Validate() != nil {
			continue
		}
		out[i].Asset = asset
		lookup[from] = asset.Flat()
	}
	return out, lookup
}
