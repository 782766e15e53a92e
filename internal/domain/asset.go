package domain

import (
	"fmt"
	"strings"

	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
)

// KeySeparator — разделитель chainId и tokenId в плоском ключе
const KeySeparator = "_"

// SettlementFiat — единственная валюта, в которой курсы хранятся и отдаются
const SettlementFiat = "USD"

// AssetKey - актив: плагин сети + (опционально) токен
type AssetKey struct {
	ChainID string  `json:"pluginId"`
	TokenID *string `json:"tokenId"`
}

// NewAssetKey - удобный конструктор; пустой tokenID означает нативный актив сети
func NewAssetKey(chainID, tokenID string) AssetKey {
	if tokenID == "" {
		return AssetKey{ChainID: chainID}
	}
	return AssetKey{ChainID: chainID, TokenID: &tokenID}
}

// Flat - плоская форма ключа: "chainId" или "chainId_tokenId".
// Для невалидных ключей результат не обратим, поэтому перед использованием нужен Validate.
func (a AssetKey) Flat() string {
	if a.TokenID == nil {
		return a.ChainID
	}
	return a.ChainID + KeySeparator + *a.TokenID
}

func (a AssetKey) Validate() error {
	if a.ChainID == "" {
		return fmt.Errorf("%w: empty pluginId", errs.ErrInvalidKey)
	}
	if strings.Contains(a.ChainID, KeySeparator) {
		return fmt.Errorf("%w: pluginId %q contains %q", errs.ErrInvalidKey, a.ChainID, KeySeparator)
	}
	if a.TokenID != nil && strings.Contains(*a.TokenID, KeySeparator) {
		return fmt.Errorf("%w: tokenId %q contains %q", errs.ErrInvalidKey, *a.TokenID, KeySeparator)
	}
	return nil
}

func (a AssetKey) Equal(b AssetKey) bool {
	return a.Flat() == b.Flat() && (a.TokenID == nil) == (b.TokenID == nil)
}

// ParseAssetKey - обратное преобразование к Flat
func ParseAssetKey(s string) (AssetKey, error) {
	chain, token, found := strings.Cut(s, KeySeparator)
	key := AssetKey{ChainID: chain}
	if found {
		key.TokenID = &token
	}
	if err := key.Validate(); err != nil {
		return AssetKey{}, err
	}
	return key, nil
}
