package rates

import (
	"errors"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
)

var normNow = time.Date(2024, 5, 1, 12, 7, 30, 500, time.UTC)

func TestNormalize_DefaultsDateToMinute(t *testing.T) {
	batch, err := Normalize(Request{
		Crypto: []CryptoInput{{Asset: domain.NewAssetKey("bitcoin", "")}},
		Fiat:   []FiatInput{{FiatCode: "eur"}},
	}, normNow, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 5, 1, 12, 7, 0, 0, time.UTC)
	if !batch.Crypto[0].At.Equal(want) {
		t.Fatalf("crypto date: got %v, want %v", batch.Crypto[0].At, want)
	}
	if batch.Fiat[0].FiatCode != "EUR" {
		t.Fatalf("fiat code not upper-cased: %q", batch.Fiat[0].FiatCode)
	}
	if batch.TargetFiat != "USD" {
		t.Fatalf("empty target fiat must default to USD, got %q", batch.TargetFiat)
	}
}

func TestNormalize_TooManyCrypto(t *testing.T) {
	req := Request{TargetFiat: "USD", Crypto: make([]CryptoInput, DefaultMaxCrypto+1)}
	for i := range req.Crypto {
		req.Crypto[i].Asset = domain.NewAssetKey("bitcoin", "")
	}
	_, err := Normalize(req, normNow, DefaultLimits())
	if !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestNormalize_ExactlyAtLimit(t *testing.T) {
	req := Request{TargetFiat: "USD", Crypto: make([]CryptoInput, DefaultMaxCrypto)}
	for i := range req.Crypto {
		req.Crypto[i].Asset = domain.NewAssetKey("bitcoin", "")
	}
	if _, err := Normalize(req, normNow, DefaultLimits()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalize_TooManyFiat(t *testing.T) {
	req := Request{TargetFiat: "USD", Fiat: make([]FiatInput, DefaultMaxFiat+1)}
	for i := range req.Fiat {
		req.Fiat[i].FiatCode = "EUR"
	}
	_, err := Normalize(req, normNow, DefaultLimits())
	if !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestNormalize_UnsupportedTarget(t *testing.T) {
	_, err := Normalize(Request{TargetFiat: "ARS"}, normNow, DefaultLimits())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "targetFiat" {
		t.Fatalf("expected targetFiat validation error, got %v", err)
	}
}

func TestNormalize_InvalidDate(t *testing.T) {
	_, err := Normalize(Request{
		Crypto: []CryptoInput{{IsoDate: "yesterday", Asset: domain.NewAssetKey("bitcoin", "")}},
	}, normNow, DefaultLimits())
	if !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

// Ключ с разделителем в tokenId — и BadRequest, и InvalidKey
func TestNormalize_InvalidAssetKey(t *testing.T) {
	_, err := Normalize(Request{
		Crypto: []CryptoInput{{Asset: domain.NewAssetKey("ethereum", "0xabc_def")}},
	}, normNow, DefaultLimits())
	if !errors.Is(err, errs.ErrBadRequest) || !errors.Is(err, errs.ErrInvalidKey) {
		t.Fatalf("expected ErrBadRequest+ErrInvalidKey, got %v", err)
	}
}

func TestNormalize_EmptyFiatCode(t *testing.T) {
	_, err := Normalize(Request{Fiat: []FiatInput{{FiatCode: " "}}}, normNow, DefaultLimits())
	if !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestNormalize_KeepsExplicitDate(t *testing.T) {
	batch, err := Normalize(Request{
		Crypto: []CryptoInput{{IsoDate: "2024-04-30T10:15:20.123+02:00", Asset: domain.NewAssetKey("bitcoin", "")}},
	}, normNow, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 4, 30, 8, 15, 20, 123_000_000, time.UTC)
	if !batch.Crypto[0].At.Equal(want) || batch.Crypto[0].At.Location() != time.UTC {
		t.Fatalf("got %v, want %v", batch.Crypto[0].At, want)
	}
}
