package httptransport

import (
	"context"
	"log"
	"net/http"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/ports/errcode"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/rates"
)

// RatesService — абстракция для работы с курсами.
type RatesService interface {
	GetRates(ctx context.Context, req rates.Request) (domain.Result, error)
}

// Asset — ключ актива в запросе и ответе
type Asset struct {
	PluginID string  `json:"pluginId"`
	TokenID  *string `json:"tokenId"`
}

// RatesRequest — тело POST /v3/rates
type RatesRequest struct {
	TargetFiat string `json:"targetFiat"`
	Crypto     []struct {
		IsoDate string `json:"isoDate,omitempty"`
		Asset   Asset  `json:"asset"`
	} `json:"crypto"`
	Fiat []struct {
		IsoDate  string `json:"isoDate,omitempty"`
		FiatCode string `json:"fiatCode"`
	} `json:"fiat"`
}

// CryptoRate / FiatRate — DTO ответа; rate отсутствует, если курс не найден
type CryptoRate struct {
	IsoDate string   `json:"isoDate"`
	Asset   Asset    `json:"asset"`
	Rate    *float64 `json:"rate,omitempty"`
}

type FiatRate struct {
	IsoDate  string   `json:"isoDate"`
	FiatCode string   `json:"fiatCode"`
	Rate     *float64 `json:"rate,omitempty"`
}

type RatesResponse struct {
	TargetFiat string       `json:"targetFiat"`
	Crypto     []CryptoRate `json:"crypto"`
	Fiat       []FiatRate   `json:"fiat"`
}

func (r RatesRequest) toService() rates.Request {
	out := rates.Request{
		TargetFiat: r.TargetFiat,
		Crypto:     make([]rates.CryptoInput, 0, len(r.Crypto)),
		Fiat:       make([]rates.FiatInput, 0, len(r.Fiat)),
	}
	for _, c := range r.Crypto {
		out.Crypto = append(out.Crypto, rates.CryptoInput{
			IsoDate: c.IsoDate,
			Asset:   domain.AssetKey{ChainID: c.Asset.PluginID, TokenID: c.Asset.TokenID},
		})
	}
	for _, f := range r.Fiat {
		out.Fiat = append(out.Fiat, rates.FiatInput{IsoDate: f.IsoDate, FiatCode: f.FiatCode})
	}
	return out
}

func makeResponse(res domain.Result) RatesResponse {
	out := RatesResponse{
		TargetFiat: res.TargetFiat,
		Crypto:     make([]CryptoRate, 0, len(res.Crypto)),
		Fiat:       make([]FiatRate, 0, len(res.Fiat)),
	}
	for _, c := range res.Crypto {
		out.Crypto = append(out.Crypto, CryptoRate{
			IsoDate: bucket.Format(c.At),
			Asset:   Asset{PluginID: c.Asset.ChainID, TokenID: c.Asset.TokenID},
			Rate:    c.Rate,
		})
	}
	for _, f := range res.Fiat {
		out.Fiat = append(out.Fiat, FiatRate{
			IsoDate:  bucket.Format(f.At),
			FiatCode: f.FiatCode,
			Rate:     f.Rate,
		})
	}
	return out
}

// RatesHandler — HTTP‑handler для курсов.
type RatesHandler struct {
	logger  *slog.Logger
	svc     RatesService
	timeout time.Duration
}

func NewRatesHandler(logger *slog.Logger, svc RatesService, timeout time.Duration) *RatesHandler {
	if logger == nil {
		log.Fatal("nil logger")
	}
	if svc == nil {
		log.Fatal("nil service")
	}
	// Задаём таймаут по умолчанию, если он не задан
	if timeout <= 0 {
		timeout = time.Second * 20
	}
	return &RatesHandler{
		logger:  logger,
		svc:     svc,
		timeout: timeout,
	}
}

func (h *RatesHandler) RegisterRoutes(r interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}) {
	r.POST("/v3/rates", h.PostRates)
	r.GET("/healthz", h.Health)
}

func (h *RatesHandler) PostRates(c echo.Context) error {
	var req RatesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   errcode.BadRequest,
			"message": "invalid JSON body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.svc.GetRates(ctx, req.toService())
	if err != nil {
		code := FromServiceError(err)
		switch code {
		case errcode.BadRequest, errcode.InvalidKey:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":   code,
				"message": err.Error(),
			})
		default:
			h.logger.Error("GetRates failed",
				slog.String("op", "PostRates"),
				slog.String("code", string(code)),
				slog.String("error", err.Error()),
			)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": code,
			})
		}
	}

	return c.JSON(http.StatusOK, makeResponse(res))
}

func (h *RatesHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
