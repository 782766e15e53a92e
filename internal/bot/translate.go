package bot

import (
	"errors"

	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
)

func translateBotError(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidKey):
		return "Некорректный актив: используйте chainId или chainId_tokenId"
	case errors.Is(err, errs.ErrBadRequest):
		return "Некорректный запрос, проверьте дату и код валюты"
	case errors.Is(err, errs.ErrStoreUnavailable):
		return "Хранилище курсов недоступно, попробуйте позже"
	default:
		return "Внутренняя ошибка сервиса, попробуйте позже"
	}
}
