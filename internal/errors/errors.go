package errors

import "errors"

var (
	// ErrBadRequest - ошибка клиента (400)
	ErrBadRequest = errors.New("bad request")
	// ErrInvalidKey - ключ актива содержит разделитель или пуст
	ErrInvalidKey = errors.New("invalid asset key")
	// ErrProviderFailure - один провайдер/уровень не ответил, батч продолжается
	ErrProviderFailure = errors.New("provider failure")
	// ErrStoreUnavailable - кэш или БД недоступны на синхронном пути
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInternal         = errors.New("internal error")
)
