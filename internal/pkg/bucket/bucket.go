package bucket

import (
	"time"
)

// Квантование времени: произвольный timestamp -> граница интервала (bucket).
// Один bucket = один документ в кэше/БД, поэтому запросы "примерно на один момент" делят запись.

type Kind int

const (
	Crypto Kind = iota
	Fiat
)

func (k Kind) String() string {
	if k == Fiat {
		return "fiat"
	}
	return "crypto"
}

const (
	// FreshWindow — свежие крипто-запросы (моложе окна) квантуются по минуте
	FreshWindow    = 5 * time.Minute
	FreshInterval  = time.Minute
	CryptoInterval = 5 * time.Minute
	FiatInterval   = 24 * time.Hour
)

// Layout — ISO-8601 UTC с миллисекундами (2024-01-02T15:04:05.000Z)
const Layout = "2006-01-02T15:04:05.000Z"

// Interval - Размер интервала для запроса.
// Возраст считается от минутной границы t: так повторное квантование bucket'а даёт тот же bucket.
// Поэтому запрос младше FreshWindow может попасть в пятиминутный bucket: при now=12:00:00.5
// запрос на 11:55:10.5 моложе 5 минут на 10 секунд, но от 11:55:00 до now уже больше 5 минут.
func Interval(t, now time.Time, kind Kind) time.Duration {
	if kind == Fiat {
		return FiatInterval
	}
	if now.Sub(floor(t, FreshInterval)) < FreshWindow {
		return FreshInterval
	}
	return CryptoInterval
}

// Floor - Нижняя граница интервала, в который попадает t. Граница принадлежит своему bucket'у.
func Floor(t, now time.Time, kind Kind) time.Time {
	return floor(t, Interval(t, now, kind))
}

// FloorToBucket - то же, что Floor, но сразу в ISO-строке (ключ кэша/документа)
func FloorToBucket(t, now time.Time, kind Kind) string {
	return Format(Floor(t, now, kind))
}

// MinuteFloor — время по умолчанию для запросов без даты
func MinuteFloor(now time.Time) time.Time {
	return floor(now, time.Minute)
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func floor(t time.Time, interval time.Duration) time.Time {
	ms := t.UnixMilli()
	step := interval.Milliseconds()
	out := ms / step * step
	if ms%step < 0 {
		out -= step
	}
	return time.UnixMilli(out).UTC()
}
