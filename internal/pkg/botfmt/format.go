package botfmt

import (
	"fmt"
	"time"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

// DateHint — пример даты, которую понимает бот (bucket.Layout)
const DateHint = "2024-01-02T15:04:05.000Z"

// FormatRate — ответ на /rate и /fiat
func FormatRate(label string, at time.Time, rate *float64) string {
	if rate == nil {
		return fmt.Sprintf("[%s]\nКурс на %s не найден", label, bucket.Format(at))
	}
	return fmt.Sprintf("[%s]\nКурс: %s USD\nНа момент: %s",
		label,
		humanPrice(*rate),
		bucket.Format(at),
	)
}

// humanPrice — два знака для обычных цен, больше для мелких токенов
func humanPrice(v float64) string {
	if v != 0 && v < 0.01 && v > -0.01 {
		return fmt.Sprintf("%.8f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
