package rates

import "time"

// Clock - источник batch.Now: от него считаются дата по умолчанию (начало минуты)
// и возраст запроса при выборе bucket'а
type Clock interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// SystemClock - системное время в UTC; в тестах вместо него NewServiceWithClock
func SystemClock() Clock {
	return utcClock{}
}
