package providers

import (
	"cmp"
	"slices"
	"time"
)

// Window - группа моментов, которые покрываются одним запросом к API
type Window struct {
	From time.Time
	To   time.Time
	Keys []string
}

// Split - режет отсортированные по времени моменты на окна не длиннее span.
// Ключи с одинаковым временем всегда в одном окне.
func Split(times map[string]time.Time, span time.Duration) []Window {
	keys := make([]string, 0, len(times))
	for k := range times {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := times[a].Compare(times[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	var out []Window
	for _, k := range keys {
		t := times[k]
		if n := len(out); n > 0 && t.Sub(out[n-1].From) <= span {
			out[n-1].To = t
			out[n-1].Keys = append(out[n-1].Keys, k)
			continue
		}
		out = append(out, Window{From: t, To: t, Keys: []string{k}})
	}
	return out
}

// Point - цена на момент времени из исторического ряда
type Point struct {
	At    time.Time
	Price float64
}

// Closest - ближайшая к at точка ряда, не дальше maxSkew
func Closest(points []Point, at time.Time, maxSkew time.Duration) (float64, bool) {
	best, found := time.Duration(-1), false
	var price float64
	for _, p := range points {
		d := p.At.Sub(at).Abs()
		if d > maxSkew || p.Price <= 0 {
			continue
		}
		if !found || d < best {
			best, price, found = d, p.Price, true
		}
	}
	return price, found
}
