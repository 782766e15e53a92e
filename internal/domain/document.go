package domain

// USDRate - курс в расчётной валюте, как он лежит в документе
type USDRate struct {
	USD float64 `json:"USD"`
}

// RateDocument - документ одного bucket'а: {crypto: {flat: {USD}}, fiat: {code: {USD}}}.
// Фиат хранится как "USD за 1 единицу валюты".
type RateDocument struct {
	Crypto map[string]USDRate `json:"crypto"`
	Fiat   map[string]USDRate `json:"fiat"`
}

func NewRateDocument() RateDocument {
	return RateDocument{
		Crypto: make(map[string]USDRate),
		Fiat:   make(map[string]USDRate),
	}
}

// Merge - аддитивное слияние: существующие ключи не удаляются,
// значения из other перезаписывают совпадающие. Возвращает true, если документ изменился.
func (d *RateDocument) Merge(other RateDocument) bool {
	if d.Crypto == nil {
		d.Crypto = make(map[string]USDRate, len(other.Crypto))
	}
	if d.Fiat == nil {
		d.Fiat = make(map[string]USDRate, len(other.Fiat))
	}
	changed := false
	for k, v := range other.Crypto {
		if old, ok := d.Crypto[k]; !ok || old != v {
			d.Crypto[k] = v
			changed = true
		}
	}
	for k, v := range other.Fiat {
		if old, ok := d.Fiat[k]; !ok || old != v {
			d.Fiat[k] = v
			changed = true
		}
	}
	return changed
}

func (d RateDocument) Empty() bool {
	return len(d.Crypto) == 0 && len(d.Fiat) == 0
}

// DocKeys - какие поля документа нужны читателю
type DocKeys struct {
	Crypto []string
	Fiat   []string
}

// StoredDocument - документ bucket'а с ревизией (оптимистичная блокировка в БД).
// Rev == 0 — документа ещё нет.
type StoredDocument struct {
	ID      string
	Doc     RateDocument
	Rev     int64
	Deleted bool
}
