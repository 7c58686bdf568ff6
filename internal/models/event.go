// Package models defines the calendar event record and its derivation rules.
package models

import "time"

// Impact tiers as reported by the calendar sources. Only ImpactHigh
// survives extraction; the constant exists so filters and tests don't
// compare against a bare literal.
const ImpactHigh = "High"

// Sentinel values for fields a source did not publish.
const (
	ValueMissing = "-"
	CurrencyNone = "N/A"
	TimeAllDay   = "All Day"
	TimeTBD      = "TBD"
)

// Event is a single economic calendar entry.
//
// Datetime is the authoritative ordering key. Date and Time are redundant
// display fields kept for compatibility with downstream consumers; Time may
// hold the literal "All Day" or "TBD" when the source did not publish a
// clock time.
type Event struct {
	Datetime   time.Time `json:"datetime"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Currency   string    `json:"currency"`
	Country    string    `json:"country"`
	Event      string    `json:"event"`
	Impact     string    `json:"impact"`
	Volatility string    `json:"volatility"`
	Actual     string    `json:"actual"`
	Forecast   string    `json:"forecast"`
	Previous   string    `json:"previous"`
}

// currencyCountries maps ISO currency codes to the economy they represent.
var currencyCountries = map[string]string{
	"USD": "United States",
	"EUR": "Euro Zone",
	"GBP": "United Kingdom",
	"JPY": "Japan",
	"AUD": "Australia",
	"CAD": "Canada",
	"CHF": "Switzerland",
	"NZD": "New Zealand",
	"CNY": "China",
	"INR": "India",
}

// CountryForCurrency resolves a currency code to its country/region name.
// Unmapped codes pass through unchanged.
func CountryForCurrency(code string) string {
	if country, ok := currencyCountries[code]; ok {
		return country
	}
	return code
}
