package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mazen160/go-random"

	"forexcal/internal/models"
)

// eventTemplate is one canonical high-impact calendar entry the generator
// can draw from.
type eventTemplate struct {
	name     string
	currency string
	forecast string
	clock    string
}

var eventTemplates = []eventTemplate{
	{"Non-Farm Payrolls", "USD", "200K", "14:30"},
	{"Unemployment Rate", "USD", "3.9%", "14:30"},
	{"CPI m/m", "USD", "0.3%", "14:30"},
	{"Fed Interest Rate Decision", "USD", "5.50%", "20:00"},
	{"ECB Interest Rate Decision", "EUR", "4.50%", "14:15"},
	{"BoE Interest Rate Decision", "GBP", "5.25%", "13:00"},
	{"GDP q/q", "GBP", "0.2%", "08:00"},
	{"BoJ Policy Rate", "JPY", "0.10%", "05:00"},
	{"Retail Sales m/m", "AUD", "0.4%", "03:30"},
}

// GenerateEvents produces 1-2 placeholder events per day for the next seven
// days, drawn with replacement from the template table. This is explicitly
// not live data; results carry the "static" provenance tag so consumers can
// tell it apart.
func GenerateEvents(now time.Time) []models.Event {
	var events []models.Event

	for day := 0; day < 7; day++ {
		date := now.AddDate(0, 0, day)
		count := randomInt(1, 2)

		for i := 0; i < count; i++ {
			tpl := eventTemplates[randomInt(0, len(eventTemplates)-1)]

			hour, minute, _ := normalizeClock(tpl.clock)
			dt := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())

			events = append(events, models.Event{
				Datetime:   dt,
				Date:       dt.Format("2006-01-02"),
				Time:       tpl.clock,
				Currency:   tpl.currency,
				Country:    models.CountryForCurrency(tpl.currency),
				Event:      tpl.name,
				Impact:     models.ImpactHigh,
				Volatility: models.ImpactHigh,
				Actual:     models.ValueMissing,
				Forecast:   tpl.forecast,
				Previous:   derivePrevious(tpl.forecast),
			})
		}
	}

	return events
}

// randomInt returns a pseudo-random int in [min, max]. Falls back to min if
// the random source misbehaves.
func randomInt(min, max int) int {
	n, err := random.IntRange(min, max+1)
	if err != nil || n < min || n > max {
		return min
	}
	return n
}

var numberPrefix = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// derivePrevious estimates the prior reading from a numeric forecast
// (previous ≈ forecast × 0.98), keeping the forecast's unit suffix.
// Non-numeric forecasts yield the missing sentinel.
func derivePrevious(forecast string) string {
	prefix := numberPrefix.FindString(forecast)
	if prefix == "" {
		return models.ValueMissing
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return models.ValueMissing
	}

	suffix := forecast[len(prefix):]
	prev := f * 0.98
	if strings.Contains(prefix, ".") {
		return fmt.Sprintf("%.2f%s", prev, suffix)
	}
	return fmt.Sprintf("%.0f%s", prev, suffix)
}

// BuiltinEvents is the minimal hard-coded dataset served when the pipeline
// itself fails at cold start. Distinct from the generator: fixed content,
// "builtin" provenance.
func BuiltinEvents(now time.Time) []models.Event {
	tomorrow := now.AddDate(0, 0, 1)

	at := func(base time.Time, hour, minute int) time.Time {
		return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
	}

	build := func(dt time.Time, clock, currency, name, forecast, previous string) models.Event {
		return models.Event{
			Datetime:   dt,
			Date:       dt.Format("2006-01-02"),
			Time:       clock,
			Currency:   currency,
			Country:    models.CountryForCurrency(currency),
			Event:      name,
			Impact:     models.ImpactHigh,
			Volatility: models.ImpactHigh,
			Actual:     models.ValueMissing,
			Forecast:   forecast,
			Previous:   previous,
		}
	}

	return []models.Event{
		build(at(now, 14, 30), "14:30", "USD", "Non-Farm Payrolls", "200K", "187K"),
		build(at(now, 14, 30), "14:30", "USD", "Unemployment Rate", "3.7%", "3.8%"),
		build(at(tomorrow, 9, 45), "09:45", "EUR", "ECB Interest Rate Decision", "4.25%", "4.25%"),
		build(at(tomorrow, 13, 30), "13:30", "GBP", "BoE Interest Rate Decision", "5.25%", "5.25%"),
	}
}
