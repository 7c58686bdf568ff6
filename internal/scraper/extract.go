// Package scraper implements the source-fallback scrape pipeline: declarative
// per-site extraction of high-impact calendar rows, ordered fallback across
// sources, and a synthetic generator for when every live source is down.
package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"forexcal/internal/models"
)

// FieldSelectors holds the per-row CSS selectors for one source's layout.
// An empty selector means the source does not publish that field.
type FieldSelectors struct {
	Row      string
	Date     string
	Time     string
	Currency string
	Title    string
	Actual   string
	Forecast string
	Previous string
}

// ImpactRule decides whether a row is high impact. Two modes exist:
// counting severity marker elements (MarkerSelectors/MarkerMax), used by
// sources that render N "bull" icons, or inspecting a class attribute for a
// token (ClassSelector/ClassToken). Marker counting takes precedence when
// both are set.
type ImpactRule struct {
	MarkerSelectors []string
	MarkerMax       int
	ClassSelector   string
	ClassToken      string
}

// Descriptor configures one source adapter: where to fetch, how to extract,
// and which sentinel stands in for a missing clock time.
type Descriptor struct {
	Name         string
	URL          string
	Headers      map[string]string
	Fields       FieldSelectors
	Impact       ImpactRule
	TimeSentinel string
}

// extractEvents walks the row elements of a parsed calendar page and builds
// normalized events. Rows below the high-impact tier are dropped, as are
// rows whose title is empty after trimming; neither is an error. Missing
// optional fields fall back to their sentinels.
func extractEvents(doc *goquery.Document, desc Descriptor, now time.Time) []models.Event {
	var events []models.Event

	doc.Find(desc.Fields.Row).Each(func(_ int, row *goquery.Selection) {
		if !isHighImpact(row, desc.Impact) {
			return
		}

		title := fieldText(row, desc.Fields.Title)
		if title == "" {
			return
		}

		currency := fieldText(row, desc.Fields.Currency)
		if currency == "" {
			currency = models.CurrencyNone
		}

		dateToken := fieldText(row, desc.Fields.Date)
		timeToken := fieldText(row, desc.Fields.Time)

		displayTime := timeToken
		if displayTime == "" {
			displayTime = desc.TimeSentinel
		}

		dt := combineDatetime(dateToken, timeToken, now)

		events = append(events, models.Event{
			Datetime:   dt,
			Date:       dt.Format("2006-01-02"),
			Time:       displayTime,
			Currency:   currency,
			Country:    models.CountryForCurrency(currency),
			Event:      title,
			Impact:     models.ImpactHigh,
			Volatility: models.ImpactHigh,
			Actual:     fieldTextOr(row, desc.Fields.Actual, models.ValueMissing),
			Forecast:   fieldTextOr(row, desc.Fields.Forecast, models.ValueMissing),
			Previous:   fieldTextOr(row, desc.Fields.Previous, models.ValueMissing),
		})
	})

	return events
}

func isHighImpact(row *goquery.Selection, rule ImpactRule) bool {
	if len(rule.MarkerSelectors) > 0 {
		count := 0
		for _, sel := range rule.MarkerSelectors {
			count += row.Find(sel).Length()
		}
		return count == rule.MarkerMax
	}

	if rule.ClassSelector != "" {
		class := row.Find(rule.ClassSelector).First().AttrOr("class", "")
		return strings.Contains(strings.ToLower(class), strings.ToLower(rule.ClassToken))
	}

	return false
}

// fieldText returns the trimmed text of the first element matching sel
// within the row, or "" when the selector is empty or matches nothing.
func fieldText(row *goquery.Selection, sel string) string {
	if sel == "" {
		return ""
	}
	return strings.TrimSpace(row.Find(sel).First().Text())
}

func fieldTextOr(row *goquery.Selection, sel, fallback string) string {
	if v := fieldText(row, sel); v != "" {
		return v
	}
	return fallback
}
