package scraper

import (
	"time"

	"forexcal/internal/common"
	"forexcal/internal/models"
)

// investingDescriptor targets the Investing.com economic calendar. Severity
// is rendered as bull icons; three full bulls marks the highest tier.
func investingDescriptor() Descriptor {
	return Descriptor{
		Name: "investing",
		URL:  "https://www.investing.com/economic-calendar/",
		Headers: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
		Fields: FieldSelectors{
			Row:      ".js-economic-calendar tr",
			Time:     ".js-time",
			Currency: ".flagCur",
			Title:    ".event a",
			Actual:   ".act",
			Forecast: ".fore",
			Previous: ".prev",
		},
		Impact: ImpactRule{
			MarkerSelectors: []string{".grayFullBullishIcon", ".redFullBullishIcon"},
			MarkerMax:       3,
		},
		TimeSentinel: models.TimeAllDay,
	}
}

// forexFactoryDescriptor targets the ForexFactory calendar, which flags
// severity through an impact icon class containing "high".
func forexFactoryDescriptor() Descriptor {
	return Descriptor{
		Name: "forexfactory",
		URL:  "https://www.forexfactory.com/calendar",
		Fields: FieldSelectors{
			Row:      ".calendar__row",
			Date:     ".date",
			Time:     ".time",
			Currency: ".currency",
			Title:    ".event",
			Actual:   ".actual",
			Forecast: ".forecast",
			Previous: ".previous",
		},
		Impact: ImpactRule{
			ClassSelector: ".impact span",
			ClassToken:    "high",
		},
		TimeSentinel: models.TimeTBD,
	}
}

// fxstreetDescriptor targets the FXStreet calendar, the last live source in
// the fallback chain.
func fxstreetDescriptor() Descriptor {
	return Descriptor{
		Name: "fxstreet",
		URL:  "https://www.fxstreet.com/economic-calendar",
		Fields: FieldSelectors{
			Row:      ".fxs_c_table tbody tr",
			Time:     ".fxs_c_time",
			Currency: ".fxs_c_currency",
			Title:    ".fxs_c_event a",
			Actual:   ".fxs_c_actual",
			Forecast: ".fxs_c_consensus",
			Previous: ".fxs_c_previous",
		},
		Impact: ImpactRule{
			ClassSelector: ".fxs_c_volatility span",
			ClassToken:    "high",
		},
		TimeSentinel: models.TimeTBD,
	}
}

var descriptors = map[string]func() Descriptor{
	"investing":    investingDescriptor,
	"forexfactory": forexFactoryDescriptor,
	"fxstreet":     fxstreetDescriptor,
}

// BuildSources returns adapters for the named sources, preserving order.
// Unknown names are logged and skipped.
func BuildSources(names []string, timeout time.Duration, log *common.Logger) []Source {
	var sources []Source
	for _, name := range names {
		build, ok := descriptors[name]
		if !ok {
			log.Warn().Str("source", name).Msg("unknown scrape source, skipping")
			continue
		}
		sources = append(sources, NewSource(build(), timeout, log))
	}
	return sources
}
