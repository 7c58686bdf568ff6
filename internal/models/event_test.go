package models

import "testing"

func TestCountryForCurrency_Mapped(t *testing.T) {
	cases := map[string]string{
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

	for code, want := range cases {
		if got := CountryForCurrency(code); got != want {
			t.Errorf("CountryForCurrency(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestCountryForCurrency_UnmappedPassesThrough(t *testing.T) {
	if got := CountryForCurrency("XXX"); got != "XXX" {
		t.Errorf("expected unmapped code to pass through, got %q", got)
	}
	if got := CountryForCurrency("N/A"); got != "N/A" {
		t.Errorf("expected N/A to pass through, got %q", got)
	}
}
