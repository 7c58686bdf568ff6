package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"

	"forexcal/internal/common"
	"forexcal/internal/models"
)

// Source is a site-specific scraping strategy. Fetch returns the extracted
// events; an empty slice is a legitimate success. Only transport errors,
// timeouts and non-2xx responses are failures.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Event, error)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
}

func randomUserAgent() string {
	idx, err := random.IntRange(0, len(userAgents))
	if err != nil {
		return userAgents[0]
	}
	return userAgents[idx%len(userAgents)]
}

type siteSource struct {
	desc   Descriptor
	client *resty.Client
	log    *common.Logger
}

// NewSource builds an adapter for the given descriptor. The HTTP client
// carries a randomized user agent, the per-source response timeout, and the
// cloudflare bypass transport (Investing.com and ForexFactory both sit
// behind browser-protection pages).
func NewSource(desc Descriptor, timeout time.Duration, log *common.Logger) Source {
	client := resty.New()
	client.SetTimeout(timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("User-Agent", randomUserAgent())
	for k, v := range desc.Headers {
		client.SetHeader(k, v)
	}

	return &siteSource{
		desc:   desc,
		client: client,
		log:    log,
	}
}

func (s *siteSource) Name() string {
	return s.desc.Name
}

func (s *siteSource) Fetch(ctx context.Context) ([]models.Event, error) {
	res, err := s.client.R().
		SetContext(ctx).
		Get(s.desc.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", s.desc.Name, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%s: unexpected status %d", s.desc.Name, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("%s: parse html: %w", s.desc.Name, err)
	}

	// A restructured remote page yields zero rows here, not an error.
	events := extractEvents(doc, s.desc, time.Now())

	s.log.Debug().
		Str("source", s.desc.Name).
		Int("events", len(events)).
		Msg("extraction finished")

	return events, nil
}
