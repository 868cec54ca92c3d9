/*
Package news fetches a short digest of recent company headlines per ticker.
*/
package news

import (
	"context"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/ternarybob/arbor"

	"github.com/fintrend/marketpost/internal/types"
)

const (
	// lookbackDays is the calendar window (UTC) queried per ticker.
	lookbackDays = 4

	// maxHeadlines caps the digest size per ticker.
	maxHeadlines = 2
)

// companyNewsAPI is the slice of the news provider the collector needs.
type companyNewsAPI interface {
	companyNews(ctx context.Context, symbol, from, to string) ([]finnhub.CompanyNews, error)
}

// finnhubAPI adapts the Finnhub SDK's request builder to companyNewsAPI.
type finnhubAPI struct {
	api *finnhub.DefaultApiService
}

func (f *finnhubAPI) companyNews(ctx context.Context, symbol, from, to string) ([]finnhub.CompanyNews, error) {
	res, _, err := f.api.CompanyNews(ctx).Symbol(symbol).From(from).To(to).Execute()
	return res, err
}

// Collector fetches per-ticker news digests. A zero API key produces a
// disabled collector whose digests are always empty.
type Collector struct {
	api    companyNewsAPI
	logger arbor.ILogger
}

// NewCollector returns a collector backed by Finnhub, or a disabled one
// when apiKey is empty.
func NewCollector(apiKey string, logger arbor.ILogger) *Collector {
	c := &Collector{logger: logger}
	if apiKey == "" {
		return c
	}

	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	c.api = &finnhubAPI{api: finnhub.NewAPIClient(cfg).DefaultApi}

	return c
}

// Digest returns up to two recent headlines for symbol, in provider order.
// Provider failures of any kind yield an empty digest; a missing credential
// skips the call entirely. The two cases differ only in the log line.
func (c *Collector) Digest(ctx context.Context, symbol string, now time.Time) []types.NewsItem {
	if c.api == nil {
		if c.logger != nil {
			c.logger.Debug().
				Str("symbol", symbol).
				Msg("news disabled: no API key configured")
		}
		return nil
	}

	to := now.UTC()
	from := to.AddDate(0, 0, -lookbackDays)

	items, err := c.api.companyNews(ctx, symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		if c.logger != nil {
			c.logger.Warn().
				Str("symbol", symbol).
				Err(err).
				Msg("news unavailable")
		}
		return nil
	}

	count := len(items)
	if count > maxHeadlines {
		count = maxHeadlines
	}

	digest := make([]types.NewsItem, 0, count)
	for _, item := range items[:count] {
		var ni types.NewsItem
		if item.Headline != nil {
			ni.Headline = flattenHTML(*item.Headline)
		}
		if item.Url != nil {
			ni.URL = *item.Url
		}
		digest = append(digest, ni)
	}

	return digest
}
