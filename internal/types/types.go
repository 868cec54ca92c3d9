package types

import (
	"strconv"
	"time"
)

type Instrument struct {
	Label  string
	Symbol string
}

type Quote struct {
	Instrument
	// Price is nil when the provider had no data for the symbol.
	Price *float64
}

// DisplayPrice renders the price for prose and dashboards. An absent price
// reads "unknown", never zero.
func (q Quote) DisplayPrice() string {
	if q.Price == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*q.Price, 'f', -1, 64)
}

type NewsItem struct {
	Headline string
	URL      string
}

type MarketContext struct {
	Macro  []Quote
	Basket []Quote
	News   map[string][]NewsItem
}

type Article struct {
	Title string
	Slug  string
	Body  string
}

const (
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
)

type RunReport struct {
	Outcome    string
	Reason     string
	Slug       string
	Title      string
	PostURL    string
	FinishedAt time.Time
}
