package market

import (
	"context"

	"github.com/fintrend/marketpost/internal/types"
)

// MacroIndicators are the market-wide gauges reported in every summary.
var MacroIndicators = []types.Instrument{
	{Label: "VIX", Symbol: "^VIX"},
	{Label: "Dollar Index", Symbol: "DX-Y.NYB"},
	{Label: "WTI Crude", Symbol: "CL=F"},
	{Label: "Gold Futures", Symbol: "GC=F"},
	{Label: "US 10Y (%)", Symbol: "^TNX"},
}

// EquityBasket is the fixed large-cap technology basket highlighted in the
// closing summary.
var EquityBasket = []types.Instrument{
	{Label: "AAPL", Symbol: "AAPL"},
	{Label: "MSFT", Symbol: "MSFT"},
	{Label: "NVDA", Symbol: "NVDA"},
	{Label: "AMZN", Symbol: "AMZN"},
	{Label: "META", Symbol: "META"},
	{Label: "GOOGL", Symbol: "GOOGL"},
	{Label: "TSLA", Symbol: "TSLA"},
}

// Snapshot fetches the latest close for each instrument, preserving input
// order. A failed symbol yields a nil price and a warning log line; one
// symbol's failure never aborts the batch.
func (c *Client) Snapshot(ctx context.Context, instruments []types.Instrument) []types.Quote {
	quotes := make([]types.Quote, 0, len(instruments))
	for _, inst := range instruments {
		price, err := c.LatestClose(ctx, inst.Symbol)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn().
					Str("symbol", inst.Symbol).
					Err(err).
					Msg("price unavailable")
			}
			quotes = append(quotes, types.Quote{Instrument: inst})
			continue
		}
		p := price
		quotes = append(quotes, types.Quote{Instrument: inst, Price: &p})
	}
	return quotes
}
