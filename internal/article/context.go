/*
Package article assembles the market context block and composes the final
article body, preferring generated text with a deterministic template as the
guaranteed fallback.
*/
package article

import (
	"fmt"
	"strings"

	"github.com/fintrend/marketpost/internal/types"
)

// BuildContext merges the snapshot and news digests into one plain-text
// block. Deterministic given its inputs; the block is fed verbatim both to
// the generation prompt and to the fallback template.
func BuildContext(mc types.MarketContext) string {
	var sb strings.Builder

	sb.WriteString("[Key Indicators]\n")
	for _, q := range mc.Macro {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", q.Label, q.DisplayPrice()))
	}

	sb.WriteString("\n[Magnificent Seven]\n")
	for _, q := range mc.Basket {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", q.Label, q.DisplayPrice()))
	}

	sb.WriteString("\n[Company News Highlights]\n")
	for _, q := range mc.Basket {
		items := mc.News[q.Symbol]
		if len(items) == 0 {
			sb.WriteString(fmt.Sprintf("- %s: no recent headlines\n", q.Symbol))
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s:\n", q.Symbol))
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", item.Headline, item.URL))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
