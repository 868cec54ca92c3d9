package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/fintrend/marketpost/internal/ai"
	"github.com/fintrend/marketpost/internal/types"
)

// Composer produces the article for a run. The generative path gets exactly
// one attempt; every failure path lands on the deterministic template.
type Composer struct {
	gen        ai.TextGenerator
	slugPrefix string
	logger     arbor.ILogger
}

// NewComposer creates a composer. A nil generator disables the generative
// path so the template is always used.
func NewComposer(gen ai.TextGenerator, slugPrefix string, logger arbor.ILogger) *Composer {
	return &Composer{gen: gen, slugPrefix: slugPrefix, logger: logger}
}

// Compose returns the complete article: title, slug and body. The body is
// never empty.
func (c *Composer) Compose(ctx context.Context, mc types.MarketContext, now time.Time) types.Article {
	contextText := BuildContext(mc)

	art := types.Article{
		Title: Title(now),
		Slug:  Slug(c.slugPrefix, now),
	}

	if c.gen == nil {
		if c.logger != nil {
			c.logger.Debug().Msg("text generation disabled: no API key configured")
		}
	} else {
		body, err := c.gen.GenerateText(ctx, systemInstruction, buildUserPrompt(contextText))
		switch {
		case err != nil:
			if c.logger != nil {
				c.logger.Warn().Err(err).Msg("body generation failed, using template")
			}
		case strings.TrimSpace(body) == "":
			if c.logger != nil {
				c.logger.Warn().Msg("body generation returned empty text, using template")
			}
		default:
			art.Body = strings.TrimSpace(body)
			return art
		}
	}

	art.Body = FallbackBody(contextText, now)
	return art
}

// Title returns the display title for a run date.
func Title(now time.Time) string {
	return "US Market Report - " + now.Format("January 2, 2006")
}

// Slug returns the idempotency key for a run: the configured prefix plus the
// run timestamp at minute resolution.
func Slug(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s", prefix, now.Format("20060102-1504"))
}

// FallbackBody fills the fixed report template with the assembled context
// block. It is the guaranteed terminal case of composition.
func FallbackBody(contextText string, now time.Time) string {
	return fmt.Sprintf(fallbackTemplate, now.Format("January 2, 2006"), contextText)
}
