// Package imagegen produces the feature image for a post: a generated
// illustration when an image model is available, otherwise a rendered
// dashboard of the same numbers the article is built from.
package imagegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/fintrend/marketpost/internal/ai"
	"github.com/fintrend/marketpost/internal/types"
)

// imagePrompt is the fixed art direction for the generated feature image.
const imagePrompt = "A dashboard of the US stock market suggesting the VIX, the dollar index, " +
	"WTI crude, gold and interest rates, with a calm, intelligent feel that hints at " +
	"Magnificent Seven technology. Minimal and understated in blue tones. No text elements or logos."

// Producer writes one feature image per run. A nil generator disables the
// generative path so the dashboard is always rendered.
type Producer struct {
	gen       ai.ImageGenerator
	outputDir string
	logger    arbor.ILogger
}

func NewProducer(gen ai.ImageGenerator, outputDir string, logger arbor.ILogger) *Producer {
	return &Producer{gen: gen, outputDir: outputDir, logger: logger}
}

// Produce writes the feature image under the output directory and returns its
// path. Any generative failure falls through to the dashboard render; the
// returned path is empty only when nothing could be written, and the post is
// then published without a featured image.
func (p *Producer) Produce(ctx context.Context, mc types.MarketContext, now time.Time) string {
	if p.gen == nil {
		if p.logger != nil {
			p.logger.Debug().Msg("image generation disabled: no API key configured")
		}
	} else {
		data, err := p.gen.GenerateImage(ctx, imagePrompt)
		switch {
		case err != nil:
			if p.logger != nil {
				p.logger.Warn().Err(err).Msg("image generation failed, using dashboard")
			}
		case len(data) == 0:
			if p.logger != nil {
				p.logger.Warn().Msg("image generation returned no payload, using dashboard")
			}
		default:
			path, err := p.write(data, now)
			if err == nil {
				return path
			}
			if p.logger != nil {
				p.logger.Warn().Err(err).Msg("generated image write failed, using dashboard")
			}
		}
	}

	data, err := renderDashboard(mc, now)
	if err != nil {
		if p.logger != nil {
			p.logger.Error().Err(err).Msg("dashboard render failed, post will have no image")
		}
		return ""
	}
	path, err := p.write(data, now)
	if err != nil {
		if p.logger != nil {
			p.logger.Error().Err(err).Msg("dashboard write failed, post will have no image")
		}
		return ""
	}
	return path
}

func (p *Producer) write(data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(p.outputDir, Filename(now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Filename returns the feature image name for a run. Second resolution keeps
// reruns within the same minute from clobbering each other's files.
func Filename(now time.Time) string {
	return fmt.Sprintf("feature_%s.png", now.Format("20060102_150405"))
}
