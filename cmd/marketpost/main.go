package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/fintrend/marketpost/internal/ai"
	"github.com/fintrend/marketpost/internal/article"
	"github.com/fintrend/marketpost/internal/config"
	"github.com/fintrend/marketpost/internal/imagegen"
	"github.com/fintrend/marketpost/internal/logging"
	"github.com/fintrend/marketpost/internal/market"
	"github.com/fintrend/marketpost/internal/news"
	"github.com/fintrend/marketpost/internal/notify"
	"github.com/fintrend/marketpost/internal/pipeline"
	"github.com/fintrend/marketpost/internal/types"
	"github.com/fintrend/marketpost/internal/wordpress"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.OutputDir, cfg.LogLevel)
	ctx := context.Background()

	textGen, imageGen := buildGenerators(ctx, cfg, logger)

	publisher := wordpress.NewClient(cfg.BaseURL, cfg.Username, cfg.AppPassword,
		wordpress.WithPostsPath(cfg.PostsPath),
		wordpress.WithMediaPath(cfg.MediaPath),
		wordpress.WithTagsPath(cfg.TagsPath),
		wordpress.WithLogger(logger),
	)

	runner := pipeline.NewRunner(cfg, pipeline.Deps{
		Market:    market.NewClient(market.WithLogger(logger)),
		News:      news.NewCollector(cfg.FinnhubAPIKey, logger),
		Composer:  article.NewComposer(textGen, cfg.SlugPrefix, logger),
		Images:    imagegen.NewProducer(imageGen, cfg.OutputDir, logger),
		Publisher: publisher,
		Logger:    logger,
	})

	report := runner.Run(ctx)

	sendRunReport(cfg, logger, report)
}

// buildGenerators selects the generative provider by key presence. OpenAI
// wins when both keys are set; no key leaves both tiers on their fallbacks.
func buildGenerators(ctx context.Context, cfg *config.Config, logger arbor.ILogger) (ai.TextGenerator, ai.ImageGenerator) {
	switch {
	case cfg.OpenAIAPIKey != "":
		gen := ai.NewOpenAIGenerator(cfg.OpenAIAPIKey)
		return gen, gen
	case cfg.GeminiAPIKey != "":
		gen, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn().Err(err).Msg("gemini client unavailable, generation disabled")
			return nil, nil
		}
		return gen, gen
	default:
		return nil, nil
	}
}

func sendRunReport(cfg *config.Config, logger arbor.ILogger, report types.RunReport) {
	emailConfig := notify.EmailConfig{
		SMTPServer: cfg.SMTPHost,
		SMTPPort:   cfg.SMTPPort,
		SMTPUser:   cfg.SMTPUser,
		SMTPPass:   cfg.SMTPPass,
		ToEmail:    cfg.MailTo,
		FromEmail:  cfg.MailFrom,
		Enabled:    (cfg.SMTPHost != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "" && cfg.MailTo != ""),
	}

	if emailConfig.FromEmail == "" && emailConfig.SMTPUser != "" {
		emailConfig.FromEmail = emailConfig.SMTPUser
	}

	if !emailConfig.Enabled {
		return
	}

	msg, err := notify.NewHTMLEmailRenderer().Render(report)
	if err != nil {
		logger.Warn().Err(err).Msg("run report render failed")
		return
	}

	// Delivery problems are logged by the sender and never affect the run.
	_ = notify.NewEmailSender(emailConfig, logger).Send(msg)
}
