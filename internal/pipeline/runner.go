/*
Package pipeline sequences one publish run: duplicate check, market and news
collection, article composition, tag resolution, image production, media
upload and post creation.
*/
package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/fintrend/marketpost/internal/article"
	"github.com/fintrend/marketpost/internal/config"
	"github.com/fintrend/marketpost/internal/market"
	"github.com/fintrend/marketpost/internal/types"
	"github.com/fintrend/marketpost/internal/wordpress"
)

// Snapshotter collects quotes for a set of instruments.
type Snapshotter interface {
	Snapshot(ctx context.Context, instruments []types.Instrument) []types.Quote
}

// NewsSource collects recent headlines for one symbol.
type NewsSource interface {
	Digest(ctx context.Context, symbol string, now time.Time) []types.NewsItem
}

// Composer produces the article for a run.
type Composer interface {
	Compose(ctx context.Context, mc types.MarketContext, now time.Time) types.Article
}

// ImageProducer produces the feature image and returns its local path.
type ImageProducer interface {
	Produce(ctx context.Context, mc types.MarketContext, now time.Time) string
}

// Publisher is the CMS surface a run touches.
type Publisher interface {
	PostExists(ctx context.Context, slug string) (bool, error)
	ResolveTag(ctx context.Context, name string) (int, error)
	UploadMedia(ctx context.Context, path string) (int, error)
	CreatePost(ctx context.Context, post wordpress.Post) (string, error)
}

// Deps are the collaborators a run needs.
type Deps struct {
	Market    Snapshotter
	News      NewsSource
	Composer  Composer
	Images    ImageProducer
	Publisher Publisher
	Logger    arbor.ILogger
}

// Runner executes one publish run end to end.
type Runner struct {
	cfg       *config.Config
	market    Snapshotter
	news      NewsSource
	composer  Composer
	images    ImageProducer
	publisher Publisher
	logger    arbor.ILogger
	now       func() time.Time
}

// NewRunner creates a runner over the given collaborators.
func NewRunner(cfg *config.Config, deps Deps) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = arbor.NewLogger()
	}

	return &Runner{
		cfg:       cfg,
		market:    deps.Market,
		news:      deps.News,
		composer:  deps.Composer,
		images:    deps.Images,
		publisher: deps.Publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one publish run and reports how it ended. Every branch
// terminates the run; finish emits the single terminal log line.
func (r *Runner) Run(ctx context.Context) types.RunReport {
	now := r.now().In(r.cfg.Location)

	title := article.Title(now)
	slug := article.Slug(r.cfg.SlugPrefix, now)

	r.logger.Info().Str("slug", slug).Msg("publish run starting")

	if err := r.cfg.RequireCMS(); err != nil {
		return r.finish(types.RunReport{
			Outcome: types.OutcomeAborted,
			Reason:  err.Error(),
			Slug:    slug,
			Title:   title,
		})
	}

	// The check-to-create window is unguarded; two runs landing in the same
	// minute can still double-publish.
	exists, err := r.publisher.PostExists(ctx, slug)
	if err != nil {
		r.logger.Warn().Err(err).Msg("duplicate check failed, assuming slug is new")
	}
	if exists {
		return r.finish(types.RunReport{
			Outcome: types.OutcomeAborted,
			Reason:  "slug already published",
			Slug:    slug,
			Title:   title,
		})
	}

	mc := r.collect(ctx, now)

	art := r.composer.Compose(ctx, mc, now)

	tagIDs := r.resolveTags(ctx)

	var mediaID int
	if path := r.images.Produce(ctx, mc, now); path != "" {
		id, err := r.publisher.UploadMedia(ctx, path)
		if err != nil {
			r.logger.Warn().Err(err).Str("path", path).Msg("media upload failed, publishing without featured image")
		} else {
			r.logger.Info().Int("media_id", id).Msg("feature image uploaded")
			mediaID = id
		}
	}

	postURL, err := r.publisher.CreatePost(ctx, wordpress.Post{
		Title:         art.Title,
		Slug:          art.Slug,
		Content:       art.Body,
		Status:        r.cfg.Status,
		Categories:    r.categories(),
		Tags:          tagIDs,
		FeaturedMedia: mediaID,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("slug", art.Slug).Msg("post creation failed")
		return r.finish(types.RunReport{
			Outcome: types.OutcomeAborted,
			Reason:  "post creation failed",
			Slug:    art.Slug,
			Title:   art.Title,
		})
	}

	return r.finish(types.RunReport{
		Outcome: types.OutcomeCompleted,
		Slug:    art.Slug,
		Title:   art.Title,
		PostURL: postURL,
	})
}

// collect gathers the quote snapshots and per-ticker news into the context
// the article and image are built from.
func (r *Runner) collect(ctx context.Context, now time.Time) types.MarketContext {
	mc := types.MarketContext{
		Macro:  r.market.Snapshot(ctx, market.MacroIndicators),
		Basket: r.market.Snapshot(ctx, market.EquityBasket),
		News:   make(map[string][]types.NewsItem),
	}

	for _, q := range mc.Basket {
		if items := r.news.Digest(ctx, q.Symbol, now); len(items) > 0 {
			mc.News[q.Symbol] = items
		}
	}

	return mc
}

func (r *Runner) resolveTags(ctx context.Context) []int {
	ids := make([]int, 0, len(r.cfg.Tags))

	for _, name := range r.cfg.Tags {
		id, err := r.publisher.ResolveTag(ctx, name)
		if err != nil {
			r.logger.Warn().Err(err).Str("tag", name).Msg("tag resolution failed, omitting tag")
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

// categories parses the configured category ID; a non-numeric value means no
// category is sent.
func (r *Runner) categories() []int {
	id, err := strconv.Atoi(r.cfg.CategoryID)
	if err != nil {
		return []int{}
	}
	return []int{id}
}

// finish stamps the report and emits the run's single terminal log line.
func (r *Runner) finish(report types.RunReport) types.RunReport {
	report.FinishedAt = r.now().In(r.cfg.Location)

	if report.Outcome == types.OutcomeCompleted {
		r.logger.Info().Str("slug", report.Slug).Str("url", report.PostURL).Msg("run completed")
	} else {
		r.logger.Info().Str("slug", report.Slug).Str("reason", report.Reason).Msg("run aborted")
	}

	return report
}
