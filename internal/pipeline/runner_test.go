package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrend/marketpost/internal/article"
	"github.com/fintrend/marketpost/internal/config"
	"github.com/fintrend/marketpost/internal/imagegen"
	"github.com/fintrend/marketpost/internal/market"
	"github.com/fintrend/marketpost/internal/types"
	"github.com/fintrend/marketpost/internal/wordpress"
)

var fixedNow = time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:     "https://example.com",
		PostsPath:   "/wp-json/wp/v2/posts",
		MediaPath:   "/wp-json/wp/v2/media",
		TagsPath:    "/wp-json/wp/v2/tags",
		Username:    "editor",
		AppPassword: "app-password",
		CategoryID:  "2",
		Status:      "publish",
		Tags:        []string{"stocks", "markets"},
		SlugPrefix:  "market-summary",
		Location:    time.UTC,
		OutputDir:   t.TempDir(),
		LogLevel:    "info",
	}
}

type fakeSnapshotter struct {
	prices map[string]float64
}

func (f *fakeSnapshotter) Snapshot(_ context.Context, instruments []types.Instrument) []types.Quote {
	quotes := make([]types.Quote, 0, len(instruments))
	for _, inst := range instruments {
		q := types.Quote{Instrument: inst}
		if p, ok := f.prices[inst.Symbol]; ok {
			v := p
			q.Price = &v
		}
		quotes = append(quotes, q)
	}
	return quotes
}

type fakeNews struct {
	items map[string][]types.NewsItem
}

func (f *fakeNews) Digest(_ context.Context, symbol string, _ time.Time) []types.NewsItem {
	return f.items[symbol]
}

type fakeComposer struct {
	calls   int
	article types.Article
}

func (f *fakeComposer) Compose(_ context.Context, _ types.MarketContext, _ time.Time) types.Article {
	f.calls++
	return f.article
}

type fakeImages struct {
	calls int
	path  string
}

func (f *fakeImages) Produce(_ context.Context, _ types.MarketContext, _ time.Time) string {
	f.calls++
	return f.path
}

type fakePublisher struct {
	exists    bool
	existsErr error
	tagIDs    map[string]int
	tagErr    error
	mediaID   int
	mediaErr  error
	postURL   string
	postErr   error

	existsCalls int
	tagCalls    int
	uploadCalls int
	createCalls int
	gotSlug     string
	gotMedia    string
	gotPost     wordpress.Post
}

func (f *fakePublisher) PostExists(_ context.Context, slug string) (bool, error) {
	f.existsCalls++
	f.gotSlug = slug
	return f.exists, f.existsErr
}

func (f *fakePublisher) ResolveTag(_ context.Context, name string) (int, error) {
	f.tagCalls++
	if f.tagErr != nil {
		return 0, f.tagErr
	}
	id, ok := f.tagIDs[name]
	if !ok {
		return 0, errors.New("unknown tag")
	}
	return id, nil
}

func (f *fakePublisher) UploadMedia(_ context.Context, path string) (int, error) {
	f.uploadCalls++
	f.gotMedia = path
	if f.mediaErr != nil {
		return 0, f.mediaErr
	}
	return f.mediaID, nil
}

func (f *fakePublisher) CreatePost(_ context.Context, post wordpress.Post) (string, error) {
	f.createCalls++
	f.gotPost = post
	if f.postErr != nil {
		return "", f.postErr
	}
	return f.postURL, nil
}

func newTestRunner(cfg *config.Config, pub *fakePublisher, composer *fakeComposer, images *fakeImages) *Runner {
	r := NewRunner(cfg, Deps{
		Market:    &fakeSnapshotter{prices: map[string]float64{"^VIX": 17.3, "AAPL": 232.5}},
		News:      &fakeNews{},
		Composer:  composer,
		Images:    images,
		Publisher: pub,
	})
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestRunMissingCredentialsAborts(t *testing.T) {
	cfg := testConfig(t)
	cfg.AppPassword = ""
	pub := &fakePublisher{}

	report := newTestRunner(cfg, pub, &fakeComposer{}, &fakeImages{}).Run(context.Background())

	assert.Equal(t, types.OutcomeAborted, report.Outcome)
	assert.Contains(t, report.Reason, "WP_USERNAME")
	assert.Zero(t, pub.existsCalls)
	assert.Zero(t, pub.createCalls)
}

func TestRunDuplicateSlugPerformsNoWrites(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{exists: true}
	composer := &fakeComposer{}
	images := &fakeImages{}

	report := newTestRunner(cfg, pub, composer, images).Run(context.Background())

	assert.Equal(t, types.OutcomeAborted, report.Outcome)
	assert.Equal(t, "slug already published", report.Reason)
	assert.Equal(t, "market-summary-20260824-0930", report.Slug)

	assert.Zero(t, pub.tagCalls)
	assert.Zero(t, pub.uploadCalls)
	assert.Zero(t, pub.createCalls)
	assert.Zero(t, composer.calls)
	assert.Zero(t, images.calls)
}

func TestRunDuplicateCheckFailureProceeds(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		existsErr: errors.New("connection refused"),
		tagIDs:    map[string]int{"stocks": 7, "markets": 12},
		postURL:   "https://example.com/market-summary-20260824-0930",
	}

	report := newTestRunner(cfg, pub, &fakeComposer{article: types.Article{Slug: "market-summary-20260824-0930"}}, &fakeImages{}).Run(context.Background())

	assert.Equal(t, types.OutcomeCompleted, report.Outcome)
	assert.Equal(t, 1, pub.createCalls)
}

func TestRunCompleted(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagIDs:  map[string]int{"stocks": 7, "markets": 12},
		mediaID: 33,
		postURL: "https://example.com/market-summary-20260824-0930",
	}
	composer := &fakeComposer{article: types.Article{
		Title: "US Market Report - August 24, 2026",
		Slug:  "market-summary-20260824-0930",
		Body:  "1. Today's Market Summary",
	}}
	images := &fakeImages{path: "/tmp/feature_20260824_093000.png"}

	report := newTestRunner(cfg, pub, composer, images).Run(context.Background())

	assert.Equal(t, types.OutcomeCompleted, report.Outcome)
	assert.Equal(t, "https://example.com/market-summary-20260824-0930", report.PostURL)
	assert.Equal(t, "market-summary-20260824-0930", pub.gotSlug)
	assert.Equal(t, fixedNow, report.FinishedAt)

	assert.Equal(t, 1, pub.uploadCalls)
	assert.Equal(t, "/tmp/feature_20260824_093000.png", pub.gotMedia)

	assert.Equal(t, "US Market Report - August 24, 2026", pub.gotPost.Title)
	assert.Equal(t, "1. Today's Market Summary", pub.gotPost.Content)
	assert.Equal(t, "publish", pub.gotPost.Status)
	assert.Equal(t, []int{2}, pub.gotPost.Categories)
	assert.Equal(t, []int{7, 12}, pub.gotPost.Tags)
	assert.Equal(t, 33, pub.gotPost.FeaturedMedia)
}

func TestRunMediaUploadFailurePublishesWithoutImage(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagIDs:   map[string]int{"stocks": 7, "markets": 12},
		mediaErr: errors.New("upload rejected"),
		postURL:  "https://example.com/market-summary-20260824-0930",
	}

	report := newTestRunner(cfg, pub, &fakeComposer{}, &fakeImages{path: "/tmp/feature.png"}).Run(context.Background())

	assert.Equal(t, types.OutcomeCompleted, report.Outcome)
	assert.Equal(t, 1, pub.createCalls)
	assert.Zero(t, pub.gotPost.FeaturedMedia)
}

func TestRunEmptyImagePathSkipsUpload(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagIDs:  map[string]int{"stocks": 7, "markets": 12},
		postURL: "https://example.com/market-summary-20260824-0930",
	}

	report := newTestRunner(cfg, pub, &fakeComposer{}, &fakeImages{path: ""}).Run(context.Background())

	assert.Equal(t, types.OutcomeCompleted, report.Outcome)
	assert.Zero(t, pub.uploadCalls)
	assert.Zero(t, pub.gotPost.FeaturedMedia)
}

func TestRunTagFailureOmitsTags(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagErr:  errors.New("taxonomy unavailable"),
		postURL: "https://example.com/market-summary-20260824-0930",
	}

	report := newTestRunner(cfg, pub, &fakeComposer{}, &fakeImages{}).Run(context.Background())

	assert.Equal(t, types.OutcomeCompleted, report.Outcome)
	assert.Equal(t, 2, pub.tagCalls)
	assert.Empty(t, pub.gotPost.Tags)
}

func TestRunNonNumericCategoryOmitted(t *testing.T) {
	cfg := testConfig(t)
	cfg.CategoryID = "finance"
	pub := &fakePublisher{
		tagIDs:  map[string]int{"stocks": 7, "markets": 12},
		postURL: "https://example.com/market-summary-20260824-0930",
	}

	newTestRunner(cfg, pub, &fakeComposer{}, &fakeImages{}).Run(context.Background())

	assert.Empty(t, pub.gotPost.Categories)
}

func TestRunPostCreationFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagIDs:  map[string]int{"stocks": 7, "markets": 12},
		postErr: errors.New("rest_invalid_param"),
	}

	report := newTestRunner(cfg, pub, &fakeComposer{article: types.Article{Slug: "market-summary-20260824-0930"}}, &fakeImages{}).Run(context.Background())

	assert.Equal(t, types.OutcomeAborted, report.Outcome)
	assert.Equal(t, "post creation failed", report.Reason)
	assert.Empty(t, report.PostURL)
}

// Fallback run: no generative or news keys, only CMS auth. The published body
// must be exactly the template filled with the assembled context, and the
// featured image must be the rendered dashboard.
func TestRunEndToEndFallback(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagIDs:  map[string]int{"stocks": 7, "markets": 12},
		mediaID: 33,
		postURL: "https://example.com/market-summary-20260824-0930",
	}
	snap := &fakeSnapshotter{prices: map[string]float64{"^VIX": 17.3, "GC=F": 2411.2, "AAPL": 232.5}}

	r := NewRunner(cfg, Deps{
		Market:    snap,
		News:      &fakeNews{},
		Composer:  article.NewComposer(nil, cfg.SlugPrefix, nil),
		Images:    imagegen.NewProducer(nil, cfg.OutputDir, nil),
		Publisher: pub,
	})
	r.now = func() time.Time { return fixedNow }

	report := r.Run(context.Background())

	require.Equal(t, types.OutcomeCompleted, report.Outcome)
	assert.Equal(t, "market-summary-20260824-0930", report.Slug)

	expectedMC := types.MarketContext{
		Macro:  snap.Snapshot(context.Background(), market.MacroIndicators),
		Basket: snap.Snapshot(context.Background(), market.EquityBasket),
	}
	wantBody := article.FallbackBody(article.BuildContext(expectedMC), fixedNow)
	assert.Equal(t, wantBody, pub.gotPost.Content)

	headings := regexp.MustCompile(`(?m)^\d\. `).FindAllString(pub.gotPost.Content, -1)
	assert.Len(t, headings, 7)
	assert.Contains(t, pub.gotPost.Content, "- Dollar Index: unknown")

	require.NotEmpty(t, pub.gotMedia)
	assert.Equal(t, "feature_20260824_093000.png", filepath.Base(pub.gotMedia))
	raw, err := os.ReadFile(pub.gotMedia)
	require.NoError(t, err)
	imgCfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1280, imgCfg.Width)
	assert.Equal(t, 960, imgCfg.Height)

	assert.Equal(t, 33, pub.gotPost.FeaturedMedia)
	assert.Equal(t, []int{7, 12}, pub.gotPost.Tags)
}

// Second run in the same minute derives the same slug and must stop at the
// duplicate check.
func TestRunSameMinuteIdempotence(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{
		tagIDs:  map[string]int{"stocks": 7, "markets": 12},
		postURL: "https://example.com/market-summary-20260824-0930",
	}
	composer := &fakeComposer{article: types.Article{Slug: "market-summary-20260824-0930"}}

	runner := newTestRunner(cfg, pub, composer, &fakeImages{})

	first := runner.Run(context.Background())
	require.Equal(t, types.OutcomeCompleted, first.Outcome)
	require.Equal(t, 1, pub.createCalls)

	pub.exists = true

	second := runner.Run(context.Background())
	assert.Equal(t, types.OutcomeAborted, second.Outcome)
	assert.Equal(t, "slug already published", second.Reason)
	assert.Equal(t, 1, pub.createCalls)
	assert.Equal(t, first.Slug, second.Slug)
}
