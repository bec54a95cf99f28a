package threads

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"threadgems/internal/config"
	"threadgems/internal/metrics"
	"threadgems/internal/models"
	"time"

	"github.com/cenkalti/backoff/v5"
)

//go:generate mockgen -source=aggregate.go -destination=../mocks/threads.go -package=mocks

// PostFetcher lists an account's posts.
type PostFetcher interface {
	ProfilePosts(ctx context.Context, token, username string, opts PostsOptions) ([]Media, error)
}

type AccountFailure struct {
	Account string
	Err     error
}

// Report is the outcome of one aggregation pass.
type Report struct {
	Threads []models.Thread
	Fetched int
	Failed  []AccountFailure
}

type Aggregator struct {
	fetcher     PostFetcher
	accounts    []string
	filter      *KeywordFilter
	limit       int
	timeout     time.Duration
	maxAttempts uint
	initialWait time.Duration
	clock       func() time.Time
	logger      *slog.Logger
}

func NewAggregator(fetcher PostFetcher, cfg config.FeedConfig, timeout time.Duration, logger *slog.Logger) *Aggregator {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultFeedConfig.MaxAttempts
	}

	return &Aggregator{
		fetcher:     fetcher,
		accounts:    cfg.Accounts,
		filter:      NewKeywordFilter(cfg.Keywords),
		limit:       cfg.PostsPerAccount,
		timeout:     timeout,
		maxAttempts: uint(maxAttempts),
		initialWait: 500 * time.Millisecond,
		clock:       time.Now,
		logger:      logger,
	}
}

// WithInitialWait sets the first retry delay.
func (a *Aggregator) WithInitialWait(d time.Duration) *Aggregator {
	a.initialWait = d
	return a
}

func (a *Aggregator) WithClock(clock func() time.Time) *Aggregator {
	a.clock = clock
	return a
}

func (a *Aggregator) Accounts() []string {
	return append([]string(nil), a.accounts...)
}

// Collect fetches every account in order. A failing account is skipped; the
// rest are filtered by keyword, deduped by id and sorted newest first.
func (a *Aggregator) Collect(ctx context.Context) (*Report, error) {
	report := &Report{}
	seen := make(map[string]struct{})
	fetchedAt := a.clock()

	for _, account := range a.accounts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		posts, err := a.fetchAccount(ctx, account)
		if err != nil {
			a.logger.Warn("skipping account after fetch failure", "account", account, "error", err)
			metrics.FeedAccountFailures.WithLabelValues(account).Inc()
			report.Failed = append(report.Failed, AccountFailure{Account: account, Err: err})
			continue
		}

		report.Fetched += len(posts)
		for _, post := range posts {
			if post.ID == "" {
				continue
			}
			if _, dup := seen[post.ID]; dup {
				continue
			}
			if !a.filter.Matches(post.Text, post.TopicTag) {
				continue
			}
			seen[post.ID] = struct{}{}
			report.Threads = append(report.Threads, ToThread(post, fetchedAt))
		}
	}

	SortNewestFirst(report.Threads)

	a.logger.Info("feed aggregation finished",
		"accounts", len(a.accounts),
		"failed", len(report.Failed),
		"fetched", report.Fetched,
		"kept", len(report.Threads))

	return report, nil
}

func (a *Aggregator) fetchAccount(ctx context.Context, account string) ([]Media, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = a.initialWait
	exp.MaxInterval = 10 * a.initialWait

	operation := func() ([]Media, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		posts, err := a.fetcher.ProfilePosts(callCtx, "", account, PostsOptions{Limit: a.limit})
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.Temporary() {
				return nil, backoff.Permanent(err)
			}
			if errors.Is(err, ErrNoAccessToken) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return posts, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(a.maxAttempts),
		backoff.WithNotify(func(err error, wait time.Duration) {
			a.logger.Debug("retrying account fetch", "account", account, "error", err, "wait", wait)
		}),
	)
}

// SortNewestFirst orders threads by timestamp descending. Threads whose
// timestamp cannot be parsed keep their relative order at the end.
func SortNewestFirst(threads []models.Thread) {
	parsed := make(map[string]time.Time, len(threads))
	for _, t := range threads {
		if ts, ok := ParseTimestamp(t.Timestamp); ok {
			parsed[t.ID] = ts
		}
	}

	sort.SliceStable(threads, func(i, j int) bool {
		ti, iok := parsed[threads[i].ID]
		tj, jok := parsed[threads[j].ID]
		switch {
		case iok && jok:
			return ti.After(tj)
		case iok:
			return true
		default:
			return false
		}
	})
}
