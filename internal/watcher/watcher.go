// Package watcher runs the fetch → extract → diff → notify → persist cycle.
package watcher

import (
	"context"
	"errors"
	"net/url"
	"time"

	"fbauer/flatwatcher/internal/diff"
	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/internal/fetch"
	"fbauer/flatwatcher/internal/notify"
	"fbauer/flatwatcher/internal/state"
	"fbauer/flatwatcher/logger"
	watcherrors "fbauer/flatwatcher/pkg/errors"
)

// Fetcher is the conditional retrieval collaborator
type Fetcher interface {
	Fetch(ctx context.Context, prior state.Meta) fetch.Result
}

// Extractor converts markup into offers
type Extractor interface {
	Extract(markup string, base *url.URL) []extract.Offer
}

// Watcher owns one complete watch cycle. Cycles never overlap: RunCycle runs
// to completion before the next tick fires.
type Watcher struct {
	fetcher   Fetcher
	extractor Extractor
	store     state.Store
	notifier  notify.Notifier
	baseURL   *url.URL
	interval  time.Duration
	log       *logger.Logger
}

// New creates a watcher over the given collaborators
func New(
	fetcher Fetcher,
	extractor Extractor,
	store state.Store,
	notifier notify.Notifier,
	baseURL *url.URL,
	interval time.Duration,
	log *logger.Logger,
) *Watcher {
	return &Watcher{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		notifier:  notifier,
		baseURL:   baseURL,
		interval:  interval,
		log:       log,
	}
}

// RunCycle performs one fetch-extract-diff-notify-persist pass. It is the
// single idempotent entry point: callers decide when it fires. Notification
// is best-effort; persisting newly seen ids is not contingent on it.
func (w *Watcher) RunCycle(ctx context.Context) error {
	meta, err := w.store.LoadMeta()
	if err != nil {
		// A meta read failure only costs one unconditional fetch.
		w.log.Warn().Err(err).Msg("Failed to load retrieval meta, fetching unconditionally")
		meta = state.Meta{}
	}

	result := w.fetcher.Fetch(ctx, meta)
	switch result.Status {
	case fetch.StatusNotModified:
		w.log.Debug().Msg("Page not modified, nothing to do")
		return nil
	case fetch.StatusError:
		return result.Err
	}

	seen, err := w.store.LoadSeen()
	if err != nil {
		if errors.Is(err, state.ErrSeenCorrupted) {
			return watcherrors.NewStorage("watcher",
				"seen-set is corrupted, aborting cycle to avoid re-announcing known offers", err)
		}
		return watcherrors.NewStorage("watcher", "failed to load seen-set", err)
	}

	offers := w.extractor.Extract(result.Body, w.baseURL)
	fresh := diff.NewOffers(offers, seen)

	w.log.Info().
		Int("extracted", len(offers)).
		Int("new", len(fresh)).
		Int("seen", seen.Len()).
		Msg("Cycle processed page content")

	if len(fresh) > 0 {
		if err := w.notifier.Notify(ctx, fresh); err != nil {
			w.log.Error().
				Err(err).
				Str("channel", w.notifier.Name()).
				Msg("Notification dispatch failed")
		}

		for _, offer := range fresh {
			seen.Add(offer.ID)
		}
		if err := w.store.SaveSeen(seen); err != nil {
			return watcherrors.NewStorage("watcher", "failed to persist seen-set", err)
		}
	}

	if err := w.store.SaveMeta(result.Meta); err != nil {
		return watcherrors.NewStorage("watcher", "failed to persist retrieval meta", err)
	}

	return nil
}

// Run invokes RunCycle at the configured interval until the context is
// canceled. Cycle errors are logged and the next tick still runs.
func (w *Watcher) Run(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Watcher started")

	for {
		start := time.Now()
		if err := w.RunCycle(ctx); err != nil {
			w.log.Error().Err(err).Msg("Cycle failed")
		}
		w.log.Debug().Dur("elapsed", time.Since(start)).Msg("Cycle finished")

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Watcher stopped")
			return
		case <-time.After(w.interval):
		}
	}
}
