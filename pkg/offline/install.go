package offline

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Sternrassler/offline-cache/pkg/cache"
	"golang.org/x/sync/errgroup"
)

// Install fetches every asset and stores it under its URL.
//
// Assets are fetched in parallel; the first failure cancels the rest and
// fails the install. Entries already stored are kept: there is no rollback
// and no retry.
func (h *Handler) Install(ctx context.Context) error {
	start := time.Now()
	defer func() {
		installDuration.Observe(time.Since(start).Seconds())
	}()

	urls := h.assets.URLs()
	h.logger.Info().
		Int("assets", len(urls)).
		Str("origin", h.origin.String()).
		Msg("Installing offline cache")

	entries := make([]*cache.CacheEntry, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i, raw := range urls {
		g.Go(func() error {
			entry, err := h.fetchAsset(gctx, raw)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return h.failInstall(err)
	}

	for i, raw := range urls {
		key, err := cache.ParseKey(raw)
		if err != nil {
			return h.failInstall(err)
		}
		if err := h.store.Put(ctx, key, entries[i]); err != nil {
			return h.failInstall(fmt.Errorf("store %s: %w", raw, err))
		}
	}

	h.installed.Store(true)
	installsTotal.WithLabelValues("success").Inc()
	h.logger.Info().
		Int("assets", len(urls)).
		Dur("duration", time.Since(start)).
		Msg("Offline cache installed")

	return nil
}

func (h *Handler) failInstall(err error) error {
	installsTotal.WithLabelValues("failure").Inc()
	h.logger.Error().Err(err).Msg("Offline cache install failed")
	return fmt.Errorf("%w: %w", ErrInstallFailed, err)
}

// fetchAsset downloads one asset. Non-2xx responses count as failures.
func (h *Handler) fetchAsset(ctx context.Context, raw string) (*cache.CacheEntry, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, &AssetError{URL: raw, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.resolve(ref).String(), nil)
	if err != nil {
		return nil, &AssetError{URL: raw, Err: err}
	}

	resp, err := h.network.Do(req)
	if err != nil {
		networkFetchesTotal.WithLabelValues("install", "error").Inc()
		return nil, &AssetError{URL: raw, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		networkFetchesTotal.WithLabelValues("install", "error").Inc()
		return nil, &AssetError{URL: raw, StatusCode: resp.StatusCode}
	}

	entry, err := cache.ResponseToEntry(resp)
	if err != nil {
		networkFetchesTotal.WithLabelValues("install", "error").Inc()
		return nil, &AssetError{URL: raw, StatusCode: resp.StatusCode, Err: err}
	}
	networkFetchesTotal.WithLabelValues("install", "ok").Inc()

	entry.URL = cache.KeyFromURL(ref).String()
	h.logger.Debug().
		Str("url", entry.URL).
		Int("status_code", entry.StatusCode).
		Int("bytes", entry.Size()).
		Msg("Fetched asset")

	return entry, nil
}
