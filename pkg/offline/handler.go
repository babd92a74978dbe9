// Package offline implements the Offline Cache Handler: it pre-caches a fixed
// Asset List on install and answers requests from the cache, falling back to
// the network on a miss.
package offline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/Sternrassler/offline-cache/pkg/assets"
	"github.com/Sternrassler/offline-cache/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultConcurrency is the number of assets fetched in parallel during install.
const DefaultConcurrency = 4

var (
	networkFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "offline_network_fetches_total",
		Help: "Network fetches by phase (install, fetch) and outcome",
	}, []string{"phase", "outcome"})

	installsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "offline_installs_total",
		Help: "Install attempts by result",
	}, []string{"result"})

	installDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "offline_install_duration_seconds",
		Help:    "Duration of install runs in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})
)

// Fetcher performs network requests. *http.Client satisfies it.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the handler configuration.
type Config struct {
	// Origin is the absolute base URL assets and proxied requests resolve against
	Origin string

	// Assets is the list pre-cached by Install (default: assets.Default())
	Assets assets.List

	// Concurrency bounds parallel asset fetches during Install
	Concurrency int
}

// Handler is the Offline Cache Handler. It is safe for concurrent use; only
// Install writes to the store.
type Handler struct {
	store       cache.Store
	network     Fetcher
	origin      *url.URL
	assets      assets.List
	concurrency int
	logger      zerolog.Logger
	installed   atomic.Bool
}

// New creates a handler over store that reaches the network through network.
func New(store cache.Store, network Fetcher, cfg Config) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if network == nil {
		return nil, fmt.Errorf("network fetcher is required")
	}

	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if (origin.Scheme != "http" && origin.Scheme != "https") || origin.Host == "" {
		return nil, fmt.Errorf("origin must be an absolute http(s) url (got %q)", cfg.Origin)
	}

	list := cfg.Assets
	if list.Len() == 0 {
		list = assets.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Handler{
		store:       store,
		network:     network,
		origin:      origin,
		assets:      list,
		concurrency: concurrency,
		logger: log.With().
			Str("component", "offline-handler").
			Str("cache", store.Name()).
			Logger(),
	}, nil
}

// Fetch answers req from the cache, or from the network on a miss.
//
// Only GET requests for the origin can match; the store holds that origin's
// assets only, so other hosts always miss. A cache hit never touches the
// network. A miss issues exactly one network request whose response or error
// is returned unchanged; it is not written back to the cache. Store errors
// other than a miss fail the request.
func (h *Handler) Fetch(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if req.Method == http.MethodGet && h.sameOrigin(req.URL) {
		key := cache.KeyFromURL(req.URL)

		entry, err := h.store.Match(ctx, key)
		switch {
		case err == nil:
			h.logger.Debug().Str("url", key.String()).Bool("cache_hit", true).Msg("Serving from cache")
			return cache.EntryToResponse(entry, req), nil
		case !errors.Is(err, cache.ErrCacheMiss):
			return nil, fmt.Errorf("cache match %s: %w", key, err)
		}

		h.logger.Debug().Str("url", key.String()).Bool("cache_hit", false).Msg("Cache miss, fetching from network")
	}

	resp, err := h.network.Do(req)
	if err != nil {
		networkFetchesTotal.WithLabelValues("fetch", "error").Inc()
		return nil, err
	}
	networkFetchesTotal.WithLabelValues("fetch", "ok").Inc()
	return resp, nil
}

// Installed reports whether Install has completed successfully.
func (h *Handler) Installed() bool {
	return h.installed.Load()
}

// Ready returns nil once installed and the store is reachable.
func (h *Handler) Ready(ctx context.Context) error {
	if !h.Installed() {
		return ErrNotInstalled
	}
	return h.store.Ping(ctx)
}

// Assets returns the Asset List this handler installs.
func (h *Handler) Assets() assets.List {
	return h.assets
}

// sameOrigin reports whether u targets the cached origin. Scheme and host
// compare case-insensitively; a relative URL is taken as origin-relative.
func (h *Handler) sameOrigin(u *url.URL) bool {
	if u.Scheme == "" && u.Host == "" {
		return true
	}
	return strings.EqualFold(u.Scheme, h.origin.Scheme) && strings.EqualFold(u.Host, h.origin.Host)
}

// resolve maps a root-relative URL onto the origin.
func (h *Handler) resolve(ref *url.URL) *url.URL {
	return h.origin.ResolveReference(&url.URL{
		Path:     ref.Path,
		RawPath:  ref.RawPath,
		RawQuery: ref.RawQuery,
	})
}
