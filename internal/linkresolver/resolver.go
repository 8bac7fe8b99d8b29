// Package linkresolver expands shortened map URLs into their final
// destination. Every hop of the redirect chain must land on an allow-listed
// hostname, so the endpoint cannot be turned into an open proxy against
// internal addresses.
package linkresolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var (
	ErrHostNotAllowed   = errors.New("host not on the resolver allow-list")
	ErrTooManyRedirects = errors.New("too many redirects")
)

const maxRedirects = 5

type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (string, error)
}

type linkResolver struct {
	allowedHosts map[string]bool
	limiter      *rate.Limiter
	httpClient   *http.Client
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       *slog.Logger
}

// New builds a resolver. cache may be nil; resolution then always goes to the
// network. The limiter throttles outbound requests shared across all callers.
func New(allowedHosts []string, limiter *rate.Limiter, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) Resolver {
	lookup := make(map[string]bool, len(allowedHosts))
	for _, host := range allowedHosts {
		if host != "" {
			lookup[host] = true
		}
	}
	return &linkResolver{
		allowedHosts: lookup,
		limiter:      limiter,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			// Redirects are walked manually so each hop gets checked.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve follows rawURL's redirect chain and returns the final URL. A cache
// hit skips the network entirely; cache outages degrade to direct resolution.
func (r *linkResolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	if err := r.checkURL(rawURL); err != nil {
		return "", err
	}

	if cached, ok := r.cacheGet(ctx, rawURL); ok {
		return cached, nil
	}

	current := rawURL
	for hop := 0; hop < maxRedirects; hop++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("resolver rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return "", fmt.Errorf("build resolve request: %w", err)
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("resolve link: %w", err)
		}
		resp.Body.Close()

		if resp.StatusCode < 300 || resp.StatusCode > 399 {
			r.cacheSet(ctx, rawURL, current)
			return current, nil
		}

		location := resp.Header.Get("Location")
		if location == "" {
			r.cacheSet(ctx, rawURL, current)
			return current, nil
		}

		next, err := resp.Request.URL.Parse(location)
		if err != nil {
			return "", fmt.Errorf("parse redirect location: %w", err)
		}
		if err := r.checkURL(next.String()); err != nil {
			return "", err
		}
		current = next.String()
	}
	return "", ErrTooManyRedirects
}

// checkURL enforces the scheme and hostname allow-list for one hop.
func (r *linkResolver) checkURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: unparseable url", ErrHostNotAllowed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrHostNotAllowed, parsed.Scheme)
	}
	if !r.allowedHosts[parsed.Hostname()] {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, parsed.Hostname())
	}
	return nil
}

func (r *linkResolver) cacheGet(ctx context.Context, rawURL string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	resolved, err := r.cache.Get(ctx, cacheKey(rawURL)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("link_cache_get_failed", "error", err.Error())
		}
		return "", false
	}
	return resolved, true
}

func (r *linkResolver) cacheSet(ctx context.Context, rawURL, resolved string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(rawURL), resolved, r.cacheTTL).Err(); err != nil {
		r.logger.Warn("link_cache_set_failed", "error", err.Error())
	}
}

func cacheKey(rawURL string) string {
	return "resolved_link:" + rawURL
}
