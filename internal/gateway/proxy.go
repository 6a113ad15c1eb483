// Package gateway fronts the remote store with a reverse proxy: it serves
// the storefront pages, passes the API through unchanged and caches the hot
// read-only catalog endpoints.
package gateway

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"abod-card-app/internal/cache"
	"abod-card-app/pkg/apierror"
	"abod-card-app/pkg/response"
)

// Proxy proxies storefront and API traffic to the upstream store.
type Proxy struct {
	upstream   *url.URL
	reverse    *httputil.ReverseProxy
	httpClient *http.Client
	cache      cache.Cache
	ttl        time.Duration
}

// NewProxy creates a proxy for the given upstream base URL. Catalog
// responses are cached in c with the given TTL.
func NewProxy(upstreamURL string, c cache.Cache, ttl time.Duration) (*Proxy, error) {
	upstream, err := url.Parse(strings.TrimSuffix(upstreamURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}

	reverse := httputil.NewSingleHostReverseProxy(upstream)
	reverse.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		response.Error(w, apierror.UpstreamError(""))
	}

	return &Proxy{
		upstream:   upstream,
		reverse:    reverse,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      c,
		ttl:        ttl,
	}, nil
}

// API passes a request through to the upstream unchanged. Purchases,
// webhook activation and everything else non-cacheable goes this way.
func (p *Proxy) API(w http.ResponseWriter, r *http.Request) {
	r.Host = p.upstream.Host
	p.reverse.ServeHTTP(w, r)
}

// CachedCatalog serves GET /api/products and /api/categories through the
// TTL cache. The catalog changes rarely and is re-fetched wholesale, so a
// shared cached copy is always a consistent snapshot.
func (p *Proxy) CachedCatalog(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Path

	body, err := p.cache.GetOrSet(r.Context(), key, p.ttl, func() ([]byte, error) {
		return p.fetch(r, key)
	})
	if err != nil {
		response.Error(w, apierror.UpstreamError(""))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// App serves storefront pages, rewriting upstream links to the local host
// so the browser keeps talking to the gateway.
func (p *Proxy) App(w http.ResponseWriter, r *http.Request) {
	body, err := p.fetch(r, r.URL.RequestURI())
	if err != nil {
		response.Error(w, apierror.UpstreamError(""))
		return
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	rewritten := strings.ReplaceAll(string(body), p.upstream.String(), scheme+"://"+r.Host)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, rewritten)
}

// fetch GETs one upstream path and returns the body.
func (p *Proxy) fetch(r *http.Request, pathAndQuery string) ([]byte, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, p.upstream.String()+pathAndQuery, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", r.Header.Get("Accept"))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
