package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

func TestSitemapProber_DeclaredHrefWins(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewSitemapProber(srv.Client(), zap.NewNop())
	p.scheme = "http"

	got := p.Discover(context.Background(), testHost(t, srv), "https://example.org/custom-sitemap.xml")
	require.Equal(t, "https://example.org/custom-sitemap.xml", got)
	require.False(t, called, "declared sitemap should skip the convention probe")
}

func TestSitemapProber_ConventionProbeHit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		require.Equal(t, "/sitemap.xml", r.URL.Path)
	}))
	defer srv.Close()

	p := NewSitemapProber(srv.Client(), zap.NewNop())
	p.scheme = "http"

	host := testHost(t, srv)
	got := p.Discover(context.Background(), host, "")
	require.Equal(t, "http://"+host+"/sitemap.xml", got)
}

func TestSitemapProber_ConventionProbeMiss(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewSitemapProber(srv.Client(), zap.NewNop())
	p.scheme = "http"

	got := p.Discover(context.Background(), testHost(t, srv), "")
	require.Equal(t, audit.NotFound, got)
}

func TestSitemapProber_NetworkErrorIsNotFound(t *testing.T) {
	t.Parallel()

	p := NewSitemapProber(&http.Client{}, zap.NewNop())
	p.scheme = "http"

	got := p.Discover(context.Background(), "127.0.0.1:1", "")
	require.Equal(t, audit.NotFound, got)
}
