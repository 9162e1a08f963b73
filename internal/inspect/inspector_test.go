package inspect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pageURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

const fixtureHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Acme Widgets - Quality Widgets Since 1999</title>
<meta name="description" content="Acme sells the finest widgets.">
<meta name="keywords" content="widgets, acme, tools">
<meta name="robots" content="index, follow">
<meta property="og:title" content="Acme Widgets">
<meta name="twitter:card" content="summary">
<link rel="canonical" href="https://acme.example/">
<link rel="sitemap" href="https://acme.example/custom-sitemap.xml">
<script type="application/ld+json">{"@type":"Organization"}</script>
</head>
<body>
<h1>Widgets</h1>
<h2>Small widgets</h2>
<h3>Large widgets</h3>
<p>Buy our widgets today. They are the best widgets.</p>
<img src="/logo.png" alt="Acme logo">
<img src="https://cdn.example/banner.jpg">
<a href="/about">About</a>
<a href="https://acme.example/contact">Contact</a>
<a href="https://partner.example/deal">Partner</a>
<a href="mailto:sales@example.org">Mail</a>
</body>
</html>`

func TestInspect_ExtractsStructuralFacts(t *testing.T) {
	t.Parallel()

	i := New(nil, zap.NewNop())
	facts := i.Inspect(context.Background(), fixtureHTML, pageURL(t, "https://acme.example/"))

	require.Equal(t, "Acme Widgets - Quality Widgets Since 1999", facts.Title)
	require.Equal(t, "Acme sells the finest widgets.", facts.MetaDescription)
	require.Equal(t, "widgets, acme, tools", facts.MetaKeywords)
	require.Equal(t, "index, follow", facts.MetaRobots)
	require.Equal(t, "https://acme.example/", facts.Canonical)
	require.Equal(t, "https://acme.example/custom-sitemap.xml", facts.SitemapHref)

	require.Equal(t, 1, facts.H1Count)
	require.Equal(t, 3, facts.HeadingCount)
	require.Equal(t, 1, facts.JSONLDBlocks)
	require.True(t, facts.HasOpenGraph)
	require.True(t, facts.HasTwitterCard)

	require.Len(t, facts.Images, 2)
	require.Equal(t, 1, facts.MissingAlt)

	require.Equal(t, []string{"/about", "https://acme.example/contact"}, facts.InternalLinks)
	require.Equal(t, []string{"https://partner.example/deal"}, facts.ExternalLinks)

	require.Greater(t, facts.WordCount, 10)
	require.NotContains(t, facts.Text, "\n")
}

func TestInspect_EmptyDocument(t *testing.T) {
	t.Parallel()

	i := New(nil, zap.NewNop())
	facts := i.Inspect(context.Background(), "", pageURL(t, "https://acme.example/"))

	require.Zero(t, facts.WordCount)
	require.Empty(t, facts.Title)
	require.Empty(t, facts.InternalLinks)
	require.Zero(t, facts.H1Count)
}

func TestInspect_MalformedHTMLTolerated(t *testing.T) {
	t.Parallel()

	i := New(nil, zap.NewNop())
	facts := i.Inspect(context.Background(), "<h1>broken<h2>markup<p>words here", pageURL(t, "https://acme.example/"))

	require.Equal(t, 1, facts.H1Count)
	require.GreaterOrEqual(t, facts.WordCount, 2)
}

func TestInspect_FlagsLargeExternalImages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		if strings.Contains(r.URL.Path, "big") {
			w.Header().Set("Content-Length", "500000")
			return
		}
		w.Header().Set("Content-Length", "1000")
	}))
	defer srv.Close()

	body := fmt.Sprintf(`<html><body>
		<img src="%s/big.jpg" alt="big">
		<img src="%s/small.jpg" alt="small">
		<img src="/relative.jpg" alt="rel">
	</body></html>`, srv.URL, srv.URL)

	i := New(srv.Client(), zap.NewNop())
	facts := i.Inspect(context.Background(), body, pageURL(t, "https://acme.example/"))

	require.Equal(t, []string{srv.URL + "/big.jpg"}, facts.LargeImages)
}

func TestInspect_ImageProbeFailuresIgnored(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	body := fmt.Sprintf(`<html><body><img src="%s/gone.jpg" alt="x"></body></html>`, srv.URL)
	i := New(srv.Client(), zap.NewNop())
	facts := i.Inspect(context.Background(), body, pageURL(t, "https://acme.example/"))

	require.Empty(t, facts.LargeImages)
	require.Len(t, facts.Images, 1)
}
