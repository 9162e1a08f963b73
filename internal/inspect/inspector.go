// Package inspect parses fetched HTML into the structural facts the
// evaluator consumes. Malformed or empty markup degrades to zero-valued
// facts, never an error.
package inspect

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/auditkit/seo-audit/internal/audit"
)

const (
	imageProbeTimeout  = 8 * time.Second
	imageProbeParallel = 8
	largeImageBytes    = 200 * 1024
)

// Inspector implements audit.PageInspector with goquery.
type Inspector struct {
	client *http.Client
	logger *zap.Logger
}

// New builds an Inspector. The client is used for best-effort image
// weight probes only.
func New(client *http.Client, logger *zap.Logger) *Inspector {
	if client == nil {
		client = &http.Client{Timeout: imageProbeTimeout}
	}
	return &Inspector{client: client, logger: logger}
}

// Inspect extracts title, meta tags, headings, images, link partitions,
// structured data markers, and social tags from the markup. External
// images are probed by HEAD for their reported size.
func (i *Inspector) Inspect(ctx context.Context, htmlBody string, page *url.URL) audit.PageFacts {
	var facts audit.PageFacts
	if strings.TrimSpace(htmlBody) == "" {
		return facts
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		i.logger.Warn("html parse failed, treating page as empty", zap.Error(err))
		return facts
	}

	facts.Title = strings.TrimSpace(doc.Find("title").First().Text())
	facts.MetaDescription = strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))
	facts.MetaKeywords = strings.TrimSpace(doc.Find(`meta[name="keywords"]`).First().AttrOr("content", ""))

	words := strings.Fields(doc.Find("body").Text())
	facts.Text = strings.Join(words, " ")
	facts.WordCount = len(words)

	facts.H1Count = doc.Find("h1").Length()
	facts.HeadingCount = doc.Find("h1,h2,h3,h4,h5,h6").Length()

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		img := audit.Image{
			Src: strings.TrimSpace(sel.AttrOr("src", "")),
			Alt: strings.TrimSpace(sel.AttrOr("alt", "")),
		}
		if img.Alt == "" {
			facts.MissingAlt++
		}
		facts.Images = append(facts.Images, img)
	})

	host := page.Hostname()
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		switch {
		case href == "":
		case strings.HasPrefix(href, "http") && !strings.Contains(href, host):
			facts.ExternalLinks = append(facts.ExternalLinks, href)
		case strings.Contains(href, host) || strings.HasPrefix(href, "/"):
			facts.InternalLinks = append(facts.InternalLinks, href)
		}
	})

	facts.JSONLDBlocks = doc.Find(`script[type="application/ld+json"]`).Length()
	facts.HasOpenGraph = doc.Find(`meta[property^="og:"]`).Length() > 0
	facts.HasTwitterCard = doc.Find(`meta[name^="twitter:"]`).Length() > 0
	facts.Canonical = strings.TrimSpace(doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""))
	facts.MetaRobots = strings.TrimSpace(doc.Find(`meta[name="robots"]`).First().AttrOr("content", ""))
	facts.SitemapHref = strings.TrimSpace(doc.Find(`link[rel="sitemap"]`).First().AttrOr("href", ""))

	facts.LargeImages = i.probeLargeImages(ctx, facts.Images)
	return facts
}

// probeLargeImages issues parallel HEAD requests for external image
// sources and flags those whose reported Content-Length exceeds the
// large-image threshold. Failures are ignored; this is best-effort.
func (i *Inspector) probeLargeImages(ctx context.Context, images []audit.Image) []string {
	var (
		mu    sync.Mutex
		large []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageProbeParallel)
	for _, img := range images {
		if !strings.HasPrefix(img.Src, "http") {
			continue
		}
		src := img.Src
		g.Go(func() error {
			size, ok := i.headContentLength(gctx, src)
			if ok && size > largeImageBytes {
				mu.Lock()
				large = append(large, src)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return large
}

func (i *Inspector) headContentLength(ctx context.Context, src string) (int64, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, imageProbeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, src, nil)
	if err != nil {
		return 0, false
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return 0, false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 || resp.ContentLength < 0 {
		return 0, false
	}
	return resp.ContentLength, true
}
