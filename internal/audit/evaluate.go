package audit

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Evaluation thresholds for the scored content checks.
const (
	titleMinLen    = 30
	titleMaxLen    = 65
	metaDescMinLen = 50
	metaDescMaxLen = 160
	minWordCount   = 300
	minHeadings    = 3
)

// Signals bundles every input the evaluator consumes: the inspected page
// facts plus all collector outcomes for one audit.
type Signals struct {
	Facts   PageFacts
	Fetch   FetchResult
	Rank    RankResult
	Perf    PerfResult
	SERP    SERPResult
	Robots  RobotsResult
	Sitemap string
	Links   LinkReport
	Keyword string
}

// Evaluate maps raw signals into the categorized result structure and the
// flat list of scored checks. Only checks appended to the returned slice
// participate in scoring; the category structs are display-only.
func Evaluate(s Signals) (Categories, []ScoredCheck) {
	var scored []ScoredCheck
	addContent := func(name string, c Check) Check {
		scored = append(scored, ScoredCheck{Category: "content", Name: name, Check: c})
		return c
	}

	content := ContentCategory{
		TitleTag:        addContent("titleTag", titleCheck(s.Facts.Title)),
		MetaDescription: addContent("metaDescription", metaDescriptionCheck(s.Facts.MetaDescription)),
		WordCount:       addContent("wordCount", wordCountCheck(s.Facts.WordCount)),
		Headings:        addContent("headings", headingsCheck(s.Facts.H1Count, s.Facts.HeadingCount)),
		KeywordDensity:  Density(s.Facts.Text, s.Facts.WordCount, s.Keyword),
	}

	cats := Categories{
		Metrics: MetricsCategory{
			DomainRank:     s.Rank.Rank,
			AuthorityScore: s.Rank.Authority,
			RankReason:     s.Rank.Reason,
			Performance:    s.Perf,
			Search:         s.SERP,
		},
		Content: content,
		Indexability: IndexabilityCategory{
			RobotsTxt:     s.Robots.Status,
			RobotsAllowed: s.Robots.Allowed,
			MetaRobots:    orSentinel(s.Facts.MetaRobots, NotAvailable),
			Canonical:     orSentinel(s.Facts.Canonical, NotAvailable),
			Sitemap:       s.Sitemap,
		},
		StructuredData: StructuredDataCategory{
			HasJSONLD: s.Facts.JSONLDBlocks > 0,
			Blocks:    s.Facts.JSONLDBlocks,
		},
		SocialTags: SocialTagsCategory{
			OpenGraph:   s.Facts.HasOpenGraph,
			TwitterCard: s.Facts.HasTwitterCard,
		},
		Images: ImagesCategory{
			Total:       len(s.Facts.Images),
			MissingAlt:  s.Facts.MissingAlt,
			LargeImages: s.Facts.LargeImages,
		},
		HTTPHeaders:   headersCategory(s.Fetch),
		OutgoingLinks: OutgoingLinksCategory{Internal: len(s.Facts.InternalLinks), External: len(s.Facts.ExternalLinks), Liveness: s.Links},
	}

	return cats, scored
}

// Length bands are in characters, not bytes.
func titleCheck(title string) Check {
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		return Check{Passed: false, Details: "Missing"}
	case n < titleMinLen || n > titleMaxLen:
		return Check{Passed: false, Details: fmt.Sprintf("%d characters (recommended %d-%d)", n, titleMinLen, titleMaxLen)}
	default:
		return Check{Passed: true, Details: fmt.Sprintf("%d characters", n)}
	}
}

func metaDescriptionCheck(desc string) Check {
	n := utf8.RuneCountInString(desc)
	switch {
	case n == 0:
		return Check{Passed: false, Details: "Missing"}
	case n < metaDescMinLen || n > metaDescMaxLen:
		return Check{Passed: false, Details: fmt.Sprintf("%d characters (recommended %d-%d)", n, metaDescMinLen, metaDescMaxLen)}
	default:
		return Check{Passed: true, Details: fmt.Sprintf("%d characters", n)}
	}
}

func wordCountCheck(words int) Check {
	if words < minWordCount {
		return Check{Passed: false, Details: fmt.Sprintf("%d words (recommended at least %d)", words, minWordCount)}
	}
	return Check{Passed: true, Details: fmt.Sprintf("%d words", words)}
}

func headingsCheck(h1, total int) Check {
	details := fmt.Sprintf("%d H1, %d headings total", h1, total)
	if h1 != 1 || total < minHeadings {
		return Check{Passed: false, Details: details + fmt.Sprintf(" (recommended exactly 1 H1 and at least %d headings)", minHeadings)}
	}
	return Check{Passed: true, Details: details}
}

func headersCategory(f FetchResult) HTTPHeadersCategory {
	if !f.OK {
		return HTTPHeadersCategory{
			StatusCode:   NotAvailable,
			ContentType:  NotAvailable,
			CacheControl: NotAvailable,
			Server:       NotAvailable,
		}
	}
	return HTTPHeadersCategory{
		StatusCode:   strconv.Itoa(f.StatusCode),
		ContentType:  orSentinel(f.Headers.Get("Content-Type"), NotAvailable),
		CacheControl: orSentinel(f.Headers.Get("Cache-Control"), NotAvailable),
		Server:       orSentinel(f.Headers.Get("Server"), NotAvailable),
	}
}

func orSentinel(v, sentinel string) string {
	if v == "" {
		return sentinel
	}
	return v
}
