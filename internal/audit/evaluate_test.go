package audit

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitleCheck(t *testing.T) {
	t.Parallel()

	pass := titleCheck(strings.Repeat("x", 45))
	require.True(t, pass.Passed)

	short := titleCheck(strings.Repeat("x", 20))
	require.False(t, short.Passed)

	long := titleCheck(strings.Repeat("x", 80))
	require.False(t, long.Passed)

	missing := titleCheck("")
	require.False(t, missing.Passed)
	require.Equal(t, "Missing", missing.Details)
}

func TestTitleCheck_MultibyteCountsCharacters(t *testing.T) {
	t.Parallel()

	// 40 characters but well over 65 bytes of UTF-8.
	title := strings.Repeat("ü", 40)
	require.Greater(t, len(title), 65)
	require.True(t, titleCheck(title).Passed)

	require.False(t, titleCheck(strings.Repeat("ü", 20)).Passed)
	require.True(t, metaDescriptionCheck(strings.Repeat("ü", 120)).Passed)
}

func TestMetaDescriptionCheck(t *testing.T) {
	t.Parallel()

	require.True(t, metaDescriptionCheck(strings.Repeat("x", 120)).Passed)
	require.False(t, metaDescriptionCheck(strings.Repeat("x", 30)).Passed)
	require.False(t, metaDescriptionCheck(strings.Repeat("x", 200)).Passed)
	require.Equal(t, "Missing", metaDescriptionCheck("").Details)
}

func TestWordCountCheck(t *testing.T) {
	t.Parallel()

	require.True(t, wordCountCheck(300).Passed)
	require.False(t, wordCountCheck(299).Passed)
	require.False(t, wordCountCheck(0).Passed)
}

func TestHeadingsCheck(t *testing.T) {
	t.Parallel()

	require.True(t, headingsCheck(1, 3).Passed)
	require.False(t, headingsCheck(0, 3).Passed)
	require.False(t, headingsCheck(2, 5).Passed)
	require.False(t, headingsCheck(1, 2).Passed)
}

func TestEvaluate_ScoredSetIsExactlyContentChecks(t *testing.T) {
	t.Parallel()

	_, scored := Evaluate(Signals{})
	require.Len(t, scored, 4)
	names := make([]string, 0, len(scored))
	for _, c := range scored {
		require.Equal(t, "content", c.Category)
		names = append(names, c.Name)
	}
	require.ElementsMatch(t, []string{"titleTag", "metaDescription", "wordCount", "headings"}, names)
}

func TestEvaluate_NoKeywordDensityNotScored(t *testing.T) {
	t.Parallel()

	cats, scored := Evaluate(Signals{
		Facts: PageFacts{Text: "seo article about seo", WordCount: 4},
	})
	require.Equal(t, NotChecked, cats.Content.KeywordDensity)
	for _, c := range scored {
		require.NotEqual(t, "keywordDensity", c.Name)
	}
}

func TestEvaluate_FailedFetchYieldsSentinelHeaders(t *testing.T) {
	t.Parallel()

	cats, _ := Evaluate(Signals{Fetch: FetchResult{OK: false}})
	require.Equal(t, NotAvailable, cats.HTTPHeaders.StatusCode)
	require.Equal(t, NotAvailable, cats.HTTPHeaders.ContentType)
	require.Equal(t, NotAvailable, cats.HTTPHeaders.Server)
}

func TestEvaluate_SuccessfulFetchHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Content-Type", "text/html; charset=utf-8")
	headers.Set("Cache-Control", "max-age=3600")

	cats, _ := Evaluate(Signals{Fetch: FetchResult{OK: true, StatusCode: 200, Headers: headers}})
	require.Equal(t, "200", cats.HTTPHeaders.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", cats.HTTPHeaders.ContentType)
	require.Equal(t, "max-age=3600", cats.HTTPHeaders.CacheControl)
	require.Equal(t, NotAvailable, cats.HTTPHeaders.Server)
}

func TestEvaluate_InformationalCategoriesCarried(t *testing.T) {
	t.Parallel()

	sig := Signals{
		Facts: PageFacts{
			JSONLDBlocks:   2,
			HasOpenGraph:   true,
			HasTwitterCard: false,
			MetaRobots:     "noindex",
			Canonical:      "https://acme.example/",
			InternalLinks:  []string{"/a", "/b"},
			ExternalLinks:  []string{"https://other.example"},
			Images:         []Image{{Src: "a.png"}, {Src: "b.png", Alt: "b"}},
			MissingAlt:     1,
		},
		Rank:    RankResult{Rank: "1234", Authority: "5.60"},
		Robots:  RobotsResult{Status: "Present", Allowed: "Allowed"},
		Sitemap: "https://acme.example/sitemap.xml",
		Links:   LinkReport{Total: 1, Checked: 1, Broken: []string{}},
	}
	cats, _ := Evaluate(sig)

	require.True(t, cats.StructuredData.HasJSONLD)
	require.Equal(t, 2, cats.StructuredData.Blocks)
	require.True(t, cats.SocialTags.OpenGraph)
	require.False(t, cats.SocialTags.TwitterCard)
	require.Equal(t, "noindex", cats.Indexability.MetaRobots)
	require.Equal(t, "Present", cats.Indexability.RobotsTxt)
	require.Equal(t, 2, cats.OutgoingLinks.Internal)
	require.Equal(t, 1, cats.OutgoingLinks.External)
	require.Equal(t, 2, cats.Images.Total)
	require.Equal(t, 1, cats.Images.MissingAlt)
	require.Equal(t, "1234", cats.Metrics.DomainRank)
}
