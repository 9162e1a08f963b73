package audit

import (
	"fmt"
	"regexp"
	"strings"
)

// Keyword sources reported in SERPResult.Source when the HTML fallback
// chain chose the audit keyword.
const (
	SourceUserSupplied = "user-supplied"
	SourceMetaKeywords = "meta-keywords"
	SourceTitle        = "title"
	SourceDomain       = "domain-fallback"
)

// KeywordChoice is the outcome of the HTML-derived keyword fallback.
type KeywordChoice struct {
	Keyword string
	Source  string
}

// FallbackKeyword picks the audit keyword when no search credential is
// configured. Priority: user-supplied, first meta keywords token, page
// title, hostname. First non-empty match wins.
func FallbackKeyword(userKeyword, metaKeywords, title, hostname string) KeywordChoice {
	if kw := strings.TrimSpace(userKeyword); kw != "" {
		return KeywordChoice{Keyword: kw, Source: SourceUserSupplied}
	}
	if metaKeywords != "" {
		first := strings.SplitN(metaKeywords, ",", 2)[0]
		if kw := strings.TrimSpace(first); kw != "" {
			return KeywordChoice{Keyword: kw, Source: SourceMetaKeywords}
		}
	}
	if kw := strings.TrimSpace(title); kw != "" {
		return KeywordChoice{Keyword: kw, Source: SourceTitle}
	}
	return KeywordChoice{Keyword: hostname, Source: SourceDomain}
}

// Density computes keyword density over the page text as a percentage
// string, e.g. "3.00%". Matching is case-insensitive on word boundaries.
// Returns "Not checked" when no keyword was supplied or the page has no
// words.
func Density(text string, wordCount int, keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || wordCount == 0 {
		return NotChecked
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return NotChecked
	}
	occurrences := len(re.FindAllStringIndex(text, -1))
	return fmt.Sprintf("%.2f%%", float64(occurrences)/float64(wordCount)*100)
}
