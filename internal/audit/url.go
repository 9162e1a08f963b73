package audit

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Input validation errors. Both map to a client error at the HTTP layer;
// nothing else the orchestrator returns does.
var (
	ErrMissingURL = errors.New("url is required")
	ErrInvalidURL = errors.New("invalid url")
)

// ParseTarget validates and normalizes the audit URL. A missing scheme
// defaults to https. It lowercases the scheme and host, strips default
// ports and fragments, and requires a hostname.
func ParseTarget(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}
	u.Fragment = ""

	return u, nil
}
