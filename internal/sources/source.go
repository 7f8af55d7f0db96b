package sources

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/filter"
	"net/url"
	"strings"
	"time"
)

// Source fetches one portal and maps its listing to job records.
// Records are already filtered by recency and skills.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]entities.JobRecord, error)
}

// Settings is everything a source depends on besides the network response.
type Settings struct {
	Skills  filter.SkillSet
	Recency filter.Recency
	Client  *Client
	Now     func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// accept checks recency before skills so stale postings never reach the matcher.
func (s Settings) accept(text string, daysAgo int) bool {
	if !s.Recency.IsRecent(daysAgo) {
		return false
	}
	return s.Skills.Matches(text)
}

func (s Settings) query(n int, separator string) string {
	return url.QueryEscape(strings.Join(s.Skills.Head(n), separator))
}

// resolveLink turns a relative href into an absolute URL against base.
func resolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() || base == "" {
		return ref.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
