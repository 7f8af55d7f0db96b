package sources

import (
	"bytes"
	"context"
	"github.com/PuerkitoBio/goquery"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/pkg/errors"
	"time"
)

const recentlyPosted = "Recently"

// htmlLayout describes where a portal keeps the fields of one listing card.
type htmlLayout struct {
	item    string
	title   string
	company string
	// link is the anchor holding the posting URL; empty means the title element itself.
	link string
	// date optionally points at an element with a relative phrase or a datetime attribute.
	date        string
	baseURL     string
	requireLink bool
	maxItems    int
	// assumedAge is used when the card carries no date. The search URL of such portals
	// already limits results to recent postings.
	assumedAge int
}

// HTMLSource scrapes one portal's search page with CSS selectors.
type HTMLSource struct {
	name      string
	settings  Settings
	searchURL string
	layout    htmlLayout
}

func (s *HTMLSource) Name() string {
	return s.name
}

func (s *HTMLSource) Fetch(ctx context.Context) ([]entities.JobRecord, error) {
	body, err := s.settings.Client.Get(ctx, s.searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing %s page", s.name)
	}

	now := s.settings.now()
	var jobs []entities.JobRecord

	doc.Find(s.layout.item).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= s.layout.maxItems {
			return false
		}
		if job, ok := s.parseCard(card, now); ok {
			jobs = append(jobs, job)
		}
		return true
	})

	return jobs, nil
}

func (s *HTMLSource) parseCard(card *goquery.Selection, now time.Time) (entities.JobRecord, bool) {
	titleElem := card.Find(s.layout.title).First()
	title := cleanText(titleElem.Text())
	if title == "" {
		return entities.JobRecord{}, false
	}

	linkElem := titleElem
	if s.layout.link != "" {
		linkElem = card.Find(s.layout.link).First()
	}
	href, _ := linkElem.Attr("href")
	link := resolveLink(s.layout.baseURL, href)
	if s.layout.requireLink && link == "" {
		return entities.JobRecord{}, false
	}

	company := entities.UnknownCompany
	if s.layout.company != "" {
		company = orDefault(cleanText(card.Find(s.layout.company).First().Text()), entities.UnknownCompany)
	}

	daysAgo, posted := s.age(card, now)
	if !s.settings.accept(title+" "+company, daysAgo) {
		return entities.JobRecord{}, false
	}

	return entities.JobRecord{
		Title:      title,
		Company:    company,
		Link:       link,
		Portal:     s.name,
		PostedDate: posted,
		DaysAgo:    daysAgo,
	}, true
}

func (s *HTMLSource) age(card *goquery.Selection, now time.Time) (int, string) {
	if s.layout.date != "" {
		dateElem := card.Find(s.layout.date).First()
		if datetime, ok := dateElem.Attr("datetime"); ok && datetime != "" {
			return filter.DaysSinceLayout(datetime, now, "2006-01-02", time.RFC3339), datetime
		}
		if phrase := cleanText(dateElem.Text()); phrase != "" {
			return filter.DaysFromPhrase(phrase), phrase
		}
	}
	return s.layout.assumedAge, recentlyPosted
}
