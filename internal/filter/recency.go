package filter

import (
	"github.com/maxaizer/job-radar/internal/entities"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const UnknownAge = entities.UnknownAge

var (
	freshPhrases = []string{"today", "just now", "minutes ago", "hours ago", "hour ago"}
	daysPattern  = regexp.MustCompile(`(\d+)\s*day`)
	weeksPattern = regexp.MustCompile(`(\d+)\s*week`)
	monthPattern = regexp.MustCompile(`(\d+)\s*month`)
)

// Recency decides whether a posting is fresh enough to be considered.
type Recency struct {
	MaxDaysOld int
}

func (r Recency) IsRecent(daysAgo int) bool {
	return daysAgo <= r.MaxDaysOld
}

// DaysSince returns whole days elapsed from posted to now, rounded down.
// Future timestamps give negative values.
func DaysSince(posted, now time.Time) int {
	return int(math.Floor(now.Sub(posted).Hours() / 24))
}

func DaysSinceEpoch(seconds int64, now time.Time) int {
	if seconds <= 0 {
		return UnknownAge
	}
	return DaysSince(time.Unix(seconds, 0), now)
}

// DaysSinceLayout parses value with the first layout that accepts it.
// Zone-less layouts are read as UTC. Unparseable values give UnknownAge.
func DaysSinceLayout(value string, now time.Time, layouts ...string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return UnknownAge
	}
	for _, layout := range layouts {
		if posted, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return DaysSince(posted, now)
		}
	}
	return UnknownAge
}

// DaysFromPhrase reads phrases like "3 days ago" or "Yesterday".
func DaysFromPhrase(phrase string) int {
	lowered := strings.ToLower(strings.TrimSpace(phrase))
	if lowered == "" {
		return UnknownAge
	}

	for _, fresh := range freshPhrases {
		if strings.Contains(lowered, fresh) {
			return 0
		}
	}
	if strings.Contains(lowered, "yesterday") {
		return 1
	}

	if n, ok := firstNumber(daysPattern, lowered); ok {
		return n
	}
	if n, ok := firstNumber(weeksPattern, lowered); ok {
		return n * 7
	}
	if n, ok := firstNumber(monthPattern, lowered); ok {
		return n * 30
	}
	return UnknownAge
}

func firstNumber(pattern *regexp.Regexp, text string) (int, bool) {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
