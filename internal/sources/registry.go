package sources

import (
	"github.com/samber/lo"
	"strings"
)

// All returns every supported portal in the order a cycle visits them.
func All(settings Settings) []Source {
	return []Source{
		NewRemotive(settings),
		NewLinkedIn(settings),
		NewGlassdoor(settings),
		NewGitHubJobs(settings),
		NewAngelList(settings),
		NewMonster(settings),
		NewDice(settings),
		NewFlexJobs(settings),
		NewWeWorkRemotely(settings),
		NewRemoteOK(settings),
	}
}

// Select keeps the sources named in names, compared case-insensitively and ignoring spaces.
// An empty names list keeps everything. Order of all is preserved.
func Select(all []Source, names []string) []Source {
	if len(names) == 0 {
		return all
	}
	wanted := lo.SliceToMap(names, func(name string) (string, struct{}) {
		return normalizeName(name), struct{}{}
	})
	return lo.Filter(all, func(source Source, _ int) bool {
		_, ok := wanted[normalizeName(source.Name())]
		return ok
	})
}

func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
