package calculator

import (
	"sort"
	"strings"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// UnspecifiedCourt groups clients with no court recorded.
const UnspecifiedCourt = "Unspecified"

// CourtCount is the number of cases listed in one court.
type CourtCount struct {
	Court string
	Cases int
}

// CasesByCourt counts clients per court, busiest court first.
func CasesByCourt(clients []models.Client) []CourtCount {
	counts := make(map[string]int)
	for _, c := range clients {
		court := strings.TrimSpace(c.Court)
		if court == "" {
			court = UnspecifiedCourt
		}
		counts[court]++
	}

	result := make([]CourtCount, 0, len(counts))
	for court, n := range counts {
		result = append(result, CourtCount{Court: court, Cases: n})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Cases != result[j].Cases {
			return result[i].Cases > result[j].Cases
		}
		return result[i].Court < result[j].Court
	})

	return result
}
