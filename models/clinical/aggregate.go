package clinical

import "sort"

// TotalMaxScore sums MaxScore over all steps of a case. Completing the
// final step awards this full total.
func TotalMaxScore(steps []CaseStep) int {
	total := 0
	for _, s := range steps {
		total += s.MaxScore
	}
	return total
}

// FinalStepIndex returns the highest StepIndex among steps, or -1 when the
// case has no steps.
func FinalStepIndex(steps []CaseStep) int {
	final := -1
	for _, s := range steps {
		if s.StepIndex > final {
			final = s.StepIndex
		}
	}
	return final
}

// bestScorePerCase keeps the highest completed score per case so replays
// never double-count.
func bestScorePerCase(rows []Progress) map[uint]int {
	best := map[uint]int{}
	for _, p := range rows {
		if !p.IsCompleted {
			continue
		}
		if cur, ok := best[p.CaseID]; !ok || p.Score > cur {
			best[p.CaseID] = p.Score
		}
	}
	return best
}

// Totals folds a user's progress rows into (casesCompleted, totalScore).
func Totals(rows []Progress) (int, int) {
	best := bestScorePerCase(rows)
	total := 0
	for _, s := range best {
		total += s
	}
	return len(best), total
}

// Standing is one leaderboard entry
type Standing struct {
	Rank           int    `json:"rank"`
	UserID         uint   `json:"userId"`
	Email          string `json:"email"`
	CasesCompleted int    `json:"casesCompleted"`
	TotalScore     int    `json:"totalScore"`
}

// ComputeStandings aggregates progress rows per student and orders them by
// completed cases desc, then total score desc. Every student appears even
// with zero completions. Rank is the 1-based position in this ordering.
func ComputeStandings(students map[uint]string, rows []Progress) []Standing {
	perUser := map[uint][]Progress{}
	for _, p := range rows {
		if _, ok := students[p.UserID]; !ok {
			continue
		}
		perUser[p.UserID] = append(perUser[p.UserID], p)
	}

	standings := make([]Standing, 0, len(students))
	for id, email := range students {
		completed, score := Totals(perUser[id])
		standings = append(standings, Standing{
			UserID:         id,
			Email:          email,
			CasesCompleted: completed,
			TotalScore:     score,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].CasesCompleted != standings[j].CasesCompleted {
			return standings[i].CasesCompleted > standings[j].CasesCompleted
		}
		if standings[i].TotalScore != standings[j].TotalScore {
			return standings[i].TotalScore > standings[j].TotalScore
		}
		return standings[i].UserID < standings[j].UserID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// RankOf returns 1 plus the number of standings strictly ahead of the given
// aggregate by the leaderboard ordering key.
func RankOf(standings []Standing, casesCompleted, totalScore int) int {
	ahead := 0
	for _, s := range standings {
		if s.CasesCompleted > casesCompleted ||
			(s.CasesCompleted == casesCompleted && s.TotalScore > totalScore) {
			ahead++
		}
	}
	return ahead + 1
}
