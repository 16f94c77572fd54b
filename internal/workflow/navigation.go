package workflow

import (
	"assessment_backend/internal/model"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Unanswered filters the catalog down to questions not in answered, keeping catalog order.
func Unanswered(catalog []model.Question, answered map[string]struct{}) []model.Question {
	out := make([]model.Question, 0, len(catalog))
	for _, q := range catalog {
		if _, done := answered[q.ID]; !done {
			out = append(out, q)
		}
	}
	return out
}

// ShuffleSeed is the xxhash64 of the employee-assessment id. The hash is fixed so the
// question order survives process restarts and toolchain upgrades.
func ShuffleSeed(employeeAssessmentID string) uint64 {
	return xxhash.Sum64String(employeeAssessmentID)
}

// Shuffle returns a copy of questions permuted with a PCG generator seeded from seed.
func Shuffle(questions []model.Question, seed uint64) []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SelectNext picks the question to serve from the unanswered list. RANDOM uses the
// seeded shuffle; every other mode serves catalog order.
func SelectNext(unanswered []model.Question, mode model.NavigationMode, employeeAssessmentID string) *model.Question {
	if len(unanswered) == 0 {
		return nil
	}
	if mode == model.NavigationRandom {
		shuffled := Shuffle(unanswered, ShuffleSeed(employeeAssessmentID))
		return &shuffled[0]
	}
	first := unanswered[0]
	return &first
}
