package scoring

import (
	"assessment_backend/internal/model"
	"fmt"
	"math"
	"time"
)

// Entry is one question's contribution to a score tree.
type Entry struct {
	PillarID     string
	PillarName   string
	CategoryID   string
	CategoryName string
	QuestionID   string
	Score        float64
}

type categoryGroup struct {
	id, name  string
	questions []string
	scores    map[string]float64
}

type pillarGroup struct {
	id, name   string
	categories []string
	byID       map[string]*categoryGroup
}

// BuildTree groups entries by pillar then category and folds each group once into a fresh tree.
// A question id repeated inside one category keeps its last score.
func BuildTree(entries []Entry, at time.Time) model.ScoreTree {
	var pillarOrder []string
	pillars := make(map[string]*pillarGroup)

	for _, e := range entries {
		p, ok := pillars[e.PillarID]
		if !ok {
			p = &pillarGroup{id: e.PillarID, name: e.PillarName, byID: make(map[string]*categoryGroup)}
			pillars[e.PillarID] = p
			pillarOrder = append(pillarOrder, e.PillarID)
		}
		c, ok := p.byID[e.CategoryID]
		if !ok {
			c = &categoryGroup{id: e.CategoryID, name: e.CategoryName, scores: make(map[string]float64)}
			p.byID[e.CategoryID] = c
			p.categories = append(p.categories, e.CategoryID)
		}
		if _, dup := c.scores[e.QuestionID]; !dup {
			c.questions = append(c.questions, e.QuestionID)
		}
		c.scores[e.QuestionID] = e.Score
	}

	tree := model.ScoreTree{
		PillarScores: make(map[string]model.PillarScore, len(pillarOrder)),
		ComputedAt:   at,
	}
	for _, pid := range pillarOrder {
		p := pillars[pid]
		ps := model.PillarScore{
			PillarID:       p.id,
			PillarName:     p.name,
			CategoryScores: make(map[string]model.CategoryScore, len(p.categories)),
		}
		for _, cid := range p.categories {
			c := p.byID[cid]
			cs := model.CategoryScore{
				CategoryID:     c.id,
				CategoryName:   c.name,
				QuestionScores: make(map[string]model.QuestionScore, len(c.questions)),
			}
			for _, qid := range c.questions {
				cs.QuestionScores[qid] = model.QuestionScore{QuestionID: qid, Score: c.scores[qid]}
				cs.Score += c.scores[qid]
			}
			ps.CategoryScores[cid] = cs
			ps.Score += cs.Score
		}
		tree.PillarScores[pid] = ps
		tree.Score += ps.Score
	}
	return tree
}

// PotentialEntries maps the catalog to per-question maximum scores.
func PotentialEntries(questions []model.Question) ([]Entry, error) {
	entries := make([]Entry, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		best, err := MaxScore(q)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
		entries = append(entries, Entry{
			PillarID:     q.PillarID,
			PillarName:   q.PillarName,
			CategoryID:   q.CategoryID,
			CategoryName: q.CategoryName,
			QuestionID:   q.ID,
			Score:        best,
		})
	}
	return entries, nil
}

// ActualEntries maps stored answers to entries. Names are taken from catalog when the
// pillar or category appears there.
func ActualEntries(answers []model.Answer, catalog []model.Question) []Entry {
	pillarNames := make(map[string]string)
	categoryNames := make(map[string]string)
	for _, q := range catalog {
		pillarNames[q.PillarID] = q.PillarName
		categoryNames[q.CategoryID] = q.CategoryName
	}

	entries := make([]Entry, 0, len(answers))
	for i := range answers {
		a := &answers[i]
		entries = append(entries, Entry{
			PillarID:     a.PillarID,
			PillarName:   pillarNames[a.PillarID],
			CategoryID:   a.CategoryID,
			CategoryName: categoryNames[a.CategoryID],
			QuestionID:   a.QuestionID,
			Score:        a.ScoreOrZero(),
		})
	}
	return entries
}

func BuildPotentialScore(questions []model.Question, at time.Time) (*model.PotentialScore, error) {
	entries, err := PotentialEntries(questions)
	if err != nil {
		return nil, err
	}
	tree := model.PotentialScore(BuildTree(entries, at))
	return &tree, nil
}

func BuildActualScore(answers []model.Answer, catalog []model.Question, at time.Time) *model.EmployeeAssessmentScore {
	tree := model.EmployeeAssessmentScore(BuildTree(ActualEntries(answers, catalog), at))
	return &tree
}

const sumTolerance = 1e-6

// VerifyTree checks that every node's score equals the sum of its children.
func VerifyTree(t model.ScoreTree) error {
	var total float64
	for pid, p := range t.PillarScores {
		var pillarSum float64
		for cid, c := range p.CategoryScores {
			var categorySum float64
			for _, q := range c.QuestionScores {
				categorySum += q.Score
			}
			if !approxEqual(c.Score, categorySum) {
				return fmt.Errorf("category %s in pillar %s scores %v but its questions sum to %v", cid, pid, c.Score, categorySum)
			}
			pillarSum += c.Score
		}
		if !approxEqual(p.Score, pillarSum) {
			return fmt.Errorf("pillar %s scores %v but its categories sum to %v", pid, p.Score, pillarSum)
		}
		total += p.Score
	}
	if !approxEqual(t.Score, total) {
		return fmt.Errorf("total score %v but pillars sum to %v", t.Score, total)
	}
	return nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= sumTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
