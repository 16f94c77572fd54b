package model

import "time"

type QuestionScore struct {
	QuestionID string  `json:"questionId"`
	Score      float64 `json:"score"`
}

type CategoryScore struct {
	CategoryID     string                   `json:"categoryId"`
	CategoryName   string                   `json:"categoryName,omitempty"`
	Score          float64                  `json:"score"`
	QuestionScores map[string]QuestionScore `json:"questionScores"`
}

type PillarScore struct {
	PillarID       string                   `json:"pillarId"`
	PillarName     string                   `json:"pillarName,omitempty"`
	Score          float64                  `json:"score"`
	CategoryScores map[string]CategoryScore `json:"categoryScores"`
}

// ScoreTree is the pillar -> category -> question rollup shared by potential and actual scores.
type ScoreTree struct {
	Score        float64                `json:"score"`
	PillarScores map[string]PillarScore `json:"pillarScores"`
	ComputedAt   time.Time              `json:"computedAt"`
}

// PotentialScore is the maximum achievable score of a matrix.
type PotentialScore ScoreTree

// EmployeeAssessmentScore is the score one respondent achieved.
type EmployeeAssessmentScore ScoreTree
