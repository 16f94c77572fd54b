package service

import (
	"assessment_backend/internal/model"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
)

type stubQuestions struct {
	mu   sync.Mutex
	byID map[string]model.Question
}

func newStubQuestions(qs ...model.Question) *stubQuestions {
	s := &stubQuestions{byID: make(map[string]model.Question)}
	for _, q := range qs {
		s.byID[q.ID] = q
	}
	return s
}

func (s *stubQuestions) FindByID(_ context.Context, id string) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (s *stubQuestions) FindByAssessmentMatrixID(_ context.Context, matrixID, tenantID string) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for _, q := range s.byID {
		if q.AssessmentMatrixID == matrixID && q.TenantID == tenantID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *stubQuestions) Create(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	s.byID[q.ID] = *q
	return nil
}

func (s *stubQuestions) Update(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[q.ID] = *q
	return nil
}

func (s *stubQuestions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

func (s *stubQuestions) ids(matrixID string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.byID))
	for id, q := range s.byID {
		if q.AssessmentMatrixID == matrixID {
			out[id] = true
		}
	}
	return out
}

type stubAnswers struct {
	mu    sync.Mutex
	rows  []model.Answer
	saves int
}

func (s *stubAnswers) FindByEmployeeAssessmentID(_ context.Context, eaID, tenantID string) ([]model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Answer
	for _, a := range s.rows {
		if a.EmployeeAssessmentID == eaID && a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAnswers) FindAnsweredQuestionIDs(ctx context.Context, eaID, tenantID string) (map[string]struct{}, error) {
	rows, _ := s.FindByEmployeeAssessmentID(ctx, eaID, tenantID)
	set := make(map[string]struct{}, len(rows))
	for _, a := range rows {
		set[a.QuestionID] = struct{}{}
	}
	return set, nil
}

func (s *stubAnswers) FindByEmployeeAssessmentAndQuestion(_ context.Context, eaID, questionID string) (*model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.rows {
		if a.EmployeeAssessmentID == eaID && a.QuestionID == questionID {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubAnswers) Save(_ context.Context, a *model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	for i := range s.rows {
		if s.rows[i].ID == a.ID {
			s.rows[i] = *a
			return nil
		}
	}
	s.rows = append(s.rows, *a)
	return nil
}

func (s *stubAnswers) countLive(eaID string, live map[string]bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.rows {
		if a.EmployeeAssessmentID == eaID && live[a.QuestionID] {
			n++
		}
	}
	return n
}

type stubEmployeeAssessments struct {
	mu         sync.Mutex
	byID       map[string]model.EmployeeAssessment
	answers    *stubAnswers
	questions  *stubQuestions
	scoreSaves int
}

func newStubEmployeeAssessments(answers *stubAnswers, questions *stubQuestions, eas ...model.EmployeeAssessment) *stubEmployeeAssessments {
	s := &stubEmployeeAssessments{byID: make(map[string]model.EmployeeAssessment), answers: answers, questions: questions}
	for _, ea := range eas {
		s.byID[ea.ID] = ea
	}
	return s
}

func (s *stubEmployeeAssessments) FindByID(_ context.Context, id string) (*model.EmployeeAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ea, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &ea, nil
}

func (s *stubEmployeeAssessments) FindByMatrixAndEmail(_ context.Context, matrixID, email, tenantID string) (*model.EmployeeAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ea := range s.byID {
		if ea.AssessmentMatrixID == matrixID && ea.TenantID == tenantID && strings.EqualFold(ea.EmployeeEmail, strings.TrimSpace(email)) {
			return &ea, nil
		}
	}
	return nil, nil
}

func (s *stubEmployeeAssessments) Save(_ context.Context, ea *model.EmployeeAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[ea.ID] = *ea
	return nil
}

func (s *stubEmployeeAssessments) RefreshAnsweredQuestionCount(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ea := s.byID[id]
	n := s.answers.countLive(id, s.questions.ids(ea.AssessmentMatrixID))
	ea.AnsweredQuestionCount = n
	s.byID[id] = ea
	return n, nil
}

func (s *stubEmployeeAssessments) TouchLastActivity(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ea := s.byID[id]
	if ea.Status != model.StatusCompleted {
		ea.LastActivityDate = &at
		s.byID[id] = ea
	}
	return nil
}

func (s *stubEmployeeAssessments) CompareAndSetStatus(_ context.Context, id string, from, to model.AssessmentStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ea, ok := s.byID[id]
	if !ok || ea.Status != from {
		return false, nil
	}
	ea.Status = to
	s.byID[id] = ea
	return true, nil
}

func (s *stubEmployeeAssessments) SaveScore(_ context.Context, id string, score *model.EmployeeAssessmentScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scoreSaves++
	ea := s.byID[id]
	ea.EmployeeAssessmentScore = datatypes.NewJSONType(score)
	s.byID[id] = ea
	return nil
}

func (s *stubEmployeeAssessments) get(id string) model.EmployeeAssessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id]
}

type stubMatrices struct {
	mu    sync.Mutex
	byID  map[string]model.AssessmentMatrix
	saves int
}

func newStubMatrices(ms ...model.AssessmentMatrix) *stubMatrices {
	s := &stubMatrices{byID: make(map[string]model.AssessmentMatrix)}
	for _, m := range ms {
		s.byID[m.ID] = m
	}
	return s
}

func (s *stubMatrices) FindByID(_ context.Context, id string) (*model.AssessmentMatrix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *stubMatrices) Save(_ context.Context, m *model.AssessmentMatrix) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.byID[m.ID] = *m
	return nil
}

type fixture struct {
	questions  *stubQuestions
	answers    *stubAnswers
	eas        *stubEmployeeAssessments
	matrices   *stubMatrices
	scores     *ScoreService
	lifecycle  *LifecycleService
	submit     *AnswerService
	navigation *NavigationService
	clock      time.Time
}

const (
	tenantA  = "tenant-a"
	matrixID = "matrix-1"
	eaID     = "ea-1"
)

func question(id string, order int, qType model.QuestionType, points float64, pillar, category string) model.Question {
	q := model.Question{
		AssessmentMatrixID: matrixID,
		Question:           "Question " + id,
		QuestionType:       qType,
		Points:             points,
		PillarID:           pillar,
		PillarName:         "Pillar " + pillar,
		CategoryID:         category,
		CategoryName:       "Category " + category,
		Order:              order,
	}
	q.ID = id
	q.TenantID = tenantA
	return q
}

func newFixture(mode model.NavigationMode, status model.AssessmentStatus, qs ...model.Question) *fixture {
	f := &fixture{clock: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	now := func() time.Time { return f.clock }

	m := model.AssessmentMatrix{Name: "Q1 review"}
	m.ID = matrixID
	m.TenantID = tenantA
	if mode != "" {
		m.Configuration = &model.AssessmentConfiguration{NavigationMode: mode}
	}

	ea := model.EmployeeAssessment{
		AssessmentMatrixID: matrixID,
		EmployeeName:       "Ada Lovelace",
		EmployeeEmail:      "Ada@Example.com",
		Status:             status,
	}
	ea.ID = eaID
	ea.TenantID = tenantA

	f.questions = newStubQuestions(qs...)
	f.answers = &stubAnswers{}
	f.eas = newStubEmployeeAssessments(f.answers, f.questions, ea)
	f.matrices = newStubMatrices(m)

	f.scores = NewScoreService(f.questions, f.answers, f.eas, f.matrices)
	f.scores.now = now
	f.lifecycle = NewLifecycleService(f.eas, f.scores)
	f.submit = NewAnswerService(f.questions, f.answers, f.eas, f.lifecycle)
	f.submit.now = now
	f.navigation = NewNavigationService(f.questions, f.answers, f.eas, f.matrices, f.lifecycle, f.submit)
	f.navigation.now = now
	return f
}

func strPtr(s string) *string { return &s }

func (f *fixture) answer(questionID, value string) SubmitAnswerRequest {
	return SubmitAnswerRequest{
		EmployeeAssessmentID: eaID,
		QuestionID:           questionID,
		AnsweredAt:           f.clock,
		Value:                strPtr(value),
		TenantID:             tenantA,
	}
}
