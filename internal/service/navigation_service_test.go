package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmployeeConfirmsInvited(t *testing.T) {
	f := twoQuestionFixture(model.StatusInvited)
	ctx := context.Background()

	resp, err := f.navigation.ValidateEmployee(ctx, "  ada@EXAMPLE.com ", matrixID, tenantA)
	require.NoError(t, err)
	assert.Equal(t, ValidationSuccess, resp.Status)
	assert.Equal(t, eaID, resp.EmployeeAssessmentID)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, model.StatusConfirmed, resp.AssessmentStatus)

	ea := f.eas.get(eaID)
	assert.Equal(t, model.StatusConfirmed, ea.Status)
	require.NotNil(t, ea.LastActivityDate)

	resp, err = f.navigation.ValidateEmployee(ctx, "ada@example.com", matrixID, tenantA)
	require.NoError(t, err)
	assert.Equal(t, ValidationInfo, resp.Status)
	assert.Contains(t, resp.Message, "resume")
	assert.Equal(t, model.StatusConfirmed, f.eas.get(eaID).Status)
}

func TestValidateEmployeeInformationalStatuses(t *testing.T) {
	cases := []struct {
		status  model.AssessmentStatus
		message string
	}{
		{model.StatusInProgress, "resume"},
		{model.StatusCompleted, "already been completed"},
		{"ARCHIVED", "ARCHIVED"},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			f := twoQuestionFixture(tc.status)
			resp, err := f.navigation.ValidateEmployee(context.Background(), "ada@example.com", matrixID, tenantA)
			require.NoError(t, err)
			assert.Equal(t, ValidationInfo, resp.Status)
			assert.Contains(t, resp.Message, tc.message)
			assert.Equal(t, tc.status, f.eas.get(eaID).Status)
		})
	}
}

func TestValidateEmployeeUnknownEmail(t *testing.T) {
	f := twoQuestionFixture(model.StatusInvited)
	_, err := f.navigation.ValidateEmployee(context.Background(), "grace@example.com", matrixID, tenantA)
	assert.ErrorIs(t, err, util.ErrInvalidReference)

	_, err = f.navigation.ValidateEmployee(context.Background(), "ada@example.com", matrixID, "tenant-b")
	assert.ErrorIs(t, err, util.ErrInvalidReference)
}

func TestGetNextStartsConfirmedAssessment(t *testing.T) {
	f := twoQuestionFixture(model.StatusConfirmed)

	resp, err := f.navigation.GetNextUnansweredQuestion(context.Background(), eaID, tenantA)
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "q1", resp.Question.ID)
	assert.Equal(t, 0, resp.CurrentProgress)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Nil(t, resp.ExistingAnswer)
	assert.Equal(t, model.StatusInProgress, f.eas.get(eaID).Status)
}

func TestGetNextLeavesInvitedAlone(t *testing.T) {
	f := twoQuestionFixture(model.StatusInvited)

	resp, err := f.navigation.GetNextUnansweredQuestion(context.Background(), eaID, tenantA)
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, model.StatusInvited, f.eas.get(eaID).Status)
}

func TestGetNextSkipsAnsweredQuestions(t *testing.T) {
	f := twoQuestionFixture(model.StatusInProgress)
	ctx := context.Background()

	_, err := f.submit.SubmitAnswer(ctx, f.answer("q1", "4"))
	require.NoError(t, err)

	resp, err := f.navigation.GetNextUnansweredQuestion(ctx, eaID, tenantA)
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "q2", resp.Question.ID)
	assert.Equal(t, 1, resp.CurrentProgress)
}

func TestGetNextCompletesWhenNothingLeft(t *testing.T) {
	f := twoQuestionFixture(model.StatusInProgress)
	ctx := context.Background()
	for _, id := range []string{"q1", "q2"} {
		f.answers.rows = append(f.answers.rows, model.Answer{
			TenantScoped:         model.TenantScoped{TenantID: tenantA},
			EmployeeAssessmentID: eaID,
			QuestionID:           id,
		})
	}

	resp, err := f.navigation.GetNextUnansweredQuestion(ctx, eaID, tenantA)
	require.NoError(t, err)
	assert.Nil(t, resp.Question)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Equal(t, model.StatusCompleted, f.eas.get(eaID).Status)
	assert.Equal(t, 1, f.eas.scoreSaves)

	resp, err = f.navigation.GetNextUnansweredQuestion(ctx, eaID, tenantA)
	require.NoError(t, err)
	assert.Nil(t, resp.Question)
	assert.Equal(t, 1, f.eas.scoreSaves)
}

func TestGetNextRandomIsDeterministic(t *testing.T) {
	var qs []model.Question
	for i := 1; i <= 12; i++ {
		qs = append(qs, question(fmt.Sprintf("q%02d", i), i, model.QuestionYesNo, 1, "p1", "c1"))
	}
	f := newFixture(model.NavigationRandom, model.StatusInProgress, qs...)
	ctx := context.Background()

	first, err := f.navigation.GetNextUnansweredQuestion(ctx, eaID, tenantA)
	require.NoError(t, err)
	second, err := f.navigation.GetNextUnansweredQuestion(ctx, eaID, tenantA)
	require.NoError(t, err)
	require.NotNil(t, first.Question)
	assert.Equal(t, first.Question.ID, second.Question.ID)
}

func TestGetNextUsesDefaultModeWhenMatrixHasNone(t *testing.T) {
	var qs []model.Question
	for i := 1; i <= 12; i++ {
		qs = append(qs, question(fmt.Sprintf("q%02d", i), i, model.QuestionYesNo, 1, "p1", "c1"))
	}
	f := newFixture("", model.StatusInProgress, qs...)
	f.navigation.SetDefaultMode(model.NavigationSequential)

	resp, err := f.navigation.GetNextUnansweredQuestion(context.Background(), eaID, tenantA)
	require.NoError(t, err)
	assert.Equal(t, "q01", resp.Question.ID)
}

func TestSaveAnswerAndGetNext(t *testing.T) {
	f := twoQuestionFixture(model.StatusInProgress)
	ctx := context.Background()

	resp, err := f.navigation.SaveAnswerAndGetNext(ctx, f.answer("q1", "2"))
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "q2", resp.Question.ID)
	assert.Equal(t, 1, resp.CurrentProgress)

	resp, err = f.navigation.SaveAnswerAndGetNext(ctx, f.answer("q2", "false"))
	require.NoError(t, err)
	assert.Nil(t, resp.Question)
	assert.Equal(t, 2, resp.CurrentProgress)
	assert.Equal(t, model.StatusCompleted, f.eas.get(eaID).Status)
	assert.Equal(t, 1, f.eas.scoreSaves)

	_, err = f.navigation.SaveAnswerAndGetNext(ctx, f.answer("q1", "9"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
}
