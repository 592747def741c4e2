package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "webond/pkg/errors"
)

func TestMatchSolversVisaRoster(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.MatchSolvers("Need help with my visa extension at Immigration Tower", "Wan Chai")
	require.NoError(t, err)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, "David Wong", result.Matches[0].Name)
	assert.Equal(t, 95, result.Matches[0].MatchScore)
	assert.NotEmpty(t, result.Factors)
}

func TestMatchSolversAcademicRoster(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.MatchSolvers("Looking for a tutor for my statistics homework", "")
	require.NoError(t, err)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, "Professor Emily Liu", result.Matches[0].Name)
}

func TestMatchSolversDefaultRoster(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.MatchSolvers("Help me carry furniture to my new flat", "Kowloon")
	require.NoError(t, err)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, "Emily Liu", result.Matches[0].Name)
}

func TestMatchSolversRequiresDescription(t *testing.T) {
	uc := NewAssistUseCase()

	_, err := uc.MatchSolvers("   ", "Central")
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
}

func TestAnalyzeFraudCriticalIllegalContent(t *testing.T) {
	uc := NewAssistUseCase()

	cases := []struct {
		name        string
		description string
		pattern     string
	}{
		{"gambling", "Place bets for me at the casino this weekend", "Gambling"},
		{"gambling chinese", "帮我投注赛马", "Gambling"},
		{"sexual services", "Looking for escort companionship for money", "Sexual services"},
		{"drugs", "Help me buy marijuana in Mong Kok", "Drug"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := uc.AnalyzeFraud(tc.description)
			require.NoError(t, err)
			assert.Equal(t, RiskLevelCritical, result.Risk)
			assert.True(t, strings.HasPrefix(result.CaseID, "WB"))
			require.NotEmpty(t, result.Patterns)
			assert.Contains(t, result.Patterns[0], tc.pattern)
		})
	}
}

func TestAnalyzeFraudHighRisk(t *testing.T) {
	uc := NewAssistUseCase()

	cases := []struct {
		name        string
		description string
	}{
		{"ghostwriting", "Write my dissertation for me by Friday"},
		{"financial", "Transfer money to my account as an investment"},
		{"forged documents", "I need a fake student ID card"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := uc.AnalyzeFraud(tc.description)
			require.NoError(t, err)
			assert.Equal(t, RiskLevelHigh, result.Risk)
			assert.Empty(t, result.CaseID)
		})
	}
}

func TestAnalyzeFraudMediumRisk(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.AnalyzeFraud("Can someone help me prepare for my exam next week")
	require.NoError(t, err)
	assert.Equal(t, RiskLevelMedium, result.Risk)

	result, err = uc.AnalyzeFraud("I want to sell my gaming account")
	require.NoError(t, err)
	assert.Equal(t, RiskLevelMedium, result.Risk)
}

func TestAnalyzeFraudIllegalOutranksGhostwriting(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.AnalyzeFraud("Write my essay about the casino and place a bet for me")
	require.NoError(t, err)
	assert.Equal(t, RiskLevelCritical, result.Risk)
}

func TestAnalyzeFraudLowRiskDefault(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.AnalyzeFraud("Accompany me to the bank to open a student account, I need translation help")
	require.NoError(t, err)
	assert.Equal(t, RiskLevelLow, result.Risk)
	assert.Empty(t, result.CaseID)
}

func TestDraftTaskTemplates(t *testing.T) {
	uc := NewAssistUseCase()

	academic, err := uc.DraftTask("need someone for my homework")
	require.NoError(t, err)
	assert.Contains(t, academic.Title, "Tutoring")
	assert.Contains(t, academic.Description, "not ghostwriting")

	visa, err := uc.DraftTask("visa renewal help wanted")
	require.NoError(t, err)
	assert.Contains(t, visa.Title, "Visa")

	generic, err := uc.DraftTask("walk my dog on weekends")
	require.NoError(t, err)
	assert.Contains(t, generic.Description, "walk my dog on weekends")
	assert.NotEmpty(t, generic.Questions)
}

func TestResolveDisputeLateBranches(t *testing.T) {
	uc := NewAssistUseCase()

	withProof, err := uc.ResolveDispute("The solver was late but showed proof of a traffic accident")
	require.NoError(t, err)
	assert.Contains(t, withProof.Compensation[0], "20%")

	withoutProof, err := uc.ResolveDispute("The solver arrived two hours late with no explanation, caused a delay")
	require.NoError(t, err)
	assert.Contains(t, withoutProof.Compensation[0], "40%")
}

func TestResolveDisputeQualityAndPayment(t *testing.T) {
	uc := NewAssistUseCase()

	quality, err := uc.ResolveDispute("The work was incomplete and I am not satisfied with the quality")
	require.NoError(t, err)
	assert.Contains(t, quality.Summary, "quality")

	payment, err := uc.ResolveDispute("He demands extra payment and refuses a refund")
	require.NoError(t, err)
	assert.Contains(t, payment.Summary, "Payment")
}

func TestResolveDisputeDefaultEscalates(t *testing.T) {
	uc := NewAssistUseCase()

	result, err := uc.ResolveDispute("We simply disagree about what was agreed")
	require.NoError(t, err)
	assert.Contains(t, result.NextSteps, "human review")
}
