package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webond/internal/adapter/api"
	"webond/internal/usecase"
)

func newAssistTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMatchSolversEndpoint(t *testing.T) {
	h := NewAssistHandler(usecase.NewAssistUseCase())
	c, rec := newAssistTestContext(t, `{"task_description":"help with my visa appointment","location":"Wan Chai"}`)

	require.NoError(t, h.MatchSolvers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "David Wong")
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestMatchSolversRequiresDescriptionField(t *testing.T) {
	h := NewAssistHandler(usecase.NewAssistUseCase())
	c, rec := newAssistTestContext(t, `{"location":"Central"}`)

	require.NoError(t, h.MatchSolvers(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAnalyzeFraudEndpoint(t *testing.T) {
	h := NewAssistHandler(usecase.NewAssistUseCase())
	c, rec := newAssistTestContext(t, `{"task_description":"place a bet at the casino for me"}`)

	require.NoError(t, h.AnalyzeFraud(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"risk":"critical"`)
	assert.Contains(t, rec.Body.String(), `"case_id":"WB`)
}

func TestDraftTaskEndpoint(t *testing.T) {
	h := NewAssistHandler(usecase.NewAssistUseCase())
	c, rec := newAssistTestContext(t, `{"draft":"need help moving boxes"}`)

	require.NoError(t, h.DraftTask(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "need help moving boxes")
}

func TestResolveDisputeEndpoint(t *testing.T) {
	h := NewAssistHandler(usecase.NewAssistUseCase())
	c, rec := newAssistTestContext(t, `{"description":"the solver was late with proof of traffic"}`)

	require.NoError(t, h.ResolveDispute(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "20%")
}
