package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/middleware"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeHistory struct {
	lessons []models.Lesson
}

func (f *fakeHistory) PastLessons(context.Context, string) ([]models.Lesson, error) {
	return f.lessons, nil
}

func newWizardHandler(t *testing.T) *WizardHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := service.NewDraftStore(0, nil, zap.NewNop())
	svc := service.NewWizardService(store, &fakeHistory{}, nil, zap.NewNop())
	return NewWizardHandler(svc)
}

func testContext(t *testing.T, method, path string, body interface{}, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "student-1", Name: "Bruno"})
	c.Set(middleware.ContextTokenKey, "test-token")
	return c, rec
}

func TestWizardStartRejectsBadPayload(t *testing.T) {
	h := newWizardHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/bookings/drafts", bytes.NewReader([]byte("{")))
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "student-1"})
	c.Set(middleware.ContextTokenKey, "test-token")

	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardStartCreatesDraft(t *testing.T) {
	h := newWizardHandler(t)

	c, rec := testContext(t, http.MethodPost, "/bookings/drafts", map[string]string{"instructorId": "inst-1"}, nil)
	h.Start(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["draftId"])
	assert.Equal(t, float64(2), envelope.Data["minimumRequired"], "new student needs two dates")
}

func TestWizardToggleDateFlow(t *testing.T) {
	h := newWizardHandler(t)

	c, rec := testContext(t, http.MethodPost, "/bookings/drafts", map[string]string{"instructorId": "inst-1"}, nil)
	h.Start(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	draftID := created.Data["draftId"].(string)
	params := gin.Params{{Key: "id", Value: draftID}}

	c, rec = testContext(t, http.MethodPost, "/toggle", map[string]string{"date": "2099-01-10"}, params)
	h.ToggleDate(c)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(1), envelope.Data["selectedCount"])
	assert.Equal(t, false, envelope.Data["canProceed"])

	c, rec = testContext(t, http.MethodPost, "/proceed", nil, params)
	h.ProceedDates(c)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "one date below the minimum of two")

	c, rec = testContext(t, http.MethodPost, "/toggle", map[string]string{"date": "2099-01-11"}, params)
	h.ToggleDate(c)
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = testContext(t, http.MethodPost, "/proceed", nil, params)
	h.ProceedDates(c)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "2099-01-10", envelope.Data["activeDate"])
}

func TestWizardDatesWithoutClaimsIsNotFound(t *testing.T) {
	h := newWizardHandler(t)

	// No user claims on the context: the handler must answer like the
	// draft does not exist rather than panic on a nil deref.
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dates", nil)
	c.Params = gin.Params{{Key: "id", Value: "d1"}}

	h.Dates(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardDraftNotFound(t *testing.T) {
	h := newWizardHandler(t)

	c, rec := testContext(t, http.MethodGet, "/dates", nil, gin.Params{{Key: "id", Value: "ghost"}})
	h.Dates(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
