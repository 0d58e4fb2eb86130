package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/pkg/config"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.Upstream{BaseURL: server.URL, Timeout: 2 * time.Second}, zap.NewNop())
}

func TestClientForwardsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Lesson{})
	})

	_, err := client.PastLessons(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClientSurfacesUpstreamMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "instructor unavailable"})
	})

	_, err := client.UpcomingLessons(context.Background(), "token")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "instructor unavailable", appErr.Message)
}

func TestClientUnreachableIsUpstreamError(t *testing.T) {
	client := NewClient(config.Upstream{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, zap.NewNop())

	_, err := client.WalletBalance(context.Background(), "token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestClientSchedulePostsBody(t *testing.T) {
	var got ScheduleRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/student/schedule", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ScheduleResponse{Lessons: []models.Lesson{{ID: "l1"}}})
	})

	resp, err := client.Schedule(context.Background(), "token", ScheduleRequest{
		StudentID:    "student-1",
		InstructorID: "inst-1",
		Lessons: []ScheduleLessonInput{
			{Date: "2026-09-20", Time: "08:00", Duration: 50, Price: 80},
		},
		TotalAmount: 80,
		Status:      models.LessonWaitingApproval,
	})
	require.NoError(t, err)
	require.Len(t, resp.Lessons, 1)

	assert.Equal(t, "student-1", got.StudentID)
	assert.Equal(t, "inst-1", got.InstructorID)
	assert.Equal(t, models.LessonWaitingApproval, got.Status)
	assert.Equal(t, 80.0, got.TotalAmount)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, 50, got.Lessons[0].Duration)
	assert.Equal(t, 80.0, got.Lessons[0].Price)
}

func TestClientInstructorFilters(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instructors/approved", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]models.Instructor{{ID: "inst-1"}})
	})

	instructors, err := client.ApprovedInstructors(context.Background(), "token", models.InstructorFilter{
		City:         "Curitiba",
		Transmission: "MANUAL",
	})
	require.NoError(t, err)
	require.Len(t, instructors, 1)

	assert.Equal(t, []string{"Curitiba"}, gotQuery["city"])
	assert.Equal(t, []string{"MANUAL"}, gotQuery["transmission"])
	assert.NotContains(t, gotQuery, "state", "empty filters are omitted")
}

func TestClientPaymentStatusPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/mercado-pago/status/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(PaymentStatusResponse{PaymentID: "p1", Status: models.PaymentApproved})
	})

	status, err := client.PaymentStatus(context.Background(), "token", "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentApproved, status.Status)
}
