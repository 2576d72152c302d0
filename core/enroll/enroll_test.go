package enroll

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimu-lms/elimu/services/api"
	testutil "github.com/elimu-lms/elimu/tests"
)

func setup(t *testing.T, backend http.Handler) (*Service, *testutil.NotifierRecorder) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	notifier := new(testutil.NotifierRecorder)
	client := api.NewClient(notifier)
	return NewService(client, api.NewEndpoints(srv.URL+"/api"), "tok-123"), notifier
}

func Test_service_enroll(t *testing.T) {
	var called string
	svc, notifier := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = r.Method + " " + r.URL.Path
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message":"Enrolled successfully"}`))
	}))

	require.NoError(t, svc.Enroll(context.Background(), "42"))
	assert.Equal(t, "POST /api/enrollments/42/enroll", called)

	notice, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "Enrolled successfully", notice.Message)
}

func Test_service_mine(t *testing.T) {
	svc, _ := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"enrollments":[{"_id":"e1","courseId":"42","progress":40,"completedLessons":["l1"]}]}`))
	}))

	mine, err := svc.Mine(context.Background())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 40, mine[0].Progress)
	assert.Equal(t, []string{"l1"}, mine[0].CompletedLessons)
}

func Test_service_completeLessonIsQuiet(t *testing.T) {
	svc, notifier := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"progress":{"courseId":"42","progress":66,"completedLessons":["l1","l2"]}}`))
	}))

	progress, err := svc.CompleteLesson(context.Background(), "42", "l2")
	require.NoError(t, err)
	assert.Equal(t, 66, progress.Percent)

	_, ok := notifier.Last()
	assert.False(t, ok, "lesson completion must not raise a notice")
}

func Test_service_resumePoint(t *testing.T) {
	svc, _ := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resume":{"courseId":"42","chapterId":"c2","lessonId":"l3"}}`))
	}))

	resume, err := svc.ResumePoint(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, Resume{CourseID: "42", ChapterID: "c2", LessonID: "l3"}, resume)
}

func Test_service_failedCallSurfacesBackendMessage(t *testing.T) {
	svc, notifier := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Already enrolled"}`))
	}))

	err := svc.Enroll(context.Background(), "42")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Already enrolled", apiErr.Message)

	notice, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "error", notice.Kind)
}

func Test_service_dashboards(t *testing.T) {
	svc, _ := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/dashboard":
			_, _ = w.Write([]byte(`{"stats":{"totalEmployees":12,"activeEmployees":10,"totalCourses":4}}`))
		case "/api/employee/dashboard":
			_, _ = w.Write([]byte(`{"enrolled":3,"completed":1,"inProgress":2,"certificates":1}`))
		default:
			http.NotFound(w, r)
		}
	}))

	admin, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, admin.TotalEmployees)
	assert.Equal(t, 4, admin.TotalCourses)

	emp, err := svc.EmployeeDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EmployeeStats{Enrolled: 3, Completed: 1, InProgress: 2, Certificates: 1}, emp)
}

func Test_LessonCompleted(t *testing.T) {
	tests := []struct {
		name               string
		position, duration float64
		want               bool
	}{
		{"at threshold", 95, 100, true},
		{"past threshold", 99.5, 100, true},
		{"just under", 94.9, 100, false},
		{"zero duration", 10, 0, false},
		{"negative duration", 10, -5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LessonCompleted(tt.position, tt.duration))
		})
	}
}
