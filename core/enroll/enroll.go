// Package enroll implements the employee-side enrollment operations:
// enrolling, tracking progress, resuming and certificates. Everything
// here talks to the backend; there is no local fallback for enrollment
// state.
package enroll

import (
	"context"
	"net/http"

	"github.com/elimu-lms/elimu/services/api"
)

type Enrollment struct {
	ID               string   `json:"_id"`
	CourseID         string   `json:"courseId"`
	CourseTitle      string   `json:"courseTitle,omitempty"`
	Progress         int      `json:"progress"` // percentage
	CompletedLessons []string `json:"completedLessons"`
	EnrolledAt       string   `json:"enrolledAt,omitempty"`
	CompletedAt      string   `json:"completedAt,omitempty"`
}

// Progress is the backend's view of how far through a course the
// employee is.
type Progress struct {
	CourseID         string   `json:"courseId"`
	Percent          int      `json:"progress"`
	CompletedLessons []string `json:"completedLessons"`
	Completed        bool     `json:"completed"`
}

// Resume points at the lesson to land on when reopening a course.
type Resume struct {
	CourseID  string `json:"courseId"`
	ChapterID string `json:"chapterId"`
	LessonID  string `json:"lessonId"`
}

type Certificate struct {
	ID          string `json:"_id"`
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	IssuedAt    string `json:"issuedAt"`
	URL         string `json:"url,omitempty"`
}

// AdminStats backs the admin dashboard tiles.
type AdminStats struct {
	TotalEmployees  int `json:"totalEmployees"`
	ActiveEmployees int `json:"activeEmployees"`
	TotalCourses    int `json:"totalCourses"`
	TotalQuizzes    int `json:"totalQuizzes"`
	Completions     int `json:"completions"`
}

// EmployeeStats backs the employee dashboard tiles.
type EmployeeStats struct {
	Enrolled     int `json:"enrolled"`
	Completed    int `json:"completed"`
	InProgress   int `json:"inProgress"`
	Certificates int `json:"certificates"`
}

// Service performs enrollment calls on behalf of the current session.
type Service struct {
	client *api.Client
	eps    api.Endpoints
	token  string
}

func NewService(client *api.Client, eps api.Endpoints, token string) *Service {
	return &Service{client: client, eps: eps, token: token}
}

// Enroll joins the employee to a course.
func (svc *Service) Enroll(ctx context.Context, courseID string) error {
	opts := api.Options{Method: http.MethodPost, Token: svc.token}
	_, err := svc.client.Request(ctx, svc.eps.Enroll(courseID), opts)
	return err
}

// Mine lists the employee's enrollments.
func (svc *Service) Mine(ctx context.Context) ([]Enrollment, error) {
	resp, err := svc.client.Request(ctx, svc.eps.MyEnrollments(), api.Options{Token: svc.token})
	if err != nil {
		return nil, err
	}
	return api.List[Enrollment](resp, "enrollments")
}

// CompleteLesson records the lesson as finished and returns the updated
// course progress.
func (svc *Service) CompleteLesson(ctx context.Context, courseID, lessonID string) (Progress, error) {
	opts := api.Options{
		Method:         http.MethodPost,
		Body:           map[string]string{"lessonId": lessonID},
		Token:          svc.token,
		SuppressNotice: true, // fires on every playback threshold, too chatty for a notice
	}
	resp, err := svc.client.Request(ctx, svc.eps.CompleteLesson(courseID), opts)
	if err != nil {
		return Progress{}, err
	}
	return api.Object[Progress](resp, "progress")
}

// CourseProgress fetches the employee's progress through a course.
func (svc *Service) CourseProgress(ctx context.Context, courseID string) (Progress, error) {
	resp, err := svc.client.Request(ctx, svc.eps.Progress(courseID), api.Options{Token: svc.token})
	if err != nil {
		return Progress{}, err
	}
	return api.Object[Progress](resp, "progress")
}

// ResumePoint fetches where to drop the employee back into a course.
func (svc *Service) ResumePoint(ctx context.Context, courseID string) (Resume, error) {
	resp, err := svc.client.Request(ctx, svc.eps.Resume(courseID), api.Options{Token: svc.token})
	if err != nil {
		return Resume{}, err
	}
	return api.Object[Resume](resp, "resume")
}

// Certificates lists the employee's earned certificates.
func (svc *Service) Certificates(ctx context.Context) ([]Certificate, error) {
	resp, err := svc.client.Request(ctx, svc.eps.Certificates(), api.Options{Token: svc.token})
	if err != nil {
		return nil, err
	}
	return api.List[Certificate](resp, "certificates")
}

// AdminDashboard fetches the admin dashboard stats.
func (svc *Service) AdminDashboard(ctx context.Context) (AdminStats, error) {
	resp, err := svc.client.Request(ctx, svc.eps.AdminDashboard(), api.Options{Token: svc.token})
	if err != nil {
		return AdminStats{}, err
	}
	return api.Object[AdminStats](resp, "stats", "dashboard")
}

// EmployeeDashboard fetches the employee dashboard stats.
func (svc *Service) EmployeeDashboard(ctx context.Context) (EmployeeStats, error) {
	resp, err := svc.client.Request(ctx, svc.eps.EmployeeDashboard(), api.Options{Token: svc.token})
	if err != nil {
		return EmployeeStats{}, err
	}
	return api.Object[EmployeeStats](resp, "stats", "dashboard")
}

// LessonCompleted reports whether a playback position counts as having
// finished the lesson: within the last five percent of its duration.
func LessonCompleted(position, duration float64) bool {
	if duration <= 0 {
		return false
	}
	return position >= duration*0.95
}
