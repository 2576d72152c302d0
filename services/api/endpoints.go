package api

import "strings"

// Endpoints builds the backend's conventional resource paths from the
// configured base URL (eg. http://localhost:4000/api).
type Endpoints struct {
	base string
	root string
}

func NewEndpoints(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		base: base,
		root: strings.TrimSuffix(base, "/api"),
	}
}

// auth

func (e Endpoints) AuthLogin() string          { return e.base + "/auth/login" }
func (e Endpoints) AuthRegister() string       { return e.base + "/auth/register" }
func (e Endpoints) AuthProfile() string        { return e.base + "/auth/profile" }
func (e Endpoints) AuthChangePassword() string { return e.base + "/auth/password" }

// admin

func (e Endpoints) AdminEmployees() string { return e.base + "/admin/employees" }
func (e Endpoints) AdminEmployee(id string) string {
	return e.base + "/admin/employees/" + id
}
func (e Endpoints) AdminEmployeeActivate(id string) string {
	return e.base + "/admin/employees/" + id + "/activate"
}
func (e Endpoints) AdminEmployeeDeactivate(id string) string {
	return e.base + "/admin/employees/" + id + "/deactivate"
}
func (e Endpoints) AdminQuizDeactivate(id string) string {
	return e.base + "/admin/quizzes/" + id + "/deactivate"
}
func (e Endpoints) AdminDashboard() string { return e.base + "/admin/dashboard" }

// categories

func (e Endpoints) Categories() string         { return e.base + "/categories/" }
func (e Endpoints) Category(id string) string  { return e.base + "/categories/" + id }

// courses

func (e Endpoints) Courses() string        { return e.base + "/courses/" }
func (e Endpoints) Course(id string) string { return e.base + "/courses/" + id }
func (e Endpoints) CourseChapters(courseID string) string {
	return e.base + "/courses/" + courseID + "/chapters"
}
func (e Endpoints) ChapterLessons(courseID, chapterID string) string {
	return e.base + "/courses/" + courseID + "/chapters/" + chapterID + "/lessons"
}
func (e Endpoints) PublicCourses() string        { return e.base + "/courses/public/list" }
func (e Endpoints) PublicCourse(id string) string { return e.base + "/courses/public/" + id }

// enrollments

func (e Endpoints) Enroll(courseID string) string {
	return e.base + "/enrollments/" + courseID + "/enroll"
}
func (e Endpoints) MyEnrollments() string { return e.base + "/enrollments/me" }
func (e Endpoints) CompleteLesson(courseID string) string {
	return e.base + "/enrollments/" + courseID + "/complete-lesson"
}
func (e Endpoints) Progress(courseID string) string {
	return e.base + "/enrollments/" + courseID + "/progress"
}
func (e Endpoints) Resume(courseID string) string {
	return e.base + "/enrollments/" + courseID + "/resume"
}

// quizzes

func (e Endpoints) Quizzes() string         { return e.base + "/quizzes" }
func (e Endpoints) Quiz(id string) string   { return e.base + "/quizzes/" + id }
func (e Endpoints) QuizAttempt(id string) string { return e.base + "/quizzes/" + id + "/attempt" }

// misc

func (e Endpoints) Certificates() string      { return e.base + "/certificates" }
func (e Endpoints) EmployeeDashboard() string { return e.base + "/employee/dashboard" }

// MediaURL resolves a stored media path against the backend root.
func (e Endpoints) MediaURL(p string) string {
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return e.root + p
}
