package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core"
	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/fallback"
	"github.com/elimu-lms/elimu/storage/kv"
)

// Storage prefixes for course media.
const (
	imageDir = "courses/images"
	videoDir = "courses/videos"
)

type CourseScreen struct {
	*editing.Controller[Course]

	client *api.Client
	eps    api.Endpoints
	store  core.ObjectStore
	token  string
}

// MountCourses chooses the screen's data source from token presence and
// loads the course list.
func MountCourses(ctx context.Context, client *api.Client, eps api.Endpoints, kvStore *kv.Store, store core.ObjectStore, token string) (*CourseScreen, error) {
	remote := editing.NewRemote[Course](client, token, editing.Paths{
		List:   eps.Courses(),
		Create: eps.Courses(),
		Item:   eps.Course,
	}, []string{"courses"}, []string{"course"})
	local := editing.NewLocal(fallback.NewList(kvStore, coursesKey, SeedCourses()))

	ctrl, err := editing.Mount[Course](ctx, token, remote, local)
	if err != nil {
		return nil, err
	}
	return &CourseScreen{Controller: ctrl, client: client, eps: eps, store: store, token: token}, nil
}

// CreateCourse uploads the selected media first, then writes the course
// through the mounted source. The image goes up before any video, and
// videos go up strictly in lesson order; the first failed upload aborts
// the whole save and nothing is written.
func (s *CourseScreen) CreateCourse(ctx context.Context, form CourseForm) (Course, error) {
	if err := form.Validate(); err != nil {
		return Course{}, err
	}

	course := Course{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Level:       form.Level,
		Language:    form.Language,
		Duration:    form.Duration,
		Status:      StatusDraft,
		IsActive:    true,
		Chapters:    chaptersFromForms(form.Chapters, 0),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.uploadMedia(ctx, form, &course); err != nil {
		return Course{}, err
	}
	return s.Create(ctx, course)
}

// UpdateCourse rebuilds the course from the form, keeping server-owned
// fields from the visible item, and follows the same upload-first,
// abort-on-failure sequence as CreateCourse.
func (s *CourseScreen) UpdateCourse(ctx context.Context, id string, form CourseForm) (Course, error) {
	if err := form.Validate(); err != nil {
		return Course{}, err
	}

	course := Course{ID: id, Status: StatusDraft, IsActive: true}
	for _, existing := range s.Items() {
		if existing.ID == id {
			course = existing
			break
		}
	}
	course.Title = form.Title
	course.Description = form.Description
	course.Category = form.Category
	course.Level = form.Level
	course.Language = form.Language
	course.Duration = form.Duration
	course.Chapters = chaptersFromForms(form.Chapters, 0)
	if err := s.uploadMedia(ctx, form, &course); err != nil {
		return Course{}, err
	}
	return s.Update(ctx, id, course)
}

// DeleteCourse removes the course through the mounted source; the
// backend treats the delete as a deactivation.
func (s *CourseScreen) DeleteCourse(ctx context.Context, id string) error {
	return s.Delete(ctx, id)
}

// AddChapter appends a chapter to the course. Remote mounts post to the
// chapters endpoint and reload the list; local mounts rewrite the
// stored course. Lesson videos upload first either way.
func (s *CourseScreen) AddChapter(ctx context.Context, courseID string, form ChapterForm) error {
	if err := core.Validate.Struct(&form); err != nil {
		return err
	}

	course, ok := s.find(courseID)
	if !ok {
		return editing.ErrNotFound
	}
	chapter := chapterFromForm(form, len(course.Chapters))
	for i, lf := range form.Lessons {
		key, err := s.uploadVideo(ctx, lf)
		if err != nil {
			return err
		}
		if key != "" {
			chapter.Lessons[i].VideoURL = key
		}
	}

	if s.SourceName() == editing.SourceRemote {
		opts := api.Options{Method: "POST", Body: chapter, Token: s.token}
		if _, err := s.client.Request(ctx, s.eps.CourseChapters(courseID), opts); err != nil {
			return err
		}
		return s.Refresh(ctx)
	}
	course.Chapters = append(course.Chapters, chapter)
	_, err := s.Update(ctx, courseID, course)
	return err
}

// AddLesson appends a lesson to one of the course's chapters, uploading
// its video first.
func (s *CourseScreen) AddLesson(ctx context.Context, courseID, chapterID string, form LessonForm) error {
	if err := core.Validate.Struct(&form); err != nil {
		return err
	}

	course, ok := s.find(courseID)
	if !ok {
		return editing.ErrNotFound
	}
	ci := -1
	for i, ch := range course.Chapters {
		if ch.ID == chapterID {
			ci = i
			break
		}
	}
	if ci < 0 {
		return editing.ErrNotFound
	}

	lesson := Lesson{
		ID:       fmt.Sprintf("%s-l%d", chapterID, len(course.Chapters[ci].Lessons)+1),
		Title:    form.Title,
		Duration: form.Duration,
		VideoURL: form.VideoURL,
	}
	key, err := s.uploadVideo(ctx, form)
	if err != nil {
		return err
	}
	if key != "" {
		lesson.VideoURL = key
	}

	if s.SourceName() == editing.SourceRemote {
		opts := api.Options{Method: "POST", Body: lesson, Token: s.token}
		if _, err := s.client.Request(ctx, s.eps.ChapterLessons(courseID, chapterID), opts); err != nil {
			return err
		}
		return s.Refresh(ctx)
	}
	course.Chapters[ci].Lessons = append(course.Chapters[ci].Lessons, lesson)
	_, err = s.Update(ctx, courseID, course)
	return err
}

// uploadMedia runs the save's upload sequence against course: image
// first, then every new lesson video in declaration order. It stops at
// the first failure so no later file is touched.
func (s *CourseScreen) uploadMedia(ctx context.Context, form CourseForm, course *Course) error {
	if form.Image != nil {
		key, err := s.store.Upload(ctx, core.ObjectKey(imageDir, form.Image.Name), form.Image.ContentType, form.Image.Body)
		if err != nil {
			return errors.Wrap(err, "uploading course image")
		}
		course.Image = key
	}
	for ci, ch := range form.Chapters {
		for li, lf := range ch.Lessons {
			key, err := s.uploadVideo(ctx, lf)
			if err != nil {
				return err
			}
			if key != "" {
				course.Chapters[ci].Lessons[li].VideoURL = key
			}
		}
	}
	return nil
}

func (s *CourseScreen) uploadVideo(ctx context.Context, form LessonForm) (string, error) {
	if form.Video == nil {
		return "", nil
	}
	key, err := s.store.Upload(ctx, core.ObjectKey(videoDir, form.Video.Name), form.Video.ContentType, form.Video.Body)
	if err != nil {
		return "", errors.Wrapf(err, "uploading video for lesson %q", form.Title)
	}
	return key, nil
}

func (s *CourseScreen) find(id string) (Course, bool) {
	for _, c := range s.Items() {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// chaptersFromForms numbers chapters and lessons positionally, matching
// the fallback dataset's c1/c1-l1 scheme.
func chaptersFromForms(forms []ChapterForm, offset int) []Chapter {
	chapters := make([]Chapter, len(forms))
	for i, cf := range forms {
		chapters[i] = chapterFromForm(cf, offset+i)
	}
	return chapters
}

func chapterFromForm(form ChapterForm, pos int) Chapter {
	ch := Chapter{
		ID:      fmt.Sprintf("c%d", pos+1),
		Title:   form.Title,
		Lessons: make([]Lesson, len(form.Lessons)),
	}
	for i, lf := range form.Lessons {
		ch.Lessons[i] = Lesson{
			ID:       fmt.Sprintf("%s-l%d", ch.ID, i+1),
			Title:    lf.Title,
			Duration: lf.Duration,
			VideoURL: lf.VideoURL,
		}
	}
	return ch
}

// PublicCourses lists the published catalog without authentication.
func PublicCourses(ctx context.Context, client *api.Client, eps api.Endpoints) ([]Course, error) {
	resp, err := client.Request(ctx, eps.PublicCourses(), api.Options{})
	if err != nil {
		return nil, err
	}
	return api.List[Course](resp, "courses")
}

// PublicCourse fetches one published course without authentication.
func PublicCourse(ctx context.Context, client *api.Client, eps api.Endpoints, id string) (Course, error) {
	resp, err := client.Request(ctx, eps.PublicCourse(id), api.Options{})
	if err != nil {
		return Course{}, err
	}
	return api.Object[Course](resp, "course")
}
