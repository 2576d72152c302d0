package catalog

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimu-lms/elimu/core/editing"
	dummystore "github.com/elimu-lms/elimu/services/storage/dummy"
	testutil "github.com/elimu-lms/elimu/tests"
)

func mountLocalCourses(t *testing.T) (*CourseScreen, *dummystore.Service) {
	t.Helper()
	client, eps := testClient(t, http.NotFoundHandler())
	store := dummystore.NewService()
	screen, err := MountCourses(context.Background(), client, eps, testutil.OpenKV(t), store, "")
	require.NoError(t, err)
	return screen, store
}

func courseForm(image *File, videos ...*File) CourseForm {
	form := CourseForm{
		Title:    "Go Fundamentals",
		Category: "Web Development",
		Level:    LevelBeginner,
		Language: "English",
		Duration: 40,
		Image:    image,
		Chapters: []ChapterForm{{Title: "Basics"}},
	}
	for i, v := range videos {
		form.Chapters[0].Lessons = append(form.Chapters[0].Lessons, LessonForm{
			Title:    "Lesson",
			Duration: 10 + i,
			Video:    v,
		})
	}
	return form
}

func upload(name string) *File {
	return &File{Name: name, ContentType: "application/octet-stream", Body: strings.NewReader(name)}
}

func Test_CourseScreen_createUploadsImageThenVideosInOrder(t *testing.T) {
	screen, store := mountLocalCourses(t)

	form := courseForm(upload("cover.png"), upload("one.mp4"), upload("two.mp4"))
	created, err := screen.CreateCourse(context.Background(), form)
	require.NoError(t, err)

	require.Len(t, store.Keys, 3)
	assert.Contains(t, store.Keys[0], "courses/images/")
	assert.Contains(t, store.Keys[0], "cover.png")
	assert.Contains(t, store.Keys[1], "one.mp4")
	assert.Contains(t, store.Keys[2], "two.mp4")

	// only returned keys land in the payload
	assert.Equal(t, store.Keys[0], created.Image)
	assert.Equal(t, store.Keys[1], created.Chapters[0].Lessons[0].VideoURL)
	assert.Equal(t, store.Keys[2], created.Chapters[0].Lessons[1].VideoURL)

	items := screen.Items()
	assert.Equal(t, created, items[0])
	assert.Len(t, items, len(SeedCourses())+1)
}

func Test_CourseScreen_firstFailedUploadAbortsSave(t *testing.T) {
	screen, store := mountLocalCourses(t)
	store.FailNext("one.mp4")

	form := courseForm(upload("cover.png"), upload("one.mp4"), upload("two.mp4"))
	_, err := screen.CreateCourse(context.Background(), form)
	assert.ErrorIs(t, err, dummystore.ErrUploadFailed)

	// the image went up before the failure; the later video never did
	require.Len(t, store.Keys, 1)
	assert.Contains(t, store.Keys[0], "cover.png")

	// and no course was written
	assert.Len(t, screen.Items(), len(SeedCourses()))
}

func Test_CourseScreen_failedImageUploadSkipsVideos(t *testing.T) {
	screen, store := mountLocalCourses(t)
	store.FailNext("cover.png")

	form := courseForm(upload("cover.png"), upload("one.mp4"))
	_, err := screen.CreateCourse(context.Background(), form)
	assert.ErrorIs(t, err, dummystore.ErrUploadFailed)
	assert.Empty(t, store.Keys)
	assert.Len(t, screen.Items(), len(SeedCourses()))
}

func Test_CourseScreen_updateKeepsServerOwnedFields(t *testing.T) {
	screen, _ := mountLocalCourses(t)

	form := CourseForm{
		Title:    "Intro to TypeScript, 2nd ed",
		Category: "Web Development",
		Level:    LevelIntermediate,
		Language: "English",
		Duration: 55,
	}
	updated, err := screen.UpdateCourse(context.Background(), "1", form)
	require.NoError(t, err)

	assert.Equal(t, "Intro to TypeScript, 2nd ed", updated.Title)
	assert.Equal(t, LevelIntermediate, updated.Level)
	assert.Equal(t, 156, updated.EnrolledCount)
	assert.Equal(t, 78, updated.CompletionRate)
	assert.Equal(t, "Elijah Murray", updated.Instructor)
	assert.Equal(t, "/typescript-programming-blue-background.jpg", updated.Image)
}

func Test_CourseScreen_addChapterLocal(t *testing.T) {
	screen, store := mountLocalCourses(t)

	form := ChapterForm{
		Title:   "Advanced Topics",
		Lessons: []LessonForm{{Title: "Generics", Duration: 30, Video: upload("generics.mp4")}},
	}
	require.NoError(t, screen.AddChapter(context.Background(), "1", form))

	course, ok := screen.find("1")
	require.True(t, ok)
	require.Len(t, course.Chapters, 3)
	added := course.Chapters[2]
	assert.Equal(t, "c3", added.ID)
	assert.Equal(t, "Advanced Topics", added.Title)
	require.Len(t, added.Lessons, 1)
	assert.Equal(t, "c3-l1", added.Lessons[0].ID)
	assert.Contains(t, added.Lessons[0].VideoURL, "generics.mp4")
	assert.Len(t, store.Keys, 1)
}

func Test_CourseScreen_addLessonLocal(t *testing.T) {
	screen, _ := mountLocalCourses(t)

	form := LessonForm{Title: "Decorators", Duration: 20, VideoURL: "https://example.com/decorators"}
	require.NoError(t, screen.AddLesson(context.Background(), "1", "c2", form))

	course, ok := screen.find("1")
	require.True(t, ok)
	lessons := course.Chapters[1].Lessons
	require.Len(t, lessons, 2)
	assert.Equal(t, "c2-l2", lessons[1].ID)
	assert.Equal(t, "Decorators", lessons[1].Title)
	assert.Equal(t, "https://example.com/decorators", lessons[1].VideoURL)
}

func Test_CourseScreen_addChapterMissingCourse(t *testing.T) {
	screen, _ := mountLocalCourses(t)
	err := screen.AddChapter(context.Background(), "nope", ChapterForm{Title: "X"})
	assert.ErrorIs(t, err, editing.ErrNotFound)
}

func Test_PublicCourses(t *testing.T) {
	client, eps := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/courses/public/list":
			_, _ = w.Write([]byte(`{"courses":[{"_id":"1","title":"Go"}]}`))
		case "/api/courses/public/1":
			_, _ = w.Write([]byte(`{"course":{"_id":"1","title":"Go"}}`))
		default:
			http.NotFound(w, r)
		}
	}))

	courses, err := PublicCourses(context.Background(), client, eps)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go", courses[0].Title)

	course, err := PublicCourse(context.Background(), client, eps, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", course.ID)
}
