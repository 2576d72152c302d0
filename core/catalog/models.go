package catalog

import (
	"io"

	"github.com/elimu-lms/elimu/core"
)

// Course levels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Category struct {
	ID        string `json:"_id"`
	Name      string `json:"category_name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func (c Category) EntityID() string          { return c.ID }
func (c Category) WithID(id string) Category { c.ID = id; return c }

type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	VideoURL    string `json:"videoUrl"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Duration    int    `json:"duration"` // minutes
	IsCompleted bool   `json:"isCompleted,omitempty"`
}

type Chapter struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Course struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Level          string    `json:"level"`
	Language       string    `json:"language"`
	Image          string    `json:"image,omitempty"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"isActive"`
	Chapters       []Chapter `json:"chapters"`
	Instructor     string    `json:"instructor,omitempty"`
	Duration       int       `json:"duration"` // minutes
	EnrolledCount  int       `json:"enrolledCount"`
	CompletionRate int       `json:"completionRate"`
	CreatedAt      string    `json:"createdAt,omitempty"`
}

func (c Course) EntityID() string        { return c.ID }
func (c Course) WithID(id string) Course { c.ID = id; return c }

// File is a selected upload: course image or lesson video. The bytes go
// to object storage; only the returned key lands in any payload.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type CategoryForm struct {
	Name string `json:"category_name" validate:"required"`
}

func (f *CategoryForm) Validate() error {
	f.Name = core.CleanString(f.Name)
	return core.Validate.Struct(f)
}

type LessonForm struct {
	Title    string `json:"title" validate:"required"`
	Duration int    `json:"duration"`
	VideoURL string `json:"videoUrl"`
	Video    *File  `json:"-"`
}

type ChapterForm struct {
	Title   string       `json:"title" validate:"required"`
	Lessons []LessonForm `json:"lessons" validate:"dive"`
}

type CourseForm struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Category    string        `json:"category" validate:"required"`
	Level       string        `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Language    string        `json:"language"`
	Duration    int           `json:"duration"`
	Image       *File         `json:"-"`
	Chapters    []ChapterForm `json:"chapters" validate:"dive"`
}

func (f *CourseForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	return core.Validate.Struct(f)
}
