// Package quiz implements the admin quiz screen and attempt grading.
package quiz

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core"
)

type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
}

type Quiz struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	CourseID     string     `json:"courseId"`
	CourseTitle  string     `json:"courseTitle,omitempty"`
	Questions    []Question `json:"questions"`
	PassingScore int        `json:"passingScore"` // percentage
	IsActive     bool       `json:"isActive"`
	CreatedAt    string     `json:"createdAt,omitempty"`
}

func (q Quiz) EntityID() string      { return q.ID }
func (q Quiz) WithID(id string) Quiz { q.ID = id; return q }

// AttemptResult is the outcome of a submitted quiz attempt.
type AttemptResult struct {
	Score  int  `json:"score"` // percentage
	Passed bool `json:"passed"`
}

type QuestionForm struct {
	Text          string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

type QuizForm struct {
	Title        string         `json:"title" validate:"required"`
	CourseID     string         `json:"courseId" validate:"required"`
	PassingScore int            `json:"passingScore" validate:"gte=0,lte=100"`
	Questions    []QuestionForm `json:"questions" validate:"min=1,dive"`
}

func (f *QuizForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	if err := core.Validate.Struct(f); err != nil {
		return err
	}
	// the validator can't relate an answer index to its own options slice
	for _, q := range f.Questions {
		if q.CorrectAnswer >= len(q.Options) {
			return core.NewValidationError(errors.New("invalid quiz"), core.FieldError{
				Field: "questions",
				Error: "correct answer out of range",
			})
		}
	}
	return nil
}

func (f QuizForm) quiz() Quiz {
	q := Quiz{
		Title:        f.Title,
		CourseID:     f.CourseID,
		PassingScore: f.PassingScore,
		IsActive:     true,
		Questions:    make([]Question, len(f.Questions)),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	for i, qf := range f.Questions {
		q.Questions[i] = Question{
			ID:            questionID(i),
			Text:          qf.Text,
			Options:       qf.Options,
			CorrectAnswer: qf.CorrectAnswer,
		}
	}
	return q
}

func questionID(i int) string { return fmt.Sprintf("q%d", i+1) }
