package quiz

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/fallback"
	"github.com/elimu-lms/elimu/storage/kv"
)

var ErrNoQuestions = errors.New("quiz has no questions")

type Screen struct {
	*editing.Controller[Quiz]

	client *api.Client
	eps    api.Endpoints
	token  string
}

// Mount chooses the screen's data source from token presence and loads
// the quiz list.
func Mount(ctx context.Context, client *api.Client, eps api.Endpoints, kvStore *kv.Store, token string) (*Screen, error) {
	remote := editing.NewRemote[Quiz](client, token, editing.Paths{
		List:   eps.Quizzes(),
		Create: eps.Quizzes(),
		Item:   eps.Quiz,
	}, []string{"quizzes"}, []string{"quiz"})
	local := editing.NewLocal(fallback.NewList(kvStore, quizzesKey, SeedQuizzes()))

	ctrl, err := editing.Mount[Quiz](ctx, token, remote, local)
	if err != nil {
		return nil, err
	}
	return &Screen{Controller: ctrl, client: client, eps: eps, token: token}, nil
}

func (s *Screen) CreateQuiz(ctx context.Context, form QuizForm) (Quiz, error) {
	if err := form.Validate(); err != nil {
		return Quiz{}, err
	}
	return s.Create(ctx, form.quiz())
}

func (s *Screen) UpdateQuiz(ctx context.Context, id string, form QuizForm) (Quiz, error) {
	if err := form.Validate(); err != nil {
		return Quiz{}, err
	}
	q := form.quiz()
	for _, existing := range s.Items() {
		if existing.ID == id {
			q.IsActive = existing.IsActive
			q.CreatedAt = existing.CreatedAt
			q.CourseTitle = existing.CourseTitle
			break
		}
	}
	return s.Update(ctx, id, q)
}

func (s *Screen) DeleteQuiz(ctx context.Context, id string) error {
	return s.Delete(ctx, id)
}

// Activate marks the quiz active through the mounted source.
func (s *Screen) Activate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

// Deactivate marks the quiz inactive. Remote mounts go through the
// dedicated admin endpoint and patch the visible item; local mounts
// rewrite the stored quiz.
func (s *Screen) Deactivate(ctx context.Context, id string) error {
	if s.SourceName() != editing.SourceRemote {
		return s.setActive(ctx, id, false)
	}
	opts := api.Options{Method: http.MethodPut, Token: s.token}
	if _, err := s.client.Request(ctx, s.eps.AdminQuizDeactivate(id), opts); err != nil {
		return err
	}
	s.Patch(id, func(q Quiz) Quiz { q.IsActive = false; return q })
	return nil
}

func (s *Screen) setActive(ctx context.Context, id string, active bool) error {
	for _, existing := range s.Items() {
		if existing.ID == id {
			existing.IsActive = active
			_, err := s.Update(ctx, id, existing)
			return err
		}
	}
	return editing.ErrNotFound
}

// SubmitAttempt grades the given answers, one option index per
// question. Remote mounts let the backend grade; local mounts grade
// against the stored answer key.
func (s *Screen) SubmitAttempt(ctx context.Context, quizID string, answers []int) (AttemptResult, error) {
	if s.SourceName() == editing.SourceRemote {
		opts := api.Options{
			Method: http.MethodPost,
			Body:   map[string][]int{"answers": answers},
			Token:  s.token,
		}
		resp, err := s.client.Request(ctx, s.eps.QuizAttempt(quizID), opts)
		if err != nil {
			return AttemptResult{}, err
		}
		return api.Object[AttemptResult](resp, "result", "attempt")
	}

	for _, q := range s.Items() {
		if q.ID == quizID {
			return Grade(q, answers)
		}
	}
	return AttemptResult{}, editing.ErrNotFound
}

// Grade scores answers against the quiz's answer key. The score is the
// percentage of correct answers; missing answers count as wrong.
func Grade(q Quiz, answers []int) (AttemptResult, error) {
	if len(q.Questions) == 0 {
		return AttemptResult{}, errors.Wrapf(ErrNoQuestions, "grading %q", q.ID)
	}
	correct := 0
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}
	score := correct * 100 / len(q.Questions)
	return AttemptResult{Score: score, Passed: score >= q.PassingScore}, nil
}
