// Package exam implements the exam-taking core: one attempt per session,
// moving Loading -> Answering -> Submitted, and the scoring over the loaded
// question set.
package exam

import (
	"context"
	"errors"
	"sync"

	"github.com/examgate/examgate/internal/model"
)

type State int

const (
	StateLoading State = iota
	StateAnswering
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnswering:
		return "answering"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	// ErrStaleLoad marks a fetch result arriving after the attempt already
	// moved past the load that issued it; the result is discarded.
	ErrStaleLoad       = errors.New("stale question fetch discarded")
	ErrNotAnswering    = errors.New("attempt is not accepting answers")
	ErrAlreadyLoaded   = errors.New("questions already loaded")
	ErrSubmitted       = errors.New("attempt already submitted")
	ErrUnknownQuestion = errors.New("question not part of this attempt")
	ErrInvalidAnswer   = errors.New("answer is not an option of the question")
)

// Attempt is one student's run at a paper. All methods are safe for the
// one-request-at-a-time access pattern of a session.
type Attempt struct {
	mu        sync.Mutex
	paper     model.ExamPaper
	state     State
	gen       int
	questions []model.ExamQuestion
	answers   map[int64]string
}

// NewAttempt starts an attempt in Loading for the selected paper.
func NewAttempt(paper model.ExamPaper) *Attempt {
	return &Attempt{paper: paper, answers: map[int64]string{}}
}

func (a *Attempt) Paper() model.ExamPaper {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paper
}

func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// BeginLoad announces a question fetch and returns its generation token. A
// failed fetch leaves the attempt in Loading; calling BeginLoad again starts
// the manual retry.
func (a *Attempt) BeginLoad() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateLoading {
		return 0, ErrAlreadyLoaded
	}
	a.gen++
	return a.gen, nil
}

// FinishLoad installs the fetched question set and enters Answering. Results
// from any load other than the most recent one, or arriving after the state
// moved on, are rejected with ErrStaleLoad.
func (a *Attempt) FinishLoad(gen int, questions []model.ExamQuestion) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateLoading || gen != a.gen {
		return ErrStaleLoad
	}
	a.questions = questions
	a.state = StateAnswering
	return nil
}

// Answer records the answer for one question, overwriting any previous one.
// The label must be a key of the question's option map.
func (a *Attempt) Answer(questionID int64, label string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateAnswering {
		if a.state == StateSubmitted {
			return ErrSubmitted
		}
		return ErrNotAnswering
	}
	q, ok := a.findQuestion(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if !q.Options.Has(label) {
		return ErrInvalidAnswer
	}
	a.answers[questionID] = label
	return nil
}

// Questions returns the loaded question set with answer keys stripped.
func (a *Attempt) Questions() []model.ExamQuestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.ExamQuestion, 0, len(a.questions))
	for _, q := range a.questions {
		out = append(out, q.StripAnswer())
	}
	return out
}

// Answers returns a copy of the recorded answer set.
func (a *Attempt) Answers() map[int64]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[int64]string, len(a.answers))
	for k, v := range a.answers {
		out[k] = v
	}
	return out
}

// Submit scores the attempt and posts the record through post. The attempt
// becomes Submitted only when the post succeeds; on failure it stays in
// Answering so the student can submit again. There is no idempotency guard
// beyond the terminal state: a fresh attempt at the same paper produces a
// second, independent score record.
func (a *Attempt) Submit(ctx context.Context, studentID int64, post func(context.Context, model.SubmitScoreRequest) error) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateAnswering {
		if a.state == StateSubmitted {
			return 0, ErrSubmitted
		}
		return 0, ErrNotAnswering
	}
	total := Score(a.questions, a.answers)
	req := model.SubmitScoreRequest{
		StudentID:        studentID,
		PaperID:          a.paper.ID,
		GradingTeacherID: model.PendingTeacherID,
		Score:            total,
		Comments:         "",
	}
	if err := post(ctx, req); err != nil {
		return 0, err
	}
	a.state = StateSubmitted
	return total, nil
}

func (a *Attempt) findQuestion(id int64) (model.ExamQuestion, bool) {
	for _, q := range a.questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.ExamQuestion{}, false
}
