package http

import (
	"encoding/json"
	"errors"
	"net/http"

	authmw "github.com/examgate/examgate/internal/auth/middleware"
	"github.com/examgate/examgate/internal/exam"
	"github.com/examgate/examgate/internal/model"
	"github.com/examgate/examgate/internal/rbac"
	"github.com/examgate/examgate/internal/upstream"
)

type attemptView struct {
	State     string               `json:"state"`
	Paper     model.ExamPaper      `json:"paper"`
	Questions []model.ExamQuestion `json:"questions,omitempty"`
	Answers   map[int64]string     `json:"answers"`
}

func viewOf(a *exam.Attempt) attemptView {
	return attemptView{
		State:     a.State().String(),
		Paper:     a.Paper(),
		Questions: a.Questions(),
		Answers:   a.Answers(),
	}
}

// POST /api/attempt — start an attempt for the selected paper: fetch its
// questions, normalize, and enter Answering. On fetch failure the attempt
// stays in Loading; posting again retries.
func StartAttemptHandler(client *upstream.Client, reg *exam.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)
		if _, ok, _ := sess.StudentID(ctx); !ok {
			http.Redirect(w, r, rbac.LoginPath, http.StatusFound)
			return
		}
		paper, ok, err := sess.SelectedExam(ctx)
		if err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Redirect(w, r, recoverPapersPath, http.StatusFound)
			return
		}

		a, found := reg.Get(sess.ID)
		if !found || a.State() != exam.StateLoading || a.Paper().ID != paper.ID {
			a = exam.NewAttempt(paper)
			reg.Start(sess.ID, a)
		}
		gen, err := a.BeginLoad()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		questions, err := client.ExamQuestionsByPaper(ctx, paper.ID)
		if err != nil {
			upstreamError(w, err)
			return
		}
		if err := a.FinishLoad(gen, questions); err != nil {
			// A newer load or attempt superseded this one; drop the result.
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(a))
	}
}

// GET /api/attempt
func GetAttemptHandler(reg *exam.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := authmw.SessionFromContext(r.Context())
		a, ok := reg.Get(sess.ID)
		if !ok {
			http.Redirect(w, r, recoverPapersPath, http.StatusFound)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(a))
	}
}

// PUT /api/attempt/answers {"question_id":..., "answer":"A"} — record or
// overwrite one answer; last write wins.
func AnswerHandler(reg *exam.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := authmw.SessionFromContext(r.Context())
		a, ok := reg.Get(sess.ID)
		if !ok {
			http.Redirect(w, r, recoverPapersPath, http.StatusFound)
			return
		}
		var req struct {
			QuestionID int64  `json:"question_id"`
			Answer     string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		switch err := a.Answer(req.QuestionID, req.Answer); {
		case err == nil:
		case errors.Is(err, exam.ErrUnknownQuestion), errors.Is(err, exam.ErrInvalidAnswer):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"answers": a.Answers()})
	}
}

// POST /api/attempt/submit — score the loaded question set and file the
// record as pending review. Failure leaves the attempt answerable.
func SubmitAttemptHandler(client *upstream.Client, reg *exam.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)
		studentID, ok, err := sess.StudentID(ctx)
		if err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Redirect(w, r, rbac.LoginPath, http.StatusFound)
			return
		}
		a, found := reg.Get(sess.ID)
		if !found {
			http.Redirect(w, r, recoverPapersPath, http.StatusFound)
			return
		}
		total, err := a.Submit(ctx, studentID, client.SubmitExamScore)
		switch {
		case err == nil:
		case errors.Is(err, exam.ErrSubmitted), errors.Is(err, exam.ErrNotAnswering):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		default:
			upstreamError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"score": total})
	}
}
