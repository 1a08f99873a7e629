package http

import (
	"encoding/json"
	"net/http"
	"time"

	authmw "github.com/examgate/examgate/internal/auth/middleware"
	"github.com/examgate/examgate/internal/model"
	"github.com/examgate/examgate/internal/rbac"
	"github.com/examgate/examgate/internal/upstream"
)

// GET /api/papers
func ListPapersHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		papers, err := client.ListExamPapers(r.Context())
		if err != nil {
			upstreamError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(papers)
	}
}

// POST /api/papers/select — persist the chosen paper blob under
// selectedExam so the question and attempt flows can restore it.
func SelectPaperHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var paper model.ExamPaper
		if err := json.NewDecoder(r.Body).Decode(&paper); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if paper.ID == 0 {
			http.Error(w, "paper id required", http.StatusBadRequest)
			return
		}
		sess := authmw.SessionFromContext(r.Context())
		if err := sess.SetSelectedExam(r.Context(), paper); err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(paper)
	}
}

// GET /api/papers/selected/questions — review view of the selected paper's
// questions, answer keys stripped.
func SelectedQuestionsHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)
		paper, ok, err := sess.SelectedExam(ctx)
		if err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Redirect(w, r, recoverPapersPath, http.StatusFound)
			return
		}
		questions, err := client.ExamQuestionsByPaper(ctx, paper.ID)
		if err != nil {
			upstreamError(w, err)
			return
		}
		out := make([]model.ExamQuestion, 0, len(questions))
		for _, q := range questions {
			out = append(out, q.StripAnswer())
		}
		_ = json.NewEncoder(w).Encode(struct {
			Paper     model.ExamPaper      `json:"paper"`
			Questions []model.ExamQuestion `json:"questions"`
		}{paper, out})
	}
}

type createPaperReq struct {
	Name        string               `json:"name"`
	Duration    int                  `json:"duration"`
	Description string               `json:"description"`
	Questions   []model.ExamQuestion `json:"questions"`
}

// POST /api/papers — author a paper with its questions. The gateway stamps
// add_time, marks the paper published, and fills teacher_id from the
// session.
func CreatePaperHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)
		teacherID, ok, err := sess.TeacherID(ctx)
		if err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Redirect(w, r, rbac.LoginPath, http.StatusFound)
			return
		}

		var req createPaperReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Name == "" || len(req.Questions) == 0 {
			http.Error(w, "name and questions required", http.StatusBadRequest)
			return
		}
		for _, q := range req.Questions {
			if !q.Options.Has(q.CorrectAnswer) {
				http.Error(w, "correct_answer must be an option label", http.StatusBadRequest)
				return
			}
		}

		now := model.FormatAddTime(time.Now())
		create := model.CreatePaperRequest{
			ExamPaper: model.ExamPaper{
				AddTime:     now,
				Name:        req.Name,
				Duration:    req.Duration,
				Status:      model.PaperPublished,
				Description: req.Description,
				TeacherID:   teacherID,
			},
		}
		for _, q := range req.Questions {
			q.AddTime = now
			create.ExamQuestions = append(create.ExamQuestions, q)
		}
		if err := client.CreateExamPaper(ctx, create); err != nil {
			upstreamError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "created"})
	}
}
