package http

import (
	"encoding/json"
	"net/http"

	authmw "github.com/examgate/examgate/internal/auth/middleware"
	"github.com/examgate/examgate/internal/model"
	"github.com/examgate/examgate/internal/rbac"
	"github.com/examgate/examgate/internal/upstream"
)

// GET /api/scores/all — every student score; pending rows carry
// grading_teacher_id == 0 and are the ones offering review.
func AllScoresHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scores, err := client.AllStudentScores(r.Context())
		if err != nil {
			upstreamError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(scores)
	}
}

type gradeReq struct {
	ScoreID  int64  `json:"score_id"`
	Comments string `json:"comments"`
}

// POST /api/scores/grade — attach the current teacher and comments to a
// score. The score value is read-only in this flow: it is looked up from
// the stored record, never taken from the request. The response is the
// refetched full list, never a local patch.
func GradeHandler(client *upstream.Client) http.HandlerFunc {
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
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.ScoreID == 0 {
			http.Error(w, "score_id required", http.StatusBadRequest)
			return
		}
		scores, err := client.AllStudentScores(ctx)
		if err != nil {
			upstreamError(w, err)
			return
		}
		var target *model.ExamScore
		for i := range scores {
			if scores[i].ID == req.ScoreID {
				target = &scores[i]
				break
			}
		}
		if target == nil {
			http.Error(w, "score not found", http.StatusNotFound)
			return
		}
		err = client.GradeExam(ctx, model.GradeRequest{
			StudentID:        target.StudentID,
			PaperID:          target.PaperID,
			GradingTeacherID: teacherID,
			Comments:         req.Comments,
			Score:            target.Score,
			ScoreID:          req.ScoreID,
		})
		if err != nil {
			upstreamError(w, err)
			return
		}
		scores, err = client.AllStudentScores(ctx)
		if err != nil {
			upstreamError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(scores)
	}
}
