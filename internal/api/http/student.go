package http

import (
	"encoding/json"
	"net/http"

	authmw "github.com/examgate/examgate/internal/auth/middleware"
	"github.com/examgate/examgate/internal/rbac"
	"github.com/examgate/examgate/internal/upstream"
)

// GET /api/scores — the logged-in student's own score history. Rows with
// grading_teacher_id == 0 are still pending review.
func MyScoresHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)
		studentID, ok, err := sess.StudentID(ctx)
		if err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		if !ok {
			// No student id in session: log in again.
			http.Redirect(w, r, rbac.LoginPath, http.StatusFound)
			return
		}
		scores, err := client.ExamScoresByStudent(ctx, studentID)
		if err != nil {
			upstreamError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(scores)
	}
}
