package http

import (
	"encoding/json"
	"net/http"

	authmw "github.com/examgate/examgate/internal/auth/middleware"
	"github.com/examgate/examgate/internal/exam"
	"github.com/examgate/examgate/internal/model"
	"github.com/examgate/examgate/internal/upstream"
)

// POST /auth/login {"username":..., "password":...}
// On success the session context is (re)written by role: students get
// student_id, teachers get teacher_id, admins get neither.
func LoginHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		info, err := client.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			upstreamError(w, err)
			return
		}

		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)
		if err := sess.Clear(ctx); err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		if err := sess.SetRole(ctx, info.User.Role); err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		_ = sess.SetUsername(ctx, info.User.Username)
		switch info.User.Role {
		case model.RoleStudent:
			if info.Student != nil {
				_ = sess.SetStudentID(ctx, info.Student.ID)
			}
		case model.RoleTeacher:
			if info.Teacher != nil {
				_ = sess.SetTeacherID(ctx, info.Teacher.ID)
			}
		}
		_ = json.NewEncoder(w).Encode(info)
	}
}

// POST /auth/logout — wipe the session and any live attempt with it.
func LogoutHandler(reg *exam.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := authmw.SessionFromContext(r.Context())
		if err := sess.Clear(r.Context()); err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		reg.Drop(sess.ID)
		authmw.DropCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /me restores the session context on page load. An empty role means
// the caller should show the login screen.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := authmw.SessionFromContext(ctx)

		var out struct {
			Role         model.Role       `json:"role"`
			Username     string           `json:"username,omitempty"`
			StudentID    int64            `json:"student_id,omitempty"`
			TeacherID    int64            `json:"teacher_id,omitempty"`
			SelectedExam *model.ExamPaper `json:"selected_exam,omitempty"`
		}
		role, err := sess.Role(ctx)
		if err != nil {
			http.Error(w, "session", http.StatusInternalServerError)
			return
		}
		out.Role = role
		out.Username, _ = sess.Username(ctx)
		if id, ok, _ := sess.StudentID(ctx); ok {
			out.StudentID = id
		}
		if id, ok, _ := sess.TeacherID(ctx); ok {
			out.TeacherID = id
		}
		if p, ok, _ := sess.SelectedExam(ctx); ok {
			out.SelectedExam = &p
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
