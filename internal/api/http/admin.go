package http

import (
	"encoding/json"
	"net/http"

	"github.com/examgate/examgate/internal/model"
	"github.com/examgate/examgate/internal/upstream"
)

// GET /api/users — every user with its role sub-record.
func ListUsersHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := client.AllUsersAndInfo(r.Context())
		if err != nil {
			upstreamError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(users)
	}
}

// POST /api/users — create a user with its role sub-record. Both
// sub-objects always go upstream; the one not matching the role is zeroed
// here so the server sees it empty.
func CreateUserHandler(client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.User.Username == "" {
			http.Error(w, "username required", http.StatusBadRequest)
			return
		}
		if !req.User.Role.Valid() {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		switch req.User.Role {
		case model.RoleStudent:
			req.Teacher = model.Teacher{}
		case model.RoleTeacher:
			req.Student = model.Student{}
		default:
			req.Student = model.Student{}
			req.Teacher = model.Teacher{}
		}
		created, err := client.CreateUserWithType(r.Context(), req)
		if err != nil {
			upstreamError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}
}
