// Package session holds the per-user session context: the small set of
// persisted keys (role, username, student_id, teacher_id, selectedExam) that
// gate page access and carry cross-page selections. The key names and their
// string encoding are load-bearing; other components read them verbatim.
package session

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/examgate/examgate/internal/model"
)

const (
	KeyRole         = "role"
	KeyUsername     = "username"
	KeyStudentID    = "student_id"
	KeyTeacherID    = "teacher_id"
	KeySelectedExam = "selectedExam"
)

// Session binds a Store to one session ID and adds typed accessors over the
// raw string keys. It is passed explicitly to every flow that needs it —
// there is no process-global session state.
type Session struct {
	ID    string
	store Store
}

func New(store Store, id string) *Session {
	return &Session{ID: id, store: store}
}

func (s *Session) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.ID, key, value)
}

func (s *Session) Get(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, s.ID, key)
}

func (s *Session) Remove(ctx context.Context, key string) error {
	return s.store.Remove(ctx, s.ID, key)
}

// Clear wipes the whole session, as logout does.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.ID)
}

// Role returns the stored role, or "" when absent.
func (s *Session) Role(ctx context.Context) (model.Role, error) {
	v, ok, err := s.Get(ctx, KeyRole)
	if err != nil || !ok {
		return "", err
	}
	return model.Role(v), nil
}

func (s *Session) SetRole(ctx context.Context, r model.Role) error {
	return s.Set(ctx, KeyRole, string(r))
}

func (s *Session) Username(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, KeyUsername)
	return v, err
}

func (s *Session) SetUsername(ctx context.Context, name string) error {
	return s.Set(ctx, KeyUsername, name)
}

// StudentID returns the stored student row ID. ok is false when the key is
// absent or not numeric.
func (s *Session) StudentID(ctx context.Context) (int64, bool, error) {
	return s.intKey(ctx, KeyStudentID)
}

func (s *Session) SetStudentID(ctx context.Context, id int64) error {
	return s.Set(ctx, KeyStudentID, strconv.FormatInt(id, 10))
}

func (s *Session) TeacherID(ctx context.Context) (int64, bool, error) {
	return s.intKey(ctx, KeyTeacherID)
}

func (s *Session) SetTeacherID(ctx context.Context, id int64) error {
	return s.Set(ctx, KeyTeacherID, strconv.FormatInt(id, 10))
}

func (s *Session) intKey(ctx context.Context, key string) (int64, bool, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	n, perr := strconv.ParseInt(v, 10, 64)
	if perr != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// SelectedExam returns the paper persisted at selection time, if any.
func (s *Session) SelectedExam(ctx context.Context) (model.ExamPaper, bool, error) {
	v, ok, err := s.Get(ctx, KeySelectedExam)
	if err != nil || !ok {
		return model.ExamPaper{}, false, err
	}
	var p model.ExamPaper
	if uerr := json.Unmarshal([]byte(v), &p); uerr != nil {
		return model.ExamPaper{}, false, nil
	}
	return p, true, nil
}

func (s *Session) SetSelectedExam(ctx context.Context, p model.ExamPaper) error {
	buf, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Set(ctx, KeySelectedExam, string(buf))
}
