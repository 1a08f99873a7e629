package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/examgate/examgate/internal/model"
)

func newClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestLoginSuccess(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["username"] != "zoe" || req["password"] != "pw" {
			t.Errorf("credentials not forwarded: %v", req)
		}
		_ = json.NewEncoder(w).Encode(model.UserAndInfo{
			User:    model.User{ID: 1, Username: "zoe", Role: model.RoleStudent},
			Student: &model.Student{ID: 42, UserID: 1, StudentID: "S-42"},
		})
	}))

	info, err := c.Login(context.Background(), "zoe", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if info.User.Role != model.RoleStudent || info.Student == nil || info.Student.ID != 42 {
		t.Fatalf("Login = %+v", info)
	}
}

func TestLoginAuthErrorVerbatim(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "wrong username or password"})
	}))

	_, err := c.Login(context.Background(), "zoe", "nope")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AuthError", err)
	}
	if ae.Message != "wrong username or password" {
		t.Fatalf("message = %q, want server text verbatim", ae.Message)
	}
}

func TestLoginNonJSONFailure(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))

	_, err := c.Login(context.Background(), "zoe", "pw")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusGatewayTimeout {
		t.Fatalf("error = %v, want *StatusError 504", err)
	}
}

const optionsBlob = `{"A":"red","B":"green"}`

func wireQuestion(id int64) questionWire {
	return questionWire{ID: id, Question: "pick one", Options: optionsBlob, Score: 5, CorrectAnswer: "A"}
}

func TestQuestionsListShape(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/examquestionByExamPaperID/9" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]questionWire{wireQuestion(1), wireQuestion(2)})
	}))

	qs, err := c.ExamQuestionsByPaper(context.Background(), 9)
	if err != nil {
		t.Fatalf("ExamQuestionsByPaper: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}
	if qs[0].Options["A"] != "red" || qs[0].Options["B"] != "green" {
		t.Fatalf("options not parsed: %+v", qs[0].Options)
	}
}

func TestQuestionsSingleObjectShape(t *testing.T) {
	// Single-question papers come back as a bare object; it must normalize
	// to the exact same slice a one-element list would yield.
	single := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireQuestion(1))
	}))
	list := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]questionWire{wireQuestion(1)})
	}))

	fromSingle, err := single.ExamQuestionsByPaper(context.Background(), 9)
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	fromList, err := list.ExamQuestionsByPaper(context.Background(), 9)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fromSingle) != 1 || len(fromList) != 1 {
		t.Fatalf("lengths = %d, %d; want 1, 1", len(fromSingle), len(fromList))
	}
	a, _ := json.Marshal(fromSingle)
	b, _ := json.Marshal(fromList)
	if string(a) != string(b) {
		t.Fatalf("shapes disagree:\n%s\n%s", a, b)
	}
}

func TestQuestionsBadOptionsBlob(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := wireQuestion(1)
		q.Options = "not json"
		_ = json.NewEncoder(w).Encode(q)
	}))
	if _, err := c.ExamQuestionsByPaper(context.Background(), 9); err == nil {
		t.Fatal("want error for malformed options blob")
	}
}

var addTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestCreateExamPaperWireFormat(t *testing.T) {
	var got createPaperWire
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/createExamPaperAQuestion" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))

	now := model.FormatAddTime(time.Now())
	err := c.CreateExamPaper(context.Background(), model.CreatePaperRequest{
		ExamPaper: model.ExamPaper{
			AddTime: now, Name: "quiz", Duration: 30,
			Status: model.PaperPublished, TeacherID: 3,
		},
		ExamQuestions: []model.ExamQuestion{{
			Question: "pick one",
			Options:  model.OptionMap{"A": "red", "B": "green"},
			Score:    5, CorrectAnswer: "A", AddTime: now,
		}},
	})
	if err != nil {
		t.Fatalf("CreateExamPaper: %v", err)
	}
	if !addTimeRe.MatchString(got.ExamPaper.AddTime) {
		t.Fatalf("add_time %q not in wire format", got.ExamPaper.AddTime)
	}
	if len(got.ExamQuestions) != 1 {
		t.Fatalf("questions = %d, want 1", len(got.ExamQuestions))
	}
	// Options must travel as a serialized text blob, not an object.
	var opts model.OptionMap
	if err := json.Unmarshal([]byte(got.ExamQuestions[0].Options), &opts); err != nil {
		t.Fatalf("options blob not parseable: %v", err)
	}
	if opts["B"] != "green" {
		t.Fatalf("options roundtrip = %v", opts)
	}
}

func TestSubmitExamScorePayload(t *testing.T) {
	var got model.SubmitScoreRequest
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/examscores" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))

	err := c.SubmitExamScore(context.Background(), model.SubmitScoreRequest{
		StudentID: 42, PaperID: 9, GradingTeacherID: model.PendingTeacherID, Score: 5,
	})
	if err != nil {
		t.Fatalf("SubmitExamScore: %v", err)
	}
	if got.GradingTeacherID != 0 || got.Comments != "" || got.Score != 5 {
		t.Fatalf("payload = %+v", got)
	}
}

func TestGradeExamPayload(t *testing.T) {
	var got model.GradeRequest
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gradeExam" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))

	err := c.GradeExam(context.Background(), model.GradeRequest{
		StudentID: 42, PaperID: 9, GradingTeacherID: 3,
		Comments: "solid work", Score: 5, ScoreID: 77,
	})
	if err != nil {
		t.Fatalf("GradeExam: %v", err)
	}
	if got.GradingTeacherID != 3 || got.ScoreID != 77 || got.Comments != "solid work" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestCreateUserWithTypeKeepsBothSubObjects(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_ = json.NewEncoder(w).Encode(model.UserAndInfo{User: model.User{ID: 5}})
	}))

	_, err := c.CreateUserWithType(context.Background(), model.CreateUserRequest{
		User:    model.User{Username: "amy", Role: model.RoleStudent},
		Student: model.Student{StudentID: "S-1"},
	})
	if err != nil {
		t.Fatalf("CreateUserWithType: %v", err)
	}
	// Both sub-objects are always transmitted; the teacher one is empty.
	if string(raw["teacher"]) != "{}" {
		t.Fatalf("teacher sub-object = %s, want {}", raw["teacher"])
	}
	if string(raw["student"]) == "{}" {
		t.Fatalf("student sub-object should be populated, got %s", raw["student"])
	}
}
