// Package upstream is the typed client for the remote exam API. Every call
// is stateless and all-or-nothing: no retry, no backoff, no partial results.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/examgate/examgate/internal/model"
)

type Client struct {
	base string
	http *http.Client
}

// New builds a client against the fixed API origin, e.g.
// "http://127.0.0.1:8080".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Login authenticates and returns the user with its role sub-record.
// Invalid credentials come back as *AuthError carrying the server's message.
func (c *Client) Login(ctx context.Context, username, password string) (model.UserAndInfo, error) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", bytes.NewReader(body))
	if err != nil {
		return model.UserAndInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return model.UserAndInfo{}, fmt.Errorf("login: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&e) == nil && e.Error != "" {
			return model.UserAndInfo{}, &AuthError{Message: e.Error}
		}
		return model.UserAndInfo{}, &StatusError{Op: "login", Status: res.StatusCode}
	}
	var out model.UserAndInfo
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return model.UserAndInfo{}, fmt.Errorf("login: decode: %w", err)
	}
	return out, nil
}

func (c *Client) AllUsersAndInfo(ctx context.Context) ([]model.UserAndInfo, error) {
	var out []model.UserAndInfo
	if err := c.getJSON(ctx, "/getAllUsersAndInfo", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUserWithType sends the user plus both sub-objects; the one that does
// not match the role is empty and ignored server-side.
func (c *Client) CreateUserWithType(ctx context.Context, req model.CreateUserRequest) (model.UserAndInfo, error) {
	var out model.UserAndInfo
	if err := c.postJSON(ctx, "/createUserWithType", req, &out); err != nil {
		return model.UserAndInfo{}, err
	}
	return out, nil
}

func (c *Client) ExamScoresByStudent(ctx context.Context, studentID int64) ([]model.ExamScore, error) {
	var out []model.ExamScore
	if err := c.getJSON(ctx, fmt.Sprintf("/getExamScoresByStudentID/%d", studentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllStudentScores(ctx context.Context) ([]model.ExamScore, error) {
	var out []model.ExamScore
	if err := c.getJSON(ctx, "/getAllStudentScores", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GradeExam(ctx context.Context, req model.GradeRequest) error {
	return c.postJSON(ctx, "/gradeExam", req, nil)
}

func (c *Client) ListExamPapers(ctx context.Context) ([]model.ExamPaper, error) {
	var out []model.ExamPaper
	if err := c.getJSON(ctx, "/exampaper", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExamQuestionsByPaper fetches a paper's questions. The server may answer
// with a single object instead of a one-element list; both shapes come back
// as a slice with options already parsed.
func (c *Client) ExamQuestionsByPaper(ctx context.Context, paperID int64) ([]model.ExamQuestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/examquestionByExamPaperID/%d", c.base, paperID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exam questions: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, &StatusError{Op: "exam questions", Status: res.StatusCode}
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("exam questions: %w", err)
	}
	return decodeQuestions(body)
}

// CreateExamPaper submits a paper with its questions. Options are serialized
// to the text-blob wire form here.
func (c *Client) CreateExamPaper(ctx context.Context, req model.CreatePaperRequest) error {
	wires := make([]questionWire, 0, len(req.ExamQuestions))
	for _, q := range req.ExamQuestions {
		w, err := questionToWire(q)
		if err != nil {
			return err
		}
		wires = append(wires, w)
	}
	return c.postJSON(ctx, "/createExamPaperAQuestion", createPaperWire{
		ExamPaper:     req.ExamPaper,
		ExamQuestions: wires,
	}, nil)
}

func (c *Client) SubmitExamScore(ctx context.Context, req model.SubmitScoreRequest) error {
	return c.postJSON(ctx, "/examscores", req, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return &StatusError{Op: "GET " + path, Status: res.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return &StatusError{Op: "POST " + path, Status: res.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("POST %s: decode: %w", path, err)
	}
	return nil
}
