package model

import (
	"sort"
	"time"
)

// TimeLayout is the wire format for add_time values: space-separated, second
// precision, no timezone.
const TimeLayout = "2006-01-02 15:04:05"

// FormatAddTime renders t in the upstream add_time format.
func FormatAddTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// PaperPublished is the only status value the flows interpret.
const PaperPublished = 1

type ExamPaper struct {
	ID          int64  `json:"id"`
	AddTime     string `json:"add_time"`
	Name        string `json:"name"`
	Duration    int    `json:"duration"` // minutes
	Status      int    `json:"status"`
	Description string `json:"description"`
	TeacherID   int64  `json:"teacher_id"`
}

// OptionMap maps a short option label ("A", "B", ...) to its text. Labels are
// not guaranteed exhaustive; the key set is the domain of valid answers.
type OptionMap map[string]string

// Labels returns the option labels in sorted order.
func (m OptionMap) Labels() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Has reports whether label is a valid answer for this option set.
func (m OptionMap) Has(label string) bool {
	_, ok := m[label]
	return ok
}

// ExamQuestion holds the parsed form of a question. On the upstream wire the
// options travel as a serialized text blob; the encode/decode lives in the
// upstream client, never here.
type ExamQuestion struct {
	ID            int64     `json:"id"`
	Question      string    `json:"question"`
	Options       OptionMap `json:"options"`
	Score         int       `json:"score"`
	CorrectAnswer string    `json:"correct_answer,omitempty"`
	PaperID       int64     `json:"paper_id,omitempty"`
	AddTime       string    `json:"add_time,omitempty"`
}

// StripAnswer returns a copy safe to hand to a student view.
func (q ExamQuestion) StripAnswer() ExamQuestion {
	q.CorrectAnswer = ""
	return q
}

// CreatePaperRequest is the authoring payload for a paper and its questions.
type CreatePaperRequest struct {
	ExamPaper     ExamPaper      `json:"exam_paper"`
	ExamQuestions []ExamQuestion `json:"exam_questions"`
}
