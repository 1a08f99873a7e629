package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/examgate/examgate/internal/model"
)

// On the wire a question's options travel as a serialized JSON text blob,
// not an object. The blob form never leaves this package; everything above
// the client sees model.OptionMap.
type questionWire struct {
	ID            int64  `json:"id"`
	Question      string `json:"question"`
	Options       string `json:"options"`
	Score         int    `json:"score"`
	CorrectAnswer string `json:"correct_answer"`
	PaperID       int64  `json:"paper_id,omitempty"`
	AddTime       string `json:"add_time,omitempty"`
}

func (w questionWire) toModel() (model.ExamQuestion, error) {
	var opts model.OptionMap
	if w.Options != "" {
		if err := json.Unmarshal([]byte(w.Options), &opts); err != nil {
			return model.ExamQuestion{}, fmt.Errorf("question %d: parse options: %w", w.ID, err)
		}
	}
	return model.ExamQuestion{
		ID:            w.ID,
		Question:      w.Question,
		Options:       opts,
		Score:         w.Score,
		CorrectAnswer: w.CorrectAnswer,
		PaperID:       w.PaperID,
		AddTime:       w.AddTime,
	}, nil
}

func questionToWire(q model.ExamQuestion) (questionWire, error) {
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return questionWire{}, fmt.Errorf("question %d: encode options: %w", q.ID, err)
	}
	return questionWire{
		ID:            q.ID,
		Question:      q.Question,
		Options:       string(opts),
		Score:         q.Score,
		CorrectAnswer: q.CorrectAnswer,
		PaperID:       q.PaperID,
		AddTime:       q.AddTime,
	}, nil
}

// decodeQuestions accepts both response shapes of the question endpoint: a
// list, or a bare object for single-question papers. Both normalize to a
// slice before anything downstream can score them.
func decodeQuestions(body []byte) ([]model.ExamQuestion, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	var wires []questionWire
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &wires); err != nil {
			return nil, err
		}
	} else {
		var one questionWire
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, err
		}
		wires = []questionWire{one}
	}
	out := make([]model.ExamQuestion, 0, len(wires))
	for _, w := range wires {
		q, err := w.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

type createPaperWire struct {
	ExamPaper     model.ExamPaper `json:"exam_paper"`
	ExamQuestions []questionWire  `json:"exam_questions"`
}
