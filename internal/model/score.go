package model

// PendingTeacherID is the grading_teacher_id sentinel meaning "ungraded".
// Every other value means a teacher has reviewed the score.
const PendingTeacherID = 0

type ExamScore struct {
	ID               int64  `json:"id"`
	PaperID          int64  `json:"paper_id"`
	PaperName        string `json:"paper_name"`
	StudentID        int64  `json:"student_id"`
	StudentName      string `json:"student_name"`
	GradingTeacherID int64  `json:"grading_teacher_id"`
	Score            int    `json:"score"`
	Comments         string `json:"comments"`
	AddTime          string `json:"add_time"`
}

// Pending reports whether the score still awaits teacher review.
func (s ExamScore) Pending() bool {
	return s.GradingTeacherID == PendingTeacherID
}

// SubmitScoreRequest records a fresh attempt result. GradingTeacherID is
// always PendingTeacherID and Comments empty at submission time.
type SubmitScoreRequest struct {
	StudentID        int64  `json:"student_id"`
	PaperID          int64  `json:"paper_id"`
	GradingTeacherID int64  `json:"grading_teacher_id"`
	Score            int    `json:"score"`
	Comments         string `json:"comments"`
}

// GradeRequest attaches a reviewing teacher and comments to an existing
// score record. The score value itself is carried through unchanged.
type GradeRequest struct {
	StudentID        int64  `json:"student_id"`
	PaperID          int64  `json:"paper_id"`
	GradingTeacherID int64  `json:"grading_teacher_id"`
	Comments         string `json:"comments"`
	Score            int    `json:"score"`
	ScoreID          int64  `json:"score_id"`
}
