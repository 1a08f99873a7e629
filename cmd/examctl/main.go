// examctl is a terminal client for the exam API: the same login, paper,
// attempt, and grading flows as the web gateway, driven from stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/examgate/examgate/internal/config"
	"github.com/examgate/examgate/internal/exam"
	"github.com/examgate/examgate/internal/model"
	"github.com/examgate/examgate/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	color.Cyan("=== examgate terminal client (%s) ===", cfg.UpstreamBaseURL)

	info, err := login(ctx, client, in)
	if err != nil {
		color.Red("login failed: %v", err)
		os.Exit(1)
	}
	color.Green("welcome, %s (%s)", info.User.Username, info.User.Role)

	for {
		displayMenu(info.User.Role)
		choice := readLine(in, "> ")
		switch {
		case choice == "0":
			color.Green("bye")
			return
		case choice == "1":
			listPapers(ctx, client)
		case choice == "2" && info.User.Role == model.RoleStudent:
			takeExam(ctx, client, in, info)
		case choice == "3" && info.User.Role == model.RoleStudent:
			myScores(ctx, client, info)
		case choice == "2" && info.User.Role == model.RoleTeacher:
			allScores(ctx, client)
		case choice == "3" && info.User.Role == model.RoleTeacher:
			gradeScore(ctx, client, in, info)
		default:
			color.Red("invalid choice, try again")
		}
	}
}

func displayMenu(role model.Role) {
	fmt.Println()
	color.Yellow("1. List exam papers")
	switch role {
	case model.RoleStudent:
		color.Yellow("2. Take an exam")
		color.Yellow("3. My scores")
	case model.RoleTeacher:
		color.Yellow("2. All student scores")
		color.Yellow("3. Grade a pending score")
	}
	color.Yellow("0. Quit")
}

func login(ctx context.Context, client *upstream.Client, in *bufio.Scanner) (model.UserAndInfo, error) {
	username := readLine(in, "username: ")
	password := readLine(in, "password: ")
	return client.Login(ctx, username, password)
}

func listPapers(ctx context.Context, client *upstream.Client) {
	papers, err := client.ListExamPapers(ctx)
	if err != nil {
		color.Red("could not fetch papers: %v", err)
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Duration (min)", "Description", "Added"})
	for _, p := range papers {
		table.Append([]string{
			strconv.FormatInt(p.ID, 10), p.Name,
			strconv.Itoa(p.Duration), p.Description, p.AddTime,
		})
	}
	table.Render()
}

func takeExam(ctx context.Context, client *upstream.Client, in *bufio.Scanner, info model.UserAndInfo) {
	if info.Student == nil {
		color.Red("no student record on this account")
		return
	}
	id, err := strconv.ParseInt(readLine(in, "paper id: "), 10, 64)
	if err != nil {
		color.Red("paper id must be a number")
		return
	}

	a := exam.NewAttempt(model.ExamPaper{ID: id})
	gen, _ := a.BeginLoad()
	questions, err := client.ExamQuestionsByPaper(ctx, id)
	if err != nil {
		color.Red("could not fetch questions: %v", err)
		return
	}
	if err := a.FinishLoad(gen, questions); err != nil {
		color.Red("%v", err)
		return
	}

	for _, q := range a.Questions() {
		fmt.Println()
		color.Cyan("%s  (%d pts)", q.Question, q.Score)
		for _, label := range q.Options.Labels() {
			fmt.Printf("  %s. %s\n", label, q.Options[label])
		}
		for {
			answer := strings.ToUpper(readLine(in, "answer (empty to skip): "))
			if answer == "" {
				break
			}
			if err := a.Answer(q.ID, answer); err != nil {
				color.Red("%v", err)
				continue
			}
			break
		}
	}

	total, err := a.Submit(ctx, info.Student.ID, client.SubmitExamScore)
	if err != nil {
		color.Red("submit failed: %v", err)
		return
	}
	color.Green("submitted; score %d (pending review)", total)
}

func myScores(ctx context.Context, client *upstream.Client, info model.UserAndInfo) {
	if info.Student == nil {
		color.Red("no student record on this account")
		return
	}
	scores, err := client.ExamScoresByStudent(ctx, info.Student.ID)
	if err != nil {
		color.Red("could not fetch scores: %v", err)
		return
	}
	renderScores(scores)
}

func allScores(ctx context.Context, client *upstream.Client) {
	scores, err := client.AllStudentScores(ctx)
	if err != nil {
		color.Red("could not fetch scores: %v", err)
		return
	}
	renderScores(scores)
}

func gradeScore(ctx context.Context, client *upstream.Client, in *bufio.Scanner, info model.UserAndInfo) {
	if info.Teacher == nil {
		color.Red("no teacher record on this account")
		return
	}
	scores, err := client.AllStudentScores(ctx)
	if err != nil {
		color.Red("could not fetch scores: %v", err)
		return
	}
	pending := scores[:0:0]
	for _, s := range scores {
		if s.Pending() {
			pending = append(pending, s)
		}
	}
	if len(pending) == 0 {
		color.Green("nothing pending review")
		return
	}
	renderScores(pending)

	id, err := strconv.ParseInt(readLine(in, "score id: "), 10, 64)
	if err != nil {
		color.Red("score id must be a number")
		return
	}
	var target *model.ExamScore
	for i := range pending {
		if pending[i].ID == id {
			target = &pending[i]
			break
		}
	}
	if target == nil {
		color.Red("score %d is not pending", id)
		return
	}
	comments := readLine(in, "comments: ")

	err = client.GradeExam(ctx, model.GradeRequest{
		StudentID:        target.StudentID,
		PaperID:          target.PaperID,
		GradingTeacherID: info.Teacher.ID,
		Comments:         comments,
		Score:            target.Score,
		ScoreID:          target.ID,
	})
	if err != nil {
		color.Red("grading failed: %v", err)
		return
	}
	color.Green("graded score %d", id)
}

func renderScores(scores []model.ExamScore) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Student", "Paper", "Score", "Comments", "Added"})
	for _, s := range scores {
		score, comments := strconv.Itoa(s.Score), s.Comments
		if s.Pending() {
			score, comments = "pending", ""
		}
		table.Append([]string{
			strconv.FormatInt(s.ID, 10), s.StudentName, s.PaperName,
			score, comments, s.AddTime,
		})
	}
	table.Render()
}

func readLine(in *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
