package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"lms_backend/internal/grading"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TimeLimitGrace absorbs network and latency variance before the server
// enforces a quiz deadline.
const TimeLimitGrace = 30 * time.Second

// PassBonusPoints is the fixed XP award for passing a quiz.
const PassBonusPoints = 50

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	AttemptRepo    *repository.AttemptRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Progress       *ProgressService
	Points         *PointsService
	Notifications  *NotificationService
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progress *ProgressService,
	points *PointsService,
	notifications *NotificationService,
) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		AttemptRepo:    attemptRepo,
		EnrollmentRepo: enrollmentRepo,
		Progress:       progress,
		Points:         points,
		Notifications:  notifications,
	}
}

// StartAttempt validates enrollment and the attempt ceiling, then opens a new
// attempt. The quiz's questions are snapshotted into the attempt so grading is
// immune to later edits.
func (s *QuizService) StartAttempt(userID, quizID uint) (*model.QuizAttempt, *model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}
	if !quiz.IsPublished {
		return nil, nil, util.ErrQuizNotFound
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, quiz.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrNotEnrolled
		}
		return nil, nil, err
	}

	count, err := s.AttemptRepo.CountForEnrollment(userID, quizID, enrollment.ID)
	if err != nil {
		return nil, nil, err
	}
	if quiz.AttemptsAllowed > 0 && count >= int64(quiz.AttemptsAllowed) {
		return nil, nil, util.ErrMaxAttemptsReached
	}

	snapshot, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:            quizID,
		UserID:            userID,
		EnrollmentID:      enrollment.ID,
		AttemptNumber:     int(count) + 1,
		StartedAt:         time.Now(),
		QuestionsSnapshot: string(snapshot),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, nil, err
	}

	if quiz.RandomizeOrder {
		rand.Shuffle(len(quiz.Questions), func(i, j int) {
			quiz.Questions[i], quiz.Questions[j] = quiz.Questions[j], quiz.Questions[i]
		})
	}

	return attempt, quiz, nil
}

type SubmittedAnswer struct {
	QuestionID     uint   `json:"questionId" binding:"required"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type SubmitResult struct {
	Attempt           *model.QuizAttempt `json:"attempt"`
	Grade             grading.Result     `json:"grade"`
	TimedOut          bool               `json:"timedOut"`
	AttemptsRemaining *int               `json:"attemptsRemaining,omitempty"` // nil = unlimited
}

// SubmitAttempt grades and closes an open attempt. The deadline is checked
// against the server-side start timestamp, never client-reported timing; past
// the limit plus grace the attempt is force-graded with whatever answers
// arrived and the result is flagged as timed out while still carrying a valid
// grade.
func (s *QuizService) SubmitAttempt(userID, attemptID, quizID uint, answers []SubmittedAnswer) (*SubmitResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.QuizID != quizID {
		return nil, util.ErrQuizMismatch
	}
	if attempt.CompletedAt != nil {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.attemptQuestions(attempt)
	if err != nil {
		return nil, err
	}

	answerMap := make(map[uint]string, len(answers))
	for _, a := range answers {
		answerMap[a.QuestionID] = a.SelectedAnswer
	}

	now := time.Now()
	elapsed := now.Sub(attempt.StartedAt)
	timedOut := quiz.TimeLimitMinutes > 0 &&
		elapsed > time.Duration(quiz.TimeLimitMinutes)*time.Minute+TimeLimitGrace

	result := grading.Grade(questions, answerMap, quiz.PassingScore)

	answersJSON, err := json.Marshal(answerMap)
	if err != nil {
		return nil, err
	}

	attempt.CompletedAt = &now
	attempt.Answers = string(answersJSON)
	attempt.ScorePercent = result.ScorePercent
	attempt.Passed = result.Passed
	attempt.TimedOut = timedOut
	attempt.TimeSpentSeconds = int(elapsed.Seconds())

	// Conditional write: a concurrent duplicate submit loses here instead of
	// re-grading a completed attempt.
	ok, err := s.AttemptRepo.Complete(attempt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	monitoring.QuizSubmissions.WithLabelValues(submissionOutcome(result.Passed, timedOut)).Inc()

	res := &SubmitResult{
		Attempt:  attempt,
		Grade:    result,
		TimedOut: timedOut,
	}
	if !result.Passed && quiz.AttemptsAllowed > 0 {
		remaining := quiz.AttemptsAllowed - attempt.AttemptNumber
		if remaining < 0 {
			remaining = 0
		}
		res.AttemptsRemaining = &remaining
	}

	s.afterSubmit(attempt, quiz, res)

	return res, nil
}

// afterSubmit runs the downstream effects of a graded submission. All of them
// are best-effort: the grade is already committed, so failures are logged and
// dropped.
func (s *QuizService) afterSubmit(attempt *model.QuizAttempt, quiz *model.Quiz, res *SubmitResult) {
	enrollment, err := s.EnrollmentRepo.FindByID(attempt.EnrollmentID)
	if err == nil {
		if err := s.Progress.Recompute(enrollment); err != nil {
			logger.Log.Warn("progress recompute failed after quiz submission",
				zap.Uint("enrollmentId", attempt.EnrollmentID), zap.Error(err))
		}
	}

	if attempt.Passed {
		if err := s.Points.Award(attempt.UserID, PassBonusPoints, "quiz passed", attemptReference(attempt.ID)); err != nil {
			logger.Log.Warn("points award failed",
				zap.Uint("attemptId", attempt.ID), zap.Error(err))
		}
		s.Notifications.Notify(attempt.UserID, model.NotifyQuizPassed,
			"Quiz passed",
			fmt.Sprintf("You passed %q with %d%%.", quiz.Title, attempt.ScorePercent))
		return
	}

	message := fmt.Sprintf("You scored %d%% on %q. You can retry this quiz.", attempt.ScorePercent, quiz.Title)
	if res.AttemptsRemaining != nil {
		message = fmt.Sprintf("You scored %d%% on %q. Attempts remaining: %d.",
			attempt.ScorePercent, quiz.Title, *res.AttemptsRemaining)
	}
	s.Notifications.Notify(attempt.UserID, model.NotifyQuizRetry, "Quiz completed", message)
}

// attemptQuestions loads the question set the attempt was started with,
// falling back to the live quiz questions for legacy rows without a snapshot.
func (s *QuizService) attemptQuestions(attempt *model.QuizAttempt) ([]model.Question, error) {
	if attempt.QuestionsSnapshot != "" {
		var questions []model.Question
		if err := json.Unmarshal([]byte(attempt.QuestionsSnapshot), &questions); err == nil && len(questions) > 0 {
			return questions, nil
		}
	}
	quiz, err := s.QuizRepo.FindByIDWithQuestions(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	return quiz.Questions, nil
}

// GetAttemptResult returns a completed attempt with its per-question details,
// honoring the quiz's show-answers flag.
func (s *QuizService) GetAttemptResult(userID, attemptID uint) (*SubmitResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.CompletedAt == nil {
		return nil, util.ErrAttemptNotFound
	}

	quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	res := &SubmitResult{Attempt: attempt, TimedOut: attempt.TimedOut}
	if !quiz.ShowResults {
		return res, nil
	}

	questions, err := s.attemptQuestions(attempt)
	if err != nil {
		return nil, err
	}
	var answerMap map[uint]string
	if err := json.Unmarshal([]byte(attempt.Answers), &answerMap); err != nil {
		answerMap = map[uint]string{}
	}

	// Grading is deterministic, so re-display is a re-run, never a re-score.
	res.Grade = grading.Grade(questions, answerMap, quiz.PassingScore)
	if !quiz.ShowAnswers {
		for i := range res.Grade.Details {
			res.Grade.Details[i].CorrectAnswer = ""
			res.Grade.Details[i].Explanation = ""
		}
	}
	return res, nil
}

func (s *QuizService) ListAttempts(userID, quizID uint) ([]model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, quiz.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	return s.AttemptRepo.ListForEnrollment(userID, quizID, enrollment.ID)
}

// SweepOverdueAttempts force-grades open attempts whose deadline (plus grace)
// has passed, so an abandoned browser tab cannot hold an attempt open forever.
func (s *QuizService) SweepOverdueAttempts() error {
	candidates, err := s.AttemptRepo.ListOpenCandidates(time.Now().Add(-TimeLimitGrace))
	if err != nil {
		return err
	}

	for _, attempt := range candidates {
		quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
		if err != nil {
			continue
		}
		deadline := attempt.StartedAt.
			Add(time.Duration(quiz.TimeLimitMinutes) * time.Minute).
			Add(TimeLimitGrace)
		if time.Now().Before(deadline) {
			continue
		}

		questions, err := s.attemptQuestions(&attempt)
		if err != nil {
			continue
		}
		result := grading.Grade(questions, map[uint]string{}, quiz.PassingScore)

		now := time.Now()
		attempt.CompletedAt = &now
		attempt.Answers = "{}"
		attempt.ScorePercent = result.ScorePercent
		attempt.Passed = result.Passed
		attempt.TimedOut = true
		attempt.TimeSpentSeconds = int(now.Sub(attempt.StartedAt).Seconds())

		ok, err := s.AttemptRepo.Complete(&attempt)
		if err != nil || !ok {
			continue
		}
		monitoring.QuizSubmissions.WithLabelValues("swept").Inc()
		s.Notifications.Notify(attempt.UserID, model.NotifyQuizRetry,
			"Quiz time expired",
			fmt.Sprintf("Your attempt on %q was submitted automatically when time ran out.", quiz.Title))
	}
	return nil
}

// attemptReference keys a points award to the attempt that earned it.
func attemptReference(attemptID uint) string {
	return fmt.Sprintf("attempt:%d", attemptID)
}

func submissionOutcome(passed, timedOut bool) string {
	switch {
	case timedOut:
		return "timed_out"
	case passed:
		return "passed"
	default:
		return "failed"
	}
}
