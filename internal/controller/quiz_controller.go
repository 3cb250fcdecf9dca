package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type submitAttemptRequest struct {
	Answers []service.SubmittedAnswer `json:"answers"`
}

// StartAttempt godoc
// @Summary Start a quiz attempt
// @Description Opens a new attempt if the user is enrolled and under the attempt limit. The response carries the question set to present; correct answers are stripped.
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response "Not enrolled or attempt limit reached"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) StartAttempt(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	attempt, quiz, err := c.QuizService.StartAttempt(claims.UserID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	// The learner-facing view never includes the answer key.
	questions := make([]gin.H, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		options := make([]gin.H, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, gin.H{
				"id":         o.ID,
				"optionText": o.OptionText,
				"order":      o.Order,
			})
		}
		questions = append(questions, gin.H{
			"id":           q.ID,
			"questionText": q.QuestionText,
			"questionType": q.QuestionType,
			"points":       q.Points,
			"order":        q.Order,
			"options":      options,
		})
	}

	util.Created(ctx, gin.H{
		"attemptId":        attempt.ID,
		"attemptNumber":    attempt.AttemptNumber,
		"startedAt":        attempt.StartedAt,
		"timeLimitMinutes": quiz.TimeLimitMinutes,
		"questions":        questions,
	})
}

// SubmitAttempt godoc
// @Summary Submit answers for an open attempt
// @Description Grades the attempt server-side. Submissions past the time limit plus grace are still graded but flagged as timed out.
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Param   attemptId path int true "Attempt ID"
// @Param   body body submitAttemptRequest true "Answers"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 409 {object} util.Response "Attempt already submitted"
// @Router /api/quizzes/{id}/attempts/{attemptId} [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	quizID, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	attemptID, ok := uintParam(ctx, "attemptId")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	var req submitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	res, err := c.QuizService.SubmitAttempt(claims.UserID, attemptID, quizID, req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// GetAttemptResult godoc
// @Summary Get the result of a completed attempt
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   attemptId path int true "Attempt ID"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{attemptId} [get]
func (c *QuizController) GetAttemptResult(ctx *gin.Context) {
	attemptID, ok := uintParam(ctx, "attemptId")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	res, err := c.QuizService.GetAttemptResult(claims.UserID, attemptID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// ListAttempts godoc
// @Summary List the current user's attempts for a quiz
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	attempts, err := c.QuizService.ListAttempts(claims.UserID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
