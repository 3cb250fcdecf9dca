package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary List published courses
// @Tags courses
// @Produce  json
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	courses, total, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary Get a course with its lessons and quizzes
// @Tags courses
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// ListMyCourses godoc
// @Summary List courses owned by the current instructor
// @Tags instructor
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/instructor/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pageParams(ctx)
	courses, total, err := c.CourseService.ListByInstructor(claims.UserID, page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseRequest true "Course fields"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.CourseRequest true "Course fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.UpdateCourse(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags instructor
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.DeleteCourse(claims.UserID, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddLesson godoc
// @Summary Add a lesson to a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.LessonRequest true "Lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/instructor/courses/{id}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	lesson, err := c.CourseService.AddLesson(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Lesson ID"
// @Param   body body service.LessonRequest true "Lesson fields"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/instructor/lessons/{id} [put]
func (c *CourseController) UpdateLesson(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	lesson, err := c.CourseService.UpdateLesson(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags instructor
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{id} [delete]
func (c *CourseController) DeleteLesson(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.DeleteLesson(claims.UserID, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddQuiz godoc
// @Summary Add a quiz to a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.QuizRequest true "Quiz fields"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/instructor/courses/{id}/quizzes [post]
func (c *CourseController) AddQuiz(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	quiz, err := c.CourseService.AddQuiz(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary Update quiz settings
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Param   body body service.QuizRequest true "Quiz fields"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/instructor/quizzes/{id} [put]
func (c *CourseController) UpdateQuiz(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	quiz, err := c.CourseService.UpdateQuiz(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// AddQuestion godoc
// @Summary Add a question to a quiz
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Param   body body service.QuestionRequest true "Question fields"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/instructor/quizzes/{id}/questions [post]
func (c *CourseController) AddQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	question, err := c.CourseService.AddQuestion(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Rejected once any learner has attempted the quiz
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Question ID"
// @Param   body body service.QuestionRequest true "Question fields"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 409 {object} util.Response "Quiz already has attempts"
// @Router /api/instructor/questions/{id} [put]
func (c *CourseController) UpdateQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	question, err := c.CourseService.UpdateQuestion(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Rejected once any learner has attempted the quiz
// @Tags instructor
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Quiz already has attempts"
// @Router /api/instructor/questions/{id} [delete]
func (c *CourseController) DeleteQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.DeleteQuestion(claims.UserID, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
