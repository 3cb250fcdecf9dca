package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, progressService *service.ProgressService) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
	}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// ListMine godoc
// @Summary List the current user's enrollments
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.EnrollmentService.ListMine(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// GetEnrollment godoc
// @Summary Get one enrollment with its progress
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Enrollment ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Router /api/enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Get(claims.UserID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Description Idempotent; the enrollment's progress is recomputed from all completed units
// @Tags enrollments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Enrollment ID"
// @Param   lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Router /api/enrollments/{id}/lessons/{lessonId}/complete [post]
func (c *EnrollmentController) CompleteLesson(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}
	lessonID, ok := uintParam(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.ProgressService.CompleteLesson(claims.UserID, id, lessonID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// ListCertificates godoc
// @Summary List the current user's certificates
// @Tags certificates
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *EnrollmentController) ListCertificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certs, err := c.EnrollmentService.ListCertificates(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// VerifyCertificate godoc
// @Summary Verify a certificate by its code
// @Description Public endpoint for third parties to check a certificate's authenticity
// @Tags certificates
// @Produce  json
// @Param   code path string true "Verification code"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/certificates/verify/{code} [get]
func (c *EnrollmentController) VerifyCertificate(ctx *gin.Context) {
	code := ctx.Param("code")
	cert, err := c.ProgressService.GetCertificateByCode(code)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}
