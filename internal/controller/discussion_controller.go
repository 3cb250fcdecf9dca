package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DiscussionController struct {
	DiscussionService *service.DiscussionService
}

func NewDiscussionController(discussionService *service.DiscussionService) *DiscussionController {
	return &DiscussionController{DiscussionService: discussionService}
}

// CreatePost godoc
// @Summary Start a discussion in a course
// @Tags discussions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.PostRequest true "Post fields"
// @Success 201 {object} util.Response{data=model.DiscussionPost}
// @Failure 403 {object} util.Response "Not enrolled"
// @Router /api/courses/{id}/discussions [post]
func (c *DiscussionController) CreatePost(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	post, err := c.DiscussionService.CreatePost(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// ListPosts godoc
// @Summary List discussions in a course
// @Tags discussions
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses/{id}/discussions [get]
func (c *DiscussionController) ListPosts(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	page, limit := pageParams(ctx)
	posts, total, err := c.DiscussionService.ListPosts(claims.UserID, id, page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// GetPost godoc
// @Summary Get a discussion post with its comments
// @Tags discussions
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Post ID"
// @Success 200 {object} util.Response{data=model.DiscussionPost}
// @Router /api/discussions/{id} [get]
func (c *DiscussionController) GetPost(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid post id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	post, err := c.DiscussionService.GetPost(claims.UserID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary Delete a discussion post
// @Description Allowed for the author and admins
// @Tags discussions
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Post ID"
// @Success 200 {object} util.Response
// @Router /api/discussions/{id} [delete]
func (c *DiscussionController) DeletePost(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid post id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.DiscussionService.DeletePost(claims.UserID, claims.Role, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddComment godoc
// @Summary Reply to a discussion post
// @Tags discussions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Post ID"
// @Param   body body service.CommentRequest true "Comment fields"
// @Success 201 {object} util.Response{data=model.DiscussionComment}
// @Router /api/discussions/{id}/comments [post]
func (c *DiscussionController) AddComment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid post id")
		return
	}
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	comment, err := c.DiscussionService.AddComment(claims.UserID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Allowed for the author and admins
// @Tags discussions
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Comment ID"
// @Success 200 {object} util.Response
// @Router /api/discussions/comments/{id} [delete]
func (c *DiscussionController) DeleteComment(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid comment id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.DiscussionService.DeleteComment(claims.UserID, claims.Role, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
