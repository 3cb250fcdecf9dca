package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

// Send godoc
// @Summary Send a direct message
// @Tags messages
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SendMessageRequest true "Recipient and content"
// @Success 201 {object} util.Response{data=model.DirectMessage}
// @Failure 404 {object} util.Response "Recipient not found"
// @Router /api/messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	var req service.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	msg, err := c.MessageService.Send(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}

// ListConversations godoc
// @Summary List the current user's conversations
// @Tags messages
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Conversation}
// @Router /api/conversations [get]
func (c *MessageController) ListConversations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	convs, err := c.MessageService.ListConversations(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, convs)
}

// ListMessages godoc
// @Summary List messages in a conversation
// @Description Reading a page marks the other participant's messages as read
// @Tags messages
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Conversation ID"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response "Not a participant"
// @Router /api/conversations/{id}/messages [get]
func (c *MessageController) ListMessages(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid conversation id")
		return
	}
	claims := util.GetUserFromContext(ctx)
	page, limit := pageParams(ctx)
	msgs, total, err := c.MessageService.ListMessages(claims.UserID, id, page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: msgs, Total: total, Page: page, Limit: limit})
}
