package handlers

import (
	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	voteService    services.VoteService
	userService    services.UserService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, voteService services.VoteService, userService services.UserService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		voteService:    voteService,
		userService:    userService,
		Helper:         h,
	}
}

// maskDeleted blanks the content of soft-deleted comments throughout the
// tree. The nodes stay so replies keep their place in the thread.
func maskDeleted(comments []*models.Comment) {
	for _, comment := range comments {
		if comment.IsDeleted {
			comment.Content = "[deleted]"
		}
		maskDeleted(comment.Replies)
	}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	comments, err := h.commentService.GetTree(entryID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	maskDeleted(comments)

	h.Helper.SendSuccess(c, "Comments loaded", comments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.CreateComment(entryID, userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment created", comment)
}

func (h *CommentHandler) authorize(c *gin.Context, commentID uint, action services.Action) bool {
	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return false
	}
	actor, err := h.userService.GetUser(userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return false
	}
	comment, err := h.commentService.GetComment(commentID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return false
	}
	if !services.Can(actor, action, comment) {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "only the author or an admin may modify this comment"})
		return false
	}
	return true
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid comment id", h.Helper.EmptyJsonMap())
		return
	}

	if !h.authorize(c, id, services.ActionUpdate) {
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.UpdateComment(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment updated", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid comment id", h.Helper.EmptyJsonMap())
		return
	}

	if !h.authorize(c, id, services.ActionDelete) {
		return
	}

	comment, err := h.commentService.SoftDeleteComment(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted", comment)
}

func (h *CommentHandler) VoteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid comment id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	vote, err := h.voteService.CastCommentVote(userID, id, req.VoteType)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Vote recorded", vote)
}
