package handlers

import (
	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/services"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct {
	entryService   services.EntryService
	commentService services.CommentService
	voteService    services.VoteService
	userService    services.UserService
	Helper         *helper.HTTPHelper
}

func NewEntryHandler(entryService services.EntryService, commentService services.CommentService, voteService services.VoteService, userService services.UserService, h *helper.HTTPHelper) *EntryHandler {
	return &EntryHandler{
		entryService:   entryService,
		commentService: commentService,
		voteService:    voteService,
		userService:    userService,
		Helper:         h,
	}
}

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	entry, err := h.entryService.CreateEntry(userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Entry created", entry)
}

func (h *EntryHandler) GetEntries(c *gin.Context) {
	var params models.EntryListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	entries, total, err := h.entryService.GetEntries(params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	data := map[string]interface{}{
		"entries": entries,
		"paging":  h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	}
	h.Helper.SendSuccess(c, "Entries loaded", data)
}

// GetEntry returns the full detail view: the entry, its comment tree,
// its revision history, and the caller's own vote. Reading the detail
// bumps the view counter.
func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	entry, err := h.entryService.GetEntry(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.entryService.RecordView(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	comments, err := h.commentService.GetTree(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	maskDeleted(comments)

	revisions, err := h.entryService.GetRevisions(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	var userVote *models.VoteType
	if userID, ok := currentUserID(c); ok {
		vote, err := h.voteService.GetUserVote(userID, id)
		if err != nil {
			h.Helper.SendServiceError(c, err)
			return
		}
		if vote != nil {
			userVote = &vote.VoteType
		}
	}

	data := map[string]interface{}{
		"entry":     entry,
		"score":     entry.Score(),
		"comments":  comments,
		"revisions": revisions,
		"user_vote": userVote,
	}
	h.Helper.SendSuccess(c, "Entry loaded", data)
}

func (h *EntryHandler) GetEntryBySlug(c *gin.Context) {
	entry, err := h.entryService.GetEntryBySlug(c.Param("slug"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Entry loaded", entry)
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	actor, err := h.userService.GetUser(userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	entry, err := h.entryService.GetEntry(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	if !services.Can(actor, services.ActionUpdate, entry) {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "only the author or an admin may edit this entry"})
		return
	}

	var req models.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	updated, err := h.entryService.UpdateEntry(id, userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Entry updated", updated)
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	actor, err := h.userService.GetUser(userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	entry, err := h.entryService.GetEntry(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	if !services.Can(actor, services.ActionDelete, entry) {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "only the author or an admin may delete this entry"})
		return
	}

	if err := h.entryService.DeleteEntry(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Entry deleted", h.Helper.EmptyJsonMap())
}

func (h *EntryHandler) VoteEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
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

	result, err := h.voteService.CastVote(userID, id, req.VoteType)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Vote recorded", result)
}

// VerifyEntry is reachable only behind the SENIOR_TECH role gate.
func (h *EntryHandler) VerifyEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.VerifyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	entry, err := h.entryService.VerifyEntry(id, userID, req.Notes)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Entry verified", entry)
}

func (h *EntryHandler) GetRevisions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	revisions, err := h.entryService.GetRevisions(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Revisions loaded", revisions)
}
