package handlers

import (
	"strconv"

	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       services.UserService
	departmentService services.DepartmentService
	Helper            *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, departmentService services.DepartmentService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, departmentService: departmentService, Helper: h}
}

func (h *UserHandler) actor(c *gin.Context) (*models.User, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return nil, false
	}
	actor, err := h.userService.GetUser(userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return nil, false
	}
	return actor, true
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	var departmentID uint
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.Helper.SendBadRequest(c, "Invalid department_id", h.Helper.EmptyJsonMap())
			return
		}
		departmentID = uint(parsed)
	}

	users, err := h.userService.GetUsers(departmentID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Users loaded", users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid user id", h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User loaded", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid user id", h.Helper.EmptyJsonMap())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	target, err := h.userService.GetUser(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	if !services.Can(actor, services.ActionUpdate, target) {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "you may only update your own profile"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.userService.UpdateProfile(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", user)
}

// SetUserType changes a user's tier. Route is admin gated; promoting to
// ADMIN also grants superuser through the model.
func (h *UserHandler) SetUserType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid user id", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SetUserTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.userService.SetUserType(id, req.UserType)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User type updated", user)
}

func (h *UserHandler) AssignDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid user id", h.Helper.EmptyJsonMap())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req models.AssignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	// Assigning into a department is allowed for admins and for that
	// department's team leader. Removal is admin only.
	allowed := actor.IsAdmin()
	if !allowed && req.DepartmentID != nil {
		department, err := h.departmentService.GetDepartment(*req.DepartmentID)
		if err != nil {
			h.Helper.SendServiceError(c, err)
			return
		}
		allowed = services.Can(actor, services.ActionUpdate, department)
	}
	if !allowed {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "not allowed to manage department membership"})
		return
	}

	user, err := h.userService.AssignDepartment(id, req.DepartmentID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Department assigned", user)
}
