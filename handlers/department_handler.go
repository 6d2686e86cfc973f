package handlers

import (
	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/services"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService services.DepartmentService
	userService       services.UserService
	Helper            *helper.HTTPHelper
}

func NewDepartmentHandler(departmentService services.DepartmentService, userService services.UserService, h *helper.HTTPHelper) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService, userService: userService, Helper: h}
}

// canManage loads the actor and the department and checks the update rule.
func (h *DepartmentHandler) canManage(c *gin.Context, departmentID uint) (*models.Department, bool) {
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
	department, err := h.departmentService.GetDepartment(departmentID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return nil, false
	}
	if !services.Can(actor, services.ActionUpdate, department) {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "only the team leader or an admin may manage this department"})
		return nil, false
	}
	return department, true
}

func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	departments, err := h.departmentService.GetDepartments()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Departments loaded", departments)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid department id", h.Helper.EmptyJsonMap())
		return
	}

	department, err := h.departmentService.GetDepartment(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Department loaded", department)
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req models.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	department, err := h.departmentService.CreateDepartment(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Department created", department)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid department id", h.Helper.EmptyJsonMap())
		return
	}

	if _, ok := h.canManage(c, id); !ok {
		return
	}

	var req models.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	department, err := h.departmentService.UpdateDepartment(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Department updated", department)
}

func (h *DepartmentHandler) SetTeamLeader(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid department id", h.Helper.EmptyJsonMap())
		return
	}

	if _, ok := h.canManage(c, id); !ok {
		return
	}

	var req models.SetTeamLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	department, err := h.departmentService.SetTeamLeader(id, req.TeamLeaderID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Team leader updated", department)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid department id", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.departmentService.DeleteDepartment(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Department deleted", h.Helper.EmptyJsonMap())
}
