package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/internal/service"
	"github.com/enzo2/homeschool/pkg/response"
)

// CoreHandler 应用外壳 HTTP 处理器
type CoreHandler struct {
	checklistSvc service.ChecklistService
}

// NewCoreHandler 创建 CoreHandler
func NewCoreHandler(checklistSvc service.ChecklistService) *CoreHandler {
	return &CoreHandler{checklistSvc: checklistSvc}
}

// Home 首页：已登录跳当日清单（未登录由会话中间件跳登录页）
// GET /
func (h *CoreHandler) Home(c *gin.Context) {
	if _, ok := MustUserID(c); !ok {
		return
	}
	response.Redirect(c, "/daily")
}

// Daily 当日清单：每个学生当天各课程的计划/完成任务
// GET /daily
func (h *CoreHandler) Daily(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	schedules, err := h.checklistSvc.DaySchedules(c.Request.Context(), userID, "")
	if err != nil {
		h.handleCoreError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "daily.html", gin.H{
		"NavLink":    "daily",
		"SchoolYear": schedules.SchoolYear,
		"Day":        schedules.WeekDates[0],
		"Schedules":  schedules.Schedules,
	})
}

// Health 存活探针
// GET /health
func (h *CoreHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCoreError 统一处理首页模块业务错误
func (h *CoreHandler) handleCoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSchoolNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/core_handler.go
