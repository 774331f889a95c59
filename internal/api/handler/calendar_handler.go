package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/internal/service"
	"github.com/enzo2/homeschool/pkg/response"
)

// CalendarHandler 日历订阅 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// YearFeed 学年任务日历订阅（file 形如 <学年ID>.ics）
// GET /calendars/school-years/:file
func (h *CalendarHandler) YearFeed(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}

	schoolYearID, found := strings.CutSuffix(c.Param("file"), ".ics")
	if !found || schoolYearID == "" {
		response.NotFound(c)
		return
	}

	feed, err := h.calendarSvc.YearFeed(c.Request.Context(), userID, schoolYearID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleCalendarError 统一处理日历模块业务错误
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSchoolNotFound),
		errors.Is(err, service.ErrSchoolYearNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/calendar_handler.go
