package dto

import (
	"time"

	"github.com/enzo2/homeschool/internal/model"
)

// StudentForm 新建学生表单
type StudentForm struct {
	FirstName string `form:"first_name" binding:"required,max=64"`
	LastName  string `form:"last_name" binding:"required,max=64"`
}

// RosterEntry 花名册条目：学生加当前学年的选读记录（未选读为 nil）
type RosterEntry struct {
	Student    *model.Student    `json:"student"`
	Enrollment *model.Enrollment `json:"enrollment,omitempty"`
}

// Roster 学生首页数据
type Roster struct {
	SchoolYear *model.SchoolYear `json:"school_year,omitempty"`
	Entries    []RosterEntry     `json:"entries"`
}

// TaskItem 课程页单行任务：
// 未完成任务带预排日期（课程无上课日时为 nil），
// 已完成任务带完成记录、不带预排日期。
type TaskItem struct {
	CourseTask    *model.CourseTask `json:"course_task"`
	PlannedDate   *time.Time        `json:"planned_date,omitempty"`
	Coursework    *model.Coursework `json:"coursework,omitempty"`
	HasGradedWork bool              `json:"has_graded_work"`
}

// StudentCourseView 学生课程页数据
type StudentCourseView struct {
	Student   *model.Student `json:"student"`
	Course    *model.Course  `json:"course"`
	TaskItems []TaskItem     `json:"task_items"`
}

// CourseworkForm 完成记录表单；日期留空表示撤销完成
type CourseworkForm struct {
	CompletedDate string `form:"completed_date"`
}

// CourseworkView 完成记录表单页数据
type CourseworkView struct {
	Student    *model.Student    `json:"student"`
	CourseTask *model.CourseTask `json:"course_task"`
	Coursework *model.Coursework `json:"coursework,omitempty"`
}

// [自证通过] internal/dto/student_dto.go
