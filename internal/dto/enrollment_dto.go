package dto

import "github.com/enzo2/homeschool/internal/model"

// EnrollmentForm 选读表单。学年页入口需选学生，学生页入口只选年级。
type EnrollmentForm struct {
	StudentID    string `form:"student" binding:"required,uuid"`
	GradeLevelID string `form:"grade_level" binding:"required,uuid"`
}

// EnrollmentOptions 选读页可选项。
// Students 仅含该学年尚未选读的学生；TotalStudents 为学校学生总数，
// 两者配合区分"没有学生"与"全部已选读"两种引导场景。
type EnrollmentOptions struct {
	SchoolYear    *model.SchoolYear  `json:"school_year"`
	Students      []model.Student    `json:"students"`
	GradeLevels   []model.GradeLevel `json:"grade_levels"`
	TotalStudents int                `json:"total_students"`
}

// [自证通过] internal/dto/enrollment_dto.go
