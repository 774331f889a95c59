package dto

import "github.com/enzo2/homeschool/internal/model"

// GradeForm 单任务评分表单
type GradeForm struct {
	Score int    `form:"score" binding:"min=0,max=100"`
	Next  string `form:"next"`
}

// BatchGradeEntry 批量评分页的一条打分记录，
// 由表单字段 graded_work-<student_id>-<graded_work_id>=<score> 解析而来
type BatchGradeEntry struct {
	StudentID    string
	GradedWorkID string
	Score        int
}

// GradedWorkItem 待评分条目：完成记录加其对应的评分任务
type GradedWorkItem struct {
	GradedWork *model.GradedWork `json:"graded_work"`
	Coursework *model.Coursework `json:"coursework"`
}

// StudentWorkToGrade 某学生名下所有待评分条目（可为空列表）
type StudentWorkToGrade struct {
	Student *model.Student   `json:"student"`
	Work    []GradedWorkItem `json:"work"`
}

// GradeTaskView 单任务评分页数据
type GradeTaskView struct {
	Student    *model.Student    `json:"student"`
	CourseTask *model.CourseTask `json:"course_task"`
	GradedWork *model.GradedWork `json:"graded_work"`
	Grade      *model.Grade      `json:"grade,omitempty"`
}

// [自证通过] internal/dto/grade_dto.go
