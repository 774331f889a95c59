package model

// CourseTask 课程任务，按 Position 在课程内有序。
// GradeLevelID 非空时任务仅对该年级的学生可见（分层教学）。
type CourseTask struct {
	CourseTaskID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_task_id"`
	CourseID     string  `gorm:"type:uuid;not null;index"                       json:"course_id"`
	Description  string  `gorm:"type:text;not null"                             json:"description"`
	Duration     int     `gorm:"not null"                                       json:"duration"`
	GradeLevelID *string `gorm:"type:uuid;index"                                json:"grade_level_id,omitempty"`
	Position     int     `gorm:"not null;default:0;index"                       json:"position"`
	BaseModel

	// 关联
	Course     *Course     `gorm:"foreignKey:CourseID;references:CourseID"             json:"-"`
	GradeLevel *GradeLevel `gorm:"foreignKey:GradeLevelID;references:GradeLevelID"     json:"-"`
	GradedWork *GradedWork `gorm:"foreignKey:CourseTaskID"                             json:"graded_work,omitempty"`
}

// TableName 指定表名
func (CourseTask) TableName() string { return "course_tasks" }

// IsGraded 任务是否需要评分（存在 GradedWork 记录）
func (t *CourseTask) IsGraded() bool {
	return t.GradedWork != nil
}

// VisibleTo 任务对指定年级的学生是否可见；通用任务（无年级限制）对所有人可见
func (t *CourseTask) VisibleTo(gradeLevelID string) bool {
	return t.GradeLevelID == nil || *t.GradeLevelID == gradeLevelID
}

// GradedWork 评分标记：一条记录表示对应任务计入成绩
type GradedWork struct {
	GradedWorkID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"graded_work_id"`
	CourseTaskID string `gorm:"type:uuid;not null;uniqueIndex"                 json:"course_task_id"`
	BaseModel

	// 关联
	CourseTask *CourseTask `gorm:"foreignKey:CourseTaskID;references:CourseTaskID" json:"course_task,omitempty"`
}

// TableName 指定表名
func (GradedWork) TableName() string { return "graded_work" }

// [自证通过] internal/model/course_task.go
