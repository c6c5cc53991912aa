// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"lunai-users/internal/cache"
	"lunai-users/internal/database"
	"lunai-users/internal/handler"
	"lunai-users/internal/handler/auth"
	"lunai-users/internal/handler/users"
	"lunai-users/internal/middleware"
	"lunai-users/internal/service"
)

// Deps 是路由需要的共用資源；Cache 可為 nil
type Deps struct {
	DB       database.DB
	Cache    cache.Cache
	Hasher   *service.Hasher
	Sessions *service.Sessions
	// AuthRequired 為 true 時 /api/users 需要登入，寫入需要 admin
	AuthRequired bool
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.GET("/", handler.RootHandler())

	api := e.Group("/api")

	// 健康檢查與角色清單
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))
	api.GET("/roles", handler.ListRolesHandler())

	// 登入與 session
	api.POST("/login", auth.LoginHandler(d.DB, d.Hasher, d.Sessions))
	api.POST("/logout", auth.LogoutHandler(d.Sessions), middleware.RequireAuth(d.Sessions))
	api.GET("/session", auth.SessionHandler(), middleware.RequireAuth(d.Sessions))

	// 使用者 CRUD
	readers := middleware.When(d.AuthRequired, middleware.RequireAuth(d.Sessions))
	writers := middleware.When(d.AuthRequired, middleware.RequireAdmin(d.Sessions))
	apiUsers := api.Group("/users")
	apiUsers.GET("", users.ListUsersHandler(d.DB), readers)
	apiUsers.POST("", users.CreateUserHandler(d.DB, d.Hasher), writers)
	apiUsers.PUT("/:id", users.UpdateUserHandler(d.DB, d.Hasher), writers)
	apiUsers.DELETE("/:id", users.DeleteUserHandler(d.DB), writers)
}
