package model

// Role 是使用者角色；資料庫不以 CHECK 限制其值
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "usuario"
	RoleModerator Role = "moderador"
)

// Roles 回傳固定的角色清單，不從資料表推導
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleModerator}
}
