// File: internal/model/user.go
package model

import "time"

// User 對應 usuarios 資料表的一列
type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"nombre_usuario" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"contraseña" json:"-"`
	Role         Role      `db:"rol" json:"rol"`
	CreatedAt    time.Time `db:"fecha_creacion" json:"fecha_creacion"`
	// Active 只存在於資料表，不參與登入判斷
	Active bool `db:"activo" json:"activo"`
}
