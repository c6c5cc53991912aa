package store

import (
	"context"
	"errors"
	"fmt"

	"lunai-users/internal/database"
	"lunai-users/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 表示指定的使用者不存在
	ErrNotFound = errors.New("user not found")
	// ErrConflict 表示 email 或 nombre_usuario 已被使用
	ErrConflict = errors.New("email or username already exists")
)

// uniqueViolation 是 PostgreSQL unique_violation 的 SQLSTATE
const uniqueViolation = "23505"

const userColumns = `id, nombre_usuario, email, rol, fecha_creacion, activo`

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM usuarios ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`, contraseña
		 FROM usuarios WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u, &u.PasswordHash); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", translate(err))
	}
	return u, nil
}

// GetUserByEmail 以 email 精確比對（區分大小寫）取得使用者，含密碼雜湊
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`, contraseña
		 FROM usuarios WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u, &u.PasswordHash); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", translate(err))
	}
	return u, nil
}

// CreateUser 寫入新使用者；u.PasswordHash 必須已是雜湊值
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO usuarios (nombre_usuario, email, contraseña, rol)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
	)
	created := &model.User{}
	if err := scanUser(row, created); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", translate(err))
	}
	return created, nil
}

// UpdateUser 整筆覆寫 nombre_usuario、email、rol；passwordHash 為 nil 時保留原密碼
func UpdateUser(ctx context.Context, db database.DB, u *model.User, passwordHash *string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE usuarios
		 SET nombre_usuario = $1, email = $2, rol = $3,
		     contraseña = COALESCE($4, contraseña)
		 WHERE id = $5
		 RETURNING `+userColumns,
		u.Name,
		u.Email,
		u.Role,
		passwordHash,
		u.ID,
	)
	updated := &model.User{}
	if err := scanUser(row, updated); err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", translate(err))
	}
	return updated, nil
}

func DeleteUser(ctx context.Context, db database.DB, ID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM usuarios WHERE id = $1`,
		ID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}

// translate 將 driver 錯誤轉為本套件的 sentinel
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

// scanUser 依 userColumns 的順序掃描，extra 接在其後
func scanUser(row pgx.Row, u *model.User, extra ...any) error {
	dest := append([]any{
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
		&u.Active,
	}, extra...)
	return row.Scan(dest...)
}
