package db

import (
	"context"

	"github.com/eventboard/backend/internal/model"
)

func (db *MySQL) CreateUser(ctx context.Context, user *model.User) error {
	_, err := db.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, name, image, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Username, user.Name, user.Image, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return translate(err)
}

func (db *MySQL) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return mysqlScanUser(db.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (db *MySQL) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return mysqlScanUser(db.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (db *MySQL) ListUsers(ctx context.Context, username string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if username != "" {
		query += ` WHERE username = ?`
		args = append(args, username)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.User{}
	for rows.Next() {
		user, err := mysqlScanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *user)
	}
	return list, rows.Err()
}

func (db *MySQL) UpdateUser(ctx context.Context, user *model.User) error {
	res, err := db.DB.ExecContext(ctx, `
		UPDATE users
		SET username = ?, name = ?, image = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`, user.Username, user.Name, user.Image, user.PasswordHash, user.UpdatedAt, user.ID)
	return affectedOne(res, err)
}

func (db *MySQL) DeleteUser(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return affectedOne(res, err)
}

func mysqlScanUser(row rowScanner) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Image,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, sqlNotFound(err)
	}
	return &user, nil
}
