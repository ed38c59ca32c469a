package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/eventboard/backend/internal/config"
	"github.com/eventboard/backend/internal/model"
	"github.com/go-sql-driver/mysql"
)

// MySQL implements the same repository surface as Postgres on top of
// database/sql and the MySQL driver.
type MySQL struct {
	DB *sql.DB
}

func NewMySQL(ctx context.Context, cfg config.MySQLConfig) (*MySQL, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	dsn.Loc = time.UTC

	conn, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	conn.SetConnMaxLifetime(3 * time.Minute)
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(10)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	return &MySQL{DB: conn}, nil
}

// mysqlSchema holds the DDL EnsureSchema applies in order. Event title and
// location are TEXT: titles carry no length limit.
var mysqlSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		image TEXT NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)
	`,
	`
	CREATE TABLE IF NOT EXISTS refresh_tokens (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		token_hash VARCHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME(6) NOT NULL,
		revoked_at DATETIME(6) NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX refresh_tokens_user_id_idx (user_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)
	`,
	`
	CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)
	`,
	`
	CREATE TABLE IF NOT EXISTS events (
		id VARCHAR(36) PRIMARY KEY,
		created_by VARCHAR(36) NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		image TEXT NOT NULL,
		category_ids JSON NOT NULL,
		location TEXT NOT NULL,
		start_time DATETIME(6) NULL,
		end_time DATETIME(6) NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX events_start_time_idx (start_time)
	)
	`,
	`ALTER TABLE events MODIFY title TEXT NOT NULL`,
	`ALTER TABLE events MODIFY location TEXT NOT NULL`,
}

func (db *MySQL) EnsureSchema(ctx context.Context) error {
	for _, query := range mysqlSchema {
		if _, err := db.DB.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *MySQL) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

func (db *MySQL) Close() {
	_ = db.DB.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func sqlNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return translate(err)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *MySQL) InsertRefreshToken(ctx context.Context, token model.RefreshToken) error {
	_, err := db.DB.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt)
	return translate(err)
}

func (db *MySQL) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var (
		token   model.RefreshToken
		revoked sql.NullTime
	)
	err := db.DB.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = ?
	`, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&revoked,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, sqlNotFound(err)
	}
	if revoked.Valid {
		token.RevokedAt = &revoked.Time
	}
	return &token, nil
}

func (db *MySQL) RevokeRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	_, err := db.DB.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = UTC_TIMESTAMP(6)
		WHERE token_hash = ? AND revoked_at IS NULL
	`, tokenHash)
	return err
}

func (db *MySQL) RotateRefreshToken(ctx context.Context, oldTokenID string, next model.RefreshToken) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = UTC_TIMESTAMP(6)
		WHERE id = ? AND revoked_at IS NULL
	`, oldTokenID)
	if err := affectedOne(res, err); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, next.ID, next.UserID, next.TokenHash, next.ExpiresAt, next.CreatedAt); err != nil {
		return translate(err)
	}

	return tx.Commit()
}

func encodeCategoryIDs(ids []string) ([]byte, error) {
	return json.Marshal(categoryIDs(ids))
}
