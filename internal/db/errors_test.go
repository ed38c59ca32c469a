package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslate(t *testing.T) {
	unrelated := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "pg-unique-violation", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicate},
		{name: "pg-unique-violation-wrapped", err: fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"}), want: ErrDuplicate},
		{name: "pg-other-code", err: &pgconn.PgError{Code: "23503"}, want: nil},
		{name: "mysql-duplicate-entry", err: &mysql.MySQLError{Number: 1062}, want: ErrDuplicate},
		{name: "mysql-duplicate-entry-wrapped", err: fmt.Errorf("insert user: %w", &mysql.MySQLError{Number: 1062}), want: ErrDuplicate},
		{name: "mysql-other-number", err: &mysql.MySQLError{Number: 1406}, want: nil},
		{name: "unrelated", err: unrelated, want: unrelated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)
			switch {
			case tt.err == nil:
				if got != nil {
					t.Fatalf("translate(nil) = %v", got)
				}
			case tt.want == nil:
				if got != tt.err {
					t.Fatalf("translate(%v) = %v, want input unchanged", tt.err, got)
				}
			default:
				if !errors.Is(got, tt.want) {
					t.Fatalf("translate(%v) = %v, want %v", tt.err, got, tt.want)
				}
			}
		})
	}
}

func TestNotFoundMapping(t *testing.T) {
	if err := pgNotFound(pgx.ErrNoRows); !errors.Is(err, ErrNotFound) {
		t.Fatalf("pgNotFound(ErrNoRows) = %v", err)
	}
	if err := pgNotFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("pgNotFound(wrapped ErrNoRows) = %v", err)
	}
	if err := pgNotFound(&pgconn.PgError{Code: "23505"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("pgNotFound(23505) = %v", err)
	}

	if err := sqlNotFound(sql.ErrNoRows); !errors.Is(err, ErrNotFound) {
		t.Fatalf("sqlNotFound(ErrNoRows) = %v", err)
	}
	if err := sqlNotFound(&mysql.MySQLError{Number: 1062}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("sqlNotFound(1062) = %v", err)
	}

	other := errors.New("boom")
	if err := sqlNotFound(other); err != other {
		t.Fatalf("sqlNotFound(other) = %v, want passthrough", err)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "jazz", want: "jazz"},
		{in: "%", want: "!%"},
		{in: "a_b", want: "a!_b"},
		{in: "100%!", want: "100!%!!"},
		{in: `back\slash`, want: `back\slash`},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
