package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-educacional/internal/domain/user"
)

// Erros específicos do repositório
var (
	ErrUserNotFound     = errors.New("usuário não encontrado")
	ErrUserDuplicateKey = errors.New("usuário com mesmo email já existe")
)

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, site_id, name, email, password, role, status,
	last_login_at, created_at, updated_at`

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.SiteID, u.Name, u.Email, u.Password, u.Role, u.Status,
		nullableTime(u.LastLoginAt), u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserDuplicateKey
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER($1)", strings.TrimSpace(email))
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	var u user.User
	var siteID *string
	var lastLoginAt *time.Time

	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where,
		arg).Scan(
		&u.ID, &siteID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status,
		&lastLoginAt, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	if siteID != nil {
		u.SiteID = *siteID
	}
	if lastLoginAt != nil {
		u.LastLoginAt = *lastLoginAt
	}

	return &u, nil
}

// FindBySite implementa user.Repository.FindBySite
func (r *UserRepository) FindBySite(ctx context.Context, siteID string, limit, offset int) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		WHERE site_id = $1
		ORDER BY name ASC LIMIT $2 OFFSET $3`,
		siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários da sede: %w", err)
	}
	defer rows.Close()

	return r.scanUserRows(rows)
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	return r.scanUserRows(rows)
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET
			site_id = NULLIF($1, ''), name = $2, email = $3, role = $4,
			status = $5, updated_at = $6
		WHERE id = $7`,
		u.SiteID, u.Name, u.Email, u.Role, u.Status, u.UpdatedAt, u.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete implementa user.Repository.Delete
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateStatus implementa user.Repository.UpdateStatus
func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status user.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE users SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status do usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword implementa user.Repository.UpdatePassword
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	result, err := r.db.Exec(ctx,
		"UPDATE users SET password = $1, updated_at = $2 WHERE id = $3",
		hashedPassword, time.Now(), id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar senha do usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin implementa user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	result, err := r.db.Exec(ctx,
		"UPDATE users SET last_login_at = $1, updated_at = $2 WHERE id = $3",
		now, now, id)

	if err != nil {
		return fmt.Errorf("erro ao registrar login do usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Exists implementa user.Repository.Exists
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)",
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar usuário: %w", err)
	}
	return exists, nil
}

// scanUserRows é um método auxiliar para processar resultados de consultas
// que retornam múltiplos usuários
func (r *UserRepository) scanUserRows(rows pgx.Rows) ([]*user.User, error) {
	users := make([]*user.User, 0)

	for rows.Next() {
		var u user.User
		var siteID *string
		var lastLoginAt *time.Time

		err := rows.Scan(
			&u.ID, &siteID, &u.Name, &u.Email, &u.Password, &u.Role,
			&u.Status, &lastLoginAt, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}

		if siteID != nil {
			u.SiteID = *siteID
		}
		if lastLoginAt != nil {
			u.LastLoginAt = *lastLoginAt
		}

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return users, nil
}

// nullableTime converte o time zero em NULL na escrita
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
