package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// Erros específicos do repositório
var (
	ErrSiteNotFound         = errors.New("sede não encontrada")
	ErrSiteDuplicateKey     = errors.New("sede com mesmo código já existe")
	ErrPopulationNotFound   = errors.New("praça não encontrada")
	ErrPopulationDuplicate  = errors.New("praça com mesmo nome já existe")
)

// SiteRepository implementa a interface site.Repository
type SiteRepository struct {
	db *pgxpool.Pool
}

// NewSiteRepository cria uma nova instância de SiteRepository
func NewSiteRepository(db *pgxpool.Pool) site.Repository {
	return &SiteRepository{
		db: db,
	}
}

const siteColumns = `id, name, code, population_id, inventory_prefix, academic_prefix, status, created_at, updated_at`

// Create implementa site.Repository.Create
func (r *SiteRepository) Create(ctx context.Context, s *site.Site) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sites (`+siteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Code, s.PopulationID, s.InventoryPrefix,
		s.AcademicPrefix, s.Status, s.CreatedAt, s.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrSiteDuplicateKey
		}
		return fmt.Errorf("erro ao criar sede: %w", err)
	}

	return nil
}

// FindByID implementa site.Repository.FindByID
func (r *SiteRepository) FindByID(ctx context.Context, id string) (*site.Site, error) {
	var s site.Site

	err := r.db.QueryRow(ctx,
		`SELECT `+siteColumns+` FROM sites WHERE id = $1`,
		id).Scan(
		&s.ID, &s.Name, &s.Code, &s.PopulationID, &s.InventoryPrefix,
		&s.AcademicPrefix, &s.Status, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("erro ao buscar sede: %w", err)
	}

	return &s, nil
}

// FindByPopulation implementa site.Repository.FindByPopulation
func (r *SiteRepository) FindByPopulation(ctx context.Context, populationID string) ([]*site.Site, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+siteColumns+` FROM sites WHERE population_id = $1 ORDER BY name ASC`,
		populationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar sedes da praça: %w", err)
	}
	defer rows.Close()

	return r.scanSiteRows(rows)
}

// List implementa site.Repository.List
func (r *SiteRepository) List(ctx context.Context, limit, offset int) ([]*site.Site, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+siteColumns+` FROM sites ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar sedes: %w", err)
	}
	defer rows.Close()

	return r.scanSiteRows(rows)
}

// Count implementa site.Repository.Count
func (r *SiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sites").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar sedes: %w", err)
	}
	return count, nil
}

// Update implementa site.Repository.Update
func (r *SiteRepository) Update(ctx context.Context, s *site.Site) error {
	result, err := r.db.Exec(ctx,
		`UPDATE sites SET
			name = $1, code = $2, population_id = $3, inventory_prefix = $4,
			academic_prefix = $5, status = $6, updated_at = $7
		WHERE id = $8`,
		s.Name, s.Code, s.PopulationID, s.InventoryPrefix,
		s.AcademicPrefix, s.Status, s.UpdatedAt, s.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrSiteDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar sede: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSiteNotFound
	}

	return nil
}

// UpdateStatus implementa site.Repository.UpdateStatus
func (r *SiteRepository) UpdateStatus(ctx context.Context, id string, status site.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE sites SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status da sede: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSiteNotFound
	}

	return nil
}

// Delete implementa site.Repository.Delete
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir sede: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSiteNotFound
	}

	return nil
}

// Exists implementa site.Repository.Exists
func (r *SiteRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM sites WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência da sede: %w", err)
	}

	return exists, nil
}

// scanSiteRows é um método auxiliar para processar resultados de consultas
// que retornam múltiplas sedes
func (r *SiteRepository) scanSiteRows(rows pgx.Rows) ([]*site.Site, error) {
	sites := make([]*site.Site, 0)

	for rows.Next() {
		var s site.Site
		err := rows.Scan(
			&s.ID, &s.Name, &s.Code, &s.PopulationID, &s.InventoryPrefix,
			&s.AcademicPrefix, &s.Status, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler sede: %w", err)
		}
		sites = append(sites, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return sites, nil
}

// PopulationRepository implementa a interface site.PopulationRepository
type PopulationRepository struct {
	db *pgxpool.Pool
}

// NewPopulationRepository cria uma nova instância de PopulationRepository
func NewPopulationRepository(db *pgxpool.Pool) site.PopulationRepository {
	return &PopulationRepository{
		db: db,
	}
}

// Create implementa site.PopulationRepository.Create
func (r *PopulationRepository) Create(ctx context.Context, p *site.Population) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO populations (id, name, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.State, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrPopulationDuplicate
		}
		return fmt.Errorf("erro ao criar praça: %w", err)
	}

	return nil
}

// FindByID implementa site.PopulationRepository.FindByID
func (r *PopulationRepository) FindByID(ctx context.Context, id string) (*site.Population, error) {
	var p site.Population

	err := r.db.QueryRow(ctx,
		`SELECT id, name, state, created_at, updated_at FROM populations WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.State, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPopulationNotFound
		}
		return nil, fmt.Errorf("erro ao buscar praça: %w", err)
	}

	return &p, nil
}

// List implementa site.PopulationRepository.List
func (r *PopulationRepository) List(ctx context.Context, limit, offset int) ([]*site.Population, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, state, created_at, updated_at FROM populations
		ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar praças: %w", err)
	}
	defer rows.Close()

	populations := make([]*site.Population, 0)
	for rows.Next() {
		var p site.Population
		if err := rows.Scan(&p.ID, &p.Name, &p.State, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler praça: %w", err)
		}
		populations = append(populations, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return populations, nil
}

// Update implementa site.PopulationRepository.Update
func (r *PopulationRepository) Update(ctx context.Context, p *site.Population) error {
	result, err := r.db.Exec(ctx,
		`UPDATE populations SET name = $1, state = $2, updated_at = $3 WHERE id = $4`,
		p.Name, p.State, time.Now(), p.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrPopulationDuplicate
		}
		return fmt.Errorf("erro ao atualizar praça: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPopulationNotFound
	}

	return nil
}

// Delete implementa site.PopulationRepository.Delete
func (r *PopulationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM populations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir praça: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPopulationNotFound
	}

	return nil
}

// Exists implementa site.PopulationRepository.Exists
func (r *PopulationRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM populations WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência da praça: %w", err)
	}

	return exists, nil
}
