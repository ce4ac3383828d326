package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-educacional/internal/domain/product"
)

// Erros específicos do repositório
var (
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrProductDuplicateKey = errors.New("produto com mesmo código já existe")
	ErrReferenceNotFound   = errors.New("entidade referenciada não encontrada")
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

const productColumns = `id, name, code, type, reference_kind, reference_id, status, created_at, updated_at`

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Code, p.Type, p.Reference.Kind, p.Reference.TargetID,
		p.Status, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateKey
		}
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByCode implementa product.Repository.FindByCode
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	return r.findOne(ctx, "code = $1", code)
}

func (r *ProductRepository) findOne(ctx context.Context, where string, arg any) (*product.Product, error) {
	var p product.Product

	err := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+where,
		arg).Scan(
		&p.ID, &p.Name, &p.Code, &p.Type, &p.Reference.Kind,
		&p.Reference.TargetID, &p.Status, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return &p, nil
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := make([]*product.Product, 0)
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Type, &p.Reference.Kind,
			&p.Reference.TargetID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return products, nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}
	return count, nil
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $1, code = $2, type = $3, reference_kind = $4,
			reference_id = $5, status = $6, updated_at = $7
		WHERE id = $8`,
		p.Name, p.Code, p.Type, p.Reference.Kind, p.Reference.TargetID,
		p.Status, p.UpdatedAt, p.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// UpdateStatus implementa product.Repository.UpdateStatus
func (r *ProductRepository) UpdateStatus(ctx context.Context, id string, status product.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE products SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status do produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Exists implementa product.Repository.Exists
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do produto: %w", err)
	}

	return exists, nil
}

// ReferenceResolver implementa product.ReferenceResolver consultando as
// tabelas de cursos e módulos
type ReferenceResolver struct {
	db *pgxpool.Pool
}

// NewReferenceResolver cria uma nova instância de ReferenceResolver
func NewReferenceResolver(db *pgxpool.Pool) product.ReferenceResolver {
	return &ReferenceResolver{
		db: db,
	}
}

// DisplayName implementa product.ReferenceResolver.DisplayName
func (r *ReferenceResolver) DisplayName(ctx context.Context, p *product.Product) (string, error) {
	var table string
	switch p.Reference.Kind {
	case product.ReferenceCourse:
		table = "courses"
	case product.ReferenceModule:
		table = "modules"
	default:
		return p.Name, nil
	}

	var name string
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT name FROM %s WHERE id = $1", table),
		p.Reference.TargetID).Scan(&name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrReferenceNotFound
		}
		return "", fmt.Errorf("erro ao resolver referência do produto: %w", err)
	}

	return name, nil
}
