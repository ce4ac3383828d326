package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-educacional/internal/domain/discount"
)

// Erros específicos do repositório
var (
	ErrDiscountNotFound     = errors.New("desconto não encontrado")
	ErrDiscountDuplicateKey = errors.New("desconto com mesmo código promocional já existe")
)

// Tabelas de escopo, uma por eixo de restrição
var discountScopeTables = map[string]string{
	"price_lists": "discount_price_lists",
	"products":    "discount_products",
	"sites":       "discount_sites",
	"populations": "discount_populations",
}

// DiscountRepository implementa a interface discount.Repository
type DiscountRepository struct {
	db *pgxpool.Pool
}

// NewDiscountRepository cria uma nova instância de DiscountRepository
func NewDiscountRepository(db *pgxpool.Pool) discount.Repository {
	return &DiscountRepository{
		db: db,
	}
}

const discountColumns = `id, name, code, description, kind, value, target,
	activation, min_advance_days, accumulable, start_date, end_date, status,
	created_at, updated_at`

// Create implementa discount.Repository.Create
func (r *DiscountRepository) Create(ctx context.Context, d *discount.Discount) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO discounts (`+discountColumns+`)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		d.ID, d.Name, d.Code, d.Description, d.Kind, d.Value, d.Target,
		d.Activation, d.MinAdvanceDays, d.Accumulable, d.StartDate, d.EndDate,
		d.Status, d.CreatedAt, d.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDiscountDuplicateKey
		}
		return fmt.Errorf("erro ao criar desconto: %w", err)
	}

	if err := r.replaceScopes(ctx, tx, d); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// FindByID implementa discount.Repository.FindByID
func (r *DiscountRepository) FindByID(ctx context.Context, id string) (*discount.Discount, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByCode implementa discount.Repository.FindByCode
func (r *DiscountRepository) FindByCode(ctx context.Context, code string) (*discount.Discount, error) {
	return r.findOne(ctx, "LOWER(code) = LOWER($1)", strings.TrimSpace(code))
}

func (r *DiscountRepository) findOne(ctx context.Context, where string, arg any) (*discount.Discount, error) {
	var d discount.Discount
	var code *string

	err := r.db.QueryRow(ctx,
		`SELECT `+discountColumns+` FROM discounts WHERE `+where,
		arg).Scan(
		&d.ID, &d.Name, &code, &d.Description, &d.Kind, &d.Value, &d.Target,
		&d.Activation, &d.MinAdvanceDays, &d.Accumulable, &d.StartDate,
		&d.EndDate, &d.Status, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("erro ao buscar desconto: %w", err)
	}

	if code != nil {
		d.Code = *code
	}

	if err := r.loadScopes(ctx, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// FindUsableAt implementa discount.Repository.FindUsableAt
func (r *DiscountRepository) FindUsableAt(ctx context.Context, at time.Time) ([]*discount.Discount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+discountColumns+` FROM discounts
		WHERE status = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY created_at ASC`,
		discount.StatusActive, at)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar descontos vigentes: %w", err)
	}
	defer rows.Close()

	return r.scanDiscountRows(ctx, rows)
}

// List implementa discount.Repository.List
func (r *DiscountRepository) List(ctx context.Context, limit, offset int) ([]*discount.Discount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+discountColumns+` FROM discounts
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar descontos: %w", err)
	}
	defer rows.Close()

	return r.scanDiscountRows(ctx, rows)
}

// Count implementa discount.Repository.Count
func (r *DiscountRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM discounts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar descontos: %w", err)
	}
	return count, nil
}

// Update implementa discount.Repository.Update
func (r *DiscountRepository) Update(ctx context.Context, d *discount.Discount) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE discounts SET
			name = $1, code = NULLIF($2, ''), description = $3, kind = $4,
			value = $5, target = $6, activation = $7, min_advance_days = $8,
			accumulable = $9, start_date = $10, end_date = $11, status = $12,
			updated_at = $13
		WHERE id = $14`,
		d.Name, d.Code, d.Description, d.Kind, d.Value, d.Target,
		d.Activation, d.MinAdvanceDays, d.Accumulable, d.StartDate, d.EndDate,
		d.Status, d.UpdatedAt, d.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDiscountDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar desconto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrDiscountNotFound
	}

	if err := r.replaceScopes(ctx, tx, d); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// UpdateStatus implementa discount.Repository.UpdateStatus
func (r *DiscountRepository) UpdateStatus(ctx context.Context, id string, status discount.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE discounts SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status do desconto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrDiscountNotFound
	}

	return nil
}

// Delete implementa discount.Repository.Delete
func (r *DiscountRepository) Delete(ctx context.Context, id string) error {
	// Escopos caem em cascata; aplicações registradas permanecem
	result, err := r.db.Exec(ctx, "DELETE FROM discounts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir desconto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrDiscountNotFound
	}

	return nil
}

// ListApprovedToActivate implementa discount.Repository.ListApprovedToActivate
func (r *DiscountRepository) ListApprovedToActivate(ctx context.Context, now time.Time) ([]*discount.Discount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+discountColumns+` FROM discounts
		WHERE status = $1 AND start_date <= $2 AND end_date >= $2`,
		discount.StatusApproved, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar descontos a ativar: %w", err)
	}
	defer rows.Close()

	return r.scanDiscountRows(ctx, rows)
}

// ListActiveToExpire implementa discount.Repository.ListActiveToExpire
func (r *DiscountRepository) ListActiveToExpire(ctx context.Context, now time.Time) ([]*discount.Discount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+discountColumns+` FROM discounts
		WHERE status = $1 AND end_date < $2`,
		discount.StatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar descontos a expirar: %w", err)
	}
	defer rows.Close()

	return r.scanDiscountRows(ctx, rows)
}

// replaceScopes substitui os vínculos de escopo do desconto dentro da transação
func (r *DiscountRepository) replaceScopes(ctx context.Context, tx pgx.Tx, d *discount.Discount) error {
	scopes := map[string]discount.Scope{
		"price_lists": d.PriceLists,
		"products":    d.Products,
		"sites":       d.Sites,
		"populations": d.Populations,
	}

	for axis, table := range discountScopeTables {
		_, err := tx.Exec(ctx,
			"DELETE FROM "+table+" WHERE discount_id = $1", d.ID)
		if err != nil {
			return fmt.Errorf("erro ao remover escopo %s do desconto: %w", axis, err)
		}

		for _, targetID := range scopes[axis] {
			_, err := tx.Exec(ctx,
				"INSERT INTO "+table+" (discount_id, target_id) VALUES ($1, $2)",
				d.ID, targetID)
			if err != nil {
				return fmt.Errorf("erro ao gravar escopo %s do desconto: %w", axis, err)
			}
		}
	}

	return nil
}

// loadScopes carrega os quatro eixos de escopo do desconto
func (r *DiscountRepository) loadScopes(ctx context.Context, d *discount.Discount) error {
	for axis, table := range discountScopeTables {
		rows, err := r.db.Query(ctx,
			"SELECT target_id FROM "+table+" WHERE discount_id = $1", d.ID)
		if err != nil {
			return fmt.Errorf("erro ao buscar escopo %s do desconto: %w", axis, err)
		}

		scope := make(discount.Scope, 0)
		for rows.Next() {
			var targetID string
			if err := rows.Scan(&targetID); err != nil {
				rows.Close()
				return fmt.Errorf("erro ao ler escopo %s do desconto: %w", axis, err)
			}
			scope = append(scope, targetID)
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			return fmt.Errorf("erro ao ler resultados: %w", err)
		}

		switch axis {
		case "price_lists":
			d.PriceLists = scope
		case "products":
			d.Products = scope
		case "sites":
			d.Sites = scope
		case "populations":
			d.Populations = scope
		}
	}

	return nil
}

// scanDiscountRows é um método auxiliar para processar resultados de
// consultas que retornam múltiplos descontos
func (r *DiscountRepository) scanDiscountRows(ctx context.Context, rows pgx.Rows) ([]*discount.Discount, error) {
	discounts := make([]*discount.Discount, 0)

	for rows.Next() {
		var d discount.Discount
		var code *string

		err := rows.Scan(
			&d.ID, &d.Name, &code, &d.Description, &d.Kind, &d.Value,
			&d.Target, &d.Activation, &d.MinAdvanceDays, &d.Accumulable,
			&d.StartDate, &d.EndDate, &d.Status, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler desconto: %w", err)
		}

		if code != nil {
			d.Code = *code
		}

		discounts = append(discounts, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	for _, d := range discounts {
		if err := r.loadScopes(ctx, d); err != nil {
			return nil, err
		}
	}

	return discounts, nil
}

// DiscountApplicationRepository implementa discount.ApplicationRepository
type DiscountApplicationRepository struct {
	db *pgxpool.Pool
}

// NewDiscountApplicationRepository cria uma nova instância de DiscountApplicationRepository
func NewDiscountApplicationRepository(db *pgxpool.Pool) discount.ApplicationRepository {
	return &DiscountApplicationRepository{
		db: db,
	}
}

// Create implementa discount.ApplicationRepository.Create
func (r *DiscountApplicationRepository) Create(ctx context.Context, a *discount.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO discount_applications (
			id, discount_id, concept_type, concept_id, original_amount,
			discount_amount, final_amount, product_id, price_list_id,
			site_id, created_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11)`,
		a.ID, a.DiscountID, a.ConceptType, a.ConceptID, a.OriginalAmount,
		a.DiscountAmount, a.FinalAmount, a.ProductID, a.PriceListID,
		a.SiteID, a.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao registrar aplicação de desconto: %w", err)
	}

	return nil
}

// ListByConcept implementa discount.ApplicationRepository.ListByConcept
func (r *DiscountApplicationRepository) ListByConcept(ctx context.Context, conceptType discount.ConceptType, conceptID string) ([]*discount.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, discount_id, concept_type, concept_id, original_amount,
			discount_amount, final_amount, product_id, price_list_id,
			site_id, created_at
		FROM discount_applications
		WHERE concept_type = $1 AND concept_id = $2
		ORDER BY created_at ASC`,
		conceptType, conceptID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar aplicações de desconto: %w", err)
	}
	defer rows.Close()

	return scanApplicationRows(rows)
}

// ListByDiscount implementa discount.ApplicationRepository.ListByDiscount
func (r *DiscountApplicationRepository) ListByDiscount(ctx context.Context, discountID string, limit, offset int) ([]*discount.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, discount_id, concept_type, concept_id, original_amount,
			discount_amount, final_amount, product_id, price_list_id,
			site_id, created_at
		FROM discount_applications
		WHERE discount_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		discountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar aplicações do desconto: %w", err)
	}
	defer rows.Close()

	return scanApplicationRows(rows)
}

func scanApplicationRows(rows pgx.Rows) ([]*discount.Application, error) {
	applications := make([]*discount.Application, 0)

	for rows.Next() {
		var a discount.Application
		var conceptID, productID, priceListID, siteID *string

		err := rows.Scan(
			&a.ID, &a.DiscountID, &a.ConceptType, &conceptID,
			&a.OriginalAmount, &a.DiscountAmount, &a.FinalAmount,
			&productID, &priceListID, &siteID, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler aplicação de desconto: %w", err)
		}

		if conceptID != nil {
			a.ConceptID = *conceptID
		}
		if productID != nil {
			a.ProductID = *productID
		}
		if priceListID != nil {
			a.PriceListID = *priceListID
		}
		if siteID != nil {
			a.SiteID = *siteID
		}

		applications = append(applications, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return applications, nil
}
