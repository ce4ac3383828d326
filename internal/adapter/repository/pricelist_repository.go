package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
)

// Erros específicos do repositório
var (
	ErrPriceListNotFound     = errors.New("lista de preço não encontrada")
	ErrPriceListDuplicateKey = errors.New("lista de preço com mesmo código já existe")
	ErrProductPriceNotFound  = errors.New("preço de produto não encontrado na lista")
)

// PriceListRepository implementa a interface pricelist.Repository
type PriceListRepository struct {
	db *pgxpool.Pool
}

// NewPriceListRepository cria uma nova instância de PriceListRepository
func NewPriceListRepository(db *pgxpool.Pool) pricelist.Repository {
	return &PriceListRepository{
		db: db,
	}
}

const priceListColumns = `id, name, code, start_date, end_date, status, created_at, updated_at`

// Create implementa pricelist.Repository.Create
func (r *PriceListRepository) Create(ctx context.Context, pl *pricelist.PriceList) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO price_lists (`+priceListColumns+`)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`,
		pl.ID, pl.Name, pl.Code, pl.StartDate, pl.EndDate, pl.Status,
		pl.CreatedAt, pl.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrPriceListDuplicateKey
		}
		return fmt.Errorf("erro ao criar lista de preço: %w", err)
	}

	if err := r.replacePopulations(ctx, tx, pl.ID, pl.PopulationIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// FindByID implementa pricelist.Repository.FindByID
func (r *PriceListRepository) FindByID(ctx context.Context, id string) (*pricelist.PriceList, error) {
	pl, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		return nil, err
	}

	prices, err := r.listPrices(ctx, pl.ID)
	if err != nil {
		return nil, err
	}
	pl.Prices = prices

	return pl, nil
}

// FindByCode implementa pricelist.Repository.FindByCode
func (r *PriceListRepository) FindByCode(ctx context.Context, code string) (*pricelist.PriceList, error) {
	return r.findOne(ctx, "code = $1", code)
}

func (r *PriceListRepository) findOne(ctx context.Context, where string, arg any) (*pricelist.PriceList, error) {
	var pl pricelist.PriceList
	var code *string

	err := r.db.QueryRow(ctx,
		`SELECT `+priceListColumns+` FROM price_lists WHERE `+where,
		arg).Scan(
		&pl.ID, &pl.Name, &code, &pl.StartDate, &pl.EndDate, &pl.Status,
		&pl.CreatedAt, &pl.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPriceListNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lista de preço: %w", err)
	}

	if code != nil {
		pl.Code = *code
	}

	populations, err := r.listPopulations(ctx, pl.ID)
	if err != nil {
		return nil, err
	}
	pl.PopulationIDs = populations

	return &pl, nil
}

// FindActiveByPopulation implementa pricelist.Repository.FindActiveByPopulation
func (r *PriceListRepository) FindActiveByPopulation(ctx context.Context, populationID, excludeID string) ([]*pricelist.PriceList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pl.id, pl.name, pl.code, pl.start_date, pl.end_date, pl.status,
			pl.created_at, pl.updated_at
		FROM price_lists pl
		JOIN price_list_populations plp ON plp.price_list_id = pl.id
		WHERE plp.population_id = $1
			AND pl.status = $2
			AND pl.id <> $3
		ORDER BY pl.start_date ASC`,
		populationID, pricelist.StatusActive, excludeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar listas ativas da praça: %w", err)
	}
	defer rows.Close()

	return r.scanPriceListRows(ctx, rows)
}

// List implementa pricelist.Repository.List
func (r *PriceListRepository) List(ctx context.Context, limit, offset int) ([]*pricelist.PriceList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+priceListColumns+` FROM price_lists
		ORDER BY start_date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar listas de preço: %w", err)
	}
	defer rows.Close()

	return r.scanPriceListRows(ctx, rows)
}

// Count implementa pricelist.Repository.Count
func (r *PriceListRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM price_lists").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar listas de preço: %w", err)
	}
	return count, nil
}

// Update implementa pricelist.Repository.Update
func (r *PriceListRepository) Update(ctx context.Context, pl *pricelist.PriceList) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE price_lists SET
			name = $1, code = NULLIF($2, ''), start_date = $3, end_date = $4,
			status = $5, updated_at = $6
		WHERE id = $7`,
		pl.Name, pl.Code, pl.StartDate, pl.EndDate, pl.Status,
		pl.UpdatedAt, pl.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrPriceListDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar lista de preço: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPriceListNotFound
	}

	if err := r.replacePopulations(ctx, tx, pl.ID, pl.PopulationIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// UpdateStatus implementa pricelist.Repository.UpdateStatus
func (r *PriceListRepository) UpdateStatus(ctx context.Context, id string, status pricelist.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE price_lists SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status da lista de preço: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPriceListNotFound
	}

	return nil
}

// Delete implementa pricelist.Repository.Delete
func (r *PriceListRepository) Delete(ctx context.Context, id string) error {
	// Preços e vínculos de praça caem em cascata
	result, err := r.db.Exec(ctx, "DELETE FROM price_lists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir lista de preço: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPriceListNotFound
	}

	return nil
}

// ListApprovedToActivate implementa pricelist.Repository.ListApprovedToActivate
func (r *PriceListRepository) ListApprovedToActivate(ctx context.Context, now time.Time) ([]*pricelist.PriceList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+priceListColumns+` FROM price_lists
		WHERE status = $1 AND start_date <= $2 AND end_date >= $2`,
		pricelist.StatusApproved, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar listas a ativar: %w", err)
	}
	defer rows.Close()

	return r.scanPriceListRows(ctx, rows)
}

// ListActiveToExpire implementa pricelist.Repository.ListActiveToExpire
func (r *PriceListRepository) ListActiveToExpire(ctx context.Context, now time.Time) ([]*pricelist.PriceList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+priceListColumns+` FROM price_lists
		WHERE status = $1 AND end_date < $2`,
		pricelist.StatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar listas a expirar: %w", err)
	}
	defer rows.Close()

	return r.scanPriceListRows(ctx, rows)
}

// SavePrice implementa pricelist.Repository.SavePrice
func (r *PriceListRepository) SavePrice(ctx context.Context, pp *pricelist.ProductPrice) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO product_prices (
			id, price_list_id, product_id, cash_price, total_price,
			enrollment_fee, installment_count, installment_amount,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (price_list_id, product_id) DO UPDATE SET
			cash_price = EXCLUDED.cash_price,
			total_price = EXCLUDED.total_price,
			enrollment_fee = EXCLUDED.enrollment_fee,
			installment_count = EXCLUDED.installment_count,
			installment_amount = EXCLUDED.installment_amount,
			updated_at = EXCLUDED.updated_at`,
		pp.ID, pp.PriceListID, pp.ProductID, pp.CashPrice, pp.TotalPrice,
		pp.EnrollmentFee, pp.InstallmentCount, pp.InstallmentAmount,
		pp.CreatedAt, pp.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao gravar preço de produto: %w", err)
	}

	return nil
}

// FindPrice implementa pricelist.Repository.FindPrice
func (r *PriceListRepository) FindPrice(ctx context.Context, priceListID, productID string) (*pricelist.ProductPrice, error) {
	var pp pricelist.ProductPrice

	err := r.db.QueryRow(ctx,
		`SELECT id, price_list_id, product_id, cash_price, total_price,
			enrollment_fee, installment_count, installment_amount,
			created_at, updated_at
		FROM product_prices
		WHERE price_list_id = $1 AND product_id = $2`,
		priceListID, productID).Scan(
		&pp.ID, &pp.PriceListID, &pp.ProductID, &pp.CashPrice, &pp.TotalPrice,
		&pp.EnrollmentFee, &pp.InstallmentCount, &pp.InstallmentAmount,
		&pp.CreatedAt, &pp.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductPriceNotFound
		}
		return nil, fmt.Errorf("erro ao buscar preço de produto: %w", err)
	}

	return &pp, nil
}

// DeletePrice implementa pricelist.Repository.DeletePrice
func (r *PriceListRepository) DeletePrice(ctx context.Context, priceListID, productID string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM product_prices WHERE price_list_id = $1 AND product_id = $2",
		priceListID, productID)
	if err != nil {
		return fmt.Errorf("erro ao excluir preço de produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductPriceNotFound
	}

	return nil
}

// replacePopulations substitui os vínculos de praça da lista dentro da transação
func (r *PriceListRepository) replacePopulations(ctx context.Context, tx pgx.Tx, priceListID string, populationIDs []string) error {
	_, err := tx.Exec(ctx,
		"DELETE FROM price_list_populations WHERE price_list_id = $1",
		priceListID)
	if err != nil {
		return fmt.Errorf("erro ao remover vínculos de praça: %w", err)
	}

	for _, populationID := range populationIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO price_list_populations (price_list_id, population_id)
			VALUES ($1, $2)`,
			priceListID, populationID)
		if err != nil {
			return fmt.Errorf("erro ao vincular praça à lista de preço: %w", err)
		}
	}

	return nil
}

// listPopulations retorna os IDs das praças cobertas pela lista
func (r *PriceListRepository) listPopulations(ctx context.Context, priceListID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT population_id FROM price_list_populations WHERE price_list_id = $1",
		priceListID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar praças da lista: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao ler praça da lista: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return ids, nil
}

// listPrices retorna os preços de produto da lista
func (r *PriceListRepository) listPrices(ctx context.Context, priceListID string) ([]*pricelist.ProductPrice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, price_list_id, product_id, cash_price, total_price,
			enrollment_fee, installment_count, installment_amount,
			created_at, updated_at
		FROM product_prices WHERE price_list_id = $1`,
		priceListID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar preços da lista: %w", err)
	}
	defer rows.Close()

	prices := make([]*pricelist.ProductPrice, 0)
	for rows.Next() {
		var pp pricelist.ProductPrice
		err := rows.Scan(
			&pp.ID, &pp.PriceListID, &pp.ProductID, &pp.CashPrice,
			&pp.TotalPrice, &pp.EnrollmentFee, &pp.InstallmentCount,
			&pp.InstallmentAmount, &pp.CreatedAt, &pp.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler preço de produto: %w", err)
		}
		prices = append(prices, &pp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return prices, nil
}

// scanPriceListRows é um método auxiliar para processar resultados de
// consultas que retornam múltiplas listas de preço
func (r *PriceListRepository) scanPriceListRows(ctx context.Context, rows pgx.Rows) ([]*pricelist.PriceList, error) {
	lists := make([]*pricelist.PriceList, 0)

	for rows.Next() {
		var pl pricelist.PriceList
		var code *string

		err := rows.Scan(
			&pl.ID, &pl.Name, &code, &pl.StartDate, &pl.EndDate, &pl.Status,
			&pl.CreatedAt, &pl.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler lista de preço: %w", err)
		}

		if code != nil {
			pl.Code = *code
		}

		lists = append(lists, &pl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	// Os vínculos de praça são carregados após o cursor fechar
	for _, pl := range lists {
		populations, err := r.listPopulations(ctx, pl.ID)
		if err != nil {
			return nil, err
		}
		pl.PopulationIDs = populations
	}

	return lists, nil
}
