package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-educacional/internal/domain/receipt"
	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// Erros específicos do repositório
var (
	ErrReceiptNotFound     = errors.New("recibo não encontrado")
	ErrReceiptDuplicateKey = errors.New("recibo com mesmo número já existe na sede")
)

// Número de tentativas da transação de numeração antes de desistir
const receiptCreateRetries = 3

// ReceiptRepository implementa a interface receipt.Repository
type ReceiptRepository struct {
	db *pgxpool.Pool
}

// NewReceiptRepository cria uma nova instância de ReceiptRepository
func NewReceiptRepository(db *pgxpool.Pool) receipt.Repository {
	return &ReceiptRepository{
		db: db,
	}
}

const receiptColumns = `id, number, sequence, prefix, origin, issue_date,
	transaction_at, total_amount, total_discount, status, closing_batch,
	site_id, payer_id, cashier_id, enrollment_id, created_at, updated_at`

// Create implementa receipt.Repository.Create. A numeração passa pelo
// receipt.NumberingService com implementações presas à transação: a
// sequência da partição sede+origem é reservada com bloqueio de linha no
// contador, dentro da mesma transação que insere o recibo. Se a inserção
// falha, a sequência não é consumida e a numeração permanece sem lacunas.
func (r *ReceiptRepository) Create(ctx context.Context, rc *receipt.PaymentReceipt) error {
	var err error
	for attempt := 0; attempt < receiptCreateRetries; attempt++ {
		err = r.createOnce(ctx, rc)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
	}
	return err
}

func (r *ReceiptRepository) createOnce(ctx context.Context, rc *receipt.PaymentReceipt) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	numbering := receipt.NewNumberingService(txSiteFinder{tx: tx}, txSequencer{tx: tx})
	number, err := numbering.NextNumber(ctx, rc.SiteID, rc.Origin)
	if err != nil {
		return err
	}

	rc.Sequence = number.Sequence
	rc.Prefix = number.Prefix
	rc.Number = number.Full

	_, err = tx.Exec(ctx,
		`INSERT INTO payment_receipts (`+receiptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''),
			$12, NULLIF($13, ''), $14, NULLIF($15, ''), $16, $17)`,
		rc.ID, rc.Number, rc.Sequence, rc.Prefix, rc.Origin, rc.IssueDate,
		rc.TransactionAt, rc.TotalAmount, rc.TotalDiscount, rc.Status,
		rc.ClosingBatch, rc.SiteID, rc.PayerID, rc.CashierID, rc.EnrollmentID,
		rc.CreatedAt, rc.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrReceiptDuplicateKey
		}
		return fmt.Errorf("erro ao criar recibo: %w", err)
	}

	if err := r.insertLines(ctx, tx, rc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// txSiteFinder implementa receipt.SiteFinder lendo os prefixos da sede
// dentro da transação de emissão
type txSiteFinder struct {
	tx pgx.Tx
}

func (f txSiteFinder) FindByID(ctx context.Context, id string) (*site.Site, error) {
	var inventoryPrefix, academicPrefix *string

	err := f.tx.QueryRow(ctx,
		"SELECT inventory_prefix, academic_prefix FROM sites WHERE id = $1",
		id).Scan(&inventoryPrefix, &academicPrefix)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	st := site.Site{ID: id}
	if inventoryPrefix != nil {
		st.InventoryPrefix = *inventoryPrefix
	}
	if academicPrefix != nil {
		st.AcademicPrefix = *academicPrefix
	}

	return &st, nil
}

// txSequencer implementa receipt.Sequencer sobre a tabela receipt_counters.
// O contador é criado na primeira emissão da partição; o FOR UPDATE
// serializa emissões concorrentes na mesma partição.
type txSequencer struct {
	tx pgx.Tx
}

func (s txSequencer) Next(ctx context.Context, siteID string, origin site.Origin) (int, error) {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO receipt_counters (site_id, origin, last_sequence)
		VALUES ($1, $2, 0)
		ON CONFLICT (site_id, origin) DO NOTHING`,
		siteID, origin)
	if err != nil {
		return 0, fmt.Errorf("erro ao inicializar contador de numeração: %w", err)
	}

	var last int
	err = s.tx.QueryRow(ctx,
		`SELECT last_sequence FROM receipt_counters
		WHERE site_id = $1 AND origin = $2
		FOR UPDATE`,
		siteID, origin).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("erro ao bloquear contador de numeração: %w", err)
	}

	next := last + 1
	_, err = s.tx.Exec(ctx,
		`UPDATE receipt_counters SET last_sequence = $1, updated_at = $2
		WHERE site_id = $3 AND origin = $4`,
		next, time.Now(), siteID, origin)
	if err != nil {
		return 0, fmt.Errorf("erro ao avançar contador de numeração: %w", err)
	}

	return next, nil
}

// FindByID implementa receipt.Repository.FindByID
func (r *ReceiptRepository) FindByID(ctx context.Context, id string) (*receipt.PaymentReceipt, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByNumber implementa receipt.Repository.FindByNumber
func (r *ReceiptRepository) FindByNumber(ctx context.Context, siteID string, origin site.Origin, number string) (*receipt.PaymentReceipt, error) {
	return r.findOne(ctx, "site_id = $1 AND origin = $2 AND number = $3",
		siteID, origin, number)
}

func (r *ReceiptRepository) findOne(ctx context.Context, where string, args ...any) (*receipt.PaymentReceipt, error) {
	rc, err := r.scanReceiptRow(r.db.QueryRow(ctx,
		`SELECT `+receiptColumns+` FROM payment_receipts WHERE `+where, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, rc); err != nil {
		return nil, err
	}

	return rc, nil
}

// ListBySite implementa receipt.Repository.ListBySite
func (r *ReceiptRepository) ListBySite(ctx context.Context, siteID string, limit, offset int) ([]*receipt.PaymentReceipt, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+receiptColumns+` FROM payment_receipts
		WHERE site_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar recibos da sede: %w", err)
	}
	defer rows.Close()

	receipts := make([]*receipt.PaymentReceipt, 0)
	for rows.Next() {
		rc, err := r.scanReceiptRow(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	for _, rc := range receipts {
		if err := r.loadLines(ctx, rc); err != nil {
			return nil, err
		}
	}

	return receipts, nil
}

// CountBySite implementa receipt.Repository.CountBySite
func (r *ReceiptRepository) CountBySite(ctx context.Context, siteID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM payment_receipts WHERE site_id = $1",
		siteID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar recibos da sede: %w", err)
	}
	return count, nil
}

// UpdateLines implementa receipt.Repository.UpdateLines. O status é checado
// na própria escrita: se o recibo saiu de elaboração entre a leitura e a
// gravação, nada é alterado.
func (r *ReceiptRepository) UpdateLines(ctx context.Context, rc *receipt.PaymentReceipt) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE payment_receipts SET
			total_amount = $1, total_discount = $2, updated_at = $3
		WHERE id = $4 AND status = $5`,
		rc.TotalAmount, rc.TotalDiscount, rc.UpdatedAt, rc.ID,
		receipt.StatusInProcess)
	if err != nil {
		return fmt.Errorf("erro ao atualizar totais do recibo: %w", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, rc.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrReceiptNotFound
		}
		return receipt.ErrNotEditable
	}

	if err := r.deleteLines(ctx, tx, rc.ID); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, rc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// TransitionStatus implementa receipt.Repository.TransitionStatus com
// semântica compare-and-swap sobre o status atual
func (r *ReceiptRepository) TransitionStatus(ctx context.Context, id string, expected, next receipt.Status, closingBatch string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE payment_receipts SET
			status = $1,
			closing_batch = COALESCE(NULLIF($2, ''), closing_batch),
			updated_at = $3
		WHERE id = $4 AND status = $5`,
		next, closingBatch, time.Now(), id, expected)
	if err != nil {
		return fmt.Errorf("erro ao mudar status do recibo: %w", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrReceiptNotFound
		}
		return receipt.ErrStatusConflict
	}

	return nil
}

// Delete implementa receipt.Repository.Delete. Apenas recibos em elaboração
// podem ser removidos: recibos emitidos já consumiram uma sequência.
func (r *ReceiptRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM payment_receipts WHERE id = $1 AND status = $2",
		id, receipt.StatusInProcess)
	if err != nil {
		return fmt.Errorf("erro ao excluir recibo: %w", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrReceiptNotFound
		}
		return receipt.ErrNotEditable
	}

	return nil
}

func (r *ReceiptRepository) exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM payment_receipts WHERE id = $1)",
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar recibo: %w", err)
	}
	return exists, nil
}

// insertLines grava as linhas e os vínculos de lista de preço do recibo
func (r *ReceiptRepository) insertLines(ctx context.Context, tx pgx.Tx, rc *receipt.PaymentReceipt) error {
	for _, c := range rc.Concepts {
		_, err := tx.Exec(ctx,
			`INSERT INTO receipt_concepts (id, receipt_id, concept_type, concept_id, description, amount)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
			c.ID, rc.ID, c.ConceptType, c.ConceptID, c.Description, c.Amount)
		if err != nil {
			return fmt.Errorf("erro ao gravar linha de conceito: %w", err)
		}
	}

	for _, p := range rc.Products {
		_, err := tx.Exec(ctx,
			`INSERT INTO receipt_products (id, receipt_id, product_id, price_list_id, quantity, amount)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
			p.ID, rc.ID, p.ProductID, p.PriceListID, p.Quantity, p.Amount)
		if err != nil {
			return fmt.Errorf("erro ao gravar linha de produto: %w", err)
		}
	}

	for _, d := range rc.Discounts {
		_, err := tx.Exec(ctx,
			`INSERT INTO receipt_discounts (id, receipt_id, discount_id, amount)
			VALUES ($1, $2, $3, $4)`,
			d.ID, rc.ID, d.DiscountID, d.Amount)
		if err != nil {
			return fmt.Errorf("erro ao gravar linha de desconto: %w", err)
		}
	}

	for _, pm := range rc.PaymentMethods {
		_, err := tx.Exec(ctx,
			`INSERT INTO receipt_payment_methods (id, receipt_id, method, amount)
			VALUES ($1, $2, $3, $4)`,
			pm.ID, rc.ID, pm.Method, pm.Amount)
		if err != nil {
			return fmt.Errorf("erro ao gravar meio de pagamento: %w", err)
		}
	}

	for _, priceListID := range rc.PriceListIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO receipt_price_lists (receipt_id, price_list_id)
			VALUES ($1, $2)`,
			rc.ID, priceListID)
		if err != nil {
			return fmt.Errorf("erro ao vincular lista de preço ao recibo: %w", err)
		}
	}

	return nil
}

func (r *ReceiptRepository) deleteLines(ctx context.Context, tx pgx.Tx, receiptID string) error {
	tables := []string{
		"receipt_concepts", "receipt_products", "receipt_discounts",
		"receipt_payment_methods", "receipt_price_lists",
	}
	for _, table := range tables {
		_, err := tx.Exec(ctx,
			"DELETE FROM "+table+" WHERE receipt_id = $1", receiptID)
		if err != nil {
			return fmt.Errorf("erro ao remover linhas do recibo: %w", err)
		}
	}
	return nil
}

// loadLines carrega as linhas e os vínculos de lista de preço do recibo
func (r *ReceiptRepository) loadLines(ctx context.Context, rc *receipt.PaymentReceipt) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, concept_type, concept_id, description, amount
		FROM receipt_concepts WHERE receipt_id = $1`, rc.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar linhas de conceito: %w", err)
	}
	for rows.Next() {
		c := receipt.ConceptLine{ReceiptID: rc.ID}
		var conceptID *string
		if err := rows.Scan(&c.ID, &c.ConceptType, &conceptID, &c.Description, &c.Amount); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler linha de conceito: %w", err)
		}
		if conceptID != nil {
			c.ConceptID = *conceptID
		}
		rc.Concepts = append(rc.Concepts, &c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao ler resultados: %w", err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, product_id, price_list_id, quantity, amount
		FROM receipt_products WHERE receipt_id = $1`, rc.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar linhas de produto: %w", err)
	}
	for rows.Next() {
		p := receipt.ProductLine{ReceiptID: rc.ID}
		var priceListID *string
		if err := rows.Scan(&p.ID, &p.ProductID, &priceListID, &p.Quantity, &p.Amount); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler linha de produto: %w", err)
		}
		if priceListID != nil {
			p.PriceListID = *priceListID
		}
		rc.Products = append(rc.Products, &p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao ler resultados: %w", err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, discount_id, amount
		FROM receipt_discounts WHERE receipt_id = $1`, rc.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar linhas de desconto: %w", err)
	}
	for rows.Next() {
		d := receipt.DiscountLine{ReceiptID: rc.ID}
		if err := rows.Scan(&d.ID, &d.DiscountID, &d.Amount); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler linha de desconto: %w", err)
		}
		rc.Discounts = append(rc.Discounts, &d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao ler resultados: %w", err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, method, amount
		FROM receipt_payment_methods WHERE receipt_id = $1`, rc.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar meios de pagamento: %w", err)
	}
	for rows.Next() {
		pm := receipt.PaymentMethodLine{ReceiptID: rc.ID}
		if err := rows.Scan(&pm.ID, &pm.Method, &pm.Amount); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler meio de pagamento: %w", err)
		}
		rc.PaymentMethods = append(rc.PaymentMethods, &pm)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao ler resultados: %w", err)
	}

	rows, err = r.db.Query(ctx,
		"SELECT price_list_id FROM receipt_price_lists WHERE receipt_id = $1",
		rc.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar listas de preço do recibo: %w", err)
	}
	for rows.Next() {
		var priceListID string
		if err := rows.Scan(&priceListID); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler lista de preço do recibo: %w", err)
		}
		rc.PriceListIDs = append(rc.PriceListIDs, priceListID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ReceiptRepository) scanReceiptRow(row rowScanner) (*receipt.PaymentReceipt, error) {
	var rc receipt.PaymentReceipt
	var closingBatch, payerID, enrollmentID *string

	err := row.Scan(
		&rc.ID, &rc.Number, &rc.Sequence, &rc.Prefix, &rc.Origin,
		&rc.IssueDate, &rc.TransactionAt, &rc.TotalAmount, &rc.TotalDiscount,
		&rc.Status, &closingBatch, &rc.SiteID, &payerID, &rc.CashierID,
		&enrollmentID, &rc.CreatedAt, &rc.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("erro ao buscar recibo: %w", err)
	}

	if closingBatch != nil {
		rc.ClosingBatch = *closingBatch
	}
	if payerID != nil {
		rc.PayerID = *payerID
	}
	if enrollmentID != nil {
		rc.EnrollmentID = *enrollmentID
	}

	return &rc, nil
}

// isRetryableTxError identifica falhas transitórias de concorrência que
// justificam repetir a transação de emissão
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access")
}
