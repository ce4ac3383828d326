package receipt

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

var (
	ErrEmptySite         = errors.New("sede emissora é obrigatória")
	ErrEmptyCashier      = errors.New("caixa emissor é obrigatório")
	ErrNotEditable       = errors.New("recibo não está em elaboração e não pode ser alterado")
	ErrAlreadyClosed     = errors.New("recibo já está fechado")
	ErrCannotCloseVoided = errors.New("recibo anulado não pode ser fechado")
	ErrCannotVoidClosed  = errors.New("recibo fechado não pode ser anulado")
	ErrAlreadyVoided     = errors.New("recibo já está anulado")
	ErrStatusConflict    = errors.New("status do recibo foi alterado por outra operação")
)

// Status representa o ciclo de vida de um recibo de pagamento
type Status string

const (
	StatusInProcess Status = "in_process" // Em elaboração, linhas ainda mutáveis
	StatusCreated   Status = "created"    // Emitido
	StatusClosed    Status = "closed"     // Fechado em lote (terminal)
	StatusVoided    Status = "voided"     // Anulado (terminal)
)

// ConceptLine é uma linha de conceito de pagamento do recibo
type ConceptLine struct {
	ID          string  `json:"id"`
	ReceiptID   string  `json:"receipt_id"`
	ConceptType string  `json:"concept_type"`
	ConceptID   string  `json:"concept_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ProductLine é uma linha de produto vendido no recibo
type ProductLine struct {
	ID          string  `json:"id"`
	ReceiptID   string  `json:"receipt_id"`
	ProductID   string  `json:"product_id"`
	PriceListID string  `json:"price_list_id"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// DiscountLine é uma linha de desconto aplicado no recibo
type DiscountLine struct {
	ID         string  `json:"id"`
	ReceiptID  string  `json:"receipt_id"`
	DiscountID string  `json:"discount_id"`
	Amount     float64 `json:"amount"`
}

// PaymentMethodLine é uma linha de meio de pagamento do recibo
type PaymentMethodLine struct {
	ID        string  `json:"id"`
	ReceiptID string  `json:"receipt_id"`
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
}

// PaymentReceipt representa um recibo de pagamento emitido por uma sede.
// Os totais são sempre derivados das linhas anexadas, nunca informados.
type PaymentReceipt struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`   // Prefixo + sequência, único por sede+origem
	Sequence      int         `json:"sequence"`
	Prefix        string      `json:"prefix"`
	Origin        site.Origin `json:"origin"`
	IssueDate     time.Time   `json:"issue_date"`
	TransactionAt time.Time   `json:"transaction_at"`
	TotalAmount   float64     `json:"total_amount"`
	TotalDiscount float64     `json:"total_discount"`
	Status        Status      `json:"status"`
	ClosingBatch  string      `json:"closing_batch,omitempty"`

	SiteID       string `json:"site_id"`
	PayerID      string `json:"payer_id,omitempty"`
	CashierID    string `json:"cashier_id"`
	EnrollmentID string `json:"enrollment_id,omitempty"`

	PriceListIDs   []string             `json:"price_list_ids"`
	Concepts       []*ConceptLine       `json:"concepts"`
	Products       []*ProductLine       `json:"products"`
	Discounts      []*DiscountLine      `json:"discounts"`
	PaymentMethods []*PaymentMethodLine `json:"payment_methods"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPaymentReceipt cria um recibo em elaboração, ainda sem número
func NewPaymentReceipt(siteID, cashierID string, origin site.Origin, issueDate time.Time) (*PaymentReceipt, error) {
	if siteID == "" {
		return nil, ErrEmptySite
	}
	if cashierID == "" {
		return nil, ErrEmptyCashier
	}
	if _, err := site.ParseOrigin(string(origin)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &PaymentReceipt{
		ID:            uuid.New().String(),
		Origin:        origin,
		IssueDate:     issueDate,
		TransactionAt: now,
		Status:        StatusInProcess,
		SiteID:        siteID,
		CashierID:     cashierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Editable verifica se as linhas do recibo ainda podem ser alteradas
func (r *PaymentReceipt) Editable() bool {
	return r.Status == StatusInProcess
}

// IsTerminal verifica se o recibo está em um estado final
func (r *PaymentReceipt) IsTerminal() bool {
	return r.Status == StatusClosed || r.Status == StatusVoided
}

// MarkCreated emite o recibo após a anexação das linhas
func (r *PaymentReceipt) MarkCreated() error {
	if r.Status != StatusInProcess {
		return ErrNotEditable
	}
	r.Status = StatusCreated
	r.UpdatedAt = time.Now()
	return nil
}

// Close fecha o recibo, registrando o número do lote de fechamento quando
// informado. Fechado e anulado são estados terminais mutuamente exclusivos.
func (r *PaymentReceipt) Close(batchNumber string) error {
	switch r.Status {
	case StatusClosed:
		return ErrAlreadyClosed
	case StatusVoided:
		return ErrCannotCloseVoided
	}

	r.Status = StatusClosed
	r.ClosingBatch = batchNumber
	r.UpdatedAt = time.Now()
	return nil
}

// Void anula o recibo
func (r *PaymentReceipt) Void() error {
	switch r.Status {
	case StatusClosed:
		return ErrCannotVoidClosed
	case StatusVoided:
		return ErrAlreadyVoided
	}

	r.Status = StatusVoided
	r.UpdatedAt = time.Now()
	return nil
}

// AddConcept anexa uma linha de conceito e recalcula os totais
func (r *PaymentReceipt) AddConcept(conceptType, conceptID, description string, amount float64) error {
	if !r.Editable() {
		return ErrNotEditable
	}
	r.Concepts = append(r.Concepts, &ConceptLine{
		ID:          uuid.New().String(),
		ReceiptID:   r.ID,
		ConceptType: conceptType,
		ConceptID:   conceptID,
		Description: description,
		Amount:      amount,
	})
	r.RecomputeTotals()
	return nil
}

// AddProduct anexa uma linha de produto e recalcula os totais
func (r *PaymentReceipt) AddProduct(productID, priceListID string, quantity int, amount float64) error {
	if !r.Editable() {
		return ErrNotEditable
	}
	if quantity <= 0 {
		quantity = 1
	}
	r.Products = append(r.Products, &ProductLine{
		ID:          uuid.New().String(),
		ReceiptID:   r.ID,
		ProductID:   productID,
		PriceListID: priceListID,
		Quantity:    quantity,
		Amount:      amount,
	})
	r.trackPriceList(priceListID)
	r.RecomputeTotals()
	return nil
}

// AddDiscount anexa uma linha de desconto e recalcula os totais
func (r *PaymentReceipt) AddDiscount(discountID string, amount float64) error {
	if !r.Editable() {
		return ErrNotEditable
	}
	r.Discounts = append(r.Discounts, &DiscountLine{
		ID:         uuid.New().String(),
		ReceiptID:  r.ID,
		DiscountID: discountID,
		Amount:     amount,
	})
	r.RecomputeTotals()
	return nil
}

// AddPaymentMethod anexa uma linha de meio de pagamento
func (r *PaymentReceipt) AddPaymentMethod(method string, amount float64) error {
	if !r.Editable() {
		return ErrNotEditable
	}
	r.PaymentMethods = append(r.PaymentMethods, &PaymentMethodLine{
		ID:        uuid.New().String(),
		ReceiptID: r.ID,
		Method:    method,
		Amount:    amount,
	})
	return nil
}

// ClearLines remove todas as linhas de um recibo em elaboração
func (r *PaymentReceipt) ClearLines() error {
	if !r.Editable() {
		return ErrNotEditable
	}
	r.Concepts = nil
	r.Products = nil
	r.Discounts = nil
	r.PaymentMethods = nil
	r.PriceListIDs = nil
	r.RecomputeTotals()
	return nil
}

// RecomputeTotals deriva os totais do recibo a partir das linhas anexadas
func (r *PaymentReceipt) RecomputeTotals() {
	var total, discount float64
	for _, c := range r.Concepts {
		total += c.Amount
	}
	for _, p := range r.Products {
		total += p.Amount
	}
	for _, d := range r.Discounts {
		discount += d.Amount
	}

	r.TotalAmount = total
	r.TotalDiscount = discount
	r.UpdatedAt = time.Now()
}

func (r *PaymentReceipt) trackPriceList(priceListID string) {
	if priceListID == "" {
		return
	}
	for _, id := range r.PriceListIDs {
		if id == priceListID {
			return
		}
	}
	r.PriceListIDs = append(r.PriceListIDs, priceListID)
}
