package dto

import (
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/receipt"
)

// ConceptLineRequest representa uma linha de conceito de pagamento
type ConceptLineRequest struct {
	ConceptType string  `json:"concept_type" binding:"required"`
	ConceptID   string  `json:"concept_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ProductLineRequest representa uma linha de produto vendido
type ProductLineRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	PriceListID string  `json:"price_list_id"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// DiscountLineRequest representa uma linha de desconto aplicado
type DiscountLineRequest struct {
	DiscountID string  `json:"discount_id" binding:"required"`
	Amount     float64 `json:"amount"`
}

// PaymentMethodLineRequest representa uma linha de meio de pagamento
type PaymentMethodLineRequest struct {
	Method string  `json:"method" binding:"required"`
	Amount float64 `json:"amount"`
}

// ReceiptRequest representa os dados de um recibo para emissão
type ReceiptRequest struct {
	SiteID       string    `json:"site_id" binding:"required"`
	Origin       string    `json:"origin" binding:"required"`
	IssueDate    time.Time `json:"issue_date"`
	PayerID      string    `json:"payer_id"`
	EnrollmentID string    `json:"enrollment_id"`

	Concepts       []ConceptLineRequest       `json:"concepts"`
	Products       []ProductLineRequest       `json:"products"`
	Discounts      []DiscountLineRequest      `json:"discounts"`
	PaymentMethods []PaymentMethodLineRequest `json:"payment_methods"`
}

// ReceiptLinesRequest representa a substituição das linhas de um recibo em
// elaboração
type ReceiptLinesRequest struct {
	Concepts       []ConceptLineRequest       `json:"concepts"`
	Products       []ProductLineRequest       `json:"products"`
	Discounts      []DiscountLineRequest      `json:"discounts"`
	PaymentMethods []PaymentMethodLineRequest `json:"payment_methods"`
}

// CloseReceiptRequest representa o fechamento de um recibo em lote
type CloseReceiptRequest struct {
	ClosingBatch string `json:"closing_batch"`
}

// ConceptLineResponse representa uma linha de conceito na resposta
type ConceptLineResponse struct {
	ID          string  `json:"id"`
	ConceptType string  `json:"concept_type"`
	ConceptID   string  `json:"concept_id,omitempty"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

// ProductLineResponse representa uma linha de produto na resposta
type ProductLineResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	PriceListID string  `json:"price_list_id,omitempty"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// DiscountLineResponse representa uma linha de desconto na resposta
type DiscountLineResponse struct {
	ID         string  `json:"id"`
	DiscountID string  `json:"discount_id"`
	Amount     float64 `json:"amount"`
}

// PaymentMethodLineResponse representa uma linha de meio de pagamento
type PaymentMethodLineResponse struct {
	ID     string  `json:"id"`
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// ReceiptResponse representa a resposta com dados de um recibo
type ReceiptResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	Sequence      int       `json:"sequence"`
	Prefix        string    `json:"prefix"`
	Origin        string    `json:"origin"`
	IssueDate     time.Time `json:"issue_date"`
	TransactionAt time.Time `json:"transaction_at"`
	TotalAmount   float64   `json:"total_amount"`
	TotalDiscount float64   `json:"total_discount"`
	Status        string    `json:"status"`
	ClosingBatch  string    `json:"closing_batch,omitempty"`

	SiteID       string `json:"site_id"`
	PayerID      string `json:"payer_id,omitempty"`
	CashierID    string `json:"cashier_id"`
	EnrollmentID string `json:"enrollment_id,omitempty"`

	PriceListIDs   []string                    `json:"price_list_ids"`
	Concepts       []ConceptLineResponse       `json:"concepts"`
	Products       []ProductLineResponse       `json:"products"`
	Discounts      []DiscountLineResponse      `json:"discounts"`
	PaymentMethods []PaymentMethodLineResponse `json:"payment_methods"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReceiptListResponse representa a resposta com a lista de recibos paginada
type ReceiptListResponse struct {
	Data       []ReceiptResponse `json:"data"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ToReceiptResponse converte um recibo do domínio para DTO de resposta
func ToReceiptResponse(rc *receipt.PaymentReceipt) ReceiptResponse {
	concepts := make([]ConceptLineResponse, len(rc.Concepts))
	for i, c := range rc.Concepts {
		concepts[i] = ConceptLineResponse{
			ID:          c.ID,
			ConceptType: c.ConceptType,
			ConceptID:   c.ConceptID,
			Description: c.Description,
			Amount:      c.Amount,
		}
	}

	products := make([]ProductLineResponse, len(rc.Products))
	for i, p := range rc.Products {
		products[i] = ProductLineResponse{
			ID:          p.ID,
			ProductID:   p.ProductID,
			PriceListID: p.PriceListID,
			Quantity:    p.Quantity,
			Amount:      p.Amount,
		}
	}

	discounts := make([]DiscountLineResponse, len(rc.Discounts))
	for i, d := range rc.Discounts {
		discounts[i] = DiscountLineResponse{
			ID:         d.ID,
			DiscountID: d.DiscountID,
			Amount:     d.Amount,
		}
	}

	methods := make([]PaymentMethodLineResponse, len(rc.PaymentMethods))
	for i, pm := range rc.PaymentMethods {
		methods[i] = PaymentMethodLineResponse{
			ID:     pm.ID,
			Method: pm.Method,
			Amount: pm.Amount,
		}
	}

	return ReceiptResponse{
		ID:             rc.ID,
		Number:         rc.Number,
		Sequence:       rc.Sequence,
		Prefix:         rc.Prefix,
		Origin:         string(rc.Origin),
		IssueDate:      rc.IssueDate,
		TransactionAt:  rc.TransactionAt,
		TotalAmount:    rc.TotalAmount,
		TotalDiscount:  rc.TotalDiscount,
		Status:         string(rc.Status),
		ClosingBatch:   rc.ClosingBatch,
		SiteID:         rc.SiteID,
		PayerID:        rc.PayerID,
		CashierID:      rc.CashierID,
		EnrollmentID:   rc.EnrollmentID,
		PriceListIDs:   rc.PriceListIDs,
		Concepts:       concepts,
		Products:       products,
		Discounts:      discounts,
		PaymentMethods: methods,
		CreatedAt:      rc.CreatedAt,
		UpdatedAt:      rc.UpdatedAt,
	}
}

// ToReceiptListResponse converte uma lista de recibos do domínio para DTO de
// resposta paginada
func ToReceiptListResponse(receipts []*receipt.PaymentReceipt, totalCount, page, pageSize int) ReceiptListResponse {
	data := make([]ReceiptResponse, len(receipts))
	for i, rc := range receipts {
		data[i] = ToReceiptResponse(rc)
	}

	return ReceiptListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
