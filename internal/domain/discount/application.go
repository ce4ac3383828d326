package discount

import (
	"time"

	"github.com/google/uuid"
)

// ConceptType identifica o componente de cobrança sobre o qual um desconto
// foi aplicado
type ConceptType string

const (
	ConceptTotalPrice    ConceptType = "total_price"
	ConceptEnrollmentFee ConceptType = "enrollment_fee"
	ConceptInstallment   ConceptType = "installment"
)

// Application é o registro de auditoria de uma aplicação de desconto.
// Imutável após a criação: nunca é alterado ou removido pelo fluxo normal.
type Application struct {
	ID             string      `json:"id"`
	DiscountID     string      `json:"discount_id"`
	ConceptType    ConceptType `json:"concept_type"`
	ConceptID      string      `json:"concept_id,omitempty"`
	OriginalAmount float64     `json:"original_amount"`
	DiscountAmount float64     `json:"discount_amount"`
	FinalAmount    float64     `json:"final_amount"`
	ProductID      string      `json:"product_id,omitempty"`
	PriceListID    string      `json:"price_list_id,omitempty"`
	SiteID         string      `json:"site_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewApplication cria um registro de aplicação de desconto. O montante nunca
// excede a base original, garantindo valor final não negativo.
func NewApplication(discountID string, conceptType ConceptType, originalAmount, discountAmount float64) *Application {
	if discountAmount > originalAmount {
		discountAmount = originalAmount
	}
	return &Application{
		ID:             uuid.New().String(),
		DiscountID:     discountID,
		ConceptType:    conceptType,
		OriginalAmount: originalAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    originalAmount - discountAmount,
		CreatedAt:      time.Now(),
	}
}
