package dto

import (
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/discount"
)

// DiscountRequest representa os dados de um desconto para criação ou
// atualização
type DiscountRequest struct {
	Name           string    `json:"name" binding:"required"`
	Code           string    `json:"code"`
	Description    string    `json:"description"`
	Kind           string    `json:"kind" binding:"required"`
	Value          float64   `json:"value" binding:"required"`
	Target         string    `json:"target" binding:"required"`
	Activation     string    `json:"activation" binding:"required"`
	MinAdvanceDays int       `json:"min_advance_days"`
	Accumulable    bool      `json:"accumulable"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`

	PriceLists  []string `json:"price_lists"`
	Products    []string `json:"products"`
	Sites       []string `json:"sites"`
	Populations []string `json:"populations"`
}

// DiscountResponse representa a resposta com dados de um desconto
type DiscountResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code,omitempty"`
	Description    string    `json:"description,omitempty"`
	Kind           string    `json:"kind"`
	Value          float64   `json:"value"`
	Target         string    `json:"target"`
	Activation     string    `json:"activation"`
	MinAdvanceDays int       `json:"min_advance_days,omitempty"`
	Accumulable    bool      `json:"accumulable"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`

	PriceLists  []string `json:"price_lists"`
	Products    []string `json:"products"`
	Sites       []string `json:"sites"`
	Populations []string `json:"populations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountListResponse representa a resposta com a lista de descontos paginada
type DiscountListResponse struct {
	Data       []DiscountResponse `json:"data"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// EligibilityRequest representa o contexto de uma consulta de elegibilidade
// de descontos
type EligibilityRequest struct {
	ProductID     string     `json:"product_id" binding:"required"`
	PriceListID   string     `json:"price_list_id" binding:"required"`
	SiteID        string     `json:"site_id"`
	PopulationID  string     `json:"population_id"`
	PromoCode     string     `json:"promo_code"`
	PaymentDate   *time.Time `json:"payment_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

// SimulationRequest representa uma simulação de aplicação de descontos sobre
// as bases de cobrança de um produto
type SimulationRequest struct {
	EligibilityRequest
	TotalPrice        float64 `json:"total_price"`
	EnrollmentFee     float64 `json:"enrollment_fee"`
	InstallmentAmount float64 `json:"installment_amount"`
	InstallmentCount  int     `json:"installment_count"`
}

// ApplicationResponse representa um registro de aplicação de desconto
type ApplicationResponse struct {
	ID             string    `json:"id"`
	DiscountID     string    `json:"discount_id"`
	ConceptType    string    `json:"concept_type"`
	ConceptID      string    `json:"concept_id,omitempty"`
	OriginalAmount float64   `json:"original_amount"`
	DiscountAmount float64   `json:"discount_amount"`
	FinalAmount    float64   `json:"final_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// SimulationResponse representa os valores ajustados após a aplicação dos
// descontos elegíveis
type SimulationResponse struct {
	TotalPrice        float64               `json:"total_price"`
	EnrollmentFee     float64               `json:"enrollment_fee"`
	InstallmentAmount float64               `json:"installment_amount"`
	TotalDiscount     float64               `json:"total_discount"`
	Applied           []ApplicationResponse `json:"applied"`
}

// ToEligibilityInput converte a requisição para a entrada do domínio
func (r EligibilityRequest) ToEligibilityInput(now time.Time) discount.EligibilityInput {
	return discount.EligibilityInput{
		ProductID:     r.ProductID,
		PriceListID:   r.PriceListID,
		SiteID:        r.SiteID,
		PopulationID:  r.PopulationID,
		Now:           now,
		PromoCode:     r.PromoCode,
		PaymentDate:   r.PaymentDate,
		ScheduledDate: r.ScheduledDate,
	}
}

// ToDiscountResponse converte um desconto do domínio para DTO de resposta
func ToDiscountResponse(d *discount.Discount) DiscountResponse {
	return DiscountResponse{
		ID:             d.ID,
		Name:           d.Name,
		Code:           d.Code,
		Description:    d.Description,
		Kind:           string(d.Kind),
		Value:          d.Value,
		Target:         string(d.Target),
		Activation:     string(d.Activation),
		MinAdvanceDays: d.MinAdvanceDays,
		Accumulable:    d.Accumulable,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Status:         string(d.Status),
		PriceLists:     d.PriceLists,
		Products:       d.Products,
		Sites:          d.Sites,
		Populations:    d.Populations,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDiscountListResponse converte uma lista de descontos do domínio para DTO
// de resposta paginada
func ToDiscountListResponse(discounts []*discount.Discount, totalCount, page, pageSize int) DiscountListResponse {
	data := make([]DiscountResponse, len(discounts))
	for i, d := range discounts {
		data[i] = ToDiscountResponse(d)
	}

	return DiscountListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}

// ToApplicationResponse converte um registro de aplicação do domínio
func ToApplicationResponse(a *discount.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		DiscountID:     a.DiscountID,
		ConceptType:    string(a.ConceptType),
		ConceptID:      a.ConceptID,
		OriginalAmount: a.OriginalAmount,
		DiscountAmount: a.DiscountAmount,
		FinalAmount:    a.FinalAmount,
		CreatedAt:      a.CreatedAt,
	}
}

// ToSimulationResponse converte o resultado da acumulação de descontos
func ToSimulationResponse(result discount.StackingResult) SimulationResponse {
	applied := make([]ApplicationResponse, len(result.Applied))
	for i, a := range result.Applied {
		applied[i] = ToApplicationResponse(a)
	}

	return SimulationResponse{
		TotalPrice:        result.TotalPrice,
		EnrollmentFee:     result.EnrollmentFee,
		InstallmentAmount: result.InstallmentAmount,
		TotalDiscount:     result.TotalDiscount,
		Applied:           applied,
	}
}
