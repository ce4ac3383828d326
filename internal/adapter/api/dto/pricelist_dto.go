package dto

import (
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
)

// PriceListRequest representa os dados de uma lista de preço para criação ou
// atualização
type PriceListRequest struct {
	Name          string    `json:"name" binding:"required"`
	Code          string    `json:"code"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	PopulationIDs []string  `json:"population_ids" binding:"required"`
}

// ProductPriceRequest representa o preço de um produto dentro de uma lista
type ProductPriceRequest struct {
	ProductID        string   `json:"product_id" binding:"required"`
	CashPrice        float64  `json:"cash_price"`
	TotalPrice       *float64 `json:"total_price"`
	EnrollmentFee    float64  `json:"enrollment_fee"`
	InstallmentCount *int     `json:"installment_count"`
}

// PriceListResponse representa a resposta com dados de uma lista de preço
type PriceListResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Code          string                 `json:"code,omitempty"`
	StartDate     time.Time              `json:"start_date"`
	EndDate       time.Time              `json:"end_date"`
	Status        string                 `json:"status"`
	PopulationIDs []string               `json:"population_ids"`
	Prices        []ProductPriceResponse `json:"prices,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ProductPriceResponse representa a resposta com o preço de um produto
type ProductPriceResponse struct {
	ID                string   `json:"id"`
	PriceListID       string   `json:"price_list_id"`
	ProductID         string   `json:"product_id"`
	CashPrice         float64  `json:"cash_price"`
	TotalPrice        *float64 `json:"total_price,omitempty"`
	EnrollmentFee     float64  `json:"enrollment_fee"`
	InstallmentCount  *int     `json:"installment_count,omitempty"`
	InstallmentAmount float64  `json:"installment_amount"`
}

// PriceListListResponse representa a resposta com a lista paginada
type PriceListListResponse struct {
	Data       []PriceListResponse `json:"data"`
	TotalCount int                 `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// VigencyCheckResponse representa o resultado da validação de vigência
type VigencyCheckResponse struct {
	Valid     bool     `json:"valid"`
	Conflicts []string `json:"conflicts,omitempty"` // IDs das listas conflitantes
}

// ToPriceListResponse converte uma lista de preço do domínio para DTO de resposta
func ToPriceListResponse(pl *pricelist.PriceList) PriceListResponse {
	prices := make([]ProductPriceResponse, len(pl.Prices))
	for i, pp := range pl.Prices {
		prices[i] = ToProductPriceResponse(pp)
	}

	return PriceListResponse{
		ID:            pl.ID,
		Name:          pl.Name,
		Code:          pl.Code,
		StartDate:     pl.StartDate,
		EndDate:       pl.EndDate,
		Status:        string(pl.Status),
		PopulationIDs: pl.PopulationIDs,
		Prices:        prices,
		CreatedAt:     pl.CreatedAt,
		UpdatedAt:     pl.UpdatedAt,
	}
}

// ToProductPriceResponse converte um preço de produto do domínio para DTO
func ToProductPriceResponse(pp *pricelist.ProductPrice) ProductPriceResponse {
	return ProductPriceResponse{
		ID:                pp.ID,
		PriceListID:       pp.PriceListID,
		ProductID:         pp.ProductID,
		CashPrice:         pp.CashPrice,
		TotalPrice:        pp.TotalPrice,
		EnrollmentFee:     pp.EnrollmentFee,
		InstallmentCount:  pp.InstallmentCount,
		InstallmentAmount: pp.InstallmentAmount,
	}
}

// ToPriceListListResponse converte uma lista de listas de preço do domínio
// para DTO de resposta paginada
func ToPriceListListResponse(lists []*pricelist.PriceList, totalCount, page, pageSize int) PriceListListResponse {
	data := make([]PriceListResponse, len(lists))
	for i, pl := range lists {
		data[i] = ToPriceListResponse(pl)
	}

	return PriceListListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
