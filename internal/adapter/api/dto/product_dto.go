package dto

import (
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/product"
)

// ProductRequest representa os dados de um produto para criação ou atualização
type ProductRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code"`
	Type          string `json:"type" binding:"required"`
	ReferenceKind string `json:"reference_kind"`
	ReferenceID   string `json:"reference_id"`
}

// ProductResponse representa a resposta com dados de um produto
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code,omitempty"`
	Type          string    `json:"type"`
	ReferenceKind string    `json:"reference_kind"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse representa a resposta com a lista de produtos paginada
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ToReference converte os campos de referência da requisição para o domínio
func (r ProductRequest) ToReference() product.Reference {
	switch product.ReferenceKind(r.ReferenceKind) {
	case product.ReferenceCourse:
		return product.CourseRef(r.ReferenceID)
	case product.ReferenceModule:
		return product.ModuleRef(r.ReferenceID)
	}
	return product.NoReference()
}

// ToProductResponse converte um produto do domínio para DTO de resposta
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		Type:          string(p.Type),
		ReferenceKind: string(p.Reference.Kind),
		ReferenceID:   p.Reference.TargetID,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO de resposta paginada
func ToProductListResponse(products []*product.Product, totalCount, page, pageSize int) ProductListResponse {
	data := make([]ProductResponse, len(products))
	for i, p := range products {
		data[i] = ToProductResponse(p)
	}

	return ProductListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
