package dto

import (
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// SiteRequest representa os dados de uma sede para criação ou atualização
type SiteRequest struct {
	Name            string `json:"name" binding:"required"`
	Code            string `json:"code"`
	PopulationID    string `json:"population_id" binding:"required"`
	InventoryPrefix string `json:"inventory_prefix"`
	AcademicPrefix  string `json:"academic_prefix"`
}

// SitePrefixesRequest representa os prefixos de numeração por origem
type SitePrefixesRequest struct {
	InventoryPrefix string `json:"inventory_prefix"`
	AcademicPrefix  string `json:"academic_prefix"`
}

// SiteResponse representa a resposta com dados de uma sede
type SiteResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code,omitempty"`
	PopulationID    string    `json:"population_id"`
	InventoryPrefix string    `json:"inventory_prefix,omitempty"`
	AcademicPrefix  string    `json:"academic_prefix,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SiteListResponse representa a resposta com a lista de sedes paginada
type SiteListResponse struct {
	Data       []SiteResponse `json:"data"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// PopulationRequest representa os dados de uma praça
type PopulationRequest struct {
	Name  string `json:"name" binding:"required"`
	State string `json:"state"`
}

// PopulationResponse representa a resposta com dados de uma praça
type PopulationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSiteResponse converte uma sede do domínio para DTO de resposta
func ToSiteResponse(s *site.Site) SiteResponse {
	return SiteResponse{
		ID:              s.ID,
		Name:            s.Name,
		Code:            s.Code,
		PopulationID:    s.PopulationID,
		InventoryPrefix: s.InventoryPrefix,
		AcademicPrefix:  s.AcademicPrefix,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToSiteListResponse converte uma lista de sedes do domínio para DTO de resposta paginada
func ToSiteListResponse(sites []*site.Site, totalCount, page, pageSize int) SiteListResponse {
	data := make([]SiteResponse, len(sites))
	for i, s := range sites {
		data[i] = ToSiteResponse(s)
	}

	return SiteListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}

// ToPopulationResponse converte uma praça do domínio para DTO de resposta
func ToPopulationResponse(p *site.Population) PopulationResponse {
	return PopulationResponse{
		ID:        p.ID,
		Name:      p.Name,
		State:     p.State,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPopulationListResponse converte uma lista de praças do domínio
func ToPopulationListResponse(populations []*site.Population) []PopulationResponse {
	data := make([]PopulationResponse, len(populations))
	for i, p := range populations {
		data[i] = ToPopulationResponse(p)
	}
	return data
}
