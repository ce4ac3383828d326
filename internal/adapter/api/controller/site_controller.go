package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-educacional/internal/adapter/repository"
	sitedomain "github.com/hugohenrick/erp-educacional/internal/domain/site"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
)

// SiteController gerencia as requisições relacionadas a sedes
type SiteController struct {
	siteRepo sitedomain.Repository
	logger   logger.Logger
}

// NewSiteController cria uma nova instância de SiteController
func NewSiteController(siteRepo sitedomain.Repository, logger logger.Logger) *SiteController {
	return &SiteController{
		siteRepo: siteRepo,
		logger:   logger,
	}
}

// Create cria uma nova sede
// @Summary Criar sede
// @Description Cria uma nova sede no sistema
// @Tags sites
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param site body dto.SiteRequest true "Dados da sede"
// @Success 201 {object} dto.SiteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sites [post]
func (c *SiteController) Create(ctx *gin.Context) {
	var req dto.SiteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	s, err := sitedomain.NewSite(req.Name, req.Code, req.PopulationID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar sede", err.Error()))
		return
	}

	if req.InventoryPrefix != "" || req.AcademicPrefix != "" {
		s.ConfigurePrefixes(req.InventoryPrefix, req.AcademicPrefix)
	}

	if err := c.siteRepo.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrSiteDuplicateKey) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "sede já existe", err.Error()))
			return
		}
		c.logger.Error("erro ao criar sede no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar sede", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSiteResponse(s))
}

// Get retorna uma sede pelo ID
// @Summary Buscar sede
// @Description Retorna os dados de uma sede pelo ID
// @Tags sites
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sede"
// @Success 200 {object} dto.SiteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sites/{id} [get]
func (c *SiteController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	s, err := c.siteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sede não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar sede", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar sede", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSiteResponse(s))
}

// List retorna a lista de sedes
// @Summary Listar sedes
// @Description Retorna a lista de sedes paginada
// @Tags sites
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SiteListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sites [get]
func (c *SiteController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	p := dto.GetPagination(page, size)
	sites, err := c.siteRepo.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("erro ao listar sedes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar sedes", err.Error()))
		return
	}

	total, err := c.siteRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar sedes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar sedes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSiteListResponse(sites, total, p.Page, p.PageSize))
}

// Update atualiza uma sede
// @Summary Atualizar sede
// @Description Atualiza os dados de uma sede
// @Tags sites
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sede"
// @Param site body dto.SiteRequest true "Dados da sede"
// @Success 200 {object} dto.SiteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sites/{id} [put]
func (c *SiteController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.SiteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	s, err := c.siteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sede não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar sede", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar sede", err.Error()))
		return
	}

	if err := s.Update(req.Name, req.Code, req.PopulationID); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar dados da sede", err.Error()))
		return
	}

	if req.InventoryPrefix != "" || req.AcademicPrefix != "" {
		s.ConfigurePrefixes(req.InventoryPrefix, req.AcademicPrefix)
	}

	if err := c.siteRepo.Update(ctx, s); err != nil {
		c.logger.Error("erro ao atualizar sede", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar sede", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSiteResponse(s))
}

// ConfigurePrefixes define os prefixos de numeração de recibos da sede
// @Summary Configurar prefixos de numeração
// @Description Define os prefixos de numeração de recibos por origem
// @Tags sites
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sede"
// @Param prefixes body dto.SitePrefixesRequest true "Prefixos por origem"
// @Success 200 {object} dto.SiteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sites/{id}/prefixes [patch]
func (c *SiteController) ConfigurePrefixes(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.SitePrefixesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	s, err := c.siteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sede não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar sede", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar sede", err.Error()))
		return
	}

	s.ConfigurePrefixes(req.InventoryPrefix, req.AcademicPrefix)

	if err := c.siteRepo.Update(ctx, s); err != nil {
		c.logger.Error("erro ao configurar prefixos da sede", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao configurar prefixos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSiteResponse(s))
}

// Delete remove uma sede
// @Summary Excluir sede
// @Description Remove uma sede do sistema
// @Tags sites
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sede"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sites/{id} [delete]
func (c *SiteController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.siteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sede não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir sede", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir sede", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("sede excluída com sucesso", nil))
}

// PopulationController gerencia as requisições relacionadas a praças
type PopulationController struct {
	populationRepo sitedomain.PopulationRepository
	siteRepo       sitedomain.Repository
	logger         logger.Logger
}

// NewPopulationController cria uma nova instância de PopulationController
func NewPopulationController(populationRepo sitedomain.PopulationRepository, siteRepo sitedomain.Repository, logger logger.Logger) *PopulationController {
	return &PopulationController{
		populationRepo: populationRepo,
		siteRepo:       siteRepo,
		logger:         logger,
	}
}

// Create cria uma nova praça
// @Summary Criar praça
// @Description Cria uma nova praça no sistema
// @Tags populations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param population body dto.PopulationRequest true "Dados da praça"
// @Success 201 {object} dto.PopulationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /populations [post]
func (c *PopulationController) Create(ctx *gin.Context) {
	var req dto.PopulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, err := sitedomain.NewPopulation(req.Name, req.State)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar praça", err.Error()))
		return
	}

	if err := c.populationRepo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPopulationDuplicate) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "praça já existe", err.Error()))
			return
		}
		c.logger.Error("erro ao criar praça no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar praça", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPopulationResponse(p))
}

// Get retorna uma praça pelo ID
// @Summary Buscar praça
// @Description Retorna os dados de uma praça pelo ID
// @Tags populations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da praça"
// @Success 200 {object} dto.PopulationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /populations/{id} [get]
func (c *PopulationController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	p, err := c.populationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPopulationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "praça não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar praça", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar praça", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPopulationResponse(p))
}

// List retorna a lista de praças
// @Summary Listar praças
// @Description Retorna a lista de praças paginada
// @Tags populations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {array} dto.PopulationResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /populations [get]
func (c *PopulationController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "50"))

	p := dto.GetPagination(page, size)
	populations, err := c.populationRepo.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("erro ao listar praças", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar praças", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPopulationListResponse(populations))
}

// Sites retorna as sedes de uma praça
// @Summary Listar sedes da praça
// @Description Retorna as sedes pertencentes a uma praça
// @Tags populations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da praça"
// @Success 200 {array} dto.SiteResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /populations/{id}/sites [get]
func (c *PopulationController) Sites(ctx *gin.Context) {
	id := ctx.Param("id")

	sites, err := c.siteRepo.FindByPopulation(ctx, id)
	if err != nil {
		c.logger.Error("erro ao listar sedes da praça", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar sedes da praça", err.Error()))
		return
	}

	data := make([]dto.SiteResponse, len(sites))
	for i, s := range sites {
		data[i] = dto.ToSiteResponse(s)
	}

	ctx.JSON(http.StatusOK, data)
}

// Update atualiza uma praça
// @Summary Atualizar praça
// @Description Atualiza os dados de uma praça
// @Tags populations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da praça"
// @Param population body dto.PopulationRequest true "Dados da praça"
// @Success 200 {object} dto.PopulationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /populations/{id} [put]
func (c *PopulationController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.PopulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, err := c.populationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPopulationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "praça não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar praça", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar praça", err.Error()))
		return
	}

	p.Name = req.Name
	p.State = req.State

	if err := c.populationRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao atualizar praça", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar praça", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPopulationResponse(p))
}

// Delete remove uma praça
// @Summary Excluir praça
// @Description Remove uma praça do sistema
// @Tags populations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da praça"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /populations/{id} [delete]
func (c *PopulationController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.populationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPopulationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "praça não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir praça", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir praça", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("praça excluída com sucesso", nil))
}
