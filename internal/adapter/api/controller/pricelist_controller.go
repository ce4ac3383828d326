package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-educacional/internal/adapter/repository"
	pricelistdomain "github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
	productdomain "github.com/hugohenrick/erp-educacional/internal/domain/product"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
)

// PriceListController gerencia as requisições relacionadas a listas de preço
type PriceListController struct {
	priceListRepo pricelistdomain.Repository
	productRepo   productdomain.Repository
	vigency       *pricelistdomain.VigencyValidator
	logger        logger.Logger
}

// NewPriceListController cria uma nova instância de PriceListController
func NewPriceListController(priceListRepo pricelistdomain.Repository, productRepo productdomain.Repository, vigency *pricelistdomain.VigencyValidator, logger logger.Logger) *PriceListController {
	return &PriceListController{
		priceListRepo: priceListRepo,
		productRepo:   productRepo,
		vigency:       vigency,
		logger:        logger,
	}
}

// Create cria uma nova lista de preço
// @Summary Criar lista de preço
// @Description Cria uma nova lista de preço em elaboração
// @Tags pricelists
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param pricelist body dto.PriceListRequest true "Dados da lista de preço"
// @Success 201 {object} dto.PriceListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists [post]
func (c *PriceListController) Create(ctx *gin.Context) {
	var req dto.PriceListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	pl, err := pricelistdomain.NewPriceList(req.Name, req.Code, req.StartDate, req.EndDate, req.PopulationIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar lista de preço", err.Error()))
		return
	}

	if err := c.priceListRepo.Create(ctx, pl); err != nil {
		if errors.Is(err, repository.ErrPriceListDuplicateKey) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "lista de preço já existe", err.Error()))
			return
		}
		c.logger.Error("erro ao criar lista de preço no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar lista de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPriceListResponse(pl))
}

// Get retorna uma lista de preço pelo ID
// @Summary Buscar lista de preço
// @Description Retorna os dados de uma lista de preço, incluindo os preços
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Success 200 {object} dto.PriceListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id} [get]
func (c *PriceListController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	pl, err := c.priceListRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lista de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceListResponse(pl))
}

// List retorna a lista de listas de preço
// @Summary Listar listas de preço
// @Description Retorna as listas de preço paginadas
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.PriceListListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists [get]
func (c *PriceListController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	p := dto.GetPagination(page, size)
	lists, err := c.priceListRepo.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("erro ao listar listas de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar listas de preço", err.Error()))
		return
	}

	total, err := c.priceListRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar listas de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar listas de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceListListResponse(lists, total, p.Page, p.PageSize))
}

// Update atualiza uma lista de preço
// @Summary Atualizar lista de preço
// @Description Atualiza os dados de uma lista de preço em elaboração
// @Tags pricelists
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Param pricelist body dto.PriceListRequest true "Dados da lista de preço"
// @Success 200 {object} dto.PriceListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id} [put]
func (c *PriceListController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.PriceListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	pl, err := c.priceListRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lista de preço", err.Error()))
		return
	}

	if err := pl.Update(req.Name, req.Code, req.StartDate, req.EndDate, req.PopulationIDs); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar dados da lista", err.Error()))
		return
	}

	if err := c.priceListRepo.Update(ctx, pl); err != nil {
		c.logger.Error("erro ao atualizar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar lista de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceListResponse(pl))
}

// Approve aprova uma lista de preço em elaboração
// @Summary Aprovar lista de preço
// @Description Aprova a lista para entrar em vigência quando a data inicial chegar
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Success 200 {object} dto.PriceListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id}/approve [post]
func (c *PriceListController) Approve(ctx *gin.Context) {
	id := ctx.Param("id")

	pl, err := c.priceListRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lista de preço", err.Error()))
		return
	}

	// Aprovação exige vigência sem conflito em todas as praças cobertas
	for _, populationID := range pl.PopulationIDs {
		if err := c.vigency.ValidateNoOverlap(ctx, populationID, pl.StartDate, pl.EndDate, pl.ID); err != nil {
			if errors.Is(err, pricelistdomain.ErrOverlappingVigency) {
				ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "vigência em conflito", err.Error()))
				return
			}
			c.logger.Error("erro ao validar vigência", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao validar vigência", err.Error()))
			return
		}
	}

	if err := pl.Approve(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "transição de status inválida", err.Error()))
		return
	}

	if err := c.priceListRepo.UpdateStatus(ctx, pl.ID, pl.Status); err != nil {
		c.logger.Error("erro ao aprovar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao aprovar lista de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceListResponse(pl))
}

// Deactivate encerra a vigência de uma lista de preço ativa
// @Summary Inativar lista de preço
// @Description Encerra a vigência de uma lista de preço ativa
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Success 200 {object} dto.PriceListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id}/deactivate [post]
func (c *PriceListController) Deactivate(ctx *gin.Context) {
	id := ctx.Param("id")

	pl, err := c.priceListRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lista de preço", err.Error()))
		return
	}

	if err := pl.Deactivate(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "transição de status inválida", err.Error()))
		return
	}

	if err := c.priceListRepo.UpdateStatus(ctx, pl.ID, pl.Status); err != nil {
		c.logger.Error("erro ao inativar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao inativar lista de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceListResponse(pl))
}

// ValidateVigency verifica conflitos de vigência sem alterar a lista
// @Summary Validar vigência
// @Description Verifica se a vigência da lista conflita com listas ativas das mesmas praças
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Success 200 {object} dto.VigencyCheckResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id}/validate-vigency [get]
func (c *PriceListController) ValidateVigency(ctx *gin.Context) {
	id := ctx.Param("id")

	pl, err := c.priceListRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lista de preço", err.Error()))
		return
	}

	response := dto.VigencyCheckResponse{Valid: true}
	for _, populationID := range pl.PopulationIDs {
		active, err := c.priceListRepo.FindActiveByPopulation(ctx, populationID, pl.ID)
		if err != nil {
			c.logger.Error("erro ao validar vigência", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao validar vigência", err.Error()))
			return
		}
		for _, other := range active {
			if other.OverlapsRange(pl.StartDate, pl.EndDate) {
				response.Valid = false
				response.Conflicts = append(response.Conflicts, other.ID)
			}
		}
	}

	ctx.JSON(http.StatusOK, response)
}

// Delete remove uma lista de preço
// @Summary Excluir lista de preço
// @Description Remove uma lista de preço e seus preços
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id} [delete]
func (c *PriceListController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.priceListRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir lista de preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("lista de preço excluída com sucesso", nil))
}

// SavePrice cria ou atualiza o preço de um produto na lista
// @Summary Gravar preço de produto
// @Description Cria ou atualiza o preço de um produto dentro da lista; o valor da parcela é calculado
// @Tags pricelists
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Param price body dto.ProductPriceRequest true "Preço do produto"
// @Success 200 {object} dto.ProductPriceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id}/prices [put]
func (c *PriceListController) SavePrice(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.ProductPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if _, err := c.priceListRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPriceListNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lista de preço não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lista de preço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lista de preço", err.Error()))
		return
	}

	product, err := c.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
		return
	}

	pp, err := pricelistdomain.NewProductPrice(id, product.ID, req.CashPrice, req.TotalPrice, req.EnrollmentFee, req.InstallmentCount, product.IsFinanceable())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "preço inválido", err.Error()))
		return
	}

	if err := c.priceListRepo.SavePrice(ctx, pp); err != nil {
		c.logger.Error("erro ao gravar preço de produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gravar preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductPriceResponse(pp))
}

// GetPrice retorna o preço de um produto na lista
// @Summary Buscar preço de produto
// @Description Retorna o preço de um produto dentro da lista
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Param productId path string true "ID do produto"
// @Success 200 {object} dto.ProductPriceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id}/prices/{productId} [get]
func (c *PriceListController) GetPrice(ctx *gin.Context) {
	id := ctx.Param("id")
	productID := ctx.Param("productId")

	pp, err := c.priceListRepo.FindPrice(ctx, id, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductPriceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "preço não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar preço de produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductPriceResponse(pp))
}

// DeletePrice remove o preço de um produto da lista
// @Summary Excluir preço de produto
// @Description Remove o preço de um produto da lista
// @Tags pricelists
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da lista de preço"
// @Param productId path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /price-lists/{id}/prices/{productId} [delete]
func (c *PriceListController) DeletePrice(ctx *gin.Context) {
	id := ctx.Param("id")
	productID := ctx.Param("productId")

	if err := c.priceListRepo.DeletePrice(ctx, id, productID); err != nil {
		if errors.Is(err, repository.ErrProductPriceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "preço não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir preço de produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir preço", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("preço excluído com sucesso", nil))
}
