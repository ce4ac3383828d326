package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-educacional/internal/adapter/repository"
	discountdomain "github.com/hugohenrick/erp-educacional/internal/domain/discount"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
)

// DiscountController gerencia as requisições relacionadas a descontos
type DiscountController struct {
	discountRepo    discountdomain.Repository
	applicationRepo discountdomain.ApplicationRepository
	eligibility     *discountdomain.EligibilityResolver
	logger          logger.Logger
}

// NewDiscountController cria uma nova instância de DiscountController
func NewDiscountController(discountRepo discountdomain.Repository, applicationRepo discountdomain.ApplicationRepository, eligibility *discountdomain.EligibilityResolver, logger logger.Logger) *DiscountController {
	return &DiscountController{
		discountRepo:    discountRepo,
		applicationRepo: applicationRepo,
		eligibility:     eligibility,
		logger:          logger,
	}
}

// Create cria um novo desconto
// @Summary Criar desconto
// @Description Cria um novo desconto em elaboração
// @Tags discounts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param discount body dto.DiscountRequest true "Dados do desconto"
// @Success 201 {object} dto.DiscountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts [post]
func (c *DiscountController) Create(ctx *gin.Context) {
	var req dto.DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	d, err := discountdomain.NewDiscount(
		req.Name,
		discountdomain.Kind(req.Kind),
		req.Value,
		discountdomain.Target(req.Target),
		discountdomain.Activation(req.Activation),
		req.StartDate,
		req.EndDate,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar desconto", err.Error()))
		return
	}

	d.Code = req.Code
	d.Description = req.Description
	d.MinAdvanceDays = req.MinAdvanceDays
	d.Accumulable = req.Accumulable
	d.PriceLists = req.PriceLists
	d.Products = req.Products
	d.Sites = req.Sites
	d.Populations = req.Populations

	if d.Activation == discountdomain.ActivationEarlyPayment && d.MinAdvanceDays <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar desconto", discountdomain.ErrInvalidAdvanceDays.Error()))
		return
	}

	if err := c.discountRepo.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDiscountDuplicateKey) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "desconto já existe", err.Error()))
			return
		}
		c.logger.Error("erro ao criar desconto no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar desconto", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDiscountResponse(d))
}

// Get retorna um desconto pelo ID
// @Summary Buscar desconto
// @Description Retorna os dados de um desconto pelo ID
// @Tags discounts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do desconto"
// @Success 200 {object} dto.DiscountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/{id} [get]
func (c *DiscountController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	d, err := c.discountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "desconto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar desconto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDiscountResponse(d))
}

// List retorna a lista de descontos
// @Summary Listar descontos
// @Description Retorna a lista de descontos paginada
// @Tags discounts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.DiscountListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts [get]
func (c *DiscountController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	p := dto.GetPagination(page, size)
	discounts, err := c.discountRepo.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("erro ao listar descontos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar descontos", err.Error()))
		return
	}

	total, err := c.discountRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar descontos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar descontos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDiscountListResponse(discounts, total, p.Page, p.PageSize))
}

// Update atualiza um desconto
// @Summary Atualizar desconto
// @Description Atualiza os dados e os escopos de um desconto
// @Tags discounts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do desconto"
// @Param discount body dto.DiscountRequest true "Dados do desconto"
// @Success 200 {object} dto.DiscountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/{id} [put]
func (c *DiscountController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	d, err := c.discountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "desconto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar desconto", err.Error()))
		return
	}

	// Revalidar os campos alterados com as mesmas regras da criação
	updated, err := discountdomain.NewDiscount(
		req.Name,
		discountdomain.Kind(req.Kind),
		req.Value,
		discountdomain.Target(req.Target),
		discountdomain.Activation(req.Activation),
		req.StartDate,
		req.EndDate,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados do desconto inválidos", err.Error()))
		return
	}

	d.Name = updated.Name
	d.Kind = updated.Kind
	d.Value = updated.Value
	d.Target = updated.Target
	d.Activation = updated.Activation
	d.StartDate = updated.StartDate
	d.EndDate = updated.EndDate
	d.Code = req.Code
	d.Description = req.Description
	d.MinAdvanceDays = req.MinAdvanceDays
	d.Accumulable = req.Accumulable
	d.PriceLists = req.PriceLists
	d.Products = req.Products
	d.Sites = req.Sites
	d.Populations = req.Populations
	d.UpdatedAt = time.Now()

	if err := c.discountRepo.Update(ctx, d); err != nil {
		c.logger.Error("erro ao atualizar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar desconto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDiscountResponse(d))
}

// Approve aprova um desconto em elaboração
// @Summary Aprovar desconto
// @Description Aprova o desconto para entrar em vigência quando a data inicial chegar
// @Tags discounts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do desconto"
// @Success 200 {object} dto.DiscountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/{id}/approve [post]
func (c *DiscountController) Approve(ctx *gin.Context) {
	id := ctx.Param("id")

	d, err := c.discountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "desconto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar desconto", err.Error()))
		return
	}

	if err := d.Approve(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "transição de status inválida", err.Error()))
		return
	}

	if err := c.discountRepo.UpdateStatus(ctx, d.ID, d.Status); err != nil {
		c.logger.Error("erro ao aprovar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao aprovar desconto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDiscountResponse(d))
}

// Deactivate encerra a vigência de um desconto ativo
// @Summary Inativar desconto
// @Description Encerra a vigência de um desconto ativo
// @Tags discounts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do desconto"
// @Success 200 {object} dto.DiscountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/{id}/deactivate [post]
func (c *DiscountController) Deactivate(ctx *gin.Context) {
	id := ctx.Param("id")

	d, err := c.discountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "desconto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar desconto", err.Error()))
		return
	}

	if err := d.Deactivate(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "transição de status inválida", err.Error()))
		return
	}

	if err := c.discountRepo.UpdateStatus(ctx, d.ID, d.Status); err != nil {
		c.logger.Error("erro ao inativar desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao inativar desconto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDiscountResponse(d))
}

// Delete remove um desconto
// @Summary Excluir desconto
// @Description Remove um desconto; os registros de aplicação permanecem
// @Tags discounts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do desconto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/{id} [delete]
func (c *DiscountController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.discountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "desconto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir desconto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("desconto excluído com sucesso", nil))
}

// Eligible retorna os descontos elegíveis para um contexto de cobrança
// @Summary Consultar descontos elegíveis
// @Description Retorna os descontos aplicáveis ao produto, lista de preço e contexto informados
// @Tags discounts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param context body dto.EligibilityRequest true "Contexto de elegibilidade"
// @Success 200 {array} dto.DiscountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/eligible [post]
func (c *DiscountController) Eligible(ctx *gin.Context) {
	var req dto.EligibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	eligible, err := c.eligibility.Resolve(ctx, req.ToEligibilityInput(time.Now()))
	if err != nil {
		if errors.Is(err, discountdomain.ErrDiscountCodeInvalid) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "código promocional inválido", err.Error()))
			return
		}
		c.logger.Error("erro ao resolver elegibilidade de descontos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao resolver elegibilidade", err.Error()))
		return
	}

	data := make([]dto.DiscountResponse, len(eligible))
	for i, d := range eligible {
		data[i] = dto.ToDiscountResponse(d)
	}

	ctx.JSON(http.StatusOK, data)
}

// Simulate aplica os descontos elegíveis sobre as bases de cobrança
// @Summary Simular aplicação de descontos
// @Description Resolve os descontos elegíveis e retorna os valores ajustados, sem persistir nada
// @Tags discounts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param simulation body dto.SimulationRequest true "Bases de cobrança e contexto"
// @Success 200 {object} dto.SimulationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/simulate [post]
func (c *DiscountController) Simulate(ctx *gin.Context) {
	var req dto.SimulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	eligible, err := c.eligibility.Resolve(ctx, req.ToEligibilityInput(time.Now()))
	if err != nil {
		if errors.Is(err, discountdomain.ErrDiscountCodeInvalid) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "código promocional inválido", err.Error()))
			return
		}
		c.logger.Error("erro ao resolver elegibilidade de descontos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao resolver elegibilidade", err.Error()))
		return
	}

	result := discountdomain.ApplyDiscounts(discountdomain.StackingInput{
		TotalPrice:        req.TotalPrice,
		EnrollmentFee:     req.EnrollmentFee,
		InstallmentAmount: req.InstallmentAmount,
		InstallmentCount:  req.InstallmentCount,
	}, eligible)

	ctx.JSON(http.StatusOK, dto.ToSimulationResponse(result))
}

// Apply aplica os descontos elegíveis e registra as aplicações
// @Summary Aplicar descontos
// @Description Resolve os descontos elegíveis, aplica sobre as bases e persiste os registros de aplicação
// @Tags discounts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param application body dto.SimulationRequest true "Bases de cobrança e contexto"
// @Success 200 {object} dto.SimulationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/apply [post]
func (c *DiscountController) Apply(ctx *gin.Context) {
	var req dto.SimulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	eligible, err := c.eligibility.Resolve(ctx, req.ToEligibilityInput(time.Now()))
	if err != nil {
		if errors.Is(err, discountdomain.ErrDiscountCodeInvalid) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "código promocional inválido", err.Error()))
			return
		}
		c.logger.Error("erro ao resolver elegibilidade de descontos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao resolver elegibilidade", err.Error()))
		return
	}

	result := discountdomain.ApplyDiscounts(discountdomain.StackingInput{
		TotalPrice:        req.TotalPrice,
		EnrollmentFee:     req.EnrollmentFee,
		InstallmentAmount: req.InstallmentAmount,
		InstallmentCount:  req.InstallmentCount,
	}, eligible)

	for _, a := range result.Applied {
		a.ProductID = req.ProductID
		a.PriceListID = req.PriceListID
		a.SiteID = req.SiteID

		if err := c.applicationRepo.Create(ctx, a); err != nil {
			c.logger.Error("erro ao registrar aplicação de desconto", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar aplicação", err.Error()))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.ToSimulationResponse(result))
}

// Applications retorna as aplicações registradas de um desconto
// @Summary Listar aplicações do desconto
// @Description Retorna os registros de aplicação de um desconto, paginados
// @Tags discounts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do desconto"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {array} dto.ApplicationResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discounts/{id}/applications [get]
func (c *DiscountController) Applications(ctx *gin.Context) {
	id := ctx.Param("id")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	p := dto.GetPagination(page, size)
	applications, err := c.applicationRepo.ListByDiscount(ctx, id, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("erro ao listar aplicações do desconto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar aplicações", err.Error()))
		return
	}

	data := make([]dto.ApplicationResponse, len(applications))
	for i, a := range applications {
		data[i] = dto.ToApplicationResponse(a)
	}

	ctx.JSON(http.StatusOK, data)
}
