package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-educacional/internal/adapter/repository"
	"github.com/hugohenrick/erp-educacional/internal/domain/receipt"
	sitedomain "github.com/hugohenrick/erp-educacional/internal/domain/site"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
)

// ReceiptController gerencia as requisições relacionadas a recibos de pagamento
type ReceiptController struct {
	receiptRepo receipt.Repository
	logger      logger.Logger
}

// NewReceiptController cria uma nova instância de ReceiptController
func NewReceiptController(receiptRepo receipt.Repository, logger logger.Logger) *ReceiptController {
	return &ReceiptController{
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// Create emite um novo recibo de pagamento
// @Summary Emitir recibo
// @Description Emite um recibo em elaboração, numerado de forma sequencial e sem lacunas por sede e origem
// @Tags receipts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param receipt body dto.ReceiptRequest true "Dados do recibo"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts [post]
func (c *ReceiptController) Create(ctx *gin.Context) {
	var req dto.ReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	origin, err := sitedomain.ParseOrigin(req.Origin)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "origem inválida", err.Error()))
		return
	}

	cashierID := auth.CurrentUserID(ctx)

	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	rc, err := receipt.NewPaymentReceipt(req.SiteID, cashierID, origin, issueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar recibo", err.Error()))
		return
	}

	rc.PayerID = req.PayerID
	rc.EnrollmentID = req.EnrollmentID

	if err := c.appendLines(rc, req.Concepts, req.Products, req.Discounts, req.PaymentMethods); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "linhas do recibo inválidas", err.Error()))
		return
	}
	rc.RecomputeTotals()

	if err := c.receiptRepo.Create(ctx, rc); err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sede não encontrada", err.Error()))
			return
		}
		if errors.Is(err, sitedomain.ErrMissingSitePrefix) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "sede sem prefixo configurado", err.Error()))
			return
		}
		c.logger.Error("erro ao emitir recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao emitir recibo", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReceiptResponse(rc))
}

// Get retorna um recibo pelo ID
// @Summary Buscar recibo
// @Description Retorna os dados de um recibo pelo ID, incluindo todas as linhas
// @Tags receipts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recibo"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/{id} [get]
func (c *ReceiptController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	rc, err := c.receiptRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar recibo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(rc))
}

// GetByNumber retorna um recibo pelo número dentro de uma sede e origem
// @Summary Buscar recibo pelo número
// @Description Retorna um recibo pelo número formatado dentro da partição sede+origem
// @Tags receipts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param site_id query string true "ID da sede"
// @Param origin query string true "Origem do recibo"
// @Param number query string true "Número do recibo"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/by-number [get]
func (c *ReceiptController) GetByNumber(ctx *gin.Context) {
	siteID := ctx.Query("site_id")
	number := ctx.Query("number")

	origin, err := sitedomain.ParseOrigin(ctx.Query("origin"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "origem inválida", err.Error()))
		return
	}
	if siteID == "" || number == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", "site_id e number são obrigatórios"))
		return
	}

	rc, err := c.receiptRepo.FindByNumber(ctx, siteID, origin, number)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar recibo pelo número", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar recibo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(rc))
}

// List retorna os recibos de uma sede
// @Summary Listar recibos
// @Description Retorna a lista paginada de recibos de uma sede
// @Tags receipts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param site_id query string true "ID da sede"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.ReceiptListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts [get]
func (c *ReceiptController) List(ctx *gin.Context) {
	siteID := ctx.Query("site_id")
	if siteID == "" {
		siteID = auth.CurrentSiteID(ctx)
	}
	if siteID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", "site_id é obrigatório"))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	p := dto.GetPagination(page, size)
	receipts, err := c.receiptRepo.ListBySite(ctx, siteID, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("erro ao listar recibos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar recibos", err.Error()))
		return
	}

	total, err := c.receiptRepo.CountBySite(ctx, siteID)
	if err != nil {
		c.logger.Error("erro ao contar recibos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar recibos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptListResponse(receipts, total, p.Page, p.PageSize))
}

// UpdateLines substitui as linhas de um recibo em elaboração
// @Summary Atualizar linhas do recibo
// @Description Substitui as linhas de um recibo ainda em elaboração e recalcula os totais
// @Tags receipts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recibo"
// @Param lines body dto.ReceiptLinesRequest true "Novas linhas do recibo"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/{id}/lines [put]
func (c *ReceiptController) UpdateLines(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.ReceiptLinesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	rc, err := c.receiptRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar recibo", err.Error()))
		return
	}

	if err := rc.ClearLines(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "recibo não pode ser alterado", err.Error()))
		return
	}
	if err := c.appendLines(rc, req.Concepts, req.Products, req.Discounts, req.PaymentMethods); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "linhas do recibo inválidas", err.Error()))
		return
	}
	rc.RecomputeTotals()

	if err := c.receiptRepo.UpdateLines(ctx, rc); err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		if errors.Is(err, receipt.ErrNotEditable) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "recibo não pode ser alterado", err.Error()))
			return
		}
		c.logger.Error("erro ao atualizar linhas do recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar recibo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(rc))
}

// Issue confirma a emissão de um recibo em elaboração
// @Summary Confirmar emissão do recibo
// @Description Move o recibo de em elaboração para emitido
// @Tags receipts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recibo"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/{id}/issue [post]
func (c *ReceiptController) Issue(ctx *gin.Context) {
	c.transition(ctx, "", func(rc *receipt.PaymentReceipt) error {
		return rc.MarkCreated()
	})
}

// Close fecha um recibo emitido dentro de um lote de caixa
// @Summary Fechar recibo
// @Description Fecha um recibo emitido, registrando o lote de fechamento
// @Tags receipts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recibo"
// @Param closing body dto.CloseReceiptRequest true "Dados do fechamento"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/{id}/close [post]
func (c *ReceiptController) Close(ctx *gin.Context) {
	var req dto.CloseReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	c.transition(ctx, req.ClosingBatch, func(rc *receipt.PaymentReceipt) error {
		return rc.Close(req.ClosingBatch)
	})
}

// Void anula um recibo
// @Summary Anular recibo
// @Description Anula um recibo; o número permanece reservado e a sequência não retrocede
// @Tags receipts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recibo"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/{id}/void [post]
func (c *ReceiptController) Void(ctx *gin.Context) {
	c.transition(ctx, "", func(rc *receipt.PaymentReceipt) error {
		return rc.Void()
	})
}

// Delete remove um recibo ainda em elaboração
// @Summary Excluir recibo
// @Description Remove um recibo em elaboração; recibos emitidos não podem ser removidos
// @Tags receipts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recibo"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /receipts/{id} [delete]
func (c *ReceiptController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.receiptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		if errors.Is(err, receipt.ErrNotEditable) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "recibo não pode ser removido", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir recibo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("recibo excluído com sucesso", nil))
}

// transition aplica a mudança de status no domínio e persiste com semântica
// compare-and-swap sobre o status anterior
func (c *ReceiptController) transition(ctx *gin.Context, closingBatch string, change func(*receipt.PaymentReceipt) error) {
	id := ctx.Param("id")

	rc, err := c.receiptRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar recibo", err.Error()))
		return
	}

	expected := rc.Status
	if err := change(rc); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "transição de status inválida", err.Error()))
		return
	}

	if err := c.receiptRepo.TransitionStatus(ctx, rc.ID, expected, rc.Status, closingBatch); err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "recibo não encontrado", err.Error()))
			return
		}
		if errors.Is(err, receipt.ErrStatusConflict) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "status alterado por outra operação", err.Error()))
			return
		}
		c.logger.Error("erro ao mudar status do recibo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao mudar status do recibo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(rc))
}

func (c *ReceiptController) appendLines(rc *receipt.PaymentReceipt, concepts []dto.ConceptLineRequest, products []dto.ProductLineRequest, discounts []dto.DiscountLineRequest, methods []dto.PaymentMethodLineRequest) error {
	for _, l := range concepts {
		if err := rc.AddConcept(l.ConceptType, l.ConceptID, l.Description, l.Amount); err != nil {
			return err
		}
	}
	for _, l := range products {
		if err := rc.AddProduct(l.ProductID, l.PriceListID, l.Quantity, l.Amount); err != nil {
			return err
		}
	}
	for _, l := range discounts {
		if err := rc.AddDiscount(l.DiscountID, l.Amount); err != nil {
			return err
		}
	}
	for _, l := range methods {
		if err := rc.AddPaymentMethod(l.Method, l.Amount); err != nil {
			return err
		}
	}
	return nil
}
