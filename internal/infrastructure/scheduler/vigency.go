package scheduler

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/discount"
	"github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
)

// VigencyScheduler aplica as transições de vigência de listas de preço e
// descontos: aprovado vira ativo quando a data inicial chega e ativo vira
// inativo quando a data final passa.
type VigencyScheduler struct {
	priceListRepo pricelist.Repository
	discountRepo  discount.Repository
	vigency       *pricelist.VigencyValidator
	interval      time.Duration
	logger        logger.Logger
}

// NewVigencyScheduler cria um novo agendador de vigências
func NewVigencyScheduler(priceListRepo pricelist.Repository, discountRepo discount.Repository, vigency *pricelist.VigencyValidator, interval time.Duration, logger logger.Logger) *VigencyScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &VigencyScheduler{
		priceListRepo: priceListRepo,
		discountRepo:  discountRepo,
		vigency:       vigency,
		interval:      interval,
		logger:        logger,
	}
}

// Start executa o ciclo do agendador até o contexto ser cancelado
func (s *VigencyScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Primeira passada imediata para não esperar um intervalo inteiro
	s.Run(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Run(ctx, now)
		}
	}
}

// Run executa uma única passada de transições de vigência
func (s *VigencyScheduler) Run(ctx context.Context, now time.Time) {
	s.activatePriceLists(ctx, now)
	s.expirePriceLists(ctx, now)
	s.activateDiscounts(ctx, now)
	s.expireDiscounts(ctx, now)
}

func (s *VigencyScheduler) activatePriceLists(ctx context.Context, now time.Time) {
	lists, err := s.priceListRepo.ListApprovedToActivate(ctx, now)
	if err != nil {
		s.logger.Error("erro ao buscar listas de preço para ativação", "error", err)
		return
	}

	for _, pl := range lists {
		// Revalida a sobreposição de vigência no momento da ativação;
		// outra lista pode ter sido ativada desde a aprovação
		if err := s.vigency.ValidateForActivation(ctx, pl); err != nil {
			s.logger.Warn("lista de preço aprovada não pode ser ativada", "price_list_id", pl.ID, "error", err)
			continue
		}
		if err := pl.Activate(); err != nil {
			s.logger.Warn("transição de ativação inválida", "price_list_id", pl.ID, "error", err)
			continue
		}
		if err := s.priceListRepo.UpdateStatus(ctx, pl.ID, pl.Status); err != nil {
			s.logger.Error("erro ao ativar lista de preço", "price_list_id", pl.ID, "error", err)
			continue
		}
		s.logger.Info("lista de preço ativada", "price_list_id", pl.ID, "name", pl.Name)
	}
}

func (s *VigencyScheduler) expirePriceLists(ctx context.Context, now time.Time) {
	lists, err := s.priceListRepo.ListActiveToExpire(ctx, now)
	if err != nil {
		s.logger.Error("erro ao buscar listas de preço expiradas", "error", err)
		return
	}

	for _, pl := range lists {
		if err := pl.Deactivate(); err != nil {
			s.logger.Warn("transição de inativação inválida", "price_list_id", pl.ID, "error", err)
			continue
		}
		if err := s.priceListRepo.UpdateStatus(ctx, pl.ID, pl.Status); err != nil {
			s.logger.Error("erro ao inativar lista de preço", "price_list_id", pl.ID, "error", err)
			continue
		}
		s.logger.Info("lista de preço inativada por fim de vigência", "price_list_id", pl.ID, "name", pl.Name)
	}
}

func (s *VigencyScheduler) activateDiscounts(ctx context.Context, now time.Time) {
	discounts, err := s.discountRepo.ListApprovedToActivate(ctx, now)
	if err != nil {
		s.logger.Error("erro ao buscar descontos para ativação", "error", err)
		return
	}

	for _, d := range discounts {
		if err := d.Activate(); err != nil {
			s.logger.Warn("transição de ativação inválida", "discount_id", d.ID, "error", err)
			continue
		}
		if err := s.discountRepo.UpdateStatus(ctx, d.ID, d.Status); err != nil {
			s.logger.Error("erro ao ativar desconto", "discount_id", d.ID, "error", err)
			continue
		}
		s.logger.Info("desconto ativado", "discount_id", d.ID, "name", d.Name)
	}
}

func (s *VigencyScheduler) expireDiscounts(ctx context.Context, now time.Time) {
	discounts, err := s.discountRepo.ListActiveToExpire(ctx, now)
	if err != nil {
		s.logger.Error("erro ao buscar descontos expirados", "error", err)
		return
	}

	for _, d := range discounts {
		if err := d.Deactivate(); err != nil {
			s.logger.Warn("transição de inativação inválida", "discount_id", d.ID, "error", err)
			continue
		}
		if err := s.discountRepo.UpdateStatus(ctx, d.ID, d.Status); err != nil {
			s.logger.Error("erro ao inativar desconto", "discount_id", d.ID, "error", err)
			continue
		}
		s.logger.Info("desconto inativado por fim de vigência", "discount_id", d.ID, "name", d.Name)
	}
}
