package service

import (
	"context"

	"github.com/smallbiznis/incentive/internal/commission/domain"
	"github.com/smallbiznis/incentive/internal/config"
	"github.com/smallbiznis/incentive/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Rules   *config.RulesHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	rules   *config.RulesHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("commission.service"),
		rules:   p.Rules,
		metrics: p.Metrics,
	}
}

// Calculate validates the raw amounts and computes the commission
// under the current rules. The only error it returns is a
// *domain.ValidationError; a validated input cannot fail.
func (s *Service) Calculate(ctx context.Context, req domain.CalculateRequest) (domain.CommissionResult, error) {
	rules := s.rules.Get()

	input, verr := domain.ValidateInput(req.SalesAmount, req.TargetAmount, rules.MaxAmount)
	if verr != nil {
		s.metrics.RecordValidationFailure(ctx, verr.Field, verr.Constraint)
		s.log.Debug("validation failed",
			zap.String("field", verr.Field),
			zap.String("constraint", verr.Constraint),
		)
		return domain.CommissionResult{}, verr
	}

	result := domain.CalculateCommission(input, rules.CommissionRate, rules.ThresholdPercent())
	s.metrics.RecordCalculation(ctx, result.Eligible)
	s.log.Debug("commission calculated",
		zap.Bool("eligible", result.Eligible),
		zap.String("commission", result.Commission.String()),
		zap.String("percentage_of_target", result.PercentageOfTarget.String()),
	)

	return result, nil
}
