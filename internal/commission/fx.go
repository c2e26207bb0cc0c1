package commission

import (
	"context"

	"github.com/smallbiznis/incentive/internal/commission/service"
	"github.com/smallbiznis/incentive/internal/config"
	obsmetrics "github.com/smallbiznis/incentive/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.service",
	fx.Provide(service.New),
	fx.Invoke(bindRulesReloadMetrics),
)

type reloadMetricsParams struct {
	fx.In

	Rules   *config.RulesHolder
	Metrics *obsmetrics.Metrics `optional:"true"`
}

// bindRulesReloadMetrics counts rule reload outcomes. RecordRulesReload
// tolerates a nil receiver, so the hook is safe when metrics are off.
func bindRulesReloadMetrics(p reloadMetricsParams) {
	p.Rules.SetReloadHook(func(outcome string) {
		p.Metrics.RecordRulesReload(context.Background(), outcome)
	})
}
