package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// CommissionRules holds the named business parameters of the
// commission calculation. Rate and threshold are fractions (0.05 means
// 5%); MaxAmount is the inclusive upper bound for both inputs.
type CommissionRules struct {
	CommissionRate       decimal.Decimal
	EligibilityThreshold decimal.Decimal
	MaxAmount            decimal.Decimal
}

// ThresholdPercent returns the eligibility threshold scaled to a
// percentage, for comparison against target achievement.
func (r CommissionRules) ThresholdPercent() decimal.Decimal {
	return r.EligibilityThreshold.Mul(decimal.NewFromInt(100))
}

func DefaultCommissionRules() CommissionRules {
	return CommissionRules{
		CommissionRate:       decimal.RequireFromString("0.05"),
		EligibilityThreshold: decimal.RequireFromString("0.80"),
		MaxAmount:            decimal.New(1, 12),
	}
}

// Reload outcomes reported to the reload hook.
const (
	ReloadSuccess = "success"
	ReloadInvalid = "invalid"
	ReloadError   = "error"
)

// RulesHolder serves the current CommissionRules and swaps them
// atomically on config reload.
type RulesHolder struct {
	current  atomic.Value // holds CommissionRules
	onReload atomic.Value // holds func(outcome string)
}

// SetReloadHook registers a callback invoked after every reload
// attempt with the outcome.
func (h *RulesHolder) SetReloadHook(hook func(outcome string)) {
	if hook == nil {
		return
	}
	h.onReload.Store(hook)
}

func (h *RulesHolder) notifyReload(outcome string) {
	if hook, ok := h.onReload.Load().(func(outcome string)); ok {
		hook(outcome)
	}
}

// NewRulesHolder loads commission.yml (optional, defaults apply when
// missing) and watches it for changes. An invalid reload is ignored.
func NewRulesHolder(cfg Config) (*RulesHolder, error) {
	v := viper.New()

	v.SetConfigName("commission")
	v.SetConfigType("yml")
	if cfg.RulesPath != "" {
		v.AddConfigPath(cfg.RulesPath)
	}
	v.AddConfigPath("/etc/incentive")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INCENTIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
	}

	rules, err := unmarshalRules(v)
	if err != nil {
		return nil, err
	}
	if err := validateRules(rules); err != nil {
		return nil, err
	}

	holder := &RulesHolder{}
	holder.current.Store(rules)

	if watch {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			updated, err := unmarshalRules(v)
			if err != nil {
				log.Printf("[commission-rules] reload failed: %v", err)
				holder.notifyReload(ReloadError)
				return
			}
			if err := validateRules(updated); err != nil {
				log.Printf("[commission-rules] invalid rules ignored: %v", err)
				holder.notifyReload(ReloadInvalid)
				return
			}
			holder.current.Store(updated)
			log.Printf("[commission-rules] reloaded from %s", e.Name)
			holder.notifyReload(ReloadSuccess)
		})
	}

	return holder, nil
}

// NewStaticRulesHolder wraps fixed rules without file watching.
func NewStaticRulesHolder(rules CommissionRules) (*RulesHolder, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	holder := &RulesHolder{}
	holder.current.Store(rules)
	return holder, nil
}

func (h *RulesHolder) Get() CommissionRules {
	return h.current.Load().(CommissionRules)
}

// unmarshalRules reads the rule values as strings so they parse
// through decimal without a float round trip. Unset keys keep their
// defaults.
func unmarshalRules(v *viper.Viper) (CommissionRules, error) {
	rules := DefaultCommissionRules()

	if raw := strings.TrimSpace(v.GetString("commission.commissionRate")); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return CommissionRules{}, errors.New("commission.commissionRate is not a number")
		}
		rules.CommissionRate = rate
	}
	if raw := strings.TrimSpace(v.GetString("commission.eligibilityThreshold")); raw != "" {
		threshold, err := decimal.NewFromString(raw)
		if err != nil {
			return CommissionRules{}, errors.New("commission.eligibilityThreshold is not a number")
		}
		rules.EligibilityThreshold = threshold
	}
	if raw := strings.TrimSpace(v.GetString("commission.maxAmount")); raw != "" {
		maxAmount, err := decimal.NewFromString(raw)
		if err != nil {
			return CommissionRules{}, errors.New("commission.maxAmount is not a number")
		}
		rules.MaxAmount = maxAmount
	}

	return rules, nil
}

func validateRules(rules CommissionRules) error {
	one := decimal.NewFromInt(1)
	if rules.CommissionRate.IsNegative() || rules.CommissionRate.GreaterThan(one) {
		return errors.New("commission.commissionRate must be between 0 and 1")
	}
	if !rules.EligibilityThreshold.IsPositive() || rules.EligibilityThreshold.GreaterThan(one) {
		return errors.New("commission.eligibilityThreshold must be between 0 and 1")
	}
	if !rules.MaxAmount.IsPositive() {
		return errors.New("commission.maxAmount must be positive")
	}
	return nil
}
