package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BillingConfig holds invoice scheduling settings
type BillingConfig struct {
	Rules          domain.BillingRules
	RulesFile      string
	SweepSchedule  string // cron spec; empty disables the in-process sweep
	SweepBatchSize int
}

// rulesFile mirrors domain.BillingRules; nil fields keep the defaults
type rulesFile struct {
	WindowSize            *int    `yaml:"window_size"`
	GracePeriodDays       *int    `yaml:"grace_period_days"`
	DueDay                *int    `yaml:"due_day"`
	OverdueToleranceDays  *int    `yaml:"overdue_tolerance_days"`
	UpcomingNoticeDays    *int    `yaml:"upcoming_notice_days"`
	AnnualDiscountPercent *string `yaml:"annual_discount_percent"`
	Timezone              *string `yaml:"timezone"`
}

// LoadBillingRules layers the optional YAML file at path over the default
// rules, then applies BILLING_* environment overrides.
func LoadBillingRules(path string) (domain.BillingRules, error) {
	rules := domain.DefaultBillingRules()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return rules, fmt.Errorf("failed to read billing rules file: %w", err)
		}
		var file rulesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return rules, fmt.Errorf("failed to parse billing rules file %s: %w", path, err)
		}
		if err := file.apply(&rules); err != nil {
			return rules, fmt.Errorf("billing rules file %s: %w", path, err)
		}
	}

	if err := applyRulesEnv(&rules); err != nil {
		return rules, err
	}
	return rules, nil
}

func (f rulesFile) apply(r *domain.BillingRules) error {
	setInt(&r.WindowSize, f.WindowSize)
	setInt(&r.GracePeriodDays, f.GracePeriodDays)
	setInt(&r.DueDay, f.DueDay)
	setInt(&r.OverdueToleranceDays, f.OverdueToleranceDays)
	setInt(&r.UpcomingNoticeDays, f.UpcomingNoticeDays)
	if f.Timezone != nil {
		r.Timezone = *f.Timezone
	}
	if f.AnnualDiscountPercent != nil {
		pct, err := decimal.NewFromString(*f.AnnualDiscountPercent)
		if err != nil {
			return fmt.Errorf("annual_discount_percent: %w", err)
		}
		r.AnnualDiscountPercent = pct
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// applyRulesEnv applies overrides strictly: a malformed value is an error
// rather than a silent fallback.
func applyRulesEnv(r *domain.BillingRules) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"BILLING_WINDOW_SIZE", &r.WindowSize},
		{"BILLING_GRACE_PERIOD_DAYS", &r.GracePeriodDays},
		{"BILLING_DUE_DAY", &r.DueDay},
		{"BILLING_OVERDUE_TOLERANCE_DAYS", &r.OverdueToleranceDays},
		{"BILLING_UPCOMING_NOTICE_DAYS", &r.UpcomingNoticeDays},
	}
	for _, o := range ints {
		raw := os.Getenv(o.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", o.key, err)
		}
		*o.dst = v
	}

	if raw := os.Getenv("BILLING_ANNUAL_DISCOUNT_PERCENT"); raw != "" {
		pct, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("BILLING_ANNUAL_DISCOUNT_PERCENT must be a number: %w", err)
		}
		r.AnnualDiscountPercent = pct
	}
	if tz := os.Getenv("BILLING_TIMEZONE"); tz != "" {
		r.Timezone = tz
	}
	return nil
}
