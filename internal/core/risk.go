package core

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// registrationPattern is the company-ID format that earns the registration
// bonus. Deliberately stricter than any form-side check: registration
// numbers a form accepts may still score no bonus here.
var registrationPattern = regexp.MustCompile(`^[A-Z][0-9]{5}[A-Z]{2}[0-9]{4}[A-Z]{3}[0-9]{6}$`)

// RiskInput is the contract attribute set the approval score is derived from.
type RiskInput struct {
	CreditScore        int             `json:"credit_score"`
	AnnualRevenue      decimal.Decimal `json:"annual_revenue"`
	ContractValue      decimal.Decimal `json:"contract_value"`
	StartDate          string          `json:"start_date"` // YYYY-MM-DD
	EndDate            string          `json:"end_date"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	RegistrationNumber string          `json:"registration_number"`
}

// RiskAssessment is the 0-100 approval score plus the component bonuses that
// produced it. Derived at contract submission; not persisted on its own.
type RiskAssessment struct {
	Score             int `json:"score"`
	Base              int `json:"base"`
	CreditBonus       int `json:"credit_bonus"`
	RatioBonus        int `json:"ratio_bonus"`
	DurationBonus     int `json:"duration_bonus"`
	RateBonus         int `json:"rate_bonus"`
	RegistrationBonus int `json:"registration_bonus"`
}

// ComputeRiskScore scores a contract's approval-worthiness. Starts at 50,
// adds component bonuses, clamps to [0,100]. Missing or unparsable
// components contribute zero; the scorer never blocks a submission.
func ComputeRiskScore(in RiskInput) RiskAssessment {
	a := RiskAssessment{Base: 50}

	switch {
	case in.CreditScore >= 750:
		a.CreditBonus = 30
	case in.CreditScore >= 700:
		a.CreditBonus = 20
	case in.CreditScore >= 650:
		a.CreditBonus = 10
	case in.CreditScore >= 600:
		a.CreditBonus = 5
	}

	if in.ContractValue.IsPositive() && !in.AnnualRevenue.IsNegative() {
		ratio := in.AnnualRevenue.Div(in.ContractValue)
		switch {
		case ratio.GreaterThanOrEqual(decimal.NewFromInt(10)):
			a.RatioBonus = 20
		case ratio.GreaterThanOrEqual(decimal.NewFromInt(5)):
			a.RatioBonus = 15
		case ratio.GreaterThanOrEqual(decimal.NewFromInt(3)):
			a.RatioBonus = 10
		case ratio.GreaterThanOrEqual(decimal.NewFromInt(2)):
			a.RatioBonus = 5
		}
	}

	if months, ok := durationMonths(in.StartDate, in.EndDate); ok {
		switch {
		case months <= 12:
			a.DurationBonus = 10
		case months <= 24:
			a.DurationBonus = 8
		case months <= 36:
			a.DurationBonus = 5
		}
	}

	rate := in.InterestRate
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(8)) && rate.LessThanOrEqual(decimal.NewFromInt(15)):
		a.RateBonus = 8
	case rate.GreaterThanOrEqual(decimal.NewFromInt(6)) && rate.LessThanOrEqual(decimal.NewFromInt(18)):
		a.RateBonus = 5
	}

	if registrationPattern.MatchString(in.RegistrationNumber) {
		a.RegistrationBonus = 7
	}

	score := a.Base + a.CreditBonus + a.RatioBonus + a.DurationBonus + a.RateBonus + a.RegistrationBonus
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	a.Score = score
	return a
}

// durationMonths returns the whole-month span between two YYYY-MM-DD dates.
// ok is false when either date is missing, unparsable, or the range is
// inverted.
func durationMonths(start, end string) (int, bool) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0, false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0, false
	}
	if e.Before(s) {
		return 0, false
	}
	months := int(e.Year()-s.Year())*12 + int(e.Month()-s.Month())
	if e.Day() < s.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months, true
}
