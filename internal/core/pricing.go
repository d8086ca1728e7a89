package core

import "github.com/shopspring/decimal"

// Base annual discount rate in percent. Adjustments are summed onto it,
// never compounded.
var baseAnnualRate = decimal.NewFromInt(12)

type RiskBand string

const (
	RiskLow    RiskBand = "LOW"
	RiskMedium RiskBand = "MEDIUM"
	RiskHigh   RiskBand = "HIGH"
)

// PricingInput is the financial tuple an invoice or contract is priced from.
type PricingInput struct {
	InvoiceValue    decimal.Decimal `json:"invoice_value"`
	PaymentTermDays int             `json:"payment_term_days"`
	CreditScore     int             `json:"credit_score"`
	AnnualRevenue   decimal.Decimal `json:"annual_revenue"`
}

// PricingResult carries every derived figure for one priced invoice.
// Rates are percentages; amounts are in the invoice currency.
//
// The zero value is the neutral "insufficient data" sentinel, not a valid
// price of zero. Callers must check IsZero before treating the figures as a
// quote.
type PricingResult struct {
	DiscountRate        decimal.Decimal `json:"discount_rate"`
	RiskPremium         decimal.Decimal `json:"risk_premium"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	ProcessingFeeRate   decimal.Decimal `json:"processing_fee_rate"`
	ProcessingFee       decimal.Decimal `json:"processing_fee"`
	AdvancePercent      decimal.Decimal `json:"advance_percent"`
	AdvanceAmount       decimal.Decimal `json:"advance_amount"`
	NetAmount           decimal.Decimal `json:"net_amount"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	EffectiveAnnualRate decimal.Decimal `json:"effective_annual_rate"`
	Band                RiskBand        `json:"band,omitempty"`
}

// IsZero reports whether the result is the neutral fallback returned for
// missing or non-positive inputs.
func (r PricingResult) IsZero() bool {
	return r.AdvanceAmount.IsZero() && r.DiscountRate.IsZero() && r.Band == ""
}

// ComputePricing converts the input tuple into discount, fee, advance, and
// effective-rate figures. Pure and deterministic: identical inputs yield
// identical outputs, no I/O, no clock.
//
// Invalid inputs (non-positive value, term, or credit score; negative
// revenue) yield the neutral zero result rather than an error.
func ComputePricing(in PricingInput) PricingResult {
	if in.InvoiceValue.LessThanOrEqual(decimal.Zero) ||
		in.PaymentTermDays <= 0 ||
		in.CreditScore <= 0 ||
		in.AnnualRevenue.IsNegative() {
		return PricingResult{}
	}

	ratio := in.AnnualRevenue.Div(in.InvoiceValue)

	rate := baseAnnualRate.
		Add(creditAdjustment(in.CreditScore)).
		Add(termAdjustment(in.PaymentTermDays)).
		Add(sizeAdjustment(in.InvoiceValue)).
		Add(ratioAdjustment(ratio))

	// Informational only: reported, never fed back into the rate.
	premium := decimal.Zero
	if over := rate.Sub(decimal.NewFromInt(8)); over.IsPositive() {
		premium = over.Mul(decimal.NewFromFloat(0.5))
	}

	days := decimal.NewFromInt(int64(in.PaymentTermDays))
	// periodRate = rate/100 * days/365, folded into one division.
	discount := in.InvoiceValue.Mul(rate).Mul(days).Div(decimal.NewFromInt(36500))

	feeRate := processingFeeRate(in.InvoiceValue)
	fee := in.InvoiceValue.Mul(feeRate).Div(decimal.NewFromInt(100))

	advancePct := advancePercent(in.CreditScore, ratio)
	advance := in.InvoiceValue.Mul(advancePct).Div(decimal.NewFromInt(100))

	totalCost := discount.Add(fee)
	net := advance.Sub(discount).Sub(fee)

	// effective annual rate = totalCost/advance * 365/days * 100
	effective := totalCost.Mul(decimal.NewFromInt(36500)).Div(advance.Mul(days))

	return PricingResult{
		DiscountRate:        rate,
		RiskPremium:         premium,
		DiscountAmount:      discount,
		ProcessingFeeRate:   feeRate,
		ProcessingFee:       fee,
		AdvancePercent:      advancePct,
		AdvanceAmount:       advance,
		NetAmount:           net,
		TotalCost:           totalCost,
		EffectiveAnnualRate: effective,
		Band:                bandFor(effective),
	}
}

func creditAdjustment(score int) decimal.Decimal {
	switch {
	case score >= 750:
		return decimal.NewFromInt(-3)
	case score >= 700:
		return decimal.NewFromInt(-2)
	case score >= 650:
		return decimal.NewFromInt(-1)
	case score < 600:
		return decimal.NewFromInt(2)
	default:
		return decimal.Zero
	}
}

func termAdjustment(days int) decimal.Decimal {
	switch {
	case days <= 30:
		return decimal.NewFromInt(-1)
	case days <= 60:
		return decimal.Zero
	case days <= 90:
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromInt(2)
	}
}

var (
	lakhOne     = decimal.NewFromInt(100_000)
	lakhFive    = decimal.NewFromInt(500_000)
	millionOne  = decimal.NewFromInt(1_000_000)
	millionFive = decimal.NewFromInt(5_000_000)
)

func sizeAdjustment(value decimal.Decimal) decimal.Decimal {
	switch {
	case value.GreaterThan(millionFive):
		return decimal.NewFromInt(-1)
	case value.GreaterThanOrEqual(millionOne):
		return decimal.NewFromFloat(-0.5)
	case value.LessThan(lakhOne):
		return decimal.NewFromInt(1)
	default:
		return decimal.Zero
	}
}

func ratioAdjustment(ratio decimal.Decimal) decimal.Decimal {
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return decimal.NewFromInt(-1)
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return decimal.NewFromFloat(-0.5)
	case ratio.LessThan(decimal.NewFromInt(2)):
		return decimal.NewFromFloat(1.5)
	default:
		return decimal.Zero
	}
}

// processingFeeRate is a step function of invoice size, in percent.
func processingFeeRate(value decimal.Decimal) decimal.Decimal {
	switch {
	case value.GreaterThan(millionOne):
		return decimal.NewFromFloat(0.5)
	case value.GreaterThan(lakhFive):
		return decimal.NewFromInt(1)
	case value.GreaterThan(lakhOne):
		return decimal.NewFromFloat(1.5)
	default:
		return decimal.NewFromInt(2)
	}
}

// advancePercent tiers the upfront disbursement. Branch order matters: the
// top tier needs a revenue ratio strictly above 5, so ratio in [3,5] with a
// strong score lands on 90.
func advancePercent(score int, ratio decimal.Decimal) decimal.Decimal {
	switch {
	case score >= 750 && ratio.GreaterThan(decimal.NewFromInt(5)):
		return decimal.NewFromInt(95)
	case score >= 700 && ratio.GreaterThanOrEqual(decimal.NewFromInt(3)):
		return decimal.NewFromInt(90)
	case score < 600 || ratio.LessThan(decimal.NewFromInt(2)):
		return decimal.NewFromInt(80)
	default:
		return decimal.NewFromInt(85)
	}
}

func bandFor(effectiveRate decimal.Decimal) RiskBand {
	switch {
	case effectiveRate.LessThanOrEqual(decimal.NewFromInt(15)):
		return RiskLow
	case effectiveRate.LessThanOrEqual(decimal.NewFromInt(25)):
		return RiskMedium
	default:
		return RiskHigh
	}
}
