package core_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"invoice-discounting/internal/core"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputePricing_ReferenceScenario(t *testing.T) {
	// 1,000,000 at 30 days, credit 750, revenue 5,000,000 (ratio 5):
	// 12 - 3 (credit) - 1 (term) - 0.5 (size) - 0.5 (ratio) = 7% annual.
	r := core.ComputePricing(core.PricingInput{
		InvoiceValue:    d("1000000"),
		PaymentTermDays: 30,
		CreditScore:     750,
		AnnualRevenue:   d("5000000"),
	})

	if !r.DiscountRate.Equal(d("7")) {
		t.Errorf("discount rate = %s, want 7", r.DiscountRate)
	}
	// Ratio is exactly 5, which lands on the 90% tier, not 95%.
	if !r.AdvancePercent.Equal(d("90")) {
		t.Errorf("advance percent = %s, want 90", r.AdvancePercent)
	}
	if !r.AdvanceAmount.Equal(d("900000")) {
		t.Errorf("advance amount = %s, want 900000", r.AdvanceAmount)
	}
	// 1,000,000 is not strictly above 1,000,000 so the fee tier is 1%.
	if !r.ProcessingFee.Equal(d("10000")) {
		t.Errorf("processing fee = %s, want 10000", r.ProcessingFee)
	}
	if r.RiskPremium.IsPositive() {
		t.Errorf("risk premium = %s, want 0 at a 7%% rate", r.RiskPremium)
	}
	if r.Band != core.RiskMedium {
		t.Errorf("band = %s, want %s", r.Band, core.RiskMedium)
	}
}

func TestComputePricing_RateAdjustments(t *testing.T) {
	tests := []struct {
		name     string
		in       core.PricingInput
		wantRate string
		wantAdv  string
	}{
		{
			name: "weak profile adds every penalty",
			// 12 + 2 (credit <600) + 2 (term >90) + 1 (size <100k) + 1.5 (ratio <2) = 18.5
			in:       core.PricingInput{InvoiceValue: d("50000"), PaymentTermDays: 120, CreditScore: 550, AnnualRevenue: d("60000")},
			wantRate: "18.5",
			wantAdv:  "80",
		},
		{
			name: "mid profile stays near base",
			// 12 - 1 (credit 650) + 1 (term 90) + 0 (size) + 0 (ratio 2..5) = 12
			in:       core.PricingInput{InvoiceValue: d("200000"), PaymentTermDays: 90, CreditScore: 650, AnnualRevenue: d("500000")},
			wantRate: "12",
			wantAdv:  "85",
		},
		{
			name: "jumbo invoice with deep revenue cover",
			// 12 - 3 (credit) - 1 (term) - 1 (size >5M) - 1 (ratio >=10) = 6
			in:       core.PricingInput{InvoiceValue: d("6000000"), PaymentTermDays: 30, CreditScore: 780, AnnualRevenue: d("60000000")},
			wantRate: "6",
			wantAdv:  "95",
		},
		{
			name: "ratio between 3 and 5 earns 90",
			// 12 - 2 (credit 700) + 0 (term 60) - 0.5 (size >=1M) + 0 (ratio 4) = 9.5
			in:       core.PricingInput{InvoiceValue: d("2000000"), PaymentTermDays: 60, CreditScore: 700, AnnualRevenue: d("8000000")},
			wantRate: "9.5",
			wantAdv:  "90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.ComputePricing(tt.in)
			if !r.DiscountRate.Equal(d(tt.wantRate)) {
				t.Errorf("discount rate = %s, want %s", r.DiscountRate, tt.wantRate)
			}
			if !r.AdvancePercent.Equal(d(tt.wantAdv)) {
				t.Errorf("advance percent = %s, want %s", r.AdvancePercent, tt.wantAdv)
			}
		})
	}
}

func TestComputePricing_NeutralOnInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   core.PricingInput
	}{
		{"zero value", core.PricingInput{InvoiceValue: d("0"), PaymentTermDays: 30, CreditScore: 700, AnnualRevenue: d("1000")}},
		{"negative value", core.PricingInput{InvoiceValue: d("-5"), PaymentTermDays: 30, CreditScore: 700, AnnualRevenue: d("1000")}},
		{"zero term", core.PricingInput{InvoiceValue: d("100"), PaymentTermDays: 0, CreditScore: 700, AnnualRevenue: d("1000")}},
		{"zero credit score", core.PricingInput{InvoiceValue: d("100"), PaymentTermDays: 30, CreditScore: 0, AnnualRevenue: d("1000")}},
		{"negative revenue", core.PricingInput{InvoiceValue: d("100"), PaymentTermDays: 30, CreditScore: 700, AnnualRevenue: d("-1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.ComputePricing(tt.in)
			if !r.IsZero() {
				t.Errorf("expected neutral result, got %+v", r)
			}
		})
	}
}

func TestComputePricing_Invariants(t *testing.T) {
	inputs := []core.PricingInput{
		{InvoiceValue: d("75000"), PaymentTermDays: 15, CreditScore: 820, AnnualRevenue: d("900000")},
		{InvoiceValue: d("150000"), PaymentTermDays: 45, CreditScore: 610, AnnualRevenue: d("250000")},
		{InvoiceValue: d("1000000"), PaymentTermDays: 30, CreditScore: 750, AnnualRevenue: d("5000000")},
		{InvoiceValue: d("5500000"), PaymentTermDays: 90, CreditScore: 590, AnnualRevenue: d("0")},
		{InvoiceValue: d("999999.99"), PaymentTermDays: 61, CreditScore: 700, AnnualRevenue: d("3500000")},
	}

	for _, in := range inputs {
		first := core.ComputePricing(in)
		second := core.ComputePricing(in)

		// Pure: identical inputs, identical outputs.
		if first.DiscountRate.String() != second.DiscountRate.String() ||
			first.NetAmount.String() != second.NetAmount.String() ||
			first.EffectiveAnnualRate.String() != second.EffectiveAnnualRate.String() {
			t.Errorf("non-deterministic result for %+v", in)
		}

		// netAmount = advanceAmount - discountAmount - processingFee, exactly.
		want := first.AdvanceAmount.Sub(first.DiscountAmount).Sub(first.ProcessingFee)
		if !first.NetAmount.Equal(want) {
			t.Errorf("net amount identity broken: %s != %s", first.NetAmount, want)
		}
		if !first.TotalCost.Equal(first.DiscountAmount.Add(first.ProcessingFee)) {
			t.Errorf("total cost identity broken for %+v", in)
		}
		if first.AdvanceAmount.IsPositive() && first.EffectiveAnnualRate.IsNegative() {
			t.Errorf("negative effective rate %s with positive advance", first.EffectiveAnnualRate)
		}
	}
}
