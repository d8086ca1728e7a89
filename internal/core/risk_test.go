package core_test

import (
	"testing"

	"invoice-discounting/internal/core"
)

func TestComputeRiskScore_ClampsToRange(t *testing.T) {
	tests := []struct {
		name string
		in   core.RiskInput
		want int
	}{
		{
			name: "every bonus maxed clamps at 100",
			// 50 + 30 + 20 + 10 + 8 + 7 = 125 -> 100
			in: core.RiskInput{
				CreditScore:        800,
				AnnualRevenue:      d("10000000"),
				ContractValue:      d("1000000"),
				StartDate:          "2026-01-01",
				EndDate:            "2026-06-30",
				InterestRate:       d("10"),
				RegistrationNumber: "U12345MH2020PTC123456",
			},
			want: 100,
		},
		{
			name: "absurd credit score still clamps",
			in: core.RiskInput{
				CreditScore:        10000,
				AnnualRevenue:      d("99000000"),
				ContractValue:      d("1"),
				StartDate:          "2026-01-01",
				EndDate:            "2026-02-01",
				InterestRate:       d("12"),
				RegistrationNumber: "U12345MH2020PTC123456",
			},
			want: 100,
		},
		{
			name: "empty input scores the base alone",
			in:   core.RiskInput{},
			want: 50,
		},
		{
			name: "negative revenue contributes nothing",
			in: core.RiskInput{
				CreditScore:   620,
				AnnualRevenue: d("-500000"),
				ContractValue: d("100000"),
			},
			want: 55, // 50 + 5 credit
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ComputeRiskScore(tt.in)
			if got.Score != tt.want {
				t.Errorf("score = %d, want %d (breakdown %+v)", got.Score, tt.want, got)
			}
			if got.Score < 0 || got.Score > 100 {
				t.Errorf("score %d outside [0,100]", got.Score)
			}
		})
	}
}

func TestComputeRiskScore_ComponentBonuses(t *testing.T) {
	base := core.RiskInput{
		CreditScore:   700,
		AnnualRevenue: d("3000000"),
		ContractValue: d("1000000"),
		StartDate:     "2026-01-01",
		EndDate:       "2027-06-30", // 17 months
		InterestRate:  d("16"),
	}
	// 50 + 20 (credit 700) + 10 (ratio 3) + 8 (<=24 months) + 5 (rate in outer window) = 93
	got := core.ComputeRiskScore(base)
	if got.Score != 93 {
		t.Fatalf("score = %d, want 93 (breakdown %+v)", got.Score, got)
	}
	if got.CreditBonus != 20 || got.RatioBonus != 10 || got.DurationBonus != 8 || got.RateBonus != 5 {
		t.Errorf("unexpected breakdown %+v", got)
	}
}

func TestComputeRiskScore_RegistrationPattern(t *testing.T) {
	tests := []struct {
		reg  string
		want int
	}{
		{"U12345MH2020PTC123456", 7},
		{"L98765DL1999PLC654321", 7},
		{"u12345mh2020ptc123456", 0}, // lower case never matches
		{"GSTIN1234", 0},             // a form-valid id can still miss the bonus
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.reg, func(t *testing.T) {
			got := core.ComputeRiskScore(core.RiskInput{RegistrationNumber: tt.reg})
			if got.RegistrationBonus != tt.want {
				t.Errorf("registration bonus for %q = %d, want %d", tt.reg, got.RegistrationBonus, tt.want)
			}
		})
	}
}

func TestComputeRiskScore_UnparsableDatesContributeZero(t *testing.T) {
	got := core.ComputeRiskScore(core.RiskInput{
		CreditScore: 760,
		StartDate:   "01/01/2026",
		EndDate:     "soon",
	})
	if got.DurationBonus != 0 {
		t.Errorf("duration bonus = %d, want 0 for unparsable dates", got.DurationBonus)
	}
	if got.Score != 80 { // 50 + 30 credit
		t.Errorf("score = %d, want 80", got.Score)
	}
}
