package models

import (
	"testing"
)

func TestInvestmentComputedValues(t *testing.T) {
	inv := Investment{
		Quantity:      10,
		PurchasePrice: 100,
		CurrentPrice:  150,
	}

	if got := inv.CostBasis(); got != 1000 {
		t.Errorf("CostBasis() = %v, want 1000", got)
	}
	if got := inv.MarketValue(); got != 1500 {
		t.Errorf("MarketValue() = %v, want 1500", got)
	}
	if got := inv.GainLoss(); got != 500 {
		t.Errorf("GainLoss() = %v, want 500", got)
	}
	if got := inv.GainLossPercent(); got != 50 {
		t.Errorf("GainLossPercent() = %v, want 50", got)
	}
}

func TestGainLossPercent_ZeroCostBasis(t *testing.T) {
	// A free acquisition must not divide by zero.
	inv := Investment{Quantity: 10, PurchasePrice: 0, CurrentPrice: 150}
	if got := inv.GainLossPercent(); got != 0 {
		t.Errorf("GainLossPercent() = %v, want 0", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		part  float64
		whole float64
		want  float64
	}{
		{"gain", 500, 1000, 50},
		{"loss", -250, 1000, -25},
		{"zero whole", 500, 0, 0},
		{"negative whole", 500, -100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.part, tt.whole); got != tt.want {
				t.Errorf("Percent(%v, %v) = %v, want %v", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}

func TestInvestmentAggregates(t *testing.T) {
	investments := []Investment{
		{Quantity: 10, PurchasePrice: 100, CurrentPrice: 120},
		{Quantity: 5, PurchasePrice: 100, CurrentPrice: 90},
	}

	if got := InvestmentsInvested(investments); got != 1500 {
		t.Errorf("InvestmentsInvested = %v, want 1500", got)
	}
	if got := InvestmentsValue(investments); got != 1650 {
		t.Errorf("InvestmentsValue = %v, want 1650", got)
	}
}

func TestInvestmentTypeValid(t *testing.T) {
	for _, typ := range []InvestmentType{InvestmentTypeStock, InvestmentTypeMutualFund, InvestmentTypeBond, InvestmentTypeCrypto} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if InvestmentType("REAL_ESTATE").Valid() {
		t.Error("REAL_ESTATE should not be valid")
	}
}
