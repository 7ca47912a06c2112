package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeTotal_Empty(t *testing.T) {
	if total := ComputeTotal(nil); !total.IsZero() {
		t.Errorf("ComputeTotal(nil) = %s, want 0", total)
	}
	if total := ComputeTotal([]CartItem{}); !total.IsZero() {
		t.Errorf("ComputeTotal([]) = %s, want 0", total)
	}
}

func TestComputeTotal_SingleLine(t *testing.T) {
	items := []CartItem{
		{Price: decimal.NewFromInt(10), Fee: decimal.NewFromInt(2), Quantity: 3},
	}

	if total := ComputeTotal(items); !total.Equal(decimal.NewFromInt(36)) {
		t.Errorf("ComputeTotal = %s, want 36", total)
	}
}

func TestComputeTotal_MultipleLines(t *testing.T) {
	items := []CartItem{
		{Price: decimal.NewFromInt(60), Fee: decimal.NewFromInt(9), Quantity: 2},              // 138
		{Price: decimal.NewFromInt(150), Fee: decimal.RequireFromString("22.5"), Quantity: 1}, // 172.5
	}

	want := decimal.RequireFromString("310.5")
	if total := ComputeTotal(items); !total.Equal(want) {
		t.Errorf("ComputeTotal = %s, want %s", total, want)
	}
}

func TestComputeTotal_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style accumulation must stay exact in decimal.
	items := make([]CartItem, 10)
	for i := range items {
		items[i] = CartItem{
			Price:    decimal.RequireFromString("0.10"),
			Fee:      decimal.RequireFromString("0.20"),
			Quantity: 1,
		}
	}

	if total := ComputeTotal(items); !total.Equal(decimal.NewFromInt(3)) {
		t.Errorf("ComputeTotal = %s, want exactly 3", total)
	}
}
