package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

func price(platform string, total float64) model.PlatformPrice {
	return model.PlatformPrice{Platform: platform, Total: total}
}

func TestEvaluateDeal(t *testing.T) {
	tests := []struct {
		name        string
		prices      []model.PlatformPrice
		wantBest    string
		wantTotal   float64
		wantSavings float64
	}{
		{
			name:        "three platforms",
			prices:      []model.PlatformPrice{price("DoorDash", 19.00), price("Uber Eats", 17.50), price("Grubhub", 19.85)},
			wantBest:    "Uber Eats",
			wantTotal:   17.50,
			wantSavings: 2.35,
		},
		{
			name:        "single entry",
			prices:      []model.PlatformPrice{price("DoorDash", 10.00)},
			wantBest:    "DoorDash",
			wantTotal:   10.00,
			wantSavings: 0,
		},
		{
			name:        "cheapest last",
			prices:      []model.PlatformPrice{price("A", 28.60), price("B", 27.78), price("C", 24.91)},
			wantBest:    "C",
			wantTotal:   24.91,
			wantSavings: 3.69,
		},
		{
			name:        "tie keeps first",
			prices:      []model.PlatformPrice{price("A", 12.00), price("B", 9.50), price("C", 9.50)},
			wantBest:    "B",
			wantTotal:   9.50,
			wantSavings: 2.50,
		},
		{
			name:        "all equal",
			prices:      []model.PlatformPrice{price("A", 5), price("B", 5)},
			wantBest:    "A",
			wantTotal:   5,
			wantSavings: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal, err := EvaluateDeal(tt.prices)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBest, deal.BestDeal.Platform)
			assert.Equal(t, tt.wantTotal, deal.BestDeal.Total)
			assert.Equal(t, tt.wantSavings, deal.MaxSavings)
		})
	}
}

func TestEvaluateDeal_Empty(t *testing.T) {
	_, err := EvaluateDeal(nil)
	assert.ErrorIs(t, err, ErrNoPricesAvailable)

	_, err = EvaluateDeal([]model.PlatformPrice{})
	assert.ErrorIs(t, err, ErrNoPricesAvailable)
}

func TestEvaluateDeal_DoesNotMutateInput(t *testing.T) {
	in := []model.PlatformPrice{price("A", 3), price("B", 1), price("C", 2)}
	_, err := EvaluateDeal(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, []string{in[0].Platform, in[1].Platform, in[2].Platform})
}

func TestTotalMismatch(t *testing.T) {
	consistent := model.PlatformPrice{BasePrice: 12.99, DeliveryFee: 0.99, ServiceFee: 2.00, Tax: 1.52, Total: 17.50}
	_, bad := TotalMismatch(consistent)
	assert.False(t, bad)

	off := model.PlatformPrice{BasePrice: 10.00, DeliveryFee: 1.00, ServiceFee: 1.00, Tax: 1.00, Total: 14.00}
	diff, bad := TotalMismatch(off)
	assert.True(t, bad)
	assert.InDelta(t, -1.0, diff, 0.001)
}
