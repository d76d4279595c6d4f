package stock

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecrement_RejectsNonPositiveAmounts(t *testing.T) {
	ledger := NewLedger(true)

	for _, amount := range []string{"0", "-1", "-0.5"} {
		d, _ := decimal.NewFromString(amount)
		if _, err := ledger.Decrement(nil, 1, d); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("amount %s: expected ErrNonPositiveAmount, got %v", amount, err)
		}
	}
}
