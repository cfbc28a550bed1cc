package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Payment TransactionType = "payment"
	Payout  TransactionType = "payout"
)

type (
	TransactionType string

	// Transaction is one row of a balance export. Values are immutable after
	// ingestion; aggregations never write back.
	Transaction struct {
		ID          string
		Type        TransactionType
		Source      string
		Amount      float64 // settlement-currency amount, signed
		Fee         float64
		Net         float64
		Currency    string // settlement currency code
		Created     time.Time
		AvailableOn time.Time
		Description string

		// CustomerFacingAmount is the amount shown to the end customer,
		// possibly in a different currency. Nil when the export row left the
		// field empty.
		CustomerFacingAmount   *float64
		CustomerFacingCurrency string

		Transfer     string
		TransferDate string
	}
)

var (
	ErrEmptyID     = errors.New("empty transaction id")
	ErrInvalidType = errors.New("invalid transaction type")
)

// Validate checks the structural minimum for a transaction to be usable.
// Numeric NaN values are allowed: per-field parse failures degrade
// downstream, they do not reject the row.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	switch t.Type {
	case Payment, Payout:
	default:
		return ErrInvalidType
	}
	return nil
}

// HasCreated reports whether the created timestamp parsed. Rows without it
// are excluded from every time-bucketed aggregation.
func (t Transaction) HasCreated() bool {
	return !t.Created.IsZero()
}

// HasCustomerAmount reports whether the customer-facing amount was present
// in the export row.
func (t Transaction) HasCustomerAmount() bool {
	return t.CustomerFacingAmount != nil
}

// CustomerAmount returns the customer-facing amount, or 0 when absent.
// Volume sums treat the missing field as zero; rate and currency aggregates
// must check HasCustomerAmount instead.
func (t Transaction) CustomerAmount() float64 {
	if t.CustomerFacingAmount == nil {
		return 0
	}
	return *t.CustomerFacingAmount
}

// LatencyMinutes is the whole number of minutes between creation and funds
// availability. Rows missing either timestamp contribute 0, not an exclusion,
// so zero-latency outliers are expected in latency aggregates.
func (t Transaction) LatencyMinutes() int {
	if t.Created.IsZero() || t.AvailableOn.IsZero() {
		return 0
	}
	return int(t.AvailableOn.Sub(t.Created).Minutes())
}
