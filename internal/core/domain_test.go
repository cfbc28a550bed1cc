package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{ID: "txn_1", Type: Payment}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"empty id", Transaction{Type: Payment}, ErrEmptyID},
		{"blank id", Transaction{ID: "   ", Type: Payout}, ErrEmptyID},
		{"unknown type", Transaction{ID: "txn_1", Type: "refund"}, ErrInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tx.Validate(); err != tc.want {
				t.Fatalf("Validate = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLatencyMinutes(t *testing.T) {
	created := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		tx   Transaction
		want int
	}{
		{"half hour", Transaction{Created: created, AvailableOn: created.Add(30 * time.Minute)}, 30},
		{"floors partial minutes", Transaction{Created: created, AvailableOn: created.Add(5*time.Minute + 59*time.Second)}, 5},
		{"missing availableOn", Transaction{Created: created}, 0},
		{"missing created", Transaction{AvailableOn: created}, 0},
		{"missing both", Transaction{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tx.LatencyMinutes(); got != tc.want {
				t.Fatalf("LatencyMinutes = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCustomerAmountAbsence(t *testing.T) {
	v := 12.5
	present := Transaction{CustomerFacingAmount: &v}
	if !present.HasCustomerAmount() || present.CustomerAmount() != 12.5 {
		t.Fatalf("present amount mishandled: %v", present.CustomerAmount())
	}
	absent := Transaction{}
	if absent.HasCustomerAmount() {
		t.Fatal("absent amount reported present")
	}
	if absent.CustomerAmount() != 0 {
		t.Fatalf("absent amount should read as 0 for volume sums, got %v", absent.CustomerAmount())
	}
}
