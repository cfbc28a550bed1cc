package ingest

import (
	"errors"
	"math"
	"testing"

	"txboard/internal/core"
)

const header = "id,Type,Source,Amount,Fee,Reserved,Hold,Net,Currency,Created,Available On,Description,Customer Facing Amount,Customer Facing Currency,Transfer,Transfer Date"

func TestParseSkipsHeaderAndKeepsFileOrder(t *testing.T) {
	raw := header + "\n" +
		"txn_1,payment,card,100.50,3.21,x,y,97.29,usd,2025-03-03 09:00:00,2025-03-03 09:30:00,Coffee order,100.50,usd,tr_1,2025-03-04\n" +
		"txn_2,payout,bank,-500.00,0,x,y,-500.00,usd,2025-03-04 10:00:00,,Weekly payout,,,tr_2,2025-03-05\n"

	txns, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d records, want 2", len(txns))
	}
	if txns[0].ID != "txn_1" || txns[1].ID != "txn_2" {
		t.Fatalf("records out of file order: %q, %q", txns[0].ID, txns[1].ID)
	}

	first := txns[0]
	if first.Type != core.Payment || first.Amount != 100.50 || first.Fee != 3.21 || first.Net != 97.29 {
		t.Errorf("first record mis-mapped: %+v", first)
	}
	if first.Currency != "usd" || first.Description != "Coffee order" {
		t.Errorf("first record strings mis-mapped: %+v", first)
	}
	if !first.HasCreated() || first.AvailableOn.IsZero() {
		t.Errorf("first record timestamps failed to parse")
	}
	if first.LatencyMinutes() != 30 {
		t.Errorf("LatencyMinutes = %d, want 30", first.LatencyMinutes())
	}
	if !first.HasCustomerAmount() || *first.CustomerFacingAmount != 100.50 {
		t.Errorf("customer amount mis-mapped: %+v", first.CustomerFacingAmount)
	}
}

func TestParseEmptyCustomerAmountIsAbsent(t *testing.T) {
	raw := header + "\n" +
		"txn_2,payout,bank,-500.00,0,x,y,-500.00,usd,2025-03-04 10:00:00,,Weekly payout,,,tr_2,2025-03-05\n"
	txns, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tx := txns[0]
	if tx.CustomerFacingAmount != nil {
		t.Fatalf("empty customer amount should be nil, got %v", *tx.CustomerFacingAmount)
	}
	if tx.CustomerFacingCurrency != "" {
		t.Fatalf("empty customer currency should be empty string, got %q", tx.CustomerFacingCurrency)
	}
	// Absent availableOn: latency degrades to 0, not an error.
	if tx.LatencyMinutes() != 0 {
		t.Fatalf("LatencyMinutes = %d, want 0", tx.LatencyMinutes())
	}
}

func TestParseBadNumericBecomesNaN(t *testing.T) {
	raw := header + "\n" +
		"txn_3,payment,card,notanumber,1.00,x,y,oops,usd,2025-03-03 09:00:00,,d,12.5,usd,tr,td\n"
	txns, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !math.IsNaN(txns[0].Amount) {
		t.Errorf("Amount = %v, want NaN", txns[0].Amount)
	}
	if !math.IsNaN(txns[0].Net) {
		t.Errorf("Net = %v, want NaN", txns[0].Net)
	}
	if txns[0].Fee != 1 {
		t.Errorf("Fee = %v, want 1", txns[0].Fee)
	}
}

func TestParseBadTimestampExcludedFromTimeGrouping(t *testing.T) {
	raw := header + "\n" +
		"txn_4,payment,card,10,0,x,y,10,usd,last tuesday,,d,10,usd,tr,td\n"
	txns, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if txns[0].HasCreated() {
		t.Fatalf("unparseable created should yield zero time, got %v", txns[0].Created)
	}
}

func TestParseStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"empty input", "", ErrEmptyInput},
		{"whitespace only", "  \n \n", ErrEmptyInput},
		{"not comma delimited", "just a paragraph of text", ErrColumnCount},
		{"header with wrong column count", "id,type,amount", ErrColumnCount},
		{"header not an export", "foo,b,c,d,e,f,g,h,i,j,k,l,m,n,o,p", ErrBadHeader},
		{"short data row", header + "\ntxn_1,payment,card", ErrColumnCount},
		{"long data row", header + "\na,b,c,d,e,f,g,h,i,j,k,l,m,n,o,p,EXTRA", ErrColumnCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseTolerantOfCRLFAndBlankLines(t *testing.T) {
	raw := header + "\r\n" +
		"txn_1,payment,card,10,0,x,y,10,usd,2025-03-03 09:00:00,,d,10,usd,tr,td\r\n" +
		"\r\n"
	txns, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d records, want 1", len(txns))
	}
}
