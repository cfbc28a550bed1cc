// Package ingest maps a raw balance-export CSV blob into transaction records.
//
// The export format is positional: column order is load-bearing and there is
// no header-driven mapping. Structural problems (wrong column count, a blob
// that is not line/comma-delimited at all) are hard errors; per-field parse
// failures are not: bad numerics become NaN and bad timestamps become the
// zero time, and downstream aggregations are expected to tolerate both.
package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"txboard/internal/core"
)

// Expected positional layout of a balance export row.
const (
	colID = iota
	colType
	colSource
	colAmount
	colFee
	colSkipA // reporting columns not used by any aggregation
	colSkipB
	colNet
	colCurrency
	colCreated
	colAvailableOn
	colDescription
	colCustomerAmount
	colCustomerCurrency
	colTransfer
	colTransferDate

	columnCount
)

var (
	ErrEmptyInput  = errors.New("ingest: empty input")
	ErrBadHeader   = errors.New("ingest: header does not look like a balance export")
	ErrColumnCount = errors.New("ingest: wrong column count")
)

// Timestamp layouts seen across export versions, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse converts a raw export blob into transactions, in file order.
//
// The first line is a header and is never emitted as a record. The header and
// every data row must have exactly the expected number of comma-separated
// fields; a mismatch fails the whole ingestion rather than propagating
// undefined fields through the pipeline.
func Parse(raw string) ([]core.Transaction, error) {
	raw = strings.TrimRight(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	lines := strings.Split(raw, "\n")
	header := strings.Split(lines[0], ",")
	if len(header) != columnCount {
		return nil, fmt.Errorf("%w: header has %d fields, want %d", ErrColumnCount, len(header), columnCount)
	}
	if !strings.EqualFold(strings.TrimSpace(header[colID]), "id") {
		return nil, fmt.Errorf("%w: first column is %q", ErrBadHeader, header[colID])
	}

	txns := make([]core.Transaction, 0, len(lines)-1)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != columnCount {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrColumnCount, i+2, len(fields), columnCount)
		}
		txns = append(txns, mapRow(fields))
	}
	return txns, nil
}

func mapRow(f []string) core.Transaction {
	t := core.Transaction{
		ID:                     strings.TrimSpace(f[colID]),
		Type:                   core.TransactionType(strings.TrimSpace(f[colType])),
		Source:                 strings.TrimSpace(f[colSource]),
		Amount:                 parseFloat(f[colAmount]),
		Fee:                    parseFloat(f[colFee]),
		Net:                    parseFloat(f[colNet]),
		Currency:               strings.TrimSpace(f[colCurrency]),
		Created:                parseTime(f[colCreated]),
		AvailableOn:            parseTime(f[colAvailableOn]),
		Description:            strings.TrimSpace(f[colDescription]),
		CustomerFacingCurrency: strings.TrimSpace(f[colCustomerCurrency]),
		Transfer:               strings.TrimSpace(f[colTransfer]),
		TransferDate:           strings.TrimSpace(f[colTransferDate]),
	}
	// An empty customer-facing amount is an explicit absence, not a zero and
	// not a NaN. Only a non-empty field is parsed.
	if s := strings.TrimSpace(f[colCustomerAmount]); s != "" {
		v := parseFloat(s)
		t.CustomerFacingAmount = &v
	}
	return t
}

// parseFloat is locale-free float parsing; failure yields NaN so that a bad
// numeric field degrades the metrics that touch it instead of dropping the row.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseTime returns the zero time when no known layout matches; such rows are
// excluded from time-bucketed aggregations.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
