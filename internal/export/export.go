// Package export renders transactions into their portable forms: the
// plain-text receipt for a single transaction and the CSV document for a
// log. Both renderings are deterministic.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/zeus-fintech/zeus-api/internal/domain"
)

// CSVHeader is the fixed column order of exported logs.
var CSVHeader = []string{"Date", "Time", "Type", "Amount", "From", "To", "Method", "Status", "Reference"}

// Receipt renders one transaction as a labeled plain-text document with a
// fixed field order.
func Receipt(product string, tx domain.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s - TRANSACTION RECEIPT\n", strings.ToUpper(product))
	b.WriteString("========================================\n\n")
	fmt.Fprintf(&b, "Transaction Reference: %s\n", tx.Reference)
	fmt.Fprintf(&b, "Date: %s\n", tx.Date())
	fmt.Fprintf(&b, "Time: %s\n", tx.Clock())
	fmt.Fprintf(&b, "Status: %s\n\n", strings.ToUpper(string(tx.Status)))
	b.WriteString("Transaction Details:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Type: %s\n", strings.ToUpper(string(tx.Kind)))
	fmt.Fprintf(&b, "Amount: $%s\n", tx.Amount.StringFixed(2))
	fmt.Fprintf(&b, "From: %s\n", tx.From)
	fmt.Fprintf(&b, "To: %s\n", tx.To)
	fmt.Fprintf(&b, "Method: %s\n\n", tx.Method)
	fmt.Fprintf(&b, "Thank you for using %s!\n", title(product))
	fmt.Fprintf(&b, "For support, contact: support@%s-app.com\n", strings.ToLower(product))

	return b.String()
}

// CSV renders the transactions in the given order under CSVHeader. Amounts
// carry two decimals; fields containing the delimiter get the minimal
// quoting encoding/csv applies.
func CSV(txs []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("export.CSV: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date(),
			tx.Clock(),
			string(tx.Kind),
			tx.Amount.StringFixed(2),
			tx.From,
			tx.To,
			tx.Method,
			string(tx.Status),
			tx.Reference,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export.CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export.CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVFilename names a log export for the given day, e.g.
// zeus-transactions-2026-09-01.csv.
func CSVFilename(product string, day time.Time) string {
	return fmt.Sprintf("%s-transactions-%s.csv", strings.ToLower(product), day.Format("2006-01-02"))
}

// ReceiptFilename names a single-transaction export, e.g.
// zeus-receipt-TXN001250.txt.
func ReceiptFilename(product, reference string) string {
	return fmt.Sprintf("%s-receipt-%s.txt", strings.ToLower(product), reference)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
