// internal/utils/csv.go
package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// BuildCSV renders a header plus rows as RFC 4180 CSV. Fields containing
// commas, quotes or newlines come out quote-escaped.
func BuildCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
