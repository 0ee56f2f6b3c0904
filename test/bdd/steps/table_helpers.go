package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// getCellValue returns the cell of row under the named header column
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	headerRow := table.Rows[0]
	for i, headerCell := range headerRow.Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

// dataRows skips the header row
func dataRows(table *godog.Table) ([]*messages.PickleTableRow, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table must have header and data rows")
	}
	return table.Rows[1:], nil
}

func parseFloatCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (float64, error) {
	raw := getCellValue(table, row, columnName)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", columnName, raw)
	}
	return v, nil
}

// approxEqual compares amounts that went through per-tick float arithmetic
func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
