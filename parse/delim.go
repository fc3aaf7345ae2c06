package parse

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/space/ir"
)

// parseDelimited decodes rows of delimited text into a tree keyed by row
// number, "0" being the first data row. Each row is a tree from column
// name to cell; empty cells are left out. Column names come from the
// header row with spaces removed, or are "0", "1", ... without one.
func parseDelimited(d []byte, delim rune, headers bool) (*ir.Node, error) {
	r := csv.NewReader(bytes.NewReader(d))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: delimited: %w", ErrParse, err)
	}
	res := ir.New()
	if len(rows) == 0 {
		return res, nil
	}
	var columns []string
	if headers {
		for _, c := range rows[0] {
			columns = append(columns, strings.ReplaceAll(c, " ", ""))
		}
		rows = rows[1:]
	} else {
		for i := range rows[0] {
			columns = append(columns, strconv.Itoa(i))
		}
	}
	for i, row := range rows {
		obj := ir.New()
		for j, col := range columns {
			if j >= len(row) || row[j] == "" {
				continue
			}
			obj.SetPair(col, ir.FromString(row[j]), -1, false)
		}
		res.SetPair(strconv.Itoa(i), obj, -1, false)
	}
	return res, nil
}
