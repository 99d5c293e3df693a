package submissions

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// LegacyTable reads the flat CSV kept by the previous back office, one
// row per (employee_id, month). It is consulted only by the duplicate
// guard; the engine never writes it.
type LegacyTable struct {
	Path string
}

func NewLegacyTable(path string) *LegacyTable {
	return &LegacyTable{Path: path}
}

// Lookup returns the row for (employeeID, monthKey) as a field→value map.
// An absent file, header or row yields an empty map and false.
func (t *LegacyTable) Lookup(employeeID, monthKey string) (map[string]string, bool) {
	file, err := os.Open(t.Path)
	if err != nil {
		return map[string]string{}, false
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil || len(header) == 0 {
		return map[string]string{}, false
	}
	// exports from spreadsheet tools carry a UTF-8 BOM
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	idCol, monthCol := -1, -1
	for i, name := range header {
		switch name {
		case "employee_id":
			idCol = i
		case "month":
			monthCol = i
		}
	}
	if idCol < 0 || monthCol < 0 {
		return map[string]string{}, false
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if idCol >= len(row) || monthCol >= len(row) {
			continue
		}
		if row[idCol] == employeeID && row[monthCol] == monthKey {
			out := make(map[string]string, len(header))
			for i, name := range header {
				if i < len(row) {
					out[name] = row[i]
				}
			}
			return out, true
		}
	}
	return map[string]string{}, false
}
