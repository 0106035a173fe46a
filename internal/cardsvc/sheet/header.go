package sheet

import "strings"

// Normalize folds a header or logical field name for tolerant matching:
// "area_code", "Area Code" and "AREA-CODE" all resolve to the same column.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ', '-':
			return -1
		}
		return r
	}, name)
}

// HeaderIndex maps logical field names onto the column positions of a
// table's actual header row. Built once at table-open time.
type HeaderIndex struct {
	headers []string
	byNorm  map[string]int
}

func NewHeaderIndex(headers []string) *HeaderIndex {
	idx := &HeaderIndex{
		headers: headers,
		byNorm:  make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		n := Normalize(h)
		if n == "" {
			continue
		}
		// first column wins on duplicate headers
		if _, ok := idx.byNorm[n]; !ok {
			idx.byNorm[n] = i
		}
	}
	return idx
}

// Headers returns the actual header row, in column order.
func (idx *HeaderIndex) Headers() []string { return idx.headers }

// Resolve returns the column position for a logical field name.
func (idx *HeaderIndex) Resolve(field string) (int, bool) {
	col, ok := idx.byNorm[Normalize(field)]
	return col, ok
}

// Missing reports which of the given logical fields have no resolvable
// column in the header row.
func (idx *HeaderIndex) Missing(fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if _, ok := idx.Resolve(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
