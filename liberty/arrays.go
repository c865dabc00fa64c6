package liberty

import (
	"fmt"
	"strconv"
	"strings"
)

// ArrayToStrings encodes a numeric matrix into liberty row strings, one
// string per row with cells in fixed-point form joined by ", ".
func ArrayToStrings(rows [][]float64) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, x := range row {
			cells[j] = strconv.FormatFloat(x, 'f', 6, 64)
		}
		out[i] = strings.Join(cells, ", ")
	}
	return out
}

// VectorToStrings encodes a 1-D vector as a single-row matrix.
func VectorToStrings(vec []float64) []string {
	return ArrayToStrings([][]float64{vec})
}

// StringsToArray decodes liberty row strings into a numeric matrix. Embedded
// backslash-newline continuations are stripped before cells are split on
// commas. Row lengths are taken as-is; rectangularity is not enforced here.
func StringsToArray(rows []string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, s := range rows {
		s = strings.ReplaceAll(s, "\\\r\n", "")
		s = strings.ReplaceAll(s, "\\\n", "")
		var row []float64
		for _, cell := range strings.Split(s, ",") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			num, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &ValueError{ParseError{
					Message: fmt.Sprintf("invalid number %q in array row %d", cell, i),
					Cause:   err,
				}}
			}
			row = append(row, num)
		}
		out[i] = row
	}
	return out, nil
}

// GetArray reads the attribute stored under key as a numeric matrix. The
// attribute must hold a list of quoted row strings, or a single quoted row
// which decodes to a one-row matrix.
func (g *Group) GetArray(key string) ([][]float64, error) {
	v, ok := g.Attr(key)
	if !ok {
		return nil, &MissingAttributeError{Key: key}
	}

	var rows []string
	switch v.Kind {
	case ValueList:
		rows = make([]string, len(v.List))
		for i, e := range v.List {
			if e.Kind != ValueString {
				return nil, &ValueError{ParseError{
					Message: fmt.Sprintf("attribute %q element %d is a %s, not a quoted row", key, i, e.Kind),
				}}
			}
			rows[i] = e.Str
		}
	case ValueString:
		rows = []string{v.Str}
	default:
		return nil, &ValueError{ParseError{
			Message: fmt.Sprintf("attribute %q is a %s, not an array", key, v.Kind),
		}}
	}

	return StringsToArray(rows)
}

// SetArray stores a numeric matrix under key in the canonical quoted-row
// encoding, replacing any previous value.
func (g *Group) SetArray(key string, rows [][]float64) {
	strs := ArrayToStrings(rows)
	elems := make([]Value, len(strs))
	for i, s := range strs {
		elems[i] = StringValue(s)
	}
	g.SetAttr(key, Value{Kind: ValueList, List: elems})
}
