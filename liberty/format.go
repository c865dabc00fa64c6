package liberty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format renders the group tree as canonical liberty text: attributes sorted
// by key, two-space indentation, sub-groups in source order. The result ends
// without a trailing newline.
func (g *Group) Format() string {
	return strings.Join(g.formatLines("  "), "\n")
}

// String returns the canonical liberty text of the group.
func (g *Group) String() string { return g.Format() }

func (g *Group) formatLines(indent string) []string {
	keys := make([]string, 0, len(g.Attributes))
	for k := range g.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var attrLines []string
	for _, k := range keys {
		v := g.Attributes[k]
		if v.Kind == ValueList {
			formatted := make([]string, len(v.List))
			multiLine := false
			for i, e := range v.List {
				formatted[i] = e.String()
				if e.Kind == ValueString {
					multiLine = true
				}
			}
			if multiLine {
				// Quoted rows go one per line, continued with backslashes
				attrLines = append(attrLines, k+" (")
				for i, l := range formatted {
					end := ""
					if i < len(formatted)-1 {
						end = ", \\"
					}
					attrLines = append(attrLines, indent+l+end)
				}
				attrLines = append(attrLines, ");")
			} else {
				attrLines = append(attrLines, fmt.Sprintf("%s (%s);", k, strings.Join(formatted, ", ")))
			}
		} else {
			attrLines = append(attrLines, fmt.Sprintf("%s: %s;", k, v.String()))
		}
	}

	for _, d := range g.Defines {
		attrLines = append(attrLines, fmt.Sprintf("define (%s, %s, %s);", d.AttributeName, d.GroupName, d.AttributeType))
	}

	lines := make([]string, 0, len(attrLines)+2)
	lines = append(lines, fmt.Sprintf("%s (%s) {", g.Name, strings.Join(g.Args, ", ")))
	for _, l := range attrLines {
		lines = append(lines, indent+l)
	}
	for _, sub := range g.Groups {
		for _, l := range sub.formatLines(indent) {
			lines = append(lines, indent+l)
		}
	}
	lines = append(lines, "}")
	return lines
}

// formatNumber renders a float in its shortest decimal form.
func formatNumber(num float64) string {
	return strconv.FormatFloat(num, 'g', -1, 64)
}
