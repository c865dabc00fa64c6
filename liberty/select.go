package liberty

import (
	"fmt"
	"sort"

	"github.com/lswang2/liberty-parser/liberty/boolfunc"
)

// SelectCell returns the cell group with the given name from a library
// group. An unknown name fails with a *SelectionError listing every cell
// present in the library, sorted.
func SelectCell(library *Group, cellName string) (*Group, error) {
	available := argNames(library, "cell")
	if !containsString(available, cellName) {
		return nil, &SelectionError{What: "cell", Name: cellName, Available: available}
	}
	return library.GetGroup("cell", cellName)
}

// SelectPin returns the pin group with the given name from a cell group. An
// unknown name fails with a *SelectionError listing every pin of the cell,
// sorted.
func SelectPin(cell *Group, pinName string) (*Group, error) {
	available := argNames(cell, "pin")
	if !containsString(available, pinName) {
		return nil, &SelectionError{What: "pin", Name: pinName, Available: available}
	}
	return cell.GetGroup("pin", pinName)
}

// SelectTimingTable returns the named table group (cell_rise,
// rise_transition, ...) from the timing group of pin whose related_pin
// attribute matches relatedPin. When several timing groups share the related
// pin, timingType disambiguates by their timing_type attribute; it may be
// empty when only one candidate exists. Each failed stage reports the sorted
// alternatives that were present.
func SelectTimingTable(pin *Group, relatedPin, tableName, timingType string) (*Group, error) {
	byRelated := make(map[string][]*Group)
	for _, tg := range pin.GetGroups("timing", "") {
		v, ok := tg.Attr("related_pin")
		if !ok {
			continue
		}
		name, ok := v.Text()
		if !ok {
			continue
		}
		byRelated[name] = append(byRelated[name], tg)
	}

	candidates, ok := byRelated[relatedPin]
	if !ok {
		return nil, &SelectionError{What: "related pin", Name: relatedPin, Available: sortedKeys(byRelated)}
	}

	var timing *Group
	if timingType == "" && len(candidates) == 1 {
		timing = candidates[0]
	} else {
		byType := make(map[string]*Group)
		for _, tg := range candidates {
			v, ok := tg.Attr("timing_type")
			if !ok {
				continue
			}
			if name, ok := v.Text(); ok {
				byType[name] = tg
			}
		}
		timing, ok = byType[timingType]
		if !ok {
			return nil, &SelectionError{What: "timing type", Name: timingType, Available: sortedKeys(byType)}
		}
	}

	tables := make(map[string]bool)
	for _, sub := range timing.Groups {
		tables[sub.Name] = true
	}
	if !tables[tableName] {
		return nil, &SelectionError{What: "table", Name: tableName, Available: sortedKeys(tables)}
	}
	return timing.GetGroup(tableName, "")
}

// GetBooleanFunction parses the attribute stored under key as a boolean
// pin-function expression.
func (g *Group) GetBooleanFunction(key string) (boolfunc.Expr, error) {
	v, ok := g.Attr(key)
	if !ok {
		return nil, &MissingAttributeError{Key: key}
	}
	text, ok := v.Text()
	if !ok {
		return nil, &ValueError{ParseError{
			Message: fmt.Sprintf("attribute %q is a %s, not a boolean function", key, v.Kind),
		}}
	}
	return boolfunc.Parse(text)
}

// argNames collects the sorted set of first arguments of the direct
// sub-groups of the given type.
func argNames(g *Group, typeName string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, sub := range g.GetGroups(typeName, "") {
		if len(sub.Args) == 0 || seen[sub.Args[0]] {
			continue
		}
		seen[sub.Args[0]] = true
		names = append(names, sub.Args[0])
	}
	sort.Strings(names)
	return names
}

func containsString(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
