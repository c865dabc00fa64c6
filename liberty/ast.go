package liberty

import "strings"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// ValueKind discriminates the Value tagged union.
type ValueKind string

const (
	ValueNumber ValueKind = "number"     // plain float
	ValueUnit   ValueKind = "unit"       // float with a glued unit, e.g. 1.2ns
	ValueString ValueKind = "string"     // double-quoted string, quotes decoded
	ValueIdent  ValueKind = "identifier" // bare identifier
	ValueList   ValueKind = "list"       // arguments of a complex attribute
)

// Value is a parsed attribute value. Kind determines which typed fields are
// populated.
type Value struct {
	Kind ValueKind
	Num  float64 // populated when Kind is ValueNumber or ValueUnit
	Unit string  // populated when Kind == ValueUnit
	Str  string  // populated when Kind is ValueString or ValueIdent
	List []Value // populated when Kind == ValueList
}

// NumberValue returns a plain numeric Value.
func NumberValue(num float64) Value {
	return Value{Kind: ValueNumber, Num: num}
}

// UnitValue returns a numeric Value carrying a unit suffix.
func UnitValue(num float64, unit string) Value {
	return Value{Kind: ValueUnit, Num: num, Unit: unit}
}

// StringValue returns a quoted-string Value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// IdentValue returns a bare-identifier Value.
func IdentValue(s string) Value {
	return Value{Kind: ValueIdent, Str: s}
}

// ListValue returns a complex-attribute Value holding the given elements.
func ListValue(elems ...Value) Value {
	return Value{Kind: ValueList, List: elems}
}

// String returns the canonical liberty text for the value. Strings are
// re-quoted with internal quotes escaped; lists render as a comma-separated
// parenthesized sequence.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return formatNumber(v.Num)
	case ValueUnit:
		return formatNumber(v.Num) + v.Unit
	case ValueString:
		return `"` + strings.ReplaceAll(v.Str, `"`, `\"`) + `"`
	case ValueIdent:
		return v.Str
	case ValueList:
		elems := make([]string, len(v.List))
		for i, e := range v.List {
			elems[i] = e.String()
		}
		return "(" + strings.Join(elems, ", ") + ")"
	}
	return ""
}

// Float returns the numeric content of a number or unit value.
func (v Value) Float() (float64, bool) {
	if v.Kind == ValueNumber || v.Kind == ValueUnit {
		return v.Num, true
	}
	return 0, false
}

// Text returns the string content of a quoted-string or identifier value.
func (v Value) Text() (string, bool) {
	if v.Kind == ValueString || v.Kind == ValueIdent {
		return v.Str, true
	}
	return "", false
}

// Define records a define(attribute_name, group_name, attribute_type)
// statement declaring a user attribute.
type Define struct {
	AttributeName string
	GroupName     string
	AttributeType string
}

// Group is a node of the liberty tree: a named group with arguments,
// attributes, nested sub-groups, and attribute definitions.
type Group struct {
	Name       string           // group type, e.g. "library", "cell", "pin"
	Args       []string         // header arguments, usually one name
	Attributes map[string]Value // simple and complex attributes, last write wins
	Groups     []*Group         // nested groups in source order
	Defines    []Define         // define statements in source order
	Pos        Position
}

// NewGroup creates an empty group with the given type name and arguments.
func NewGroup(name string, args ...string) *Group {
	return &Group{Name: name, Args: args, Attributes: make(map[string]Value)}
}

// Attr looks up an attribute by key. Returns the value and true if found.
func (g *Group) Attr(key string) (Value, bool) {
	v, ok := g.Attributes[key]
	return v, ok
}

// SetAttr sets or replaces the attribute stored under key.
func (g *Group) SetAttr(key string, v Value) {
	if g.Attributes == nil {
		g.Attributes = make(map[string]Value)
	}
	g.Attributes[key] = v
}

// GetGroups returns the direct sub-groups of type typeName. If firstArg is
// non-empty, only groups whose first argument equals it are included.
func (g *Group) GetGroups(typeName, firstArg string) []*Group {
	var result []*Group
	for _, sub := range g.Groups {
		if sub.Name != typeName {
			continue
		}
		if firstArg != "" && (len(sub.Args) == 0 || sub.Args[0] != firstArg) {
			continue
		}
		result = append(result, sub)
	}
	return result
}

// GetGroup returns the single direct sub-group of type typeName, failing
// with MissingGroupError or AmbiguousGroupError when the match is not
// exactly one.
func (g *Group) GetGroup(typeName, firstArg string) (*Group, error) {
	matches := g.GetGroups(typeName, firstArg)
	switch len(matches) {
	case 0:
		return nil, &MissingGroupError{TypeName: typeName, Argument: firstArg}
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousGroupError{TypeName: typeName, Argument: firstArg, Count: len(matches)}
	}
}
