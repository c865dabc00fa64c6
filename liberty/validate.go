package liberty

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means a downstream consumer will reject or misread the library.
	Error Severity = iota
	// Warning means the library is usable but something looks wrong.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "function_syntax")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	Path     string   // slash-joined group path, e.g. "library(demo)/cell(INV)" (optional)
	Fix      string   // suggested fix (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Path != "" {
		fmt.Fprintf(&b, " (at: %s)", d.Path)
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(g *Group) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the group
// tree. Returns all diagnostics regardless of severity.
func Validate(g *Group, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(g)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(g *Group, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(g, extraRules...)

	var errors []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == Error {
			errors = append(errors, d)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errors}
	}
	return diagnostics, nil
}

// builtInRules returns the standard set of lint rules.
func builtInRules() []LintRule {
	return []LintRule{
		functionSyntaxRule{},
		tableRectangularRule{},
		timingRelatedPinRule{},
		defineTypeKnownRule{},
		duplicateGroupArgRule{},
		emptyGroupRule{},
	}
}

// --- Helper functions ---

// walkGroups visits g and every descendant, passing a slash-joined path like
// "library(demo)/cell(INV)/pin(Y)".
func walkGroups(g *Group, prefix string, visit func(path string, g *Group)) {
	path := prefix + pathElement(g)
	visit(path, g)
	for _, sub := range g.Groups {
		walkGroups(sub, path+"/", visit)
	}
}

func pathElement(g *Group) string {
	if len(g.Args) > 0 {
		return g.Name + "(" + g.Args[0] + ")"
	}
	return g.Name
}

// functionAttrKeys names the attributes whose values are boolean pin-function
// expressions.
var functionAttrKeys = []string{"function", "three_state", "state_function"}

// knownDefineTypes is the set of attribute types a define statement may declare.
var knownDefineTypes = map[string]bool{
	"boolean": true,
	"string":  true,
	"integer": true,
	"float":   true,
}

// --- Rule implementations ---

// function_syntax: Boolean function attributes must parse correctly.
type functionSyntaxRule struct{}

func (functionSyntaxRule) Name() string { return "function_syntax" }

func (functionSyntaxRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		for _, key := range functionAttrKeys {
			v, ok := grp.Attr(key)
			if !ok {
				continue
			}
			text, ok := v.Text()
			if !ok {
				continue
			}
			if _, err := grp.GetBooleanFunction(key); err != nil {
				diags = append(diags, Diagnostic{
					Rule:     "function_syntax",
					Severity: Error,
					Message:  fmt.Sprintf("attribute %s has invalid boolean expression %q: %v", key, text, err),
					Path:     path,
					Fix:      "fix the boolean expression syntax",
				})
			}
		}
	})
	return diags
}

// table_rectangular: A values attribute must decode to a rectangular matrix.
type tableRectangularRule struct{}

func (tableRectangularRule) Name() string { return "table_rectangular" }

func (tableRectangularRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		if _, ok := grp.Attr("values"); !ok {
			return
		}
		rows, err := grp.GetArray("values")
		if err != nil {
			diags = append(diags, Diagnostic{
				Rule:     "table_rectangular",
				Severity: Warning,
				Message:  fmt.Sprintf("values attribute does not decode as a numeric table: %v", err),
				Path:     path,
				Fix:      "quote each row as a comma-separated number list",
			})
			return
		}
		for i, row := range rows {
			if len(row) != len(rows[0]) {
				diags = append(diags, Diagnostic{
					Rule:     "table_rectangular",
					Severity: Warning,
					Message:  fmt.Sprintf("values row %d has %d cells, expected %d", i, len(row), len(rows[0])),
					Path:     path,
					Fix:      "give every row the same number of cells",
				})
				return
			}
		}
	})
	return diags
}

// timing_related_pin: Every timing group should name its related pin.
type timingRelatedPinRule struct{}

func (timingRelatedPinRule) Name() string { return "timing_related_pin" }

func (timingRelatedPinRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		if grp.Name != "timing" {
			return
		}
		if _, ok := grp.Attr("related_pin"); !ok {
			diags = append(diags, Diagnostic{
				Rule:     "timing_related_pin",
				Severity: Warning,
				Message:  "timing group has no related_pin attribute",
				Path:     path,
				Fix:      "add a related_pin attribute naming the input pin",
			})
		}
	})
	return diags
}

// define_type_known: Define statements should declare a recognized attribute type.
type defineTypeKnownRule struct{}

func (defineTypeKnownRule) Name() string { return "define_type_known" }

func (defineTypeKnownRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		for _, d := range grp.Defines {
			if !knownDefineTypes[d.AttributeType] {
				diags = append(diags, Diagnostic{
					Rule:     "define_type_known",
					Severity: Warning,
					Message:  fmt.Sprintf("define of %q declares unrecognized attribute type %q", d.AttributeName, d.AttributeType),
					Path:     path,
					Fix:      "use one of: boolean, string, integer, float",
				})
			}
		}
	})
	return diags
}

// duplicate_group_arg: Sibling groups of the same type should not repeat a name.
type duplicateGroupArgRule struct{}

func (duplicateGroupArgRule) Name() string { return "duplicate_group_arg" }

func (duplicateGroupArgRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		counts := make(map[string]int)
		for _, sub := range grp.Groups {
			if len(sub.Args) == 0 {
				continue
			}
			counts[sub.Name+"("+sub.Args[0]+")"] = counts[sub.Name+"("+sub.Args[0]+")"] + 1
		}
		for _, key := range sortedKeys(counts) {
			if counts[key] > 1 {
				diags = append(diags, Diagnostic{
					Rule:     "duplicate_group_arg",
					Severity: Warning,
					Message:  fmt.Sprintf("group %s appears %d times", key, counts[key]),
					Path:     path,
					Fix:      "rename or merge the duplicated groups",
				})
			}
		}
	})
	return diags
}

// empty_group: A group with no attributes, sub-groups, or defines is suspicious.
type emptyGroupRule struct{}

func (emptyGroupRule) Name() string { return "empty_group" }

func (emptyGroupRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		if len(grp.Attributes) == 0 && len(grp.Groups) == 0 && len(grp.Defines) == 0 {
			diags = append(diags, Diagnostic{
				Rule:     "empty_group",
				Severity: Info,
				Message:  "group has no content",
				Path:     path,
			})
		}
	})
	return diags
}
