package liberty

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagsByRule(diags []Diagnostic, rule string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func TestValidateCleanLibrary(t *testing.T) {
	lib := mustParse(t, invLibrary)
	assert.Empty(t, Validate(lib))
}

func TestValidateFunctionSyntax(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  cell(BAD) {
    pin(Z) {
      function: "A + ";
    }
  }
}
`)
	diags := diagsByRule(Validate(lib), "function_syntax")
	require.Len(t, diags, 1)
	assert.Equal(t, Error, diags[0].Severity)
	assert.Equal(t, "library(l)/cell(BAD)/pin(Z)", diags[0].Path)
	assert.Contains(t, diags[0].Message, "invalid boolean expression")
}

func TestValidateTableRectangular(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  cell(C) {
    pin(Z) {
      direction: output;
      timing() {
        related_pin: "A";
        cell_rise(t) {
          values("1, 2", \
                 "3");
        }
      }
    }
  }
}
`)
	diags := diagsByRule(Validate(lib), "table_rectangular")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "row 1 has 1 cells, expected 2")
}

func TestValidateTableNotNumeric(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  vector(v) {
    values("a, b");
  }
}
`)
	diags := diagsByRule(Validate(lib), "table_rectangular")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "does not decode")
}

func TestValidateTimingRelatedPin(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  cell(C) {
    pin(Z) {
      timing() {
        timing_type: combinational;
      }
    }
  }
}
`)
	diags := diagsByRule(Validate(lib), "timing_related_pin")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, "library(l)/cell(C)/pin(Z)/timing", diags[0].Path)
}

func TestValidateDefineTypeKnown(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  define(good, cell, float);
  define(bad, cell, complex);
}
`)
	diags := diagsByRule(Validate(lib), "define_type_known")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, `"complex"`)
}

func TestValidateDuplicateGroupArg(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  cell(C) {
    pin(A) {
      direction: input;
    }
    pin(A) {
      direction: output;
    }
  }
}
`)
	diags := diagsByRule(Validate(lib), "duplicate_group_arg")
	require.Len(t, diags, 1)
	assert.Equal(t, "library(l)/cell(C)", diags[0].Path)
	assert.Contains(t, diags[0].Message, "pin(A) appears 2 times")
}

func TestValidateEmptyGroup(t *testing.T) {
	lib := mustParse(t, sampleLibrary)

	diags := Validate(lib)
	empties := diagsByRule(diags, "empty_group")
	require.Len(t, empties, 2)
	for _, d := range empties {
		assert.Equal(t, Info, d.Severity)
		assert.Empty(t, d.Fix)
	}
	assert.Len(t, diags, len(empties), "no other rule should fire")
}

func TestValidateOrError(t *testing.T) {
	lib := mustParse(t, `
library(l) {
  cell(BAD) {
    pin(Z) {
      function: "A + ";
      timing() {
        timing_type: combinational;
      }
    }
  }
}
`)
	diags, err := ValidateOrError(lib)
	require.Error(t, err)
	assert.NotEmpty(t, diagsByRule(diags, "timing_related_pin"), "warnings are still reported")

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Len(t, valErr.Diagnostics, 1)
	assert.Equal(t, "function_syntax", valErr.Diagnostics[0].Rule)
	assert.Contains(t, err.Error(), "validation failed with 1 error(s)")
}

func TestValidateOrErrorClean(t *testing.T) {
	lib := mustParse(t, invLibrary)
	diags, err := ValidateOrError(lib)
	assert.NoError(t, err)
	assert.Empty(t, diags)
}

// noAreaRule flags cells without an area attribute.
type noAreaRule struct{}

func (noAreaRule) Name() string { return "cell_area" }

func (noAreaRule) Apply(g *Group) []Diagnostic {
	var diags []Diagnostic
	walkGroups(g, "", func(path string, grp *Group) {
		if grp.Name != "cell" {
			return
		}
		if _, ok := grp.Attr("area"); !ok {
			diags = append(diags, Diagnostic{
				Rule:     "cell_area",
				Severity: Warning,
				Message:  "cell has no area attribute",
				Path:     path,
			})
		}
	})
	return diags
}

func TestValidateExtraRules(t *testing.T) {
	lib := mustParse(t, invLibrary)

	diags := Validate(lib, noAreaRule{})
	areas := diagsByRule(diags, "cell_area")
	require.Len(t, areas, 1)
	assert.Equal(t, "library(demo)/cell(BUF)", areas[0].Path)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Rule:     "function_syntax",
		Severity: Error,
		Message:  "bad expression",
		Path:     "library(l)/pin(Z)",
		Fix:      "fix the syntax",
	}
	assert.Equal(t, "[ERROR] function_syntax: bad expression (at: library(l)/pin(Z)) -- fix: fix the syntax", d.String())

	minimal := Diagnostic{Rule: "empty_group", Severity: Info, Message: "group has no content"}
	assert.Equal(t, "[INFO] empty_group: group has no content", minimal.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "INFO", Info.String())
}
