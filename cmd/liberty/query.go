package main

import (
	"fmt"

	"github.com/lswang2/liberty-parser/liberty"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <library.lib>",
	Short: "Look up a cell, pin, timing table, or attribute",
	Long: "Select a cell (and optionally a pin, then a timing table) from a liberty file and " +
		"print it as canonical liberty text or JSON. With --attr, print just that attribute of " +
		"the selected group. --path applies a JSONPath expression to the JSON projection.",
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("cell", "", "Cell name to select (required)")
	queryCmd.Flags().String("pin", "", "Pin name within the cell")
	queryCmd.Flags().String("related-pin", "", "Related pin of the timing group to select")
	queryCmd.Flags().String("table", "", "Table group to select, e.g. cell_rise")
	queryCmd.Flags().String("timing-type", "", "Disambiguate timing groups, e.g. combinational")
	queryCmd.Flags().String("attr", "", "Print a single attribute of the selected group")
	queryCmd.Flags().Bool("json", false, "Print the selection as JSON")
	queryCmd.Flags().String("path", "", "JSONPath filter applied to the JSON projection (implies --json)")

	_ = queryCmd.MarkFlagRequired("cell")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]
	cellName, _ := cmd.Flags().GetString("cell")
	pinName, _ := cmd.Flags().GetString("pin")
	relatedPin, _ := cmd.Flags().GetString("related-pin")
	tableName, _ := cmd.Flags().GetString("table")
	timingType, _ := cmd.Flags().GetString("timing-type")
	attrKey, _ := cmd.Flags().GetString("attr")
	asJSON, _ := cmd.Flags().GetBool("json")
	jsonPath, _ := cmd.Flags().GetString("path")

	src, err := readLibertyFile(path)
	if err != nil {
		return err
	}
	library, err := liberty.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	target, err := liberty.SelectCell(library, cellName)
	if err != nil {
		return err
	}
	if pinName != "" {
		target, err = liberty.SelectPin(target, pinName)
		if err != nil {
			return err
		}
	}
	if tableName != "" {
		if pinName == "" {
			return fmt.Errorf("--table requires --pin")
		}
		target, err = liberty.SelectTimingTable(target, relatedPin, tableName, timingType)
		if err != nil {
			return err
		}
	}

	if attrKey != "" {
		v, ok := target.Attr(attrKey)
		if !ok {
			return &liberty.MissingAttributeError{Key: attrKey}
		}
		if asJSON || jsonPath != "" {
			return printJSON(jsonValue(v), jsonPath)
		}
		fmt.Println(v.String())
		return nil
	}

	if asJSON || jsonPath != "" {
		return printJSON(jsonGroup(target), jsonPath)
	}
	fmt.Println(target.Format())
	return nil
}

// printJSON renders data as sorted, indented JSON, optionally narrowing it
// first with a JSONPath expression.
func printJSON(data any, jsonPath string) error {
	if jsonPath != "" {
		x, err := jp.ParseString(jsonPath)
		if err != nil {
			return fmt.Errorf("invalid jsonpath %q: %w", jsonPath, err)
		}
		results := x.Get(data)
		if len(results) == 1 {
			data = results[0]
		} else {
			data = results
		}
	}
	fmt.Println(oj.JSON(data, &ojg.Options{Sort: true, Indent: 2}))
	return nil
}

// jsonGroup projects a group into plain maps and slices for JSON output.
func jsonGroup(g *liberty.Group) map[string]any {
	m := map[string]any{
		"name": g.Name,
		"args": toAnySlice(g.Args),
	}
	attrs := make(map[string]any, len(g.Attributes))
	for k, v := range g.Attributes {
		attrs[k] = jsonValue(v)
	}
	m["attributes"] = attrs
	if len(g.Groups) > 0 {
		subs := make([]any, len(g.Groups))
		for i, sub := range g.Groups {
			subs[i] = jsonGroup(sub)
		}
		m["groups"] = subs
	}
	if len(g.Defines) > 0 {
		defines := make([]any, len(g.Defines))
		for i, d := range g.Defines {
			defines[i] = map[string]any{
				"attribute_name": d.AttributeName,
				"group_name":     d.GroupName,
				"attribute_type": d.AttributeType,
			}
		}
		m["defines"] = defines
	}
	return m
}

func jsonValue(v liberty.Value) any {
	switch v.Kind {
	case liberty.ValueNumber:
		return v.Num
	case liberty.ValueUnit:
		return map[string]any{"value": v.Num, "unit": v.Unit}
	case liberty.ValueString, liberty.ValueIdent:
		return v.Str
	case liberty.ValueList:
		elems := make([]any, len(v.List))
		for i, e := range v.List {
			elems[i] = jsonValue(e)
		}
		return elems
	}
	return nil
}

func toAnySlice(strs []string) []any {
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}
