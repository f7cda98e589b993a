package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/netwatch/posture/pkg/types"
)

// displayOrder fixes the row order for known categories. Anything not
// listed here is appended alphabetically.
var displayOrder = []types.Category{
	types.ConnectionSecurity,
	types.CertificateHealth,
	types.DNSRecordHealth,
	types.DomainReputation,
	types.WHOISPattern,
	types.IPReputation,
	types.CredentialSafety,
	types.ContentSafety,
}

// TableFormatter renders the result as a colored terminal table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, result *types.Result) error {
	fmt.Fprintf(w, "\nSecurity posture for %s\n", result.Target.Host)

	if result.Preflight != "" {
		fmt.Fprintf(w, "  Preflight: %s\n", color.RedString(result.Preflight))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Score"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, category := range orderedCategories(result.Scores) {
		table.Append([]string{string(category), colorScore(result.Scores[category])})
	}

	table.Render()

	fmt.Fprintf(w, "  Aggregated: %s\n", colorAggregated(result.Aggregated))
	return nil
}

func orderedCategories(scores map[types.Category]int) []types.Category {
	seen := make(map[types.Category]bool, len(scores))
	ordered := make([]types.Category, 0, len(scores))
	for _, category := range displayOrder {
		if _, ok := scores[category]; ok {
			ordered = append(ordered, category)
			seen[category] = true
		}
	}
	var extras []types.Category
	for category := range scores {
		if !seen[category] {
			extras = append(extras, category)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	return append(ordered, extras...)
}

func colorScore(score int) string {
	s := strconv.Itoa(score)
	switch {
	case score >= 80:
		return color.GreenString(s)
	case score >= 50:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func colorAggregated(score float64) string {
	s := strconv.FormatFloat(score, 'f', 2, 64)
	switch {
	case score >= 80:
		return color.GreenString(s)
	case score >= 50:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}
