// Package render turns a finished Plan into human-readable terminal
// output: a day-by-day table of items, colored per subject, with
// warnings called out at the end.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/oriskedar/examplan/internal/dateutil"
	"github.com/oriskedar/examplan/internal/planmodel"
)

// Color definitions for consistent styling across items that don't
// carry a subject (breaks, warnings).
var (
	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
	colorWarning = color.New(color.FgYellow, color.Bold)
	colorBreak   = color.New(color.FgWhite, color.Faint)
)

// DisableColor turns off all color output, useful when stdout isn't a
// terminal.
func DisableColor() {
	color.NoColor = true
}

// subjectStyles assigns a lipgloss style per subject, derived from its
// declared RGB color triplet, falling back to the default foreground
// when no color is recorded.
func subjectStyles(input *planmodel.PlanInput) map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style, len(input.Subjects))
	for _, subject := range input.Subjects {
		style := lipgloss.NewStyle().Bold(true)
		if subject.Color != ([3]float64{}) {
			style = style.Foreground(lipgloss.Color(hexFromTriplet(subject.Color)))
		}
		styles[subject.Name] = style
	}
	return styles
}

func hexFromTriplet(c [3]float64) string {
	r := clamp255(c[0])
	g := clamp255(c[1])
	b := clamp255(c[2])
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clamp255(f float64) int {
	v := int(f*255 + 0.5)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return v
}

// Plan writes a day-grouped, subject-colored rendering of plan to w.
func Plan(w io.Writer, input *planmodel.PlanInput, plan *planmodel.Plan) {
	styles := subjectStyles(input)

	byDate := make(map[string][]planmodel.Item)
	for _, item := range plan.Items {
		key := dateutil.DateKey(item.Start)
		byDate[key] = append(byDate[key], item)
	}

	dates := make([]string, 0, len(byDate))
	for k := range byDate {
		dates = append(dates, k)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Fprintln(w, colorHeader.Sprint(date))
		items := byDate[date]
		sort.Slice(items, func(i, j int) bool { return items[i].Start.Before(items[j].Start) })
		for _, item := range items {
			fmt.Fprintln(w, formatItem(item, styles))
		}
		fmt.Fprintln(w)
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintln(w, colorWarning.Sprint("Warnings:"))
		for _, warning := range plan.Warnings {
			fmt.Fprintln(w, "  "+colorMuted.Sprint(warning.String()))
		}
	}
}

func formatItem(item planmodel.Item, styles map[string]lipgloss.Style) string {
	window := fmt.Sprintf("%s-%s", item.Start.Format("15:04"), item.End.Format("15:04"))
	if item.IsBreak() {
		return fmt.Sprintf("  %s  %s", window, colorBreak.Sprint(item.Type))
	}
	label := item.Type
	if item.Paper != "" {
		label = item.Subject + " " + item.Paper + ": " + item.Type
	} else {
		label = item.Subject + ": " + item.Type
	}
	if style, ok := styles[item.Subject]; ok {
		label = style.Render(label)
	}
	return fmt.Sprintf("  %s  %s", window, label)
}
