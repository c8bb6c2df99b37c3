package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/viant/flowline/model/gantt"
)

var (
	colorAccent = lipgloss.Color("#4F94F9")
	colorMuted  = lipgloss.Color("#8C8C8C")
	colorWarn   = lipgloss.Color("#FAAD14")
	colorError  = lipgloss.Color("#F05454")

	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

const timeLayout = "2006-01-02 15:04"

type column struct {
	title string
	width int
}

var listColumns = []column{
	{title: "ID", width: 28},
	{title: "TYPE", width: 20},
	{title: "NAME", width: 28},
	{title: "START", width: 17},
	{title: "END", width: 17},
	{title: "DURATION", width: 10},
	{title: "FLAGS", width: 16},
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <process>",
		Short: "Print the timeline rows of a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.runtime().Timeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			printTimeline(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the timeline as JSON")
	return cmd
}

func printTimeline(w io.Writer, result *gantt.Result) {
	header := make([]string, len(listColumns))
	for i, col := range listColumns {
		header[i] = headerStyle.Width(col.width).Render(col.title)
	}
	fmt.Fprintln(w, "  "+lipgloss.JoinHorizontal(lipgloss.Top, header...))
	for _, element := range result.Elements {
		base := element.Common()
		start, end := element.Span()
		values := []string{
			strings.Repeat("  ", base.HierarchyLevel) + base.ID,
			base.TypeLabel,
			gantt.DisplayLabel(element, true),
			formatTime(start),
			formatTime(end),
			(time.Duration(end-start) * time.Millisecond).String(),
			flags(base),
		}
		cells := make([]string, len(values))
		for i, value := range values {
			style := lipgloss.NewStyle().Width(listColumns[i].width).MaxWidth(listColumns[i].width)
			if element.Type() == gantt.TypeGroup {
				style = style.Bold(true)
			}
			cells[i] = style.Render(value)
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(base.Color)).Render("■ ")
		fmt.Fprintln(w, swatch+lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d elements, %d dependencies", len(result.Elements), len(result.Dependencies))))
	for _, issue := range result.Issues {
		style := lipgloss.NewStyle().Foreground(colorWarn)
		if issue.Severity == gantt.SeverityError {
			style = style.Foreground(colorError)
		}
		fmt.Fprintln(w, style.Render(fmt.Sprintf("%s %s: %s", issue.Severity, issue.ElementID, issue.Reason)))
	}
}

func flags(base *gantt.Base) string {
	var ret []string
	switch {
	case base.IsLoopCut:
		ret = append(ret, "cut")
	case base.IsLoop:
		ret = append(ret, "loop")
	}
	if base.IsPathCutoff && !base.IsLoopCut {
		ret = append(ret, "cutoff")
	}
	if count := len(base.GhostOccurrences); count > 0 {
		ret = append(ret, fmt.Sprintf("+%d ghost", count))
	}
	return strings.Join(ret, ",")
}

func formatTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(timeLayout)
}
