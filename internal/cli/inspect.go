package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgpai22/cueshift/internal/cue"
	"github.com/mgpai22/cueshift/internal/subtitle"
	"github.com/mgpai22/cueshift/internal/track"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [track_file]",
	Short: "List the overlay directives of a cue track",
	Long: `Parse every cue of a WebVTT or SRT track and print the directive it
produces: its element id, kind, window, path and text.

Payloads that are not valid move directives are shown as static captions,
with the reason in the last column.

With --export the ordered track is written back out as WebVTT or SRT, with
every cue carrying its resolved identifier.

Examples:
  cueshift inspect overlay.vtt
  cueshift inspect overlay.vtt --no-color
  cueshift inspect overlay.srt --export overlay.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("no-color", false, "Disable colored output")
	inspectCmd.Flags().String("export", "", "Write the ordered track to this .vtt or .srt file")
}

// one printable line of the inspect table
type directiveRow struct {
	ElementID string
	Kind      cue.Kind
	Window    string
	Path      string
	Text      string
	Note      string
	Degraded  bool
}

func runInspect(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	exportPath, _ := cmd.Flags().GetString("export")

	tr, err := loadTrack(args[0])
	if err != nil {
		return err
	}

	writeInspect(cmd.OutOrStdout(), tr, noColor)

	if exportPath == "" {
		return nil
	}
	if err := exportTrack(tr, exportPath); err != nil {
		return err
	}
	logger.Infow("Exported track", "output", exportPath, "cues", tr.Len())
	return nil
}

func exportTrack(tr *track.Track, path string) error {
	format := subtitle.GetFormatFromExtension(path)
	if format == subtitle.FormatASS {
		return fmt.Errorf("export supports .vtt and .srt, got %s", path)
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}

	sub := tr.Subtitle()
	sub.Format = string(format)
	if err := writer.Write(sub, path); err != nil {
		return fmt.Errorf("failed to write track: %w", err)
	}
	return nil
}

func writeInspect(w io.Writer, tr *track.Track, noColor bool) {
	rows := make([]directiveRow, 0, tr.Len())
	for _, src := range tr.Cues() {
		d, fallback := cue.ParseReport(src)
		rows = append(rows, describeDirective(d, fallback))
	}

	header := directiveRow{
		ElementID: "ELEMENT",
		Kind:      "KIND",
		Window:    "WINDOW",
		Path:      "PATH",
		Text:      "TEXT",
		Note:      "NOTE",
	}
	widths := columnWidths(append([]directiveRow{header}, rows...))

	fmt.Fprintln(w, stylize(formatRow(header, widths), noColor, lipgloss.Color("252")))
	for _, row := range rows {
		line := formatRow(row, widths)
		fmt.Fprintln(w, stylize(line, noColor, kindColor(row.Kind, row.Degraded)))
	}

	moves := 0
	for _, row := range rows {
		if row.Kind == cue.KindMove {
			moves++
		}
	}
	summary := fmt.Sprintf("%d cues, %d move, %d static", len(rows), moves, len(rows)-moves)
	fmt.Fprintln(w, stylize(summary, noColor, lipgloss.Color("244")))
}

func describeDirective(d cue.Directive, fallback cue.Fallback) directiveRow {
	row := directiveRow{Kind: cue.KindOf(d)}
	if fallback != cue.FallbackNone {
		row.Note = fallback.String()
	}
	row.Degraded = fallback == cue.FallbackIncompleteMove

	switch d := d.(type) {
	case cue.Move:
		row.ElementID = cue.ElementID(d.ID)
		row.Window = formatWindow(d.StartTime, d.EndTime)
		row.Path = fmt.Sprintf("(%s) -> (%s)", formatPoint(d.From), formatPoint(d.To))
		row.Text = d.Text
	case cue.Static:
		row.ElementID = cue.ElementID(d.ID)
		row.Window = formatWindow(d.StartTime, d.EndTime)
		row.Path = "-"
		row.Text = d.Text
	}
	row.Text = truncate(strings.ReplaceAll(row.Text, "\n", " / "), 40)
	return row
}

func formatWindow(start, end float64) string {
	return fmt.Sprintf("%.3f-%.3f", start, end)
}

func formatPoint(p cue.Point) string {
	return fmt.Sprintf("%g,%g", p.X, p.Y)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func columnWidths(rows []directiveRow) [5]int {
	var widths [5]int
	for _, row := range rows {
		for i, cell := range []string{row.ElementID, string(row.Kind), row.Window, row.Path, row.Text} {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func formatRow(row directiveRow, widths [5]int) string {
	cells := []string{row.ElementID, string(row.Kind), row.Window, row.Path, row.Text}
	var sb strings.Builder
	for i, cell := range cells {
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))+2))
	}
	sb.WriteString(row.Note)
	return strings.TrimRight(sb.String(), " ")
}

// colors text unless output is plain
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func kindColor(kind cue.Kind, degraded bool) lipgloss.Color {
	switch {
	case degraded:
		return lipgloss.Color("220")
	case kind == cue.KindMove:
		return lipgloss.Color("42")
	default:
		return lipgloss.Color("246")
	}
}
