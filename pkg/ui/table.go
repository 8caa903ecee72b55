// Package ui renders the live data tables: fixed width columns, severity
// colors and in place repainting so the stream does not scroll the
// terminal.
package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// paint wraps s in the color of the severity band.
func paint(sev baleno.Severity, s string) string {
	switch sev {
	case baleno.SeverityHealthy:
		return green(s)
	case baleno.SeverityCold:
		return blue(s)
	case baleno.SeverityWarm:
		return yellow(s)
	case baleno.SeverityCritical:
		return red(s)
	}
	return s
}

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visibleLen measures a string as the terminal shows it, color escapes
// excluded.
func visibleLen(s string) int {
	return len(ansiSeq.ReplaceAllString(s, ""))
}

func padRight(s string, w int) string {
	if pad := w - visibleLen(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

type row struct {
	cells []string
	sev   baleno.Severity
}

// renderTable lays out a titled grid. Cells are padded before the row
// is colored so escape codes never skew the columns.
func renderTable(title string, headers []string, rows []row) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visibleLen(h)
	}
	for _, r := range rows {
		for i, c := range r.cells {
			if w := visibleLen(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(" " + bold(title) + "\n")
	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = padRight(h, widths[i])
	}
	b.WriteString(" " + strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	for _, r := range rows {
		for i, c := range r.cells {
			parts[i] = padRight(c, widths[i])
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		b.WriteString(" " + paint(r.sev, line) + "\n")
	}
	return b.String()
}

// RawTable shows the latest byte per polled address, in poll order.
func RawTable(addrs []baleno.Address, raw map[baleno.Address]byte) string {
	rows := make([]row, 0, len(addrs))
	for _, a := range addrs {
		rows = append(rows, row{cells: []string{
			fmt.Sprintf("%#x", byte(a)),
			a.String(),
			yellow(strconv.Itoa(int(raw[a]))),
		}})
	}
	return renderTable("SDL live data (raw)", []string{"Address", "Parameter", "Value"}, rows)
}

// ValuesTable shows the decoded gauges, row colored by severity.
func ValuesTable(values map[baleno.Parameter]baleno.Value) string {
	rows := make([]row, 0, len(values))
	for _, p := range baleno.Parameters() {
		if p.Flag() {
			continue
		}
		v := values[p]
		rows = append(rows, row{cells: []string{p.String(), v.Text, v.Unit}, sev: v.Severity})
	}
	return renderTable("SDL live processed values", []string{"Parameter", "Value", "Unit"}, rows)
}

// FlagsTable shows the ON/OFF states, ON rows in green.
func FlagsTable(values map[baleno.Parameter]baleno.Value) string {
	rows := make([]row, 0, len(values))
	for _, p := range baleno.Parameters() {
		if !p.Flag() {
			continue
		}
		v := values[p]
		rows = append(rows, row{cells: []string{p.String(), v.Text}, sev: v.Severity})
	}
	return renderTable("SDL live processed flags", []string{"Flag", "Value"}, rows)
}

// SideBySide lays rendered blocks out in columns, the way the tool shows
// all three tables at once.
func SideBySide(blocks ...string) string {
	split := make([][]string, len(blocks))
	widths := make([]int, len(blocks))
	height := 0
	for i, blk := range blocks {
		lines := strings.Split(strings.TrimRight(blk, "\n"), "\n")
		split[i] = lines
		for _, ln := range lines {
			if w := visibleLen(ln); w > widths[i] {
				widths[i] = w
			}
		}
		if len(lines) > height {
			height = len(lines)
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		var parts []string
		for i, lines := range split {
			var ln string
			if y < len(lines) {
				ln = lines[y]
			}
			if i < len(split)-1 {
				ln = padRight(ln, widths[i])
			}
			parts = append(parts, ln)
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}
	return b.String()
}
