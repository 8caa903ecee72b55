// Package logfile writes one CSV row per poll cycle so a session can be
// replayed in a spreadsheet afterwards.
package logfile

import (
	"encoding/csv"
	"os"
	"strings"
	"time"

	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
)

// Filename returns the default log name for a session started at t,
// timestamped in UTC.
func Filename(t time.Time) string {
	return "sdl_log_" + t.UTC().Format("06_01_02_15_04_05") + ".csv"
}

// sanitize turns a display name into a CSV column name. Only the listed
// punctuation goes, the asterisk on the manifold pressure label stays.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.NewReplacer(".", "", "#", "", "(", "", ")", "", "/", "").Replace(name)
	return strings.ToLower(name)
}

// Writer appends poll cycles to a CSV file, one column per display
// parameter in table order.
type Writer struct {
	f      *os.File
	csv    *csv.Writer
	params []baleno.Parameter
}

// New creates the file and writes the header row.
func New(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &Writer{
		f:      f,
		csv:    csv.NewWriter(f),
		params: baleno.Parameters(),
	}
	header := make([]string, 0, len(w.params)+1)
	header = append(header, "timestamp")
	for _, p := range w.params {
		header = append(header, sanitize(p.String()))
	}
	if err := w.csv.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WriteCycle appends one row. Parameters missing from the map log as
// empty fields. Rows are flushed immediately so the file can be tailed
// while streaming.
func (w *Writer) WriteCycle(t time.Time, values map[baleno.Parameter]baleno.Value) error {
	row := make([]string, 0, len(w.params)+1)
	row = append(row, t.UTC().Format("2006-01-02 15:04:05.000000"))
	for _, p := range w.params {
		if v, ok := values[p]; ok {
			row = append(row, v.Text)
		} else {
			row = append(row, "")
		}
	}
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
