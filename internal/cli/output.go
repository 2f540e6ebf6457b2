// Package cli provides the command-line interface for the lookback pricer.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Color codes for terminal output
const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
	ColorDim   = "\033[2m"
)

// Output collects command output and writes it to the command's stdout
// only when Flush is called, so a failing command leaves stdout empty.
type Output struct {
	buf          bytes.Buffer
	writer       io.Writer
	jsonMode     bool
	colorEnabled bool
}

// NewOutput creates a new Output instance.
func NewOutput(cmd *cobra.Command) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	writer := cmd.OutOrStdout()
	return &Output{
		writer:       writer,
		jsonMode:     jsonMode,
		colorEnabled: !jsonMode && writer == os.Stdout && isTerminal(),
	}
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// IsJSON returns true if JSON output mode is enabled.
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// JSON buffers data as indented JSON.
func (o *Output) JSON(data interface{}) error {
	encoder := json.NewEncoder(&o.buf)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Println buffers a message with newline.
func (o *Output) Println(args ...interface{}) {
	fmt.Fprintln(&o.buf, args...)
}

// Printf buffers a formatted message.
func (o *Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&o.buf, format, args...)
}

// Line buffers fields joined by sep.
func (o *Output) Line(sep string, fields ...string) {
	o.buf.WriteString(strings.Join(fields, sep))
	o.buf.WriteByte('\n')
}

// Success prints a success message in green.
func (o *Output) Success(format string, args ...interface{}) {
	o.colored(ColorGreen, format, args...)
}

// Dim prints a dimmed message.
func (o *Output) Dim(format string, args ...interface{}) {
	o.colored(ColorDim, format, args...)
}

func (o *Output) colored(color, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if o.colorEnabled {
		fmt.Fprintf(&o.buf, "%s%s%s\n", color, msg, ColorReset)
	} else {
		fmt.Fprintln(&o.buf, msg)
	}
}

// Flush writes everything buffered so far to the command's stdout.
func (o *Output) Flush() error {
	_, err := o.buf.WriteTo(o.writer)
	return err
}

// Table represents a simple aligned table for output.
type Table struct {
	headers []string
	rows    [][]string
	output  *Output
}

// NewTable creates a new table.
func NewTable(output *Output, headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		output:  output,
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render renders the table.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	t.printRow(t.headers, widths)
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	t.output.Println(strings.Join(parts, "  "))

	for _, row := range t.rows {
		t.printRow(row, widths)
	}
}

func (t *Table) printRow(cells []string, widths []int) {
	var parts []string
	for i, cell := range cells {
		if i < len(widths) {
			parts = append(parts, cell+strings.Repeat(" ", widths[i]-len(cell)))
		}
	}
	t.output.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
}
