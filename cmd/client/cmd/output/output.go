package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// JSON переключает вывод команд в машиночитаемый формат (флаг --json)
var JSON bool

var out io.Writer = os.Stdout

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
	dimColor  = color.New(color.Faint)
)

func Success(format string, args ...any) {
	okColor.Fprintf(out, "✓ "+format+"\n", args...)
}

func Warn(format string, args ...any) {
	warnColor.Fprintf(out, "⚠ "+format+"\n", args...)
}

func Fail(format string, args ...any) {
	failColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

func Header(title string) {
	headColor.Fprintf(out, "=== %s ===\n", title)
}

func Line(format string, args ...any) {
	fmt.Fprintf(out, format+"\n", args...)
}

func Dim(format string, args ...any) {
	dimColor.Fprintf(out, format+"\n", args...)
}

// SyncMark - пометка для записей, которые еще не ушли на сервер
func SyncMark(synced bool) string {
	if synced {
		return okColor.Sprint("synced")
	}
	return warnColor.Sprint("pending")
}

func PrintJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
