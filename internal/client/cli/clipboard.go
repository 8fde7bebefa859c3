package cli

import (
	"encoding/base64"
	"io"
	"os"

	"golang.org/x/term"
)

// osc52 is the escape sequence asking the terminal emulator to put text on
// the system clipboard.
func osc52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

// terminalClipboard copies through f when f is a terminal and reports
// whether the sequence was written.
func terminalClipboard(f *os.File) func(string) bool {
	return func(text string) bool {
		if !term.IsTerminal(int(f.Fd())) {
			return false
		}
		_, err := io.WriteString(f, osc52(text))
		return err == nil
	}
}

// terminalWidth is a test seam for the chart width.
var terminalWidth = func() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
