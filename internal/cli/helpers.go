package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

func colorGreen(s string) string  { return ansiGreen + s + ansiReset }
func colorYellow(s string) string { return ansiYellow + s + ansiReset }
func colorRed(s string) string    { return ansiRed + s + ansiReset }

// newTable returns a tabwriter for aligned list output.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

// printJSON renders any value as indented JSON for --json output.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError renders a classified failure the way the web client would toast
// it, then returns errReported so the root command does not repeat it.
func printError(err error) error {
	apiErr, ok := pocketbuddy.IsAPIError(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
		return errReported
	}

	switch {
	case apiErr.IsUnauthorized():
		fmt.Fprintf(os.Stderr, "%s Session expired, please log in again: %s\n", colorRed("✗"), apiErr.Message)
	case apiErr.IsForbidden():
		fmt.Fprintf(os.Stderr, "%s Not allowed: %s\n", colorRed("✗"), apiErr.Message)
	case apiErr.IsNotFound():
		fmt.Fprintf(os.Stderr, "%s Not found: %s\n", colorRed("✗"), apiErr.Message)
	case apiErr.IsTransient():
		fmt.Fprintf(os.Stderr, "%s Backend unreachable, try again: %s\n", colorRed("✗"), apiErr.Message)
	default:
		fmt.Fprintf(os.Stderr, "%s %s\n", colorRed("✗"), apiErr.Message)
	}
	return errReported
}

// confirm asks for explicit confirmation before a destructive operation.
// The --force flag skips the prompt.
func confirm(prompt string) bool {
	if force {
		return true
	}
	fmt.Printf("%s %s [y/N]: ", colorYellow("?"), prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// truncate shortens long ids and names for table cells.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// formatTime renders timestamps compactly for tables.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// yesNo renders booleans for tables.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
