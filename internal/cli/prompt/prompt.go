// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmer handles interactive yes/no confirmation prompts.
type Confirmer struct {
	reader io.Reader
	writer io.Writer
}

// NewConfirmer creates a Confirmer using stdin and stderr.
func NewConfirmer() *Confirmer {
	return &Confirmer{
		reader: os.Stdin,
		writer: os.Stderr,
	}
}

// NewConfirmerWithIO creates a Confirmer with custom reader and writer for testing.
func NewConfirmerWithIO(r io.Reader, w io.Writer) *Confirmer {
	return &Confirmer{
		reader: r,
		writer: w,
	}
}

// Confirm asks the user a yes/no question and returns their answer.
// Only "y" or "yes" (case-insensitive) count as confirmation; anything
// else, including EOF, is treated as a refusal.
func (c *Confirmer) Confirm(question string) bool {
	fmt.Fprintf(c.writer, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(c.reader)
	if !scanner.Scan() {
		fmt.Fprintln(c.writer)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
