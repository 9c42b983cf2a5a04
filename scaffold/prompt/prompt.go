// Package prompt implements the small interactive surface of the
// provisioner: a yes/no confirmation and a no-echo secret entry.
//
// Both run against a shared Reader so that successive prompts in
// one invocation consume the same buffered stream and no input is
// lost between them.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reader wraps an input stream for interactive
// prompting. Create one per invocation with NewReader
// and use it for every prompt of that run.
type Reader struct {
	// file is non-nil when the input may be a
	// terminal; used for no-echo secret entry.
	file *os.File
	buf  *bufio.Reader
}

// NewReader returns a Reader over in.
func NewReader(in io.Reader) *Reader {
	rd := &Reader{buf: bufio.NewReader(in)}

	if fi, ok := in.(*os.File); ok {
		rd.file = fi
	}

	return rd
}

// Confirm asks a yes/no question and returns the
// answer. An empty or unreadable answer returns the
// default.
func (rd *Reader) Confirm(
	out io.Writer,
	question string,
	def bool,
) bool {
	suffix := "[Y/n]"
	if !def {
		suffix = "[y/N]"
	}

	fmt.Fprintf(out, "%s %s ", question, suffix)

	line, err := rd.buf.ReadString('\n')
	if err != nil && line == "" {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// Secret reads a secret. When the input is a terminal
// it is read without echo; otherwise a plain line read
// from the shared buffer is used so the function stays
// testable with buffered readers.
func (rd *Reader) Secret(
	out io.Writer,
	label string,
) (string, error) {
	const errCtx = "reading secret"

	fmt.Fprintf(out, "%s: ", label)

	if rd.file != nil &&
		term.IsTerminal(int(rd.file.Fd())) {
		by, err := term.ReadPassword(
			int(rd.file.Fd()),
		)

		fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return string(by), nil
	}

	line, err := rd.buf.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimSpace(line), nil
}
