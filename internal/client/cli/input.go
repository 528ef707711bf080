package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	errEmptyInput = errors.New("input must not be empty")
	errNoTerminal = errors.New("password prompt needs an interactive terminal")
)

// readPassword and isTerminal are test seams over x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText writes "prompt: " to w and reads one line from reader.
// Surrounding whitespace is dropped and a blank answer is errEmptyInput.
// A final line without a newline is accepted.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errEmptyInput
	}
	return line, nil
}

// GetPassword reads a password from stdin without echo. The caller owns the
// returned slice and should wipe it with common.WipeByteArray.
func GetPassword(w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return nil, errNoTerminal
	}
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(pw) == 0 {
		return nil, errEmptyInput
	}
	return pw, nil
}
