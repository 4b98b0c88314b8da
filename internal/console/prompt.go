package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// TextTerminator ends multi-line entry on a plain line reader.
const TextTerminator = "."

// LinePrompter asks questions over plain line-oriented streams.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter reads answers from in and writes prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &LinePrompter{reader: reader, out: out}
}

// Confirm asks a yes/no question. The default answer is no.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	return promptYesNo(p.reader, p.out, question, false)
}

// ReadText collects multi-line text until a line holding only "." or end of input.
// The text is returned verbatim, without the terminator line.
func (p *LinePrompter) ReadText(label string) (string, error) {
	fmt.Fprintf(p.out, "%s (finish with a line containing only %q):\n", label, TextTerminator)
	var lines []string
	for {
		fmt.Fprint(p.out, "> ")
		line, err := readLine(p.reader)
		if err != nil && err != io.EOF {
			return "", err
		}
		if line == TextTerminator {
			break
		}
		if err == io.EOF {
			if line != "" {
				lines = append(lines, line)
			}
			if len(lines) == 0 {
				return "", io.EOF
			}
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptYesNo prompts for a yes/no response with a default.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" {
			if err == io.EOF {
				return false, errors.Wrap(io.EOF, label)
			}
			return defaultYes, nil
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, errors.Errorf("invalid response %q", line)
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}
