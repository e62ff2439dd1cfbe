package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question for init and re-asks on unrecognized input.
// An empty answer takes the default. Input that ends without a usable answer
// is an error so a piped init never loops.
func confirm(reader *bufio.Reader, out io.Writer, question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", question, hint)
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return false, readErr
		}
		answer := strings.ToLower(strings.TrimSpace(raw))
		switch answer {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if readErr != nil {
			return false, fmt.Errorf("unrecognized answer %q", answer)
		}
		fmt.Fprintln(out, "Answer y or n.")
	}
}
