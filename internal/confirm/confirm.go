// Package confirm provides the operator confirmation capability used by
// the subscription manager and the upgrade driver.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/virtstack/ffu/internal/messages"
)

// ErrDeclined is returned when the operator answers no to a gate that
// terminates the run. It maps to a clean exit, not a failure.
var ErrDeclined = errors.New("operator declined")

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string, defaultYes bool) (bool, error)
}

// Func adapts a function to the Confirmer interface.
type Func func(prompt string, defaultYes bool) (bool, error)

// Confirm calls f.
func (f Func) Confirm(prompt string, defaultYes bool) (bool, error) {
	return f(prompt, defaultYes)
}

// Stdin implements Confirmer over an input/output stream pair.
// defaultYes controls the result when the operator provides an empty
// response.
type Stdin struct {
	In  io.Reader
	Out io.Writer
}

// Confirm asks the yes/no question and returns the operator's choice.
func (s Stdin) Confirm(prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(s.In)
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(s.Out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(s.Out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
