package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

var yesNoConstraints = []string{Yes, No}

func YesOrNo(question string) (string, error) {
	return Prompt(question, yesNoConstraints...)
}

// WaitForEnter shows msg and blocks until the user submits a line.
func WaitForEnter(msg string) error {
	_, err := Prompt(msg + " [enter]")
	return err
}

// Prompt reads one line. With constraints the first one is the default and
// any answer outside the list falls back to it.
func Prompt(question string, constraints ...string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString(question)
	if len(constraints) > 0 {
		prompt.WriteString(" [")
		prompt.WriteString(strings.ToUpper(constraints[0]))
		for i := 1; i < len(constraints); i++ {
			prompt.WriteString("/")
			prompt.WriteString(constraints[i])
		}
		prompt.WriteString("]:")
	}
	prompt.WriteString(" ")
	rl, err := readline.New(prompt.String())
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	if len(constraints) == 0 {
		return response, nil
	}
	return matchConstraint(response, constraints), nil
}

func matchConstraint(response string, constraints []string) string {
	normalized := strings.ToLower(strings.TrimSpace(response))
	for _, c := range constraints {
		if normalized == c {
			return normalized
		}
	}
	// no input or no match, return default
	return constraints[0]
}
