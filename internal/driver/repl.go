package driver

import (
	"errors"

	"github.com/chzyer/readline"
)

// RunPrompt reads one line at a time until EOF (Ctrl-D), running each
// through the pipeline and resetting error state between lines, per
// spec.md §6: "Errors in a line reset the error flag before the next
// prompt." Replaces the teacher's bufio.NewReader REPL loop with
// readline for history and line editing.
func (d *Driver) RunPrompt() int {
	return d.RunPromptWithPrompt("> ")
}

// RunPromptWithPrompt is RunPrompt with a caller-supplied prompt string,
// letting the CLI front end color it without the driver depending on
// a terminal-color library itself.
func (d *Driver) RunPromptWithPrompt(prompt string) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
		Stdout: d.opts.Stdout,
		Stderr: d.opts.Stderr,
	})
	if err != nil {
		return ExitUsage
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			break // io.EOF or readline.ErrInterrupt-less EOF
		}
		if line == "" {
			continue
		}
		d.RunSource(line)
	}
	return ExitOK
}
