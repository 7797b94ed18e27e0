package views

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when a view needs input but stdin is not a terminal
var ErrNotInteractive = errors.New("input required but stdin is not a terminal")

// Prompter collects input for views
type Prompter interface {
	Input(label, def string) (string, error)
	Password(label string) (string, error)
	Confirm(label string) (bool, error)
	Select(label string, items []string) (int, error)
}

// IsCancelled reports whether err is the user backing out of a prompt
func IsCancelled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}

// TerminalPrompter prompts on the controlling terminal
type TerminalPrompter struct {
	in  *os.File
	out io.Writer
}

// NewTerminalPrompter prompts on stdin and writes prompts to stdout
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{in: os.Stdin, out: os.Stdout}
}

// Interactive reports whether stdin is a terminal
func (p *TerminalPrompter) Interactive() bool {
	return term.IsTerminal(int(p.in.Fd()))
}

func (p *TerminalPrompter) Input(label, def string) (string, error) {
	if !p.Interactive() {
		return "", fmt.Errorf("%s: %w", label, ErrNotInteractive)
	}

	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	return prompt.Run()
}

// Password reads a line without echo
func (p *TerminalPrompter) Password(label string) (string, error) {
	if !p.Interactive() {
		return "", fmt.Errorf("%s: %w", label, ErrNotInteractive)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(p.in.Fd()))
	fmt.Fprintln(p.out) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

func (p *TerminalPrompter) Confirm(label string) (bool, error) {
	if !p.Interactive() {
		return false, fmt.Errorf("%s: %w", label, ErrNotInteractive)
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *TerminalPrompter) Select(label string, items []string) (int, error) {
	if !p.Interactive() {
		return -1, fmt.Errorf("%s: %w", label, ErrNotInteractive)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "{{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return -1, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}
