package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

// Menu asks the user to pick one of a fixed list of options.
type Menu struct {
	reader *LineReader
	writer io.Writer
}

// NewMenu creates a menu reading answers from in and writing to out.
func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{reader: NewLineReader(in), writer: out}
}

// Choose prints the numbered options and returns the index of the chosen
// one. Invalid answers are asked again until input ends.
func (m *Menu) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("menu %q has no options", title)
	}

	if _, err := fmt.Fprintln(m.writer, TitleStyle.Render(title)); err != nil {
		return 0, fmt.Errorf("failed to write menu: %w", err)
	}
	for i, opt := range options {
		if _, err := fmt.Fprintf(m.writer, "  %d. %s\n", i+1, opt); err != nil {
			return 0, fmt.Errorf("failed to write menu: %w", err)
		}
	}

	for {
		if _, err := fmt.Fprint(m.writer, FormatPrompt("Escolha uma opção")); err != nil {
			return 0, fmt.Errorf("failed to write prompt: %w", err)
		}
		answer, err := m.reader.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		if _, err := fmt.Fprintln(m.writer, FormatWarning(fmt.Sprintf("Opção inválida: %q", answer))); err != nil {
			return 0, fmt.Errorf("failed to write warning: %w", err)
		}
	}
}
