package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mrdon/birocrat/internal/form"
)

// RunPlain drives engine through a line-oriented prompt/response loop,
// the fallback used when stdout isn't a TTY (CI, piped output, demos
// without a terminal). It never rewinds — that is a tview-only
// convenience — and reports the same result/error RunPlain's tview
// counterpart (FormApp.Run) does.
func RunPlain(engine *form.Engine, in io.Reader, out io.Writer) (interface{}, error) {
	reader := bufio.NewReader(in)
	index := 0

	q, err := engine.FirstQuestion()
	if err != nil {
		return nil, err
	}

	for {
		fmt.Fprintln(out, q.Prompt())
		answer, err := readAnswer(reader, out, q)
		if err != nil {
			return nil, err
		}

		poll, err := engine.Progress(index, answer)
		if err != nil {
			return nil, err
		}
		switch poll.Kind {
		case form.FormPollError:
			fmt.Fprintf(out, "rejected: %s\n", poll.ErrorMessage)
		case form.FormPollDone:
			return engine.IntoResult()
		case form.FormPollQuestion:
			index++
			q = poll.Question
		}
	}
}

func readAnswer(reader *bufio.Reader, out io.Writer, q form.Question) (form.Answer, error) {
	switch typed := q.(type) {
	case form.Select:
		fmt.Fprintf(out, "options: %s\n", strings.Join(typed.Options, ", "))
		if typed.Multiple {
			fmt.Fprint(out, "> (comma-separated) ")
		} else {
			fmt.Fprint(out, "> ")
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return form.Options{}, nil
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return form.Options(parts), nil
	default:
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		return form.Text(strings.TrimRight(line, "\n")), nil
	}
}
