// Package tui is a demo tview/tcell front-end for the form engine,
// adapted from the teacher's internal/tui/app.go: a tview.Application
// wrapping a single stateful engine, one tview.Form page per question.
// The engine is driven directly from the form buttons' callbacks on the
// UI goroutine. It is an ordinary
// consumer of form.Engine's poll API, not part of the engine's
// contract.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mrdon/birocrat/internal/form"
)

// FormApp drives one form.Engine through a tview UI until it completes
// or the user quits.
type FormApp struct {
	app    *tview.Application
	pages  *tview.Pages
	engine *form.Engine

	index  int
	result interface{}
	err    error
}

// NewApplication builds a tview application around an already-started
// engine (New has already obtained the first question).
func NewApplication(engine *form.Engine) *FormApp {
	fa := &FormApp{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		engine: engine,
	}
	fa.app.SetRoot(fa.pages, true)
	fa.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			fa.app.Stop()
			return nil
		}
		return event
	})
	return fa
}

// Run shows the first question and blocks until the form finishes or
// the user quits. It returns the script's result document, or an error
// if the user quit early or the engine reported a hard error.
func (fa *FormApp) Run() (interface{}, error) {
	q, err := fa.engine.FirstQuestion()
	if err != nil {
		return nil, err
	}
	fa.showQuestion(q, nil, "")
	if err := fa.app.Run(); err != nil {
		return nil, err
	}
	if fa.err == nil {
		if _, err := fa.engine.IntoResult(); err != nil {
			return nil, fmt.Errorf("form quit before completion: %w", err)
		}
	}
	return fa.result, fa.err
}

func (fa *FormApp) showQuestion(q form.Question, suggested form.Answer, errMsg string) {
	page := fmt.Sprintf("q%d", fa.index)
	tform := tview.NewForm()
	tform.SetBorder(true).SetTitle(" Form ").SetTitleAlign(tview.AlignLeft)
	tform.AddTextView("", q.Prompt(), 0, 2, true, false)

	if errMsg != "" {
		tform.AddTextView("", "[red]"+errMsg+"[-]", 0, 2, true, false)
	}

	submit := fa.buildFields(tform, q, suggested)
	tform.AddButton("Next", submit)
	if fa.index > 0 {
		tform.AddButton("Back", func() {
			fa.index--
			prevQ, prevAnswer, ok := fa.engine.GetQuestion(fa.index)
			if ok {
				fa.showQuestion(prevQ, prevAnswer, "")
			}
		})
	}
	tform.AddButton("Quit", func() { fa.app.Stop() })

	fa.pages.AddAndSwitchToPage(page, tform, true)
}

// buildFields populates tform's input widgets for q and returns a
// submit closure that reads them back into a form.Answer and advances
// the engine.
func (fa *FormApp) buildFields(tform *tview.Form, q form.Question, suggested form.Answer) func() {
	switch typed := q.(type) {
	case form.Simple, form.Multiline:
		initial := ""
		if t, ok := suggested.(form.Text); ok {
			initial = string(t)
		}
		tform.AddInputField("Answer", initial, 60, nil, nil)
		return func() {
			field := tform.GetFormItemByLabel("Answer").(*tview.InputField)
			fa.submit(form.Text(field.GetText()))
		}
	case form.Select:
		selected := map[string]bool{}
		if opts, ok := suggested.(form.Options); ok {
			for _, o := range opts {
				selected[o] = true
			}
		}
		if !typed.Multiple {
			current := 0
			for i, opt := range typed.Options {
				if selected[opt] {
					current = i
				}
			}
			tform.AddDropDown("Answer", typed.Options, current, nil)
			return func() {
				_, text := tform.GetFormItemByLabel("Answer").(*tview.DropDown).GetCurrentOption()
				fa.submit(form.Options{text})
			}
		}
		for _, opt := range typed.Options {
			tform.AddCheckbox(opt, selected[opt], nil)
		}
		return func() {
			var chosen form.Options
			for _, opt := range typed.Options {
				if tform.GetFormItemByLabel(opt).(*tview.Checkbox).IsChecked() {
					chosen = append(chosen, opt)
				}
			}
			fa.submit(chosen)
		}
	default:
		return func() { fa.submit(nil) }
	}
}

func (fa *FormApp) submit(answer form.Answer) {
	poll, err := fa.engine.Progress(fa.index, answer)
	if err != nil {
		fa.err = err
		fa.app.Stop()
		return
	}
	switch poll.Kind {
	case form.FormPollError:
		q, suggested, _ := fa.engine.NextQuestion()
		fa.showQuestion(q, suggested, poll.ErrorMessage)
	case form.FormPollDone:
		result, err := fa.engine.IntoResult()
		fa.result, fa.err = result, err
		fa.app.Stop()
	case form.FormPollQuestion:
		fa.index++
		fa.showQuestion(poll.Question, poll.SuggestedAnswer, "")
	}
}
