package form

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/terminal/terminaltest"
	"github.com/muurk/termask/internal/ui"
)

const onboarding = `
version: 1
title: Onboarding
questions:
  - name: name
    kind: text
    title: Name?
    min_length: 2
  - name: age
    kind: integer
    title: Age?
    min: 0
    max: 120
  - name: email
    kind: email
    title: Email?
  - name: food
    kind: select
    title: Food?
    optional: true
    options: [Pizza, {value: salad, label: Green salad}]
  - name: langs
    kind: multiselect
    title: Langs?
    min: 1
    options: [Go, Rust, C]
`

func mustForm(t *testing.T, src string) *config.Form {
	t.Helper()
	f, err := config.ParseForm([]byte(src))
	if err != nil {
		t.Fatalf("ParseForm() error = %v", err)
	}
	return f
}

func TestRunner_Run(t *testing.T) {
	keys := terminaltest.Seq(
		"A\n", "da\n", // too short, then accepted
		"150\n", terminal.Backspace, terminal.Backspace, terminal.Backspace, "36\n",
		"ada@example.com\n",
		terminal.Down, " ",
		"3 1 \n",
	)
	scr := terminaltest.New(20, keys...)

	answers, err := NewRunner(ui.PlainTheme(ui.Palette{})).Run(scr, mustForm(t, onboarding))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []Answer{
		{Name: "name", Title: "Name?", Value: "Ada", Display: "Ada"},
		{Name: "age", Title: "Age?", Value: int64(36), Display: "36"},
		{Name: "email", Title: "Email?", Value: "ada@example.com", Display: "ada@example.com"},
		{Name: "food", Title: "Food?", Value: "salad", Display: "Green salad"},
		{Name: "langs", Title: "Langs?", Value: []string{"C", "Go"}, Display: "C, Go"},
	}
	if !reflect.DeepEqual(answers, want) {
		t.Errorf("answers =\n%+v\nwant\n%+v", answers, want)
	}

	wantLines := []string{
		"? Name? Ada",
		"? Age? 36",
		"? Email? ada@example.com",
		"? Food? Green salad",
		"? Langs? C, Go",
	}
	if !reflect.DeepEqual(scr.Lines(), wantLines) {
		t.Errorf("screen =\n%s", strings.Join(scr.Lines(), "\n"))
	}
}

func TestRunner_Skips(t *testing.T) {
	src := `
version: 1
title: Skips
questions:
  - {name: food, kind: select, title: "Food?", optional: true, options: [a, b]}
  - {name: tags, kind: multiselect, title: "Tags?", options: [x, y]}
`
	scr := terminaltest.New(10, terminal.Enter, terminal.Enter)

	answers, err := NewRunner(ui.PlainTheme(ui.Palette{})).Run(scr, mustForm(t, src))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, a := range answers {
		if !a.Skipped || a.Value != nil {
			t.Errorf("answer %q = %+v, want skipped", a.Name, a)
		}
	}
	if scr.Text() != "? Food? Skipped\n? Tags? Skipped" {
		t.Errorf("screen = %q", scr.Text())
	}
}

func TestRunner_Defaults(t *testing.T) {
	src := `
version: 1
title: Defaults
questions:
  - {name: n, kind: integer, title: "N?", default: "7", non_zero: true}
  - {name: s, kind: select, title: "S?", options: [a, b, c], initial: [c]}
  - {name: m, kind: multiselect, title: "M?", options: [a, b, c], initial: [b]}
`
	scr := terminaltest.New(10, terminal.Enter, terminal.Enter, terminal.Enter)

	answers, err := NewRunner(ui.PlainTheme(ui.Palette{})).Run(scr, mustForm(t, src))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if answers[0].Value != int64(7) || answers[1].Value != "c" || !reflect.DeepEqual(answers[2].Value, []string{"b"}) {
		t.Errorf("answers = %+v", answers)
	}
}

func TestRunner_BadIntegerDefault(t *testing.T) {
	src := `
version: 1
title: Bad
questions:
  - {name: n, kind: integer, title: "N?", max: 5, default: "9"}
`
	_, err := NewRunner(ui.PlainTheme(ui.Palette{})).Run(terminaltest.New(10), mustForm(t, src))
	if err == nil || !strings.Contains(err.Error(), `default "9"`) {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRunner_StopsOnDeviceError(t *testing.T) {
	scr := terminaltest.New(20, terminaltest.Type("Ada\n")...)

	answers, err := NewRunner(ui.PlainTheme(ui.Palette{})).Run(scr, mustForm(t, onboarding))
	if !errors.Is(err, io.EOF) || !terminal.IsDeviceError(err) {
		t.Fatalf("Run() error = %v, want device error wrapping EOF", err)
	}
	if !strings.Contains(err.Error(), `question "age"`) {
		t.Errorf("error should name the question: %v", err)
	}
	if len(answers) != 1 || answers[0].Value != "Ada" {
		t.Errorf("partial answers = %+v", answers)
	}
}

func TestRunner_Charset(t *testing.T) {
	src := `
version: 1
title: Charset
questions:
  - {name: code, kind: text, title: "Code?", charset: "0123456789"}
`
	scr := terminaltest.New(10, terminaltest.Type("a1b2\n")...)

	answers, err := NewRunner(ui.PlainTheme(ui.Palette{})).Run(scr, mustForm(t, src))
	if err != nil || answers[0].Value != "12" {
		t.Errorf("Run() = %+v, %v", answers, err)
	}
}
