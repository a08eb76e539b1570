package form

import (
	"fmt"
	"math"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/prompt"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// Answer is the outcome of one question.
type Answer struct {
	Name    string
	Title   string
	Value   any    // string, int64 or []string; nil when skipped
	Display string // Text shown on the settled line
	Skipped bool
}

// Runner asks form questions.
type Runner struct {
	theme *ui.Theme
	keys  prompt.KeyMap
}

// NewRunner creates a runner rendering with theme. A nil theme uses the
// default theme.
func NewRunner(theme *ui.Theme) *Runner {
	if theme == nil {
		theme = ui.DefaultTheme()
	}
	return &Runner{theme: theme, keys: prompt.DefaultKeyMap()}
}

// WithKeyMap replaces the key bindings used by every prompt.
func (r *Runner) WithKeyMap(k prompt.KeyMap) *Runner {
	r.keys = k
	return r
}

// Run asks every question of f in order. It stops at the first error and
// returns the answers collected so far along with it.
func (r *Runner) Run(dev terminal.Device, f *config.Form) ([]Answer, error) {
	logging.Info("Form started", zap.String("form", f.Title), zap.Int("questions", len(f.Questions)))

	answers := make([]Answer, 0, len(f.Questions))
	for _, q := range f.Questions {
		a, err := r.Ask(dev, q)
		if err != nil {
			return answers, fmt.Errorf("question %q: %w", q.Name, err)
		}
		answers = append(answers, a)
	}

	logging.Info("Form completed", zap.String("form", f.Title))
	return answers, nil
}

// Ask asks a single question.
func (r *Runner) Ask(dev terminal.Device, q *config.Question) (Answer, error) {
	a := Answer{Name: q.Name, Title: q.Title}

	switch q.Kind {
	case config.KindText:
		in := prompt.NewInput(q.Title, minLength(q.MinLength)).
			Default(q.Default).
			Theme(r.theme).
			KeyMap(r.keys)
		if q.Charset != "" {
			in.Charset([]rune(q.Charset)...)
		}
		v, err := in.Ask(dev)
		if err != nil {
			return a, err
		}
		a.Value, a.Display = v, v

	case config.KindInteger:
		n := prompt.NewInteger[int64](q.Title).Theme(r.theme).KeyMap(r.keys)
		if q.Min != nil {
			n.Min(*q.Min)
		}
		if q.Max != nil {
			n.Max(*q.Max)
		}
		if q.NonZero {
			n.NonZero()
		}
		if q.Default != "" {
			d, err := n.Validate(q.Default)
			if err != nil {
				return a, fmt.Errorf("default %q: %w", q.Default, err)
			}
			n.Default(d)
		}
		v, err := n.Ask(dev)
		if err != nil {
			return a, err
		}
		a.Value, a.Display = v, fmt.Sprint(v)

	case config.KindEmail:
		addr, err := prompt.NewEmail(q.Title).Default(q.Default).Theme(r.theme).KeyMap(r.keys).Ask(dev)
		if err != nil {
			return a, err
		}
		a.Value, a.Display = addr.Address, addr.Address

	case config.KindSelect:
		s := prompt.NewSelect(q.Title, options(q)).Theme(r.theme).KeyMap(r.keys)
		if len(q.Initial) > 0 {
			s.Initial(q.Initial[0])
		}
		if q.Optional {
			v, ok, err := s.AskOptional(dev)
			if err != nil {
				return a, err
			}
			if !ok {
				a.Skipped = true
				return a, nil
			}
			a.Value, a.Display = v, label(q, v)
			return a, nil
		}
		v, err := s.Ask(dev)
		if err != nil {
			return a, err
		}
		a.Value, a.Display = v, label(q, v)

	case config.KindMultiSelect:
		m := prompt.NewMultiSelect(q.Title, options(q)).
			Initial(q.Initial...).
			Theme(r.theme).
			KeyMap(r.keys)
		if q.Min != nil {
			m.Min(clampInt(*q.Min))
		}
		if q.Max != nil {
			m.Max(clampInt(*q.Max))
		}
		vs, err := m.Ask(dev)
		if err != nil {
			return a, err
		}
		if len(vs) == 0 {
			a.Skipped = true
			return a, nil
		}
		labels := make([]string, len(vs))
		for i, v := range vs {
			labels[i] = label(q, v)
		}
		a.Value, a.Display = vs, joinLabels(labels)

	default:
		return a, fmt.Errorf("unsupported question kind %q", q.Kind)
	}

	return a, nil
}

func options(q *config.Question) *prompt.Options[string] {
	choices := make([]prompt.Choice[string], len(q.Options))
	for i, o := range q.Options {
		choices[i] = prompt.Choice[string]{Value: o.Value, Label: o.DisplayLabel()}
	}
	return prompt.Choices(choices...)
}

func label(q *config.Question, value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.DisplayLabel()
		}
	}
	return value
}

func minLength(n int) prompt.Validator[string] {
	return func(input string) (string, error) {
		if utf8.RuneCountInString(input) < n {
			return "", prompt.Invalidf("Must be at least %d characters", n)
		}
		return input, nil
	}
}

func clampInt(v int64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	if v < math.MinInt {
		return math.MinInt
	}
	return int(v)
}
