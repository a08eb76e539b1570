package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// QuestionKind selects the prompt used for a question.
type QuestionKind string

const (
	KindText        QuestionKind = "text"
	KindInteger     QuestionKind = "integer"
	KindEmail       QuestionKind = "email"
	KindSelect      QuestionKind = "select"
	KindMultiSelect QuestionKind = "multiselect"
)

// Kinds lists every supported question kind.
var Kinds = []QuestionKind{KindText, KindInteger, KindEmail, KindSelect, KindMultiSelect}

// Form is a questionnaire loaded from YAML.
//
//	version: 1
//	title: Onboarding
//	questions:
//	  - name: age
//	    kind: integer
//	    title: How old are you?
//	    min: 0
//	    max: 120
//	  - name: langs
//	    kind: multiselect
//	    title: Which languages do you use?
//	    options: [Go, Rust, {value: c, label: C}]
type Form struct {
	Version     int         `yaml:"version"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	Questions   []*Question `yaml:"questions"`
}

// Question is one entry of a Form. Which fields apply depends on Kind.
type Question struct {
	Name  string       `yaml:"name"`  // Key of the answer in the output
	Kind  QuestionKind `yaml:"kind"`  // Prompt type
	Title string       `yaml:"title"` // Text shown to the user

	Default   string `yaml:"default,omitempty"`    // Pre-filled text (text, integer, email)
	Charset   string `yaml:"charset,omitempty"`    // Allowed characters (text)
	MinLength int    `yaml:"min_length,omitempty"` // Shortest accepted answer (text)

	Min     *int64 `yaml:"min,omitempty"`      // Value bound (integer) or fewest choices (multiselect)
	Max     *int64 `yaml:"max,omitempty"`      // Value bound (integer) or most choices (multiselect)
	NonZero bool   `yaml:"non_zero,omitempty"` // Reject 0 (integer)

	Options  []Option `yaml:"options,omitempty"`  // Choices (select, multiselect)
	Initial  []string `yaml:"initial,omitempty"`  // Preselected option values (select, multiselect)
	Optional bool     `yaml:"optional,omitempty"` // Enter skips the question (select)
}

// Option is a choice of a select question. In YAML it is either a plain
// scalar, used as both value and label, or a {value, label} mapping.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		o.Value = node.Value
		o.Label = ""
		return nil
	case yaml.MappingNode:
		type plain Option
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*o = Option(p)
		return nil
	default:
		return fmt.Errorf("line %d: option must be a scalar or a mapping with value and label", node.Line)
	}
}

// DisplayLabel returns the label, or the value when no label is set.
func (o Option) DisplayLabel() string {
	if o.Label == "" {
		return o.Value
	}
	return o.Label
}

// LoadForm reads and validates the form at path.
func LoadForm(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}
	f, err := ParseForm(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseForm decodes and validates a form. When validation fails the
// returned error is a *FormError listing every problem.
func ParseForm(data []byte) (*Form, error) {
	var f Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	if errs := f.Validate(); len(errs) > 0 {
		return nil, &FormError{Problems: errs}
	}
	return &f, nil
}

// Validate checks the form for problems that would make it impossible to
// ask. Returns a slice of validation errors (empty if valid).
func (f *Form) Validate() []error {
	var errs []error

	if f.Version != 1 {
		errs = append(errs, fmt.Errorf("unsupported form version: %d (expected 1)", f.Version))
	}
	if len(f.Questions) == 0 {
		errs = append(errs, fmt.Errorf("form has no questions"))
	}

	seen := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		if q == nil {
			errs = append(errs, fmt.Errorf("question %d: empty entry", i+1))
			continue
		}
		where := fmt.Sprintf("question %d", i+1)
		if q.Name != "" {
			where = fmt.Sprintf("question %q", q.Name)
		}

		if q.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		} else if seen[q.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate name", where))
		}
		seen[q.Name] = true

		for _, err := range q.validate() {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}

	return errs
}

func (q *Question) validate() []error {
	var errs []error

	if q.Title == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if !slices.Contains(Kinds, q.Kind) {
		errs = append(errs, fmt.Errorf("unknown kind %q (expected one of %v)", q.Kind, Kinds))
		return errs
	}

	if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
		errs = append(errs, fmt.Errorf("min %d is greater than max %d", *q.Min, *q.Max))
	}
	if q.Charset != "" && q.Kind != KindText {
		errs = append(errs, fmt.Errorf("charset only applies to text questions"))
	}
	if q.NonZero && q.Kind != KindInteger {
		errs = append(errs, fmt.Errorf("non_zero only applies to integer questions"))
	}
	if q.Optional && q.Kind != KindSelect {
		errs = append(errs, fmt.Errorf("optional only applies to select questions"))
	}

	switch q.Kind {
	case KindSelect, KindMultiSelect:
		errs = append(errs, q.validateOptions()...)
		if q.Default != "" {
			errs = append(errs, fmt.Errorf("default does not apply to %s questions, use initial", q.Kind))
		}
	default:
		if len(q.Options) > 0 || len(q.Initial) > 0 {
			errs = append(errs, fmt.Errorf("options and initial only apply to select questions"))
		}
	}

	if q.Kind == KindMultiSelect && q.Min != nil && *q.Min < 0 {
		errs = append(errs, fmt.Errorf("min must not be negative"))
	}

	return errs
}

func (q *Question) validateOptions() []error {
	var errs []error

	if len(q.Options) == 0 {
		errs = append(errs, fmt.Errorf("at least one option is required"))
	}
	values := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o.Value == "" {
			errs = append(errs, fmt.Errorf("option value must not be empty"))
			continue
		}
		if values[o.Value] {
			errs = append(errs, fmt.Errorf("duplicate option %q", o.Value))
		}
		values[o.Value] = true
	}
	for _, v := range q.Initial {
		if !values[v] {
			errs = append(errs, fmt.Errorf("initial value %q is not an option", v))
		}
	}
	if q.Kind == KindSelect && len(q.Initial) > 1 {
		errs = append(errs, fmt.Errorf("select questions take at most one initial value"))
	}

	return errs
}

// OptionValues returns the option values in order.
func (q *Question) OptionValues() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Value
	}
	return out
}

// FormError collects the validation problems of a form.
type FormError struct {
	Problems []error
}

// Error implements the error interface
func (e *FormError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid form: " + e.Problems[0].Error()
	}
	return fmt.Sprintf("invalid form: %d problems, first: %v", len(e.Problems), e.Problems[0])
}

// Unwrap returns the individual problems
func (e *FormError) Unwrap() []error {
	return e.Problems
}
