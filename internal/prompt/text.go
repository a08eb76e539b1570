package prompt

// NewText creates an input that accepts any text, including the empty
// string. Its validator never fails.
func NewText(title string) *Input[string] {
	return NewInput(title, func(input string) (string, error) {
		return input, nil
	})
}
