// Package prompt implements interactive questions on a line-oriented
// terminal.Device.
//
// Every prompt is configured with chained setters and answered with a
// single blocking Ask call:
//
//	name, err := prompt.NewText("What's your name?").Ask(dev)
//	age, err := prompt.NewInteger[uint8]("How old are you?").Max(120).Ask(dev)
//	addr, err := prompt.NewEmail("What's your email?").Ask(dev)
//
//	langs := prompt.NewOptions("Go", "Rust", "C")
//	lang, err := prompt.NewSelect("Favourite language?", langs).Ask(dev)
//	used, err := prompt.NewMultiSelect("Languages you use?", langs).Min(1).Ask(dev)
//
// # Errors
//
// Answers rejected by a validator are shown inline and the prompt keeps
// running; they are never returned. Ask only returns an error when the
// device fails (a *terminal.DeviceError) or the prompt was configured
// inconsistently with its options (a *LogicError).
//
// # Concurrency
//
// A prompt owns the device for the duration of Ask. Callers must not use
// the device from another goroutine meanwhile, and must ask one question at
// a time.
package prompt
