// Package form asks the questions of a config.Form one after another on a
// terminal.Device and writes the collected answers as YAML, JSON or a
// summary box.
package form
