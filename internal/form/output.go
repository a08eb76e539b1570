package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/ui"
)

func joinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}

// Write prints answers to w in the given format (config.OutputYAML,
// config.OutputJSON or config.OutputSummary). Keys follow question order.
func Write(w io.Writer, format, title string, answers []Answer, width int) error {
	switch format {
	case config.OutputYAML, "":
		return WriteYAML(w, answers)
	case config.OutputJSON:
		return WriteJSON(w, answers)
	case config.OutputSummary:
		return WriteSummary(w, title, answers, width)
	default:
		return fmt.Errorf("unknown output format %q (expected one of %v)", format, config.OutputFormats)
	}
}

// WriteYAML writes the answers as a YAML mapping. Skipped answers are null.
func WriteYAML(w io.Writer, answers []Answer) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range answers {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Name}
		val := &yaml.Node{}
		if a.Skipped {
			val.Kind, val.Tag, val.Value = yaml.ScalarNode, "!!null", "null"
		} else if err := val.Encode(a.Value); err != nil {
			return fmt.Errorf("failed to encode answer %q: %w", a.Name, err)
		}
		doc.Content = append(doc.Content, key, val)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes the answers as a JSON object. Skipped answers are null.
func WriteJSON(w io.Writer, answers []Answer) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, a := range answers {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return err
		}
		var val any
		if !a.Skipped {
			val = a.Value
		}
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("failed to encode answer %q: %w", a.Name, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(data)
	}
	if len(answers) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteSummary renders the answers in a result box.
func WriteSummary(w io.Writer, title string, answers []Answer, width int) error {
	res := ui.NewSuccessResult(title, nil).SetWidth(width)
	for _, a := range answers {
		if a.Skipped {
			res.AddSkipped(a.Title)
			continue
		}
		res.AddDetail(a.Title, a.Display)
	}
	return ui.RenderOnce(w, res.Render())
}
