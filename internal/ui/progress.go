package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// minBarWidth is the narrowest bar drawn, even when the label leaves less room.
const minBarWidth = 10

// CompletionBar renders a static progress bar showing how many of total
// questions were answered, followed by an "answered/total" label. The bar
// and label together take width cells.
func CompletionBar(answered, total, width int) string {
	return completionBar(answered, total, width, SuccessColor)
}

func completionBar(answered, total, width int, fill lipgloss.Color) string {
	label := fmt.Sprintf("  %d/%d answered", answered, total)
	percent := 0.0
	if total > 0 {
		percent = float64(answered) / float64(total)
	}

	bar := progress.New(
		progress.WithSolidFill(string(fill)),
		progress.WithoutPercentage(),
		progress.WithWidth(max(width-lipgloss.Width(label), minBarWidth)),
	)
	return bar.ViewAs(percent) + label
}
