package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestResult_SuccessKeepsDetailOrder(t *testing.T) {
	r := NewSuccessResult("Onboarding", nil).SetWidth(80)
	r.AddDetail("name", "Ada").AddDetail("age", "36").AddSkipped("speed")

	out := ansi.Strip(r.Render())
	for _, want := range []string{"COMPLETE", "Onboarding", "Ada", "36", "Skipped", "2/3 answered"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered result missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "name:") > strings.Index(out, "age:") {
		t.Error("details rendered out of order")
	}
}

func TestResult_NoBarWhenEverythingAnswered(t *testing.T) {
	r := NewSuccessResult("Done", []Detail{{Key: "a", Value: "1"}}).SetWidth(80)
	if strings.Contains(ansi.Strip(r.Render()), "answered") {
		t.Error("completion bar should only show when something was skipped")
	}
}

func TestResult_Failure(t *testing.T) {
	out := ansi.Strip(RenderFailure("Remote session", errors.New("connection refused"), []string{"Is the server running?"}))
	for _, want := range []string{"FAILED", "connection refused", "Troubleshooting:", "Is the server running?"} {
		if !strings.Contains(out, want) {
			t.Errorf("failure box missing %q:\n%s", want, out)
		}
	}
}

func TestBanner_Render(t *testing.T) {
	out := ansi.Strip(NewBanner("Onboarding", "A few questions", Param{"Questions", "5"}).SetWidth(70).Render())
	for _, want := range []string{"ONBOARDING", "A few questions", "Questions:", "5"} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
}

func TestCompletionBar(t *testing.T) {
	if got := ansi.Strip(CompletionBar(1, 4, 20)); !strings.HasSuffix(got, "1/4 answered") {
		t.Errorf("CompletionBar() = %q", got)
	}
}

func TestNewChrome_MergesDefaults(t *testing.T) {
	c := NewChrome(Palette{Accent: "2"})
	if c.accent != lipgloss.Color("2") {
		t.Errorf("accent = %q, want 2", c.accent)
	}
	if c.failure != ErrorColor || c.muted != MutedColor {
		t.Errorf("unset colours not defaulted: failure=%q muted=%q", c.failure, c.muted)
	}

	out := ansi.Strip(NewSuccessResult("Themed", nil).SetPalette(Palette{Accent: "2"}).SetWidth(80).AddSkipped("x").Render())
	if !strings.Contains(out, "0/1 answered") {
		t.Errorf("themed result missing completion bar:\n%s", out)
	}
}

func TestResult_BarFitsInsideBox(t *testing.T) {
	for _, width := range []int{60, 80, 100} {
		t.Run(strconv.Itoa(width), func(t *testing.T) {
			r := NewSuccessResult("Onboarding", nil).SetWidth(width)
			r.AddDetail("name", "Ada").AddSkipped("food").AddSkipped("langs")

			lines := strings.Split(ansi.Strip(r.Render()), "\n")
			for _, line := range lines {
				if got := lipgloss.Width(line); got != width {
					t.Errorf("row width = %d, want %d: %q", got, width, line)
				}
			}

			var barRow string
			for _, line := range lines {
				if strings.Contains(line, "1/3") {
					barRow = line
				}
			}
			if !strings.Contains(barRow, "1/3 answered") {
				t.Errorf("label split from the bar:\n%s", strings.Join(lines, "\n"))
			}
		})
	}
}

func TestCompletionBar_Width(t *testing.T) {
	tests := []struct {
		answered, total, width, want int
	}{
		{1, 4, 40, 40},
		{9, 12, 51, 51},
		{0, 1, 5, minBarWidth + len("  0/1 answered")},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d@%d", tt.answered, tt.total, tt.width), func(t *testing.T) {
			if got := lipgloss.Width(CompletionBar(tt.answered, tt.total, tt.width)); got != tt.want {
				t.Errorf("width = %d, want %d", got, tt.want)
			}
		})
	}
}
