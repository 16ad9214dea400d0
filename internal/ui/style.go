package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/category"
	"dayplan/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#757575"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder(), false, false, true, false)
	nowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	cardStyle     = lipgloss.NewStyle().Padding(0, 1).MarginRight(1)
)

func categoryText(c task.Category, s string) string {
	return lipgloss.NewStyle().Foreground(category.ColorFor(string(c)).Text).Render(s)
}

func renderCategories(sums []category.Summary) string {
	cards := make([]string, 0, len(sums))
	for _, s := range sums {
		tier := category.ColorFor(string(s.Type))
		body := fmt.Sprintf("%s\n%d tasks", s.Name, s.Count)
		cards = append(cards, cardStyle.Background(s.Color).Foreground(tier.Emphasis).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderSlotTask(t *task.Task) string {
	if t == nil {
		return ""
	}
	tier := category.ColorFor(string(t.Category))
	label := t.Title
	if t.Duration != "" {
		label += " · " + t.Duration
	}
	if t.Completed {
		label = "✓ " + label
	}
	return lipgloss.NewStyle().Background(tier.Fill).Foreground(tier.Text).Padding(0, 1).Render(label)
}

func nowLine(width int, label string) string {
	if width <= 0 {
		width = 40
	}
	n := max(width-len(label)-10, 4)
	return nowStyle.Render("      ● " + strings.Repeat("─", n) + " " + label)
}
