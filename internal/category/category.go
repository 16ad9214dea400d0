package category

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/task"
)

// Tier is the color set used to tint a category. Fill is the original
// translucent tint blended onto the app background.
type Tier struct {
	Fill     lipgloss.Color
	Text     lipgloss.Color
	Emphasis lipgloss.Color
}

var tiers = map[task.Category]Tier{
	task.Health:       {Fill: "#EDEFFA", Text: "#7990F8", Emphasis: "#7990F8"},
	task.Work:         {Fill: "#E8F6EF", Text: "#46CF8B", Emphasis: "#46CF8B"},
	task.MentalHealth: {Fill: "#F4EAF2", Text: "#BC5EAD", Emphasis: "#BC5EAD"},
	task.Others:       {Fill: "#EFEFEE", Text: "#908986", Emphasis: "#908986"},
}

var aliases = map[string]task.Category{
	"health":        task.Health,
	"work":          task.Work,
	"mentalhealth":  task.MentalHealth,
	"mental health": task.MentalHealth,
	"others":        task.Others,
}

// Resolve maps a category name to its enum value. Matching ignores case and
// accepts "mental health" for mentalHealth. Unknown names resolve to others.
func Resolve(name string) task.Category {
	if c, ok := aliases[strings.ToLower(name)]; ok {
		return c
	}
	return task.Others
}

func ColorFor(name string) Tier {
	return tiers[Resolve(name)]
}

type Summary struct {
	ID    string
	Name  string
	Type  task.Category
	Count int
	Color lipgloss.Color
	Icon  string
}

var cards = []Summary{
	{ID: "1", Name: "Health", Type: task.Health, Icon: "heart"},
	{ID: "2", Name: "Work", Type: task.Work, Icon: "briefcase"},
	{ID: "3", Name: "Mental Health", Type: task.MentalHealth, Icon: "meditation"},
	{ID: "4", Name: "Others", Type: task.Others, Icon: "more"},
}

// Summarize counts tasks per category. The result always holds the four
// categories in declared order.
func Summarize(tasks []task.Task) []Summary {
	counts := make(map[task.Category]int, len(cards))
	for _, t := range tasks {
		counts[t.Category]++
	}
	out := make([]Summary, len(cards))
	for i, c := range cards {
		c.Count = counts[c.Type]
		c.Color = tiers[c.Type].Fill
		out[i] = c
	}
	return out
}
