package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spotfinder/internal/model"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(screen model.Screen, adding bool, width int) string {
	if screen == model.ScreenParticipants {
		if adding {
			return renderAddFormHelp(width)
		}
		return renderParticipantsHelp(width)
	}
	return renderResultsHelp(width)
}

func renderAddFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("j/k", "pick suggestion"),
		helpKey("enter", "select / add"),
		helpKey("esc", "list"),
	}
	return renderHelpLine(keys, width)
}

func renderParticipantsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("a", "add person"),
		helpKey("d", "remove"),
		helpKey("s", "find spots"),
		helpKey("q", "quit"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderResultsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("+/-", "radius"),
		helpKey("m", "mode"),
		helpKey("a", "alcohol"),
		helpKey("shift+←↑↓→", "move center"),
		helpKey("c", "recenter"),
		helpKey("b", "people"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("People Screen"),
		helpSection([]helpItem{
			{"a", "Open the add-person form"},
			{"tab", "Switch between name and address fields"},
			{"j/k (in dropdown)", "Pick an address suggestion"},
			{"enter", "Select suggestion, then add the person"},
			{"d", "Remove the selected person"},
			{"s / enter", "Compute the middle and find spots"},
			{"q", "Quit"},
		}),
		titleSection("Spots Screen"),
		helpSection([]helpItem{
			{"j / k", "Move through results"},
			{"g / G", "Jump to top / bottom"},
			{"+ / -", "Widen / narrow the search radius"},
			{"shift+arrows", "Drag the search center manually"},
			{"c", "Snap the center back to the group middle"},
			{"m", "Toggle distance / fair-travel-time ranking"},
			{"a", "Toggle the alcohol-served filter"},
			{"r", "Search again"},
			{"b / esc", "Back to people"},
		}),
		titleSection("Notes"),
		helpSection([]helpItem{
			{"center", "Follows the group middle until you drag it; adding or removing a person snaps it back"},
			{"fair mode", "Ranks the closest few spots by how evenly everyone's travel time is spread"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
