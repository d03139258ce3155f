package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/parkwatch/internal/domain"
	"github.com/mmcdole/parkwatch/internal/tui/styles"
)

// View renders the availability card centred in the terminal
func (m Model) View() string {
	card := styles.CardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		styles.TitleStyle.Render(m.Title),
		"",
		renderCount(m.State),
		styles.SubtitleStyle.Render(renderTotals(m.State)),
		"",
		m.renderStatus(),
	))

	footer := styles.DimStyle.Render(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc)
	view := lipgloss.JoinVertical(lipgloss.Center, card, footer)

	if m.Ready {
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// renderCount renders the large free-space number
func renderCount(s domain.State) string {
	if !s.HasData() {
		return styles.DimStyle.Render("--")
	}
	return styles.CountStyleFor(s.Occupancy()).Render(bigDigits(strconv.Itoa(s.AvailableSpaces)))
}

// renderTotals renders "libres de N" plus the optional breakdown
func renderTotals(s domain.State) string {
	if !s.HasData() {
		return "esperando datos"
	}
	line := fmt.Sprintf("libres de %d", s.TotalSpaces)
	var extra []string
	if s.OccupiedSpaces > 0 {
		extra = append(extra, fmt.Sprintf("%d ocupados", s.OccupiedSpaces))
	}
	if s.UnknownSpaces > 0 {
		extra = append(extra, fmt.Sprintf("%d sin determinar", s.UnknownSpaces))
	}
	if len(extra) > 0 {
		line += " · " + strings.Join(extra, " · ")
	}
	return line
}

// renderStatus renders the loading spinner, error, or staleness line
func (m Model) renderStatus() string {
	s := m.State
	switch {
	case s.HasError():
		return styles.ErrorStyle.Render(s.ErrorMessage)
	case s.IsLoading && !s.HasData():
		frame := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
		return styles.SpinnerStyle.Render(frame) + styles.DimStyle.Render(" cargando...")
	case s.HasData():
		return styles.DimStyle.Render("actualizado " + sinceText(m.Now.Sub(s.UpdatedAt)))
	default:
		return ""
	}
}

// sinceText renders an elapsed duration in short Spanish form
func sinceText(d time.Duration) string {
	switch {
	case d < time.Second:
		return "ahora"
	case d < time.Minute:
		return fmt.Sprintf("hace %ds", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("hace %dm", int(d/time.Minute))
	default:
		return fmt.Sprintf("hace %dh", int(d/time.Hour))
	}
}

// bigDigitRows holds a 3-row glyph per digit
var bigDigitRows = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {" ▄█", "  █", "  ▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
}

// bigDigits renders a number using block glyphs
func bigDigits(n string) string {
	var rows [3][]string
	for _, r := range n {
		glyph, ok := bigDigitRows[r]
		if !ok {
			glyph = [3]string{"   ", " " + string(r) + " ", "   "}
		}
		for i := range rows {
			rows[i] = append(rows[i], glyph[i])
		}
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " ")
	}
	return strings.Join(lines, "\n")
}
