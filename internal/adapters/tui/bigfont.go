package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// digitMap holds the block glyph of every character a clock can contain.
var digitMap = map[rune][glyphHeight]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
}

// glyphHeight is the number of rows of every glyph in digitMap.
const glyphHeight = 5

// renderBigClock draws a clock string such as "24:59" or "01:00:00" with
// digitMap glyphs. When the glyphs would not fit in width it falls back to
// a single bold line.
func renderBigClock(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if bigClockWidth(clock) > width {
		return style.Render(clock)
	}

	var rows [glyphHeight]strings.Builder
	for _, ch := range clock {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for row := 0; row < glyphHeight; row++ {
			if rows[row].Len() > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(glyph[row])
		}
	}

	styled := make([]string, glyphHeight)
	for row := range rows {
		styled[row] = style.Render(rows[row].String())
	}
	return strings.Join(styled, "\n")
}

// bigClockWidth returns the column count renderBigClock needs for clock.
func bigClockWidth(clock string) int {
	width := 0
	for _, ch := range clock {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		if width > 0 {
			width++
		}
		width += lipgloss.Width(glyph[0])
	}
	return width
}
