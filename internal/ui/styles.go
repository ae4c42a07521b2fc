package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// ═══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Printshop inks on parchment
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Primary palette - inks
	Ink        = lipgloss.Color("#2B3A67") // Iron-gall ink blue
	Indigo     = lipgloss.Color("#5C6BC0") // Indigo wash
	Vermilion  = lipgloss.Color("#E4572E") // Rubricator's red
	Crimson    = lipgloss.Color("#C23B22") // Deep crimson
	Gilt       = lipgloss.Color("#E8C547") // Gold leaf
	Ochre      = lipgloss.Color("#C98A2C") // Ochre accent
	Parchment  = lipgloss.Color("#F2E8CF") // Parchment ground
	Sepia      = lipgloss.Color("#8A6F4D") // Sepia tone
	Verdigris  = lipgloss.Color("#43AA8B") // Verdigris green
	Sage       = lipgloss.Color("#90BE6D") // Sage green
	PressBlue  = lipgloss.Color("#4D9DE0") // Press-room blue
	Aquamarine = lipgloss.Color("#6FD3C7") // Aquamarine accent

	// Neutrals
	White    = lipgloss.Color("#FDFDF8")
	Linen    = lipgloss.Color("#D8D4C5")
	Gray     = lipgloss.Color("#A3A69B")
	Slate    = lipgloss.Color("#5E6B73")
	Charcoal = lipgloss.Color("#2E3537")
)

// ═══════════════════════════════════════════════════════════════════════════════
// TEXT STYLES
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Title for main headings
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Gilt)

	// Subtitle for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Ochre)

	// Success messages
	Success = lipgloss.NewStyle().
		Foreground(Sage)

	// Error messages
	Error = lipgloss.NewStyle().
		Foreground(Vermilion).
		Bold(true)

	// Warning messages
	Warning = lipgloss.NewStyle().
		Foreground(Ochre)

	// Info messages
	Info = lipgloss.NewStyle().
		Foreground(PressBlue)

	// Muted/secondary text
	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	// Dim - even more subtle
	Dim = lipgloss.NewStyle().
		Foreground(Slate)

	// Highlight for important items
	Highlight = lipgloss.NewStyle().
			Foreground(Gilt).
			Bold(true)

	// Code/command style
	Code = lipgloss.NewStyle().
		Foreground(Aquamarine)
)

// ═══════════════════════════════════════════════════════════════════════════════
// BADGES - Record type indicators
// ═══════════════════════════════════════════════════════════════════════════════

var baseBadge = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true)

// CmdBadge returns the command definition badge.
func CmdBadge() string {
	if !IsTTY {
		return "[CMD]"
	}
	return baseBadge.Background(Indigo).Foreground(White).Render("⌘ CMD")
}

// TemplateBadge returns the template asset badge.
func TemplateBadge() string {
	if !IsTTY {
		return "[TPL]"
	}
	return baseBadge.Background(Verdigris).Foreground(White).Render("❡ TPL")
}

// ContextBadge returns the context document badge.
func ContextBadge() string {
	if !IsTTY {
		return "[CTX]"
	}
	return baseBadge.Background(Sepia).Foreground(White).Render("¶ CTX")
}

// ═══════════════════════════════════════════════════════════════════════════════
// LOGO
// ═══════════════════════════════════════════════════════════════════════════════

// Logo returns the folio title page.
func Logo() string {
	// Plain output for non-TTY environments
	if !IsTTY {
		return "\n  FOLIO - The Extension Printshop\n"
	}

	lines := []struct {
		text  string
		color lipgloss.Color
	}{
		{"", Charcoal},
		{"      ┌───────────────────────────────────┐", Slate},
		{"      │ ░                               ░ │", Linen},
		{"      │    █▀▀  ▄▀▀▄  █    ▀█▀  ▄▀▀▄      │", Gilt},
		{"      │    █▀   █  █  █     █   █  █      │", Ochre},
		{"      │    ▀    ▀▄▄▀  ▀▀▀  ▀▀▀  ▀▄▄▀      │", Sepia},
		{"      │                                   │", Slate},
		{"      │        ¶ the extension            │", Indigo},
		{"      │          printshop                │", Indigo},
		{"      │ ░                               ░ │", Linen},
		{"      └───────────────────────────────────┘", Slate},
		{"", Charcoal},
	}

	var result strings.Builder
	for _, line := range lines {
		styled := lipgloss.NewStyle().Foreground(line.color).Render(line.text)
		result.WriteString(styled)
		result.WriteString("\n")
	}

	return result.String()
}

// ═══════════════════════════════════════════════════════════════════════════════
// DECORATIVE ELEMENTS
// ═══════════════════════════════════════════════════════════════════════════════

// Divider returns a horizontal divider
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(Slate).
		Render(strings.Repeat("─", width))
}

// SectionHeader creates a decorated section header
func SectionHeader(title string) string {
	// Plain output for non-TTY environments
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	// Use terminal width, capped at 80
	width := TerminalWidth()
	if width > 80 {
		width = 80
	}

	titleStyled := lipgloss.NewStyle().
		Foreground(Gilt).
		Bold(true).
		Render(title)

	titleLen := lipgloss.Width(title)
	padLeft := (width - titleLen - 6) / 2
	padRight := width - titleLen - 6 - padLeft

	left := lipgloss.NewStyle().Foreground(Slate).Render(strings.Repeat("─", padLeft) + "┤ ")
	right := lipgloss.NewStyle().Foreground(Slate).Render(" ├" + strings.Repeat("─", padRight))

	return left + titleStyled + right
}

// ═══════════════════════════════════════════════════════════════════════════════
// STATUS LINE COMPONENTS
// ═══════════════════════════════════════════════════════════════════════════════

// StatusLine creates a status line with icon and message
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	iconStyled := lipgloss.NewStyle().Foreground(color).Render(icon)
	msgStyled := lipgloss.NewStyle().Foreground(color).Render(message)
	return fmt.Sprintf("  %s %s", iconStyled, msgStyled)
}

// SuccessLine creates a success status line
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Sage)
}

// ErrorLine creates an error status line
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Vermilion)
}

// WarningLine creates a warning status line
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Ochre)
}

// InfoLine creates an info status line
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, PressBlue)
}

// NoResults returns a friendly no-results state
func NoResults(query string) string {
	if !IsTTY {
		return fmt.Sprintf("\n  No commands found for \"%s\"\n  Try broader search terms\n", query)
	}

	mark := lipgloss.NewStyle().Foreground(Slate).Render("¶")
	message := lipgloss.NewStyle().Foreground(Gray).Render(fmt.Sprintf("No commands found for \"%s\"", query))
	hint := lipgloss.NewStyle().Foreground(Aquamarine).Render("Try broader search terms")

	return fmt.Sprintf("\n  %s %s\n  %s\n", mark, message, hint)
}

// EmptyShelf returns the empty-extension state
func EmptyShelf() string {
	if !IsTTY {
		return "\n  (empty)\n\n  This extension has no commands or templates yet.\n  Add your first command under commands/.\n"
	}

	page := lipgloss.NewStyle().Foreground(Slate).Render(`
      ┌─────────────┐
      │             │
      │   (empty)   │
      │             │
      └─────────────┘`)

	message := lipgloss.NewStyle().Foreground(Gray).Render("This extension has no commands or templates yet.")
	hint := lipgloss.NewStyle().Foreground(Aquamarine).Render("commands/<name>.toml")

	return fmt.Sprintf("%s\n\n  %s\n  Add your first command as %s.\n", page, message, hint)
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════════════════

// Truncate truncates text to max length with ellipsis
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}

// WrapText wraps text to fit within maxWidth, returning multiple lines.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= maxWidth {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}

// TerminalWidth returns the current terminal width, defaulting to 80 if unknown
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// DescriptionWidth returns the recommended width for descriptions based on terminal size
func DescriptionWidth() int {
	w := TerminalWidth()
	// Account for indentation (4 chars) and some margin
	desc := w - 8
	if desc < 40 {
		return 40
	}
	return desc
}

// ═══════════════════════════════════════════════════════════════════════════════
// PAGE TEMPLATES
// ═══════════════════════════════════════════════════════════════════════════════

// PageFooter creates a consistent page footer matching the header width
func PageFooter() string {
	// Plain output for non-TTY environments
	if !IsTTY {
		return "\n"
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}
	padSide := (width - 5) / 2 // 5 = " ¶ " with spaces
	left := strings.Repeat("─", padSide)
	right := strings.Repeat("─", width-padSide-5)
	line := lipgloss.NewStyle().Foreground(Slate).Render(left + " ¶ " + right)
	return "\n" + line + "\n"
}
