package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ANSI color numbers
const (
	Red       = "1"
	Green     = "2"
	Yellow    = "3"
	Magenta   = "5"
	Cyan      = "6"
	Gray      = "8"
	BrightRed = "9"
)

var colorEnabled = true

func init() {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		colorEnabled = false
	}
}

func EnableColor(enable bool) {
	colorEnabled = enable
	if enable {
		lipgloss.SetColorProfile(termenv.ANSI256)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Colorize renders text in the given ANSI color, or returns it unchanged
// when color is disabled
func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func MagentaText(text string) string {
	return Colorize(Magenta, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}
