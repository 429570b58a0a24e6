package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Status indicators
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusDone = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	// Sparkline bar colors
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders a progress bar colored by how far along it is
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		norm := (v - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}

		c := chars[idx]
		if norm > 0.7 {
			result.WriteString(SparkHigh.Render(string(c)))
		} else if norm > 0.3 {
			result.WriteString(SparkMid.Render(string(c)))
		} else {
			result.WriteString(SparkLow.Render(string(c)))
		}
	}

	return result.String()
}

// Decorative separator
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
