package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/field"
	"github.com/merthusman/fractalcode/internal/metrics"
)

var (
	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1).
			Width(40)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	graphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("49")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Padding(1, 1)
)

// StageUpdate is one frame of a running build.
type StageUpdate struct {
	Stage builder.Stage
	Scale int
	Grid  *field.Field
}

// LiveResult carries the outcome of a finished build.
type LiveResult struct {
	Whole    analysis.Estimate
	Quadrant analysis.Estimate
	Elapsed  time.Duration
	Err      error
}

// ChannelObserver forwards build stages over a channel, cloning each grid
// so the build can keep mutating its own copy.
type ChannelObserver struct {
	ch chan<- StageUpdate
}

func NewChannelObserver(ch chan<- StageUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

func (o *ChannelObserver) OnStage(stage builder.Stage, scale int, g *field.Field) {
	o.ch <- StageUpdate{Stage: stage, Scale: scale, Grid: g.Clone()}
}

// Close signals that no more updates will arrive.
func (o *ChannelObserver) Close() { close(o.ch) }

// TickMsg drives the spinner and elapsed clock.
type TickMsg time.Time

type stageMsg StageUpdate

type drainedMsg struct{}

type resultMsg LiveResult

// Live watches a build streamed over channels. The build itself runs in
// its own goroutine; the model only consumes frames.
type Live struct {
	updates <-chan StageUpdate
	done    <-chan LiveResult

	budget int
	used   int

	stage  builder.Stage
	scale  int
	frames int
	grid   *field.Field

	rough *metrics.Roughness
	hist  []float64

	start   time.Time
	elapsed time.Duration
	tick    int

	result *LiveResult
}

func NewLive(schedule builder.Schedule, updates <-chan StageUpdate, done <-chan LiveResult) *Live {
	return &Live{
		updates: updates,
		done:    done,
		budget:  schedule.DigitBudget(),
		rough:   metrics.NewRoughness(),
		start:   time.Now(),
	}
}

func waitForUpdate(ch <-chan StageUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return drainedMsg{}
		}
		return stageMsg(u)
	}
}

func waitForResult(ch <-chan LiveResult) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-ch)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Live) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForResult(m.done), tickCmd())
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case stageMsg:
		u := StageUpdate(msg)
		m.stage = u.Stage
		m.scale = u.Scale
		m.grid = u.Grid
		m.frames++
		if u.Stage == builder.StageSeed || u.Stage == builder.StageDetail {
			m.used += u.Scale * u.Scale
		}
		m.rough.OnStage(u.Stage, u.Scale, u.Grid)
		m.hist = append(m.hist, m.rough.Value())
		return m, waitForUpdate(m.updates)

	case drainedMsg:
		// Stop pumping; the result channel still delivers the outcome.
		return m, nil

	case resultMsg:
		r := LiveResult(msg)
		m.result = &r
		m.elapsed = r.Elapsed
		return m, nil

	case TickMsg:
		m.tick++
		if m.result == nil {
			m.elapsed = time.Since(m.start)
			return m, tickCmd()
		}
		return m, nil
	}

	return m, nil
}

func (m *Live) View() string {
	var b strings.Builder

	status := StatusRunning.Render("BUILDING " + AnimatedSpinner(m.tick/6))
	if m.result != nil {
		if m.result.Err != nil {
			status = StatusFailed.Render("FAILED")
		} else {
			status = StatusDone.Render("DONE")
		}
	}
	b.WriteString(headerStyle.Render("fractalcode live build") + " " + status + "\n\n")

	canvasView := "waiting for the first stage..."
	if m.grid != nil {
		canvasView = strings.TrimRight(Dots(m.grid, 44), "\n")
	}

	var stats strings.Builder
	stats.WriteString(labelStyle.Render("Stage") + valueStyle.Render(m.stage.String()) + "\n")
	stats.WriteString(labelStyle.Render("Scale") + valueStyle.Render(fmt.Sprintf("%d", m.scale)) + "\n")
	stats.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	stats.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(m.elapsed.Round(time.Millisecond).String()) + "\n")
	stats.WriteString(labelStyle.Render("Digits") + valueStyle.Render(fmt.Sprintf("%d / %d", m.used, m.budget)) + "\n")
	if m.budget > 0 {
		stats.WriteString(ProgressBar(float64(m.used)/float64(m.budget), 26) + "\n")
	}

	if len(m.hist) >= 2 {
		graph := asciigraph.Plot(m.hist,
			asciigraph.Height(4),
			asciigraph.Width(26),
			asciigraph.Caption("roughness"))
		stats.WriteString("\n" + graphStyle.Render(graph) + "\n")
	}

	if m.result != nil {
		stats.WriteString("\n")
		if m.result.Err != nil {
			stats.WriteString(StatusFailed.Render(m.result.Err.Error()) + "\n")
		} else {
			stats.WriteString(labelStyle.Render("D whole") + MetricValue.Render(fmtEstimate(m.result.Whole)) + "\n")
			stats.WriteString(labelStyle.Render("D quadrant") + MetricValue.Render(fmtEstimate(m.result.Quadrant)) + "\n")
			if m.result.Whole.Valid && m.result.Quadrant.Valid {
				delta := m.result.Whole.Dimension - m.result.Quadrant.Dimension
				stats.WriteString(labelStyle.Render("Delta") + valueStyle.Render(fmt.Sprintf("%+.4f", delta)) + "\n")
			}
		}
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(canvasView),
		" ",
		statsStyle.Render(stats.String())))
	b.WriteString("\n" + helpStyle.Render("q: quit"))
	return b.String()
}

func fmtEstimate(e analysis.Estimate) string {
	if !e.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", e.Dimension)
}
