package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	spectrum "github.com/tphakala/go-audio-spectrum"
)

const (
	uiFPS         = 20
	springFreq    = 8.0
	springDamping = 0.7
	minBarRows    = 4
	minProgress   = 20
	maxProgress   = 60
)

type tickMsg time.Time
type playbackEndedMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/uiFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitDone(f *feeder) tea.Cmd {
	return func() tea.Msg {
		<-f.Done()
		return playbackEndedMsg{err: f.Err()}
	}
}

// model is the meter screen. It reads the analyzer on every UI tick,
// independently of the feeder writing to it.
type model struct {
	title   string
	a       *spectrum.Analyzer
	feed    *feeder
	latency int32
	rows    int

	centers []uint16
	levels  []uint8
	peaks   []uint8
	bars    springField
	heights []float64

	progress progress.Model
	width    int
	quitting bool
	err      error
}

func newModel(title string, a *spectrum.Analyzer, f *feeder, latencyMs, rows int) model {
	n := a.RelevantBands()
	m := model{
		title:    title,
		a:        a,
		feed:     f,
		latency:  int32(latencyMs),
		rows:     max(rows, minBarRows),
		centers:  a.BandCenters()[:n],
		levels:   make([]uint8, a.NumBands()),
		peaks:    make([]uint8, a.NumBands()),
		bars:     newSpringField(uiFPS, springFreq, springDamping),
		heights:  make([]float64, n),
		progress: progress.New(progress.WithScaledGradient("#50FA7B", "#FF8C00"), progress.WithoutPercentage()),
	}
	m.bars.resize(n)
	m.progress.Width = minProgress
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitDone(m.feed))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.feed.TogglePause()
		}
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case playbackEndedMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-20, minProgress), maxProgress)
		return m, nil
	}
	return m, nil
}

// refresh pulls the spectrum at the newest write minus the output latency
// and moves the bars toward it.
func (m *model) refresh() {
	t := m.a.LastWriteTime() - m.latency
	if err := m.a.GetSpectrum(t, m.levels, m.peaks); err != nil {
		m.err = err
		return
	}
	for i := range m.heights {
		m.heights[i] = m.bars.step(i, float64(m.levels[i])/255)
	}
}

func (m model) peakFractions() []float64 {
	out := make([]float64, len(m.heights))
	for i := range out {
		out[i] = float64(m.peaks[i]) / 255
	}
	return out
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(m.title) + "\n\n")

	grid := layoutBars(m.heights, m.peakFractions(), m.rows)
	for _, line := range strings.Split(drawBars(grid, true), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("  " + labelStyle.Render(frequencyAxis(m.centers)) + "\n\n")

	pos := m.feed.Position().Truncate(time.Second)
	b.WriteString("  " + m.progress.ViewAs(m.feed.Progress()) + "  " + labelStyle.Render(pos.String()) + "\n")

	if m.err != nil {
		b.WriteString("\n  " + errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}
	status := "space pause · q quit"
	if m.feed.Paused() {
		status = "paused · " + status
	}
	b.WriteString("\n  " + helpStyle.Render(status) + "\n")
	return b.String()
}
