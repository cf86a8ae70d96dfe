package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/awsdrill/awsdrill/internal/aws"
	"github.com/awsdrill/awsdrill/internal/config"
	"github.com/awsdrill/awsdrill/internal/nav"
)

// Model is the bubbletea model. It owns the single authoritative navigation
// state; fetch commands run on their own goroutines and communicate back
// exclusively through outcome messages.
type Model struct {
	state  nav.State
	client *aws.Client
	cfg    *config.Config
	log    zerolog.Logger

	spinner spinner.Model
	width   int
	height  int

	account string

	// Aux info view payloads, loaded on demand when the view opens.
	taskLogs   []aws.LogStream
	cpuMetrics []aws.CPUDatapoint
}

type identityMsg struct {
	account string
	err     error
}

type sessionFinishedMsg struct {
	kind string
	err  error
}

type taskLogsMsg struct {
	logs []aws.LogStream
	err  error
}

type cpuMetricsMsg struct {
	points []aws.CPUDatapoint
	err    error
}

type consoleOpenedMsg struct {
	err error
}

// New builds the initial model at region level.
func New(client *aws.Client, cfg *config.Config, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	return Model{
		state:   nav.NewState(cfg.Regions),
		client:  client,
		cfg:     cfg,
		log:     log,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadIdentity())
}
