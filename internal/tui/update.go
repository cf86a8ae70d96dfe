package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/awsdrill/awsdrill/internal/nav"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		// Only animate while something is loading.
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case nav.Outcome:
		m.state = nav.ApplyOutcome(m.state, msg)
		if fail, ok := msg.(nav.FetchFailed); ok {
			m.log.Warn().Str("error", fail.Message).Msg("fetch failed")
		}
		return m, nil

	case identityMsg:
		if msg.err == nil {
			m.account = msg.account
		}
		return m, nil

	case sessionFinishedMsg:
		if msg.err != nil {
			m.state.Status = fmt.Sprintf("%s session failed: %v", msg.kind, msg.err)
			m.log.Warn().Err(msg.err).Str("kind", msg.kind).Msg("session ended with error")
		} else {
			m.state.Status = fmt.Sprintf("%s session ended", msg.kind)
		}
		return m, nil

	case taskLogsMsg:
		if msg.err == nil {
			m.taskLogs = msg.logs
		}
		return m, nil

	case cpuMetricsMsg:
		if msg.err == nil {
			m.cpuMetrics = msg.points
		}
		return m, nil

	case consoleOpenedMsg:
		if msg.err != nil {
			m.state.Status = fmt.Sprintf("Failed to open console: %v", msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "o":
		// Like every command, a console open dismisses a lingering error.
		m.state.Err = ""
		return m, m.openConsole()
	}

	cmd, ok := keyCommand(msg.String())
	if !ok {
		return m, nil
	}

	wasInfo := m.state.ShowInfo
	var effects []nav.Effect
	m.state, effects = nav.Apply(m.state, cmd)

	cmds := m.runEffects(effects)
	if m.state.Loading {
		cmds = append(cmds, m.spinner.Tick)
	}

	// Opening the info view pulls in its async extras; moving the cursor
	// while it is open re-pulls them for the new selection; closing it
	// drops them so another item's data cannot linger.
	switch {
	case m.state.ShowInfo && !wasInfo:
		cmds = append(cmds, m.loadInfoExtras()...)
	case m.state.ShowInfo && (cmd == nav.CmdNext || cmd == nav.CmdPrev):
		m.taskLogs = nil
		m.cpuMetrics = nil
		cmds = append(cmds, m.loadInfoExtras()...)
	case !m.state.ShowInfo && wasInfo:
		m.taskLogs = nil
		m.cpuMetrics = nil
	}

	return m, tea.Batch(cmds...)
}

// keyCommand decodes a keypress into a navigation command.
func keyCommand(key string) (nav.Command, bool) {
	switch key {
	case "down", "j":
		return nav.CmdNext, true
	case "up", "k":
		return nav.CmdPrev, true
	case "enter":
		return nav.CmdSelect, true
	case "esc", "backspace":
		return nav.CmdBack, true
	case "r":
		return nav.CmdRefresh, true
	case "d":
		return nav.CmdRedeploy, true
	case "e", "s":
		return nav.CmdLeafAction, true
	case "i":
		return nav.CmdToggleInfo, true
	case "q":
		return nav.CmdQuit, true
	default:
		return 0, false
	}
}

// runEffects turns reducer effects into bubbletea commands. Each fetch runs
// on its own goroutine and reports back with exactly one outcome message.
func (m *Model) runEffects(effects []nav.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case nav.Fetch:
			m.log.Debug().Str("target", eff.Target.String()).Str("region", eff.Region).Msg("dispatching fetch")
			cmds = append(cmds, m.fetchCmd(eff))
		case nav.RedeployService:
			cmds = append(cmds, m.redeployCmd(eff))
		case nav.StartExecSession:
			m.log.Info().Str("container", eff.ContainerName).Msg("starting ECS Exec session")
			cmds = append(cmds, m.execSessionCmd(eff))
		case nav.StartSSHSession:
			m.log.Info().Str("instance", eff.Instance.ID).Msg("starting instance session")
			cmds = append(cmds, m.sshSessionCmd(eff))
		case nav.OpenDBConsole:
			cmds = append(cmds, m.openDBConsoleCmd(eff))
		case nav.Quit:
			cmds = append(cmds, tea.Quit)
		}
	}
	return cmds
}

// loadInfoExtras starts the slow additions to the info view: recent logs at
// task level, CPU metrics at instance level.
func (m *Model) loadInfoExtras() []tea.Cmd {
	switch m.state.Level {
	case nav.LevelTask:
		if b, ok := m.state.Branch.(nav.ECSBranch); ok && b.Cluster != nil && m.state.Cursor < len(m.state.Tasks) {
			return []tea.Cmd{m.loadTaskLogs(m.state.Region, b.Cluster.Arn, m.state.Tasks[m.state.Cursor].Arn)}
		}
	case nav.LevelInstance:
		if m.state.Cursor < len(m.state.Instances) {
			return []tea.Cmd{m.loadCPUMetrics(m.state.Region, m.state.Instances[m.state.Cursor].ID)}
		}
	}
	return nil
}
