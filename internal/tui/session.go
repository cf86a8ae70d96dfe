package tui

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/awsdrill/awsdrill/internal/nav"
)

// Interactive sessions take over the terminal: tea.ExecProcess suspends the
// program, hands the TTY to the child, and resumes with a completion
// message once it exits. The navigation state is untouched by the handoff.

func (m *Model) execSessionCmd(eff nav.StartExecSession) tea.Cmd {
	cmd := exec.Command("aws", "ecs", "execute-command",
		"--region", eff.Region,
		"--cluster", arnResource(eff.ClusterArn),
		"--task", arnResource(eff.TaskArn),
		"--container", eff.ContainerName,
		"--interactive",
		"--command", "/bin/sh",
	)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return sessionFinishedMsg{kind: "ECS Exec", err: err}
	})
}

func (m *Model) sshSessionCmd(eff nav.StartSSHSession) tea.Cmd {
	inst := eff.Instance

	// Session Manager when the instance is registered with SSM, plain SSH
	// otherwise.
	if inst.SSMManaged {
		cmd := exec.Command("aws", "ssm", "start-session",
			"--region", eff.Region,
			"--target", inst.ID,
		)
		return tea.ExecProcess(cmd, func(err error) tea.Msg {
			return sessionFinishedMsg{kind: "SSM", err: err}
		})
	}

	addr := inst.PublicIP
	if addr == "" {
		addr = inst.PrivateIP
	}
	if addr == "" {
		return func() tea.Msg {
			return sessionFinishedMsg{kind: "SSH", err: fmt.Errorf("no IP address available for %s", inst.ID)}
		}
	}

	cmd := exec.Command("ssh", fmt.Sprintf("%s@%s", m.cfg.SSHUser, addr))
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return sessionFinishedMsg{kind: "SSH", err: err}
	})
}

// arnResource returns the final path segment of an ARN; IDs pass through
// unchanged.
func arnResource(arn string) string {
	parts := strings.Split(arn, "/")
	return parts[len(parts)-1]
}
