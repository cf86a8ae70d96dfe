package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/awsdrill/awsdrill/internal/nav"
)

var infoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("6")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(1, 2).
	Width(90)

// renderInfo shows a detail popup for the item under the cursor. Tasks also
// show recent CloudWatch logs, instances their recent CPU utilisation.
func (m Model) renderInfo() string {
	var b strings.Builder

	switch m.state.Level {
	case nav.LevelCluster:
		if m.state.Cursor >= len(m.state.Clusters) {
			return ""
		}
		c := m.state.Clusters[m.state.Cursor]
		b.WriteString("Cluster: " + c.Name + "\n\n")
		b.WriteString(fmt.Sprintf("ARN:       %s\n", c.Arn))
		b.WriteString(fmt.Sprintf("Status:    %s\n", c.Status))
		b.WriteString(fmt.Sprintf("Services:  %d\n", c.ActiveServicesCount))
		b.WriteString(fmt.Sprintf("Running:   %d\n", c.RunningTasksCount))
		b.WriteString(fmt.Sprintf("Pending:   %d\n", c.PendingTasksCount))

	case nav.LevelService:
		if m.state.Cursor >= len(m.state.Services) {
			return ""
		}
		svc := m.state.Services[m.state.Cursor]
		b.WriteString("Service: " + svc.Name + "\n\n")
		b.WriteString(fmt.Sprintf("ARN:        %s\n", svc.Arn))
		b.WriteString(fmt.Sprintf("Status:     %s\n", svc.Status))
		b.WriteString(fmt.Sprintf("Task def:   %s\n", svc.TaskDefinition))
		b.WriteString(fmt.Sprintf("Launch:     %s\n", svc.LaunchType))
		b.WriteString(fmt.Sprintf("Desired:    %d\n", svc.DesiredCount))
		b.WriteString(fmt.Sprintf("Running:    %d\n", svc.RunningCount))
		b.WriteString(fmt.Sprintf("Pending:    %d\n", svc.PendingCount))

	case nav.LevelTask:
		if m.state.Cursor >= len(m.state.Tasks) {
			return ""
		}
		t := m.state.Tasks[m.state.Cursor]
		b.WriteString("Task: " + t.ID + "\n\n")
		b.WriteString(fmt.Sprintf("ARN:      %s\n", t.Arn))
		b.WriteString(fmt.Sprintf("Status:   %s\n", t.Status))
		b.WriteString(fmt.Sprintf("Health:   %s\n", t.Health))
		b.WriteString(fmt.Sprintf("CPU:      %s\n", t.CPU))
		b.WriteString(fmt.Sprintf("Memory:   %s\n", t.Memory))
		b.WriteString(fmt.Sprintf("AZ:       %s\n", t.AvailabilityZone))
		if t.StartedAt != nil {
			b.WriteString(fmt.Sprintf("Started:  %s\n", t.StartedAt.Format("2006-01-02 15:04:05")))
		}
		b.WriteString("\n" + m.renderTaskLogs())

	case nav.LevelContainer:
		if m.state.Cursor >= len(m.state.Containers) {
			return ""
		}
		c := m.state.Containers[m.state.Cursor]
		b.WriteString("Container: " + c.Name + "\n\n")
		b.WriteString(fmt.Sprintf("Image:      %s\n", c.Image))
		b.WriteString(fmt.Sprintf("Status:     %s\n", c.Status))
		b.WriteString(fmt.Sprintf("Runtime ID: %s\n", c.RuntimeID))

	case nav.LevelInstance:
		if m.state.Cursor >= len(m.state.Instances) {
			return ""
		}
		inst := m.state.Instances[m.state.Cursor]
		b.WriteString("Instance: " + inst.ID + "\n\n")
		b.WriteString(fmt.Sprintf("Name:         %s\n", inst.Name))
		b.WriteString(fmt.Sprintf("State:        %s\n", inst.State))
		b.WriteString(fmt.Sprintf("Type:         %s\n", inst.InstanceType))
		b.WriteString(fmt.Sprintf("Public IP:    %s\n", orDash(inst.PublicIP)))
		b.WriteString(fmt.Sprintf("Private IP:   %s\n", orDash(inst.PrivateIP)))
		b.WriteString(fmt.Sprintf("AZ:           %s\n", inst.AZ))
		b.WriteString(fmt.Sprintf("Key pair:     %s\n", orDash(inst.KeyName)))
		b.WriteString(fmt.Sprintf("IAM profile:  %s\n", orDash(inst.IAMProfile)))
		b.WriteString(fmt.Sprintf("SSM managed:  %t\n", inst.SSMManaged))
		b.WriteString("\n" + m.renderCPUMetrics())

	case nav.LevelDBCluster:
		if m.state.Cursor >= len(m.state.DBClusters) {
			return ""
		}
		cl := m.state.DBClusters[m.state.Cursor]
		b.WriteString("Database cluster: " + cl.ID + "\n\n")
		b.WriteString(fmt.Sprintf("ARN:       %s\n", cl.Arn))
		b.WriteString(fmt.Sprintf("Status:    %s\n", cl.Status))
		b.WriteString(fmt.Sprintf("Engine:    %s %s\n", cl.Engine, cl.EngineVersion))
		b.WriteString(fmt.Sprintf("Endpoint:  %s\n", orDash(cl.Endpoint)))
		b.WriteString(fmt.Sprintf("Members:   %d\n", cl.MemberCount))

	case nav.LevelDBInstance:
		if m.state.Cursor >= len(m.state.DBInstances) {
			return ""
		}
		inst := m.state.DBInstances[m.state.Cursor]
		b.WriteString("Database instance: " + inst.ID + "\n\n")
		b.WriteString(fmt.Sprintf("ARN:       %s\n", inst.Arn))
		b.WriteString(fmt.Sprintf("Status:    %s\n", inst.Status))
		b.WriteString(fmt.Sprintf("Engine:    %s\n", inst.Engine))
		b.WriteString(fmt.Sprintf("Class:     %s\n", inst.Class))
		if inst.Endpoint != "" {
			b.WriteString(fmt.Sprintf("Endpoint:  %s:%d\n", inst.Endpoint, inst.Port))
		}
		b.WriteString(fmt.Sprintf("AZ:        %s\n", inst.AZ))

	default:
		return ""
	}

	return infoStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n" +
		dimStyle.Render("Press ESC to close")
}

func (m Model) renderTaskLogs() string {
	if len(m.taskLogs) == 0 {
		return dimStyle.Render("No recent logs")
	}
	var b strings.Builder
	for _, stream := range m.taskLogs {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Logs: "+stream.Container) + "\n")
		b.WriteString(dimStyle.Render(stream.LogGroup+" / "+stream.LogStream) + "\n")
		events := stream.Events
		if len(events) > 15 {
			events = events[len(events)-15:]
		}
		for _, ev := range events {
			b.WriteString(fmt.Sprintf("%s  %s\n", ev.Timestamp.Format("15:04:05"), truncate(ev.Message, 70)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderCPUMetrics() string {
	if len(m.cpuMetrics) == 0 {
		return dimStyle.Render("No CPU metrics")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("CPU utilisation (last hour)") + "\n")
	for _, p := range m.cpuMetrics {
		bar := strings.Repeat("█", int(p.Average/2))
		b.WriteString(fmt.Sprintf("%s %6.2f%% %s\n", p.Timestamp.Format("15:04"), p.Average, bar))
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
