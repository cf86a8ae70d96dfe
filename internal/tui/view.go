package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/awsdrill/awsdrill/internal/config"
	"github.com/awsdrill/awsdrill/internal/nav"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Underline(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("51")).Foreground(lipgloss.Color("0")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const rowWidth = 98

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n")

	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)
	if m.width > 4 {
		contentStyle = contentStyle.Width(m.width - 2)
	}

	var content string
	switch m.state.Level {
	case nav.LevelRegion:
		content = m.renderRegions()
	case nav.LevelFamily:
		content = m.renderFamilies()
	case nav.LevelCluster:
		content = m.renderClusters()
	case nav.LevelService:
		content = m.renderServices()
	case nav.LevelTask:
		content = m.renderTasks()
	case nav.LevelContainer:
		content = m.renderContainers()
	case nav.LevelInstance:
		content = m.renderInstances()
	case nav.LevelDBCluster:
		content = m.renderDBClusters()
	case nav.LevelDBInstance:
		content = m.renderDBInstances()
	}
	s.WriteString(contentStyle.Render(content) + "\n")

	if m.state.ShowInfo {
		s.WriteString("\n" + m.renderInfo())
	}

	if m.state.Err != "" {
		s.WriteString("\n" + errorStyle.Render("Error: "+m.state.Err))
	}
	if m.state.Status != "" {
		line := m.state.Status
		if m.state.Loading {
			line = m.spinner.View() + " " + line
		}
		s.WriteString("\n" + statusStyle.Render(line))
	}

	s.WriteString("\n" + m.renderBreadcrumb())
	return s.String()
}

// renderHeader shows account context on the left, k9s style.
func (m Model) renderHeader() string {
	account := m.account
	if account == "" {
		account = "-"
	}
	region := m.state.Region
	if region == "" {
		region = "-"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Account: ") + normalStyle.Render(account) + "  ")
	b.WriteString(labelStyle.Render("Region: ") + normalStyle.Render(region) + "  ")
	b.WriteString(labelStyle.Render("View: ") + normalStyle.Render(m.state.Level.String()))
	return b.String()
}

// renderBreadcrumb shows the drill path from region down to the current
// selection.
func (m Model) renderBreadcrumb() string {
	crumbs := []string{"regions"}
	if m.state.Region != "" {
		crumbs = append(crumbs, m.state.Region)
	}
	switch b := m.state.Branch.(type) {
	case nav.ECSBranch:
		crumbs = append(crumbs, "ecs")
		if b.Cluster != nil {
			crumbs = append(crumbs, b.Cluster.Name)
		}
		if b.Service != nil {
			crumbs = append(crumbs, b.Service.Name)
		}
		if b.Task != nil {
			crumbs = append(crumbs, b.Task.ID)
		}
	case nav.EC2Branch:
		crumbs = append(crumbs, "ec2")
	case nav.RDSBranch:
		crumbs = append(crumbs, "rds")
		if b.Cluster != nil {
			crumbs = append(crumbs, b.Cluster.ID)
		}
	}

	crumbStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("51")).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1)
	lastStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("220")).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1)

	var b strings.Builder
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			b.WriteString(lastStyle.Render(c))
		} else {
			b.WriteString(crumbStyle.Render(c))
		}
		if i < len(crumbs)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func (m Model) keyHelp() string {
	parts := []string{"j/k navigate", "Enter select", "ESC back"}
	switch m.state.Level {
	case nav.LevelService:
		parts = append(parts, "d redeploy")
	case nav.LevelContainer:
		parts = append(parts, "e exec")
	case nav.LevelInstance:
		parts = append(parts, "s ssh")
	}
	if m.state.Level != nav.LevelRegion && m.state.Level != nav.LevelFamily {
		parts = append(parts, "r refresh")
	}
	parts = append(parts, "i info", "o console", "q quit")
	return dimStyle.Render("[" + strings.Join(parts, " | ") + "]")
}

// tableTitle centers a cyan k9s-style title line.
func tableTitle(name string, count int) string {
	return titleStyle.Render(fmt.Sprintf(" %s[%d] ", name, count)) + "\n"
}

// row renders a single table line, highlighting the cursor row with a cyan
// background.
func row(text string, selected bool) string {
	if selected {
		for len(text) < rowWidth {
			text += " "
		}
		return selectedStyle.Render(text) + "\n"
	}
	return normalStyle.Render(text) + "\n"
}

func (m Model) renderRegions() string {
	regions := m.state.Regions
	if len(regions) == 0 {
		return tableTitle("AWS-Regions", 0) + dimStyle.Render("No regions configured")
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(regions))

	var content strings.Builder
	content.WriteString(tableTitle("AWS-Regions", len(regions)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %-40s", "REGION", "STATUS")) + "\n")
	for i := start; i < end; i++ {
		status := ""
		if regions[i] == config.DefaultRegion() {
			status = "DEFAULT"
		}
		content.WriteString(row(fmt.Sprintf("%-30s %-40s", regions[i], status), i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(regions)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderFamilies() string {
	families := m.state.Families
	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(families))

	var content strings.Builder
	content.WriteString(tableTitle("Services", len(families)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-40s", "SERVICE")) + "\n")
	for i := start; i < end; i++ {
		content.WriteString(row(fmt.Sprintf("%-40s", families[i].String()), i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(families)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderClusters() string {
	clusters := m.state.Clusters
	if m.state.Loading && len(clusters) == 0 {
		return tableTitle("ECS-Clusters", 0) + statusStyle.Render(m.state.Status)
	}
	if len(clusters) == 0 {
		return tableTitle("ECS-Clusters", 0) + dimStyle.Render("No clusters found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(clusters))

	var content strings.Builder
	content.WriteString(tableTitle("ECS-Clusters", len(clusters)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-40s %-12s %-10s %-10s %-10s",
		"NAME", "STATUS", "SERVICES", "RUNNING", "PENDING")) + "\n")
	for i := start; i < end; i++ {
		c := clusters[i]
		content.WriteString(row(fmt.Sprintf("%-40s %-12s %-10d %-10d %-10d",
			truncate(c.Name, 40), c.Status, c.ActiveServicesCount, c.RunningTasksCount, c.PendingTasksCount),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(clusters)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderServices() string {
	services := m.state.Services
	if m.state.Loading && len(services) == 0 {
		return tableTitle("ECS-Services", 0) + statusStyle.Render(m.state.Status)
	}
	if len(services) == 0 {
		return tableTitle("ECS-Services", 0) + dimStyle.Render("No services found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(services))

	var content strings.Builder
	content.WriteString(tableTitle("ECS-Services", len(services)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-36s %-10s %-9s %-9s %-9s %-12s",
		"NAME", "STATUS", "DESIRED", "RUNNING", "PENDING", "LAUNCH")) + "\n")
	for i := start; i < end; i++ {
		svc := services[i]
		content.WriteString(row(fmt.Sprintf("%-36s %-10s %-9d %-9d %-9d %-12s",
			truncate(svc.Name, 36), svc.Status, svc.DesiredCount, svc.RunningCount, svc.PendingCount, svc.LaunchType),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(services)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderTasks() string {
	tasks := m.state.Tasks
	if m.state.Loading && len(tasks) == 0 {
		return tableTitle("ECS-Tasks", 0) + statusStyle.Render(m.state.Status)
	}
	if len(tasks) == 0 {
		return tableTitle("ECS-Tasks", 0) + dimStyle.Render("No tasks found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(tasks))

	var content strings.Builder
	content.WriteString(tableTitle("ECS-Tasks", len(tasks)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-34s %-12s %-10s %-6s %-8s %-16s",
		"TASK ID", "STATUS", "HEALTH", "CPU", "MEMORY", "AZ")) + "\n")
	for i := start; i < end; i++ {
		t := tasks[i]
		content.WriteString(row(fmt.Sprintf("%-34s %-12s %-10s %-6s %-8s %-16s",
			truncate(t.ID, 34), t.Status, t.Health, t.CPU, t.Memory, t.AvailabilityZone),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(tasks)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderContainers() string {
	containers := m.state.Containers
	if m.state.Loading && len(containers) == 0 {
		return tableTitle("Containers", 0) + statusStyle.Render(m.state.Status)
	}
	if len(containers) == 0 {
		return tableTitle("Containers", 0) + dimStyle.Render("No containers found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(containers))

	var content strings.Builder
	content.WriteString(tableTitle("Containers", len(containers)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %-12s %-50s", "NAME", "STATUS", "IMAGE")) + "\n")
	for i := start; i < end; i++ {
		c := containers[i]
		content.WriteString(row(fmt.Sprintf("%-30s %-12s %-50s",
			truncate(c.Name, 30), c.Status, truncate(c.Image, 50)),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(containers)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderInstances() string {
	instances := m.state.Instances
	if m.state.Loading && len(instances) == 0 {
		return tableTitle("EC2-Instances", 0) + statusStyle.Render(m.state.Status)
	}
	if len(instances) == 0 {
		return tableTitle("EC2-Instances", 0) + dimStyle.Render("No instances found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(instances))

	var content strings.Builder
	content.WriteString(tableTitle("EC2-Instances", len(instances)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-30s %-12s %-14s %-16s %-4s",
		"INSTANCE ID", "NAME", "STATE", "TYPE", "IP", "SSM")) + "\n")
	for i := start; i < end; i++ {
		inst := instances[i]
		ip := inst.PublicIP
		if ip == "" {
			ip = inst.PrivateIP
		}
		if ip == "" {
			ip = "-"
		}
		ssm := "-"
		if inst.SSMManaged {
			ssm = "yes"
		}
		content.WriteString(row(fmt.Sprintf("%-20s %-30s %-12s %-14s %-16s %-4s",
			inst.ID, truncate(inst.Name, 30), inst.State, inst.InstanceType, ip, ssm),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(instances)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderDBClusters() string {
	clusters := m.state.DBClusters
	if m.state.Loading && len(clusters) == 0 {
		return tableTitle("RDS-Clusters", 0) + statusStyle.Render(m.state.Status)
	}
	if len(clusters) == 0 {
		return tableTitle("RDS-Clusters", 0) + dimStyle.Render("No database clusters found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(clusters))

	var content strings.Builder
	content.WriteString(tableTitle("RDS-Clusters", len(clusters)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-36s %-12s %-18s %-10s %-8s",
		"IDENTIFIER", "STATUS", "ENGINE", "VERSION", "MEMBERS")) + "\n")
	for i := start; i < end; i++ {
		cl := clusters[i]
		content.WriteString(row(fmt.Sprintf("%-36s %-12s %-18s %-10s %-8d",
			truncate(cl.ID, 36), cl.Status, cl.Engine, cl.EngineVersion, cl.MemberCount),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(clusters)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}

func (m Model) renderDBInstances() string {
	instances := m.state.DBInstances
	if m.state.Loading && len(instances) == 0 {
		return tableTitle("RDS-Instances", 0) + statusStyle.Render(m.state.Status)
	}
	if len(instances) == 0 {
		return tableTitle("RDS-Instances", 0) + dimStyle.Render("No database instances found") + "\n\n" + m.keyHelp()
	}

	vp := m.listViewport()
	start, end := vp.window(m.state.Cursor, len(instances))

	var content strings.Builder
	content.WriteString(tableTitle("RDS-Instances", len(instances)))
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-36s %-12s %-16s %-18s %-14s",
		"IDENTIFIER", "STATUS", "ENGINE", "CLASS", "AZ")) + "\n")
	for i := start; i < end; i++ {
		inst := instances[i]
		content.WriteString(row(fmt.Sprintf("%-36s %-12s %-16s %-18s %-14s",
			truncate(inst.ID, 36), inst.Status, inst.Engine, inst.Class, inst.AZ),
			i == m.state.Cursor))
	}
	content.WriteString(vp.indicator(start, end, len(instances)))
	content.WriteString("\n" + m.keyHelp())
	return content.String()
}
