package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/awsdrill/awsdrill/internal/nav"
)

func (m *Model) openDBConsoleCmd(eff nav.OpenDBConsole) tea.Cmd {
	url := fmt.Sprintf(
		"https://%s.console.aws.amazon.com/rds/home?region=%s#database:id=%s;is-cluster=false",
		eff.Region, eff.Region, eff.InstanceID,
	)
	return func() tea.Msg {
		return consoleOpenedMsg{err: open.Run(url)}
	}
}

// openConsole opens the AWS console page for the current selection in the
// default browser.
func (m *Model) openConsole() tea.Cmd {
	url := consoleURL(m.state)
	if url == "" {
		return nil
	}
	return func() tea.Msg {
		return consoleOpenedMsg{err: open.Run(url)}
	}
}

// consoleURL maps the current level and selection onto a console deep link.
// Returns "" when there is nothing sensible to open.
func consoleURL(s nav.State) string {
	region := s.Region
	if region == "" {
		if s.Cursor < len(s.Regions) {
			region = s.Regions[s.Cursor]
		} else {
			return ""
		}
	}

	switch s.Level {
	case nav.LevelRegion, nav.LevelFamily:
		return fmt.Sprintf("https://%s.console.aws.amazon.com/console/home?region=%s", region, region)

	case nav.LevelCluster:
		if s.Cursor >= len(s.Clusters) {
			return ""
		}
		return fmt.Sprintf("https://%s.console.aws.amazon.com/ecs/v2/clusters/%s?region=%s",
			region, s.Clusters[s.Cursor].Name, region)

	case nav.LevelService:
		b, ok := s.Branch.(nav.ECSBranch)
		if !ok || b.Cluster == nil || s.Cursor >= len(s.Services) {
			return ""
		}
		return fmt.Sprintf("https://%s.console.aws.amazon.com/ecs/v2/clusters/%s/services/%s?region=%s",
			region, b.Cluster.Name, s.Services[s.Cursor].Name, region)

	case nav.LevelTask, nav.LevelContainer:
		b, ok := s.Branch.(nav.ECSBranch)
		if !ok || b.Cluster == nil {
			return ""
		}
		return fmt.Sprintf("https://%s.console.aws.amazon.com/ecs/v2/clusters/%s/tasks?region=%s",
			region, b.Cluster.Name, region)

	case nav.LevelInstance:
		if s.Cursor >= len(s.Instances) {
			return ""
		}
		return fmt.Sprintf("https://%s.console.aws.amazon.com/ec2/home?region=%s#InstanceDetails:instanceId=%s",
			region, region, s.Instances[s.Cursor].ID)

	case nav.LevelDBCluster:
		if s.Cursor >= len(s.DBClusters) {
			return ""
		}
		return fmt.Sprintf("https://%s.console.aws.amazon.com/rds/home?region=%s#database:id=%s;is-cluster=true",
			region, region, s.DBClusters[s.Cursor].ID)

	case nav.LevelDBInstance:
		if s.Cursor >= len(s.DBInstances) {
			return ""
		}
		return fmt.Sprintf("https://%s.console.aws.amazon.com/rds/home?region=%s#database:id=%s;is-cluster=false",
			region, region, s.DBInstances[s.Cursor].ID)
	}
	return ""
}
