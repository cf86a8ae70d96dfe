package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/awsdrill/awsdrill/internal/nav"
)

// fetchCmd runs one background list call and returns its outcome. The
// command captures everything it needs by value; it shares no state with
// the model and reports back only through the returned message.
func (m *Model) fetchCmd(f nav.Fetch) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()

		switch f.Target {
		case nav.LevelCluster:
			clusters, err := client.ListClusters(ctx, f.Region)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load clusters: %v", err)}
			}
			return nav.ClustersLoaded{Gen: f.Gen, Clusters: clusters}

		case nav.LevelService:
			services, err := client.ListServices(ctx, f.Region, f.ClusterArn)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load services: %v", err)}
			}
			return nav.ServicesLoaded{Gen: f.Gen, Services: services}

		case nav.LevelTask:
			tasks, err := client.ListTasks(ctx, f.Region, f.ClusterArn, f.ServiceName)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load tasks: %v", err)}
			}
			return nav.TasksLoaded{Gen: f.Gen, Tasks: tasks}

		case nav.LevelContainer:
			containers, err := client.ListContainers(ctx, f.Region, f.ClusterArn, f.TaskArn)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load containers: %v", err)}
			}
			return nav.ContainersLoaded{Gen: f.Gen, Containers: containers}

		case nav.LevelInstance:
			instances, err := client.ListInstances(ctx, f.Region)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load EC2 instances: %v", err)}
			}
			return nav.InstancesLoaded{Gen: f.Gen, Instances: instances}

		case nav.LevelDBCluster:
			clusters, err := client.ListDBClusters(ctx, f.Region)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load database clusters: %v", err)}
			}
			return nav.DBClustersLoaded{Gen: f.Gen, Clusters: clusters}

		case nav.LevelDBInstance:
			instances, err := client.ListDBInstancesForCluster(ctx, f.Region, f.DBClusterID)
			if err != nil {
				return nav.FetchFailed{Gen: f.Gen, Message: fmt.Sprintf("Failed to load database instances: %v", err)}
			}
			return nav.DBInstancesLoaded{Gen: f.Gen, Instances: instances}
		}

		return nil
	}
}

func (m *Model) redeployCmd(eff nav.RedeployService) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.ForceRedeploy(context.Background(), eff.Region, eff.ClusterArn, eff.ServiceName)
		if err != nil {
			return nav.FetchFailed{Gen: eff.Gen, Message: fmt.Sprintf("Failed to trigger deployment: %v", err)}
		}
		return nav.DeploymentTriggered{Gen: eff.Gen, Service: eff.ServiceName}
	}
}

func (m *Model) loadIdentity() tea.Cmd {
	client := m.client
	region := client.DefaultRegion()
	if region == "" && len(m.cfg.Regions) > 0 {
		region = m.cfg.Regions[0]
	}
	if region == "" {
		region = "us-east-1"
	}
	return func() tea.Msg {
		account, _, err := client.CallerIdentity(context.Background(), region)
		return identityMsg{account: account, err: err}
	}
}

func (m *Model) loadTaskLogs(region, clusterArn, taskArn string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		logs, err := client.GetTaskLogs(context.Background(), region, clusterArn, taskArn, 50)
		return taskLogsMsg{logs: logs, err: err}
	}
}

func (m *Model) loadCPUMetrics(region, instanceID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		points, err := client.GetInstanceCPUMetrics(context.Background(), region, instanceID)
		return cpuMetricsMsg{points: points, err: err}
	}
}
