package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecsTypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// ECSCluster is a simplified ECS cluster summary.
type ECSCluster struct {
	Name                string
	Arn                 string
	Status              string
	RunningTasksCount   int32
	PendingTasksCount   int32
	ActiveServicesCount int32
}

// ECSService is a service with the counts shown in the service list.
type ECSService struct {
	Name           string
	Arn            string
	Status         string
	TaskDefinition string
	LaunchType     string
	DesiredCount   int32
	RunningCount   int32
	PendingCount   int32
}

// ECSTask is a task with its runtime configuration.
type ECSTask struct {
	Arn              string
	ID               string
	Status           string
	Health           string
	CPU              string
	Memory           string
	AvailabilityZone string
	StartedAt        *time.Time
}

// ECSContainer is the per-container status within a task.
type ECSContainer struct {
	Name      string
	Image     string
	Status    string
	RuntimeID string
}

// clusterFromSDK converts an SDK cluster, reporting ok=false when the entry
// lacks its identifying fields. Such entries are dropped, not surfaced.
func clusterFromSDK(c ecsTypes.Cluster) (ECSCluster, bool) {
	if c.ClusterArn == nil || c.ClusterName == nil {
		return ECSCluster{}, false
	}
	return ECSCluster{
		Name:                *c.ClusterName,
		Arn:                 *c.ClusterArn,
		Status:              getString(c.Status),
		RunningTasksCount:   c.RunningTasksCount,
		PendingTasksCount:   c.PendingTasksCount,
		ActiveServicesCount: c.ActiveServicesCount,
	}, true
}

func serviceFromSDK(s ecsTypes.Service) (ECSService, bool) {
	if s.ServiceArn == nil || s.ServiceName == nil {
		return ECSService{}, false
	}
	return ECSService{
		Name:           *s.ServiceName,
		Arn:            *s.ServiceArn,
		Status:         getString(s.Status),
		TaskDefinition: getString(s.TaskDefinition),
		LaunchType:     string(s.LaunchType),
		DesiredCount:   s.DesiredCount,
		RunningCount:   s.RunningCount,
		PendingCount:   s.PendingCount,
	}, true
}

func taskFromSDK(t ecsTypes.Task) (ECSTask, bool) {
	if t.TaskArn == nil {
		return ECSTask{}, false
	}
	return ECSTask{
		Arn:              *t.TaskArn,
		ID:               extractARNResource(*t.TaskArn),
		Status:           getString(t.LastStatus),
		Health:           string(t.HealthStatus),
		CPU:              getString(t.Cpu),
		Memory:           getString(t.Memory),
		AvailabilityZone: getString(t.AvailabilityZone),
		StartedAt:        t.StartedAt,
	}, true
}

func containerFromSDK(c ecsTypes.Container) (ECSContainer, bool) {
	if c.Name == nil {
		return ECSContainer{}, false
	}
	return ECSContainer{
		Name:      *c.Name,
		Image:     getString(c.Image),
		Status:    getString(c.LastStatus),
		RuntimeID: getString(c.RuntimeId),
	}, true
}

// ListClusters returns cluster summaries for a region.
func (c *Client) ListClusters(ctx context.Context, region string) ([]ECSCluster, error) {
	client := c.ecsClient(region)

	var clusters []ECSCluster
	var nextToken *string
	for {
		out, err := client.ListClusters(ctx, &ecs.ListClustersInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("failed to list ECS clusters: %w", err)
		}
		if len(out.ClusterArns) == 0 {
			break
		}

		descOut, err := client.DescribeClusters(ctx, &ecs.DescribeClustersInput{
			Clusters: out.ClusterArns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe ECS clusters: %w", err)
		}
		for _, cl := range descOut.Clusters {
			if cluster, ok := clusterFromSDK(cl); ok {
				clusters = append(clusters, cluster)
			}
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return clusters, nil
}

// ListServices returns the services of a cluster.
func (c *Client) ListServices(ctx context.Context, region, clusterArn string) ([]ECSService, error) {
	client := c.ecsClient(region)

	var services []ECSService
	var nextToken *string
	for {
		listOut, err := client.ListServices(ctx, &ecs.ListServicesInput{
			Cluster:   &clusterArn,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list ECS services: %w", err)
		}
		if len(listOut.ServiceArns) == 0 {
			break
		}

		descOut, err := client.DescribeServices(ctx, &ecs.DescribeServicesInput{
			Cluster:  &clusterArn,
			Services: listOut.ServiceArns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe ECS services: %w", err)
		}
		for _, svc := range descOut.Services {
			if service, ok := serviceFromSDK(svc); ok {
				services = append(services, service)
			}
		}

		if listOut.NextToken == nil {
			break
		}
		nextToken = listOut.NextToken
	}

	return services, nil
}

// ListTasks returns the tasks of a service.
func (c *Client) ListTasks(ctx context.Context, region, clusterArn, serviceName string) ([]ECSTask, error) {
	client := c.ecsClient(region)

	listOut, err := client.ListTasks(ctx, &ecs.ListTasksInput{
		Cluster:     &clusterArn,
		ServiceName: &serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ECS tasks: %w", err)
	}
	if len(listOut.TaskArns) == 0 {
		return nil, nil
	}

	descOut, err := client.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: &clusterArn,
		Tasks:   listOut.TaskArns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe ECS tasks: %w", err)
	}

	var tasks []ECSTask
	for _, t := range descOut.Tasks {
		if task, ok := taskFromSDK(t); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// ListContainers returns the containers of a single task.
func (c *Client) ListContainers(ctx context.Context, region, clusterArn, taskArn string) ([]ECSContainer, error) {
	client := c.ecsClient(region)

	descOut, err := client.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: &clusterArn,
		Tasks:   []string{taskArn},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe ECS task: %w", err)
	}
	if len(descOut.Tasks) == 0 {
		return nil, nil
	}

	var containers []ECSContainer
	for _, ctn := range descOut.Tasks[0].Containers {
		if container, ok := containerFromSDK(ctn); ok {
			containers = append(containers, container)
		}
	}
	return containers, nil
}

// ForceRedeploy triggers a new deployment of a service without changing its
// task definition.
func (c *Client) ForceRedeploy(ctx context.Context, region, clusterArn, serviceName string) error {
	client := c.ecsClient(region)

	_, err := client.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:            &clusterArn,
		Service:            &serviceName,
		ForceNewDeployment: true,
	})
	if err != nil {
		return fmt.Errorf("failed to trigger deployment for %s: %w", serviceName, err)
	}
	return nil
}

// extractARNResource returns the final path segment of an ARN.
func extractARNResource(arn string) string {
	parts := strings.Split(arn, "/")
	return parts[len(parts)-1]
}
