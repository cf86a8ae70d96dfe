package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecsTypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// LogEvent is a single log line.
type LogEvent struct {
	Timestamp time.Time
	Message   string
}

// LogStream groups recent log lines for one container of a task.
type LogStream struct {
	Container string
	LogGroup  string
	LogStream string
	Events    []LogEvent
}

// GetTaskLogs fetches recent CloudWatch logs for a task, one stream per
// container whose task definition uses the awslogs driver. Containers
// without an awslogs configuration are skipped.
func (c *Client) GetTaskLogs(ctx context.Context, region, clusterArn, taskArn string, limit int32) ([]LogStream, error) {
	if limit <= 0 {
		limit = 50
	}

	client := c.ecsClient(region)
	taskID := extractARNResource(taskArn)

	taskDesc, err := client.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: &clusterArn,
		Tasks:   []string{taskArn},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe ECS task for logs: %w", err)
	}
	if len(taskDesc.Tasks) == 0 {
		return nil, fmt.Errorf("task not found")
	}

	tdOut, err := client.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: taskDesc.Tasks[0].TaskDefinitionArn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe task definition for logs: %w", err)
	}

	var streams []LogStream
	for _, cd := range tdOut.TaskDefinition.ContainerDefinitions {
		if cd.LogConfiguration == nil || cd.LogConfiguration.LogDriver != ecsTypes.LogDriverAwslogs {
			continue
		}
		opts := cd.LogConfiguration.Options
		logGroup := opts["awslogs-group"]
		streamPrefix := opts["awslogs-stream-prefix"]
		if logGroup == "" || streamPrefix == "" {
			continue
		}
		logStream := fmt.Sprintf("%s/%s/%s", streamPrefix, getString(cd.Name), taskID)

		events, err := c.fetchLogEvents(ctx, region, logGroup, logStream, limit)
		if err != nil {
			// Stream may not exist yet for a freshly started task.
			events = nil
		}
		streams = append(streams, LogStream{
			Container: getString(cd.Name),
			LogGroup:  logGroup,
			LogStream: logStream,
			Events:    events,
		})
	}

	return streams, nil
}

func (c *Client) fetchLogEvents(ctx context.Context, region, group, stream string, limit int32) ([]LogEvent, error) {
	out, err := c.logsClient(region).GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  &group,
		LogStreamName: &stream,
		Limit:         &limit,
		StartFromHead: sdkaws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	var events []LogEvent
	for _, ev := range out.Events {
		if ev.Timestamp == nil || ev.Message == nil {
			continue
		}
		events = append(events, LogEvent{
			Timestamp: time.UnixMilli(*ev.Timestamp),
			Message:   *ev.Message,
		})
	}
	return events, nil
}
