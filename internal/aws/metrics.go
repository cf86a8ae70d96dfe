package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// CPUDatapoint is one averaged CPU utilisation sample.
type CPUDatapoint struct {
	Timestamp time.Time
	Average   float64
}

// GetInstanceCPUMetrics returns the last hour of CPU utilisation for an
// instance in 5-minute averages, oldest first. Shown in the instance info
// view.
func (c *Client) GetInstanceCPUMetrics(ctx context.Context, region, instanceID string) ([]CPUDatapoint, error) {
	client := c.cloudwatchClient(region)

	end := time.Now()
	start := end.Add(-1 * time.Hour)
	out, err := client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  sdkaws.String("AWS/EC2"),
		MetricName: sdkaws.String("CPUUtilization"),
		Dimensions: []cwTypes.Dimension{
			{Name: sdkaws.String("InstanceId"), Value: sdkaws.String(instanceID)},
		},
		StartTime:  &start,
		EndTime:    &end,
		Period:     sdkaws.Int32(300),
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU metrics for %s: %w", instanceID, err)
	}

	var points []CPUDatapoint
	for _, dp := range out.Datapoints {
		if dp.Timestamp == nil || dp.Average == nil {
			continue
		}
		points = append(points, CPUDatapoint{Timestamp: *dp.Timestamp, Average: *dp.Average})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	return points, nil
}
