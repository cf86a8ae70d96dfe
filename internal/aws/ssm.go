package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// managedInstanceIDs returns the set of instance IDs registered with SSM in
// a region. Used to decide whether an instance can take a Session Manager
// session instead of plain SSH.
func (c *Client) managedInstanceIDs(ctx context.Context, region string) (map[string]bool, error) {
	client := c.ssmClient(region)

	managed := make(map[string]bool)
	var nextToken *string
	for {
		out, err := client.DescribeInstanceInformation(ctx, &ssm.DescribeInstanceInformationInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe instance information: %w", err)
		}
		for _, info := range out.InstanceInformationList {
			if info.InstanceId != nil {
				managed[*info.InstanceId] = true
			}
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return managed, nil
}
