package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Instance is an EC2 instance with the fields shown in the instance list and
// needed to open a session.
type Instance struct {
	ID           string
	Name         string
	InstanceType string
	State        string
	PublicIP     string
	PrivateIP    string
	AZ           string
	KeyName      string
	IAMProfile   string
	SSMManaged   bool
}

// instanceFromSDK converts an SDK instance. Instances without an ID are
// dropped. The display name comes from the Name tag, falling back to the ID.
func instanceFromSDK(inst ec2Types.Instance) (Instance, bool) {
	if inst.InstanceId == nil {
		return Instance{}, false
	}
	out := Instance{
		ID:           *inst.InstanceId,
		InstanceType: string(inst.InstanceType),
		PublicIP:     getString(inst.PublicIpAddress),
		PrivateIP:    getString(inst.PrivateIpAddress),
		KeyName:      getString(inst.KeyName),
	}
	out.Name = getNameTag(inst.Tags)
	if out.Name == "" {
		out.Name = out.ID
	}
	if inst.State != nil {
		out.State = string(inst.State.Name)
	}
	if inst.Placement != nil {
		out.AZ = getString(inst.Placement.AvailabilityZone)
	}
	if inst.IamInstanceProfile != nil {
		out.IAMProfile = getString(inst.IamInstanceProfile.Arn)
	}
	return out, true
}

// getNameTag extracts the Name tag from EC2 tags.
func getNameTag(tags []ec2Types.Tag) string {
	for _, tag := range tags {
		if tag.Key != nil && *tag.Key == "Name" && tag.Value != nil {
			return *tag.Value
		}
	}
	return ""
}

// ListInstances retrieves the EC2 instances of a region and marks the ones
// reachable through SSM Session Manager by cross-referencing the managed
// instance inventory. An inventory failure leaves SSMManaged false rather
// than failing the listing.
func (c *Client) ListInstances(ctx context.Context, region string) ([]Instance, error) {
	client := c.ec2Client(region)

	result, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	var instances []Instance
	for _, reservation := range result.Reservations {
		for _, inst := range reservation.Instances {
			if instance, ok := instanceFromSDK(inst); ok {
				instances = append(instances, instance)
			}
		}
	}

	if len(instances) > 0 {
		if managed, err := c.managedInstanceIDs(ctx, region); err == nil {
			for i := range instances {
				instances[i].SSMManaged = managed[instances[i].ID]
			}
		}
	}

	return instances, nil
}
