package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// DBCluster is a managed database cluster summary.
type DBCluster struct {
	ID            string
	Arn           string
	Status        string
	Engine        string
	EngineVersion string
	Endpoint      string
	MemberCount   int
}

// DBInstance is a single database instance.
type DBInstance struct {
	ID        string
	Arn       string
	Status    string
	Engine    string
	Class     string
	Endpoint  string
	Port      int32
	ClusterID string
	AZ        string
}

func dbClusterFromSDK(cl rdsTypes.DBCluster) (DBCluster, bool) {
	if cl.DBClusterIdentifier == nil {
		return DBCluster{}, false
	}
	return DBCluster{
		ID:            *cl.DBClusterIdentifier,
		Arn:           getString(cl.DBClusterArn),
		Status:        getString(cl.Status),
		Engine:        getString(cl.Engine),
		EngineVersion: getString(cl.EngineVersion),
		Endpoint:      getString(cl.Endpoint),
		MemberCount:   len(cl.DBClusterMembers),
	}, true
}

func dbInstanceFromSDK(inst rdsTypes.DBInstance) (DBInstance, bool) {
	if inst.DBInstanceIdentifier == nil {
		return DBInstance{}, false
	}
	out := DBInstance{
		ID:        *inst.DBInstanceIdentifier,
		Arn:       getString(inst.DBInstanceArn),
		Status:    getString(inst.DBInstanceStatus),
		Engine:    getString(inst.Engine),
		Class:     getString(inst.DBInstanceClass),
		ClusterID: getString(inst.DBClusterIdentifier),
		AZ:        getString(inst.AvailabilityZone),
	}
	if inst.Endpoint != nil {
		out.Endpoint = getString(inst.Endpoint.Address)
		out.Port = getInt32Value(inst.Endpoint.Port)
	}
	return out, true
}

// ListDBClusters returns the managed database clusters of a region.
func (c *Client) ListDBClusters(ctx context.Context, region string) ([]DBCluster, error) {
	client := c.rdsClient(region)

	var clusters []DBCluster
	var marker *string
	for {
		out, err := client.DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("failed to describe DB clusters: %w", err)
		}
		for _, cl := range out.DBClusters {
			if cluster, ok := dbClusterFromSDK(cl); ok {
				clusters = append(clusters, cluster)
			}
		}
		if out.Marker == nil {
			break
		}
		marker = out.Marker
	}

	return clusters, nil
}

// ListDBInstances returns all database instances of a region, clustered or
// standalone.
func (c *Client) ListDBInstances(ctx context.Context, region string) ([]DBInstance, error) {
	client := c.rdsClient(region)

	var instances []DBInstance
	var marker *string
	for {
		out, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("failed to describe DB instances: %w", err)
		}
		for _, inst := range out.DBInstances {
			if instance, ok := dbInstanceFromSDK(inst); ok {
				instances = append(instances, instance)
			}
		}
		if out.Marker == nil {
			break
		}
		marker = out.Marker
	}

	return instances, nil
}

// ListDBInstancesForCluster filters the unscoped instance list down to the
// members of one cluster.
func (c *Client) ListDBInstancesForCluster(ctx context.Context, region, clusterID string) ([]DBInstance, error) {
	all, err := c.ListDBInstances(ctx, region)
	if err != nil {
		return nil, err
	}
	return filterDBInstancesByCluster(all, clusterID), nil
}

func filterDBInstancesByCluster(instances []DBInstance, clusterID string) []DBInstance {
	var members []DBInstance
	for _, inst := range instances {
		if inst.ClusterID == clusterID {
			members = append(members, inst)
		}
	}
	return members
}
