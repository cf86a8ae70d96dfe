package aws

import (
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
)

func TestDBClusterFromSDK(t *testing.T) {
	cluster, ok := dbClusterFromSDK(rdsTypes.DBCluster{
		DBClusterIdentifier: sdkaws.String("aurora-prod"),
		Status:              sdkaws.String("available"),
		Engine:              sdkaws.String("aurora-postgresql"),
		EngineVersion:       sdkaws.String("15.4"),
		Endpoint:            sdkaws.String("aurora-prod.cluster-abc.us-east-1.rds.amazonaws.com"),
		DBClusterMembers: []rdsTypes.DBClusterMember{
			{DBInstanceIdentifier: sdkaws.String("aurora-prod-1")},
			{DBInstanceIdentifier: sdkaws.String("aurora-prod-2")},
		},
	})

	if !ok {
		t.Fatal("Expected conversion to succeed")
	}
	if cluster.ID != "aurora-prod" {
		t.Errorf("Expected ID 'aurora-prod', got '%s'", cluster.ID)
	}
	if cluster.MemberCount != 2 {
		t.Errorf("Expected 2 members, got %d", cluster.MemberCount)
	}
}

func TestDBClusterFromSDKDropsMalformed(t *testing.T) {
	if _, ok := dbClusterFromSDK(rdsTypes.DBCluster{Status: sdkaws.String("available")}); ok {
		t.Error("Expected cluster without an identifier to be dropped")
	}
}

func TestDBInstanceFromSDK(t *testing.T) {
	inst, ok := dbInstanceFromSDK(rdsTypes.DBInstance{
		DBInstanceIdentifier: sdkaws.String("aurora-prod-1"),
		DBInstanceStatus:     sdkaws.String("available"),
		Engine:               sdkaws.String("aurora-postgresql"),
		DBInstanceClass:      sdkaws.String("db.r6g.large"),
		DBClusterIdentifier:  sdkaws.String("aurora-prod"),
		Endpoint: &rdsTypes.Endpoint{
			Address: sdkaws.String("aurora-prod-1.abc.us-east-1.rds.amazonaws.com"),
			Port:    sdkaws.Int32(5432),
		},
	})

	if !ok {
		t.Fatal("Expected conversion to succeed")
	}
	if inst.Port != 5432 {
		t.Errorf("Expected port 5432, got %d", inst.Port)
	}
	if inst.ClusterID != "aurora-prod" {
		t.Errorf("Expected cluster ID 'aurora-prod', got '%s'", inst.ClusterID)
	}
}

func TestDBInstanceFromSDKWithoutEndpoint(t *testing.T) {
	// Instances still being created have no endpoint yet.
	inst, ok := dbInstanceFromSDK(rdsTypes.DBInstance{
		DBInstanceIdentifier: sdkaws.String("aurora-prod-1"),
		DBInstanceStatus:     sdkaws.String("creating"),
	})

	if !ok {
		t.Fatal("Expected conversion to succeed")
	}
	if inst.Endpoint != "" || inst.Port != 0 {
		t.Errorf("Expected empty endpoint, got '%s:%d'", inst.Endpoint, inst.Port)
	}
}

func TestFilterDBInstancesByCluster(t *testing.T) {
	instances := []DBInstance{
		{ID: "aurora-prod-1", ClusterID: "aurora-prod"},
		{ID: "standalone", ClusterID: ""},
		{ID: "aurora-prod-2", ClusterID: "aurora-prod"},
		{ID: "other-1", ClusterID: "other"},
	}

	members := filterDBInstancesByCluster(instances, "aurora-prod")

	if len(members) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(members))
	}
	if members[0].ID != "aurora-prod-1" || members[1].ID != "aurora-prod-2" {
		t.Errorf("Unexpected members: %+v", members)
	}

	if got := filterDBInstancesByCluster(instances, "missing"); len(got) != 0 {
		t.Errorf("Expected no members for unknown cluster, got %d", len(got))
	}
}
