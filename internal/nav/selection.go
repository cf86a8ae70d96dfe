package nav

import "github.com/awsdrill/awsdrill/internal/aws"

// Branch holds the ancestor selections of the active service family. The
// union is sealed: each variant carries only the fields meaningful to its
// path, so a selection belonging to an inactive branch cannot exist.
type Branch interface {
	Family() Family
}

// ECSBranch is the container path: cluster, then service, then task. A
// deeper selection is set only while all shallower ones are.
type ECSBranch struct {
	Cluster *aws.ECSCluster
	Service *aws.ECSService
	Task    *aws.ECSTask
}

func (ECSBranch) Family() Family { return FamilyECS }

// EC2Branch is the virtual machine path. Instances sit directly under the
// family choice, so there are no intermediate selections.
type EC2Branch struct{}

func (EC2Branch) Family() Family { return FamilyEC2 }

// RDSBranch is the managed database path: cluster, then instance.
type RDSBranch struct {
	Cluster *aws.DBCluster
}

func (RDSBranch) Family() Family { return FamilyRDS }
