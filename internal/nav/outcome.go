package nav

import (
	"fmt"

	"github.com/awsdrill/awsdrill/internal/aws"
)

// Outcome is the one-shot result of this background effect. Every outcome
// carries the generation that was current when its fetch was dispatched;
// ApplyOutcome drops outcomes from a generation the operator has since
// navigated away from.
type Outcome interface {
	generation() uint64
}

type ClustersLoaded struct {
	Gen      uint64
	Clusters []aws.ECSCluster
}

type ServicesLoaded struct {
	Gen      uint64
	Services []aws.ECSService
}

type TasksLoaded struct {
	Gen   uint64
	Tasks []aws.ECSTask
}

type ContainersLoaded struct {
	Gen        uint64
	Containers []aws.ECSContainer
}

type InstancesLoaded struct {
	Gen       uint64
	Instances []aws.Instance
}

type DBClustersLoaded struct {
	Gen      uint64
	Clusters []aws.DBCluster
}

type DBInstancesLoaded struct {
	Gen       uint64
	Instances []aws.DBInstance
}

type DeploymentTriggered struct {
	Gen     uint64
	Service string
}

type FetchFailed struct {
	Gen     uint64
	Message string
}

func (o ClustersLoaded) generation() uint64      { return o.Gen }
func (o ServicesLoaded) generation() uint64      { return o.Gen }
func (o TasksLoaded) generation() uint64         { return o.Gen }
func (o ContainersLoaded) generation() uint64    { return o.Gen }
func (o InstancesLoaded) generation() uint64     { return o.Gen }
func (o DBClustersLoaded) generation() uint64    { return o.Gen }
func (o DBInstancesLoaded) generation() uint64   { return o.Gen }
func (o DeploymentTriggered) generation() uint64 { return o.Gen }
func (o FetchFailed) generation() uint64         { return o.Gen }

// ApplyOutcome reconciles a completed background effect with the current
// state. A success replaces the target collection and resets the cursor; a
// failure only surfaces the message, leaving level and collections exactly
// where they were. Stale outcomes are dropped unchanged.
func ApplyOutcome(s State, o Outcome) State {
	if o.generation() != s.Generation {
		return s
	}

	switch o := o.(type) {
	case ClustersLoaded:
		s.Clusters = o.Clusters
		s.Services, s.Tasks, s.Containers = nil, nil, nil
		s = s.landOn(LevelCluster)
		s.Status = fmt.Sprintf("Found %d clusters", len(o.Clusters))

	case ServicesLoaded:
		s.Services = o.Services
		s.Tasks, s.Containers = nil, nil
		s = s.landOn(LevelService)
		s.Status = fmt.Sprintf("Found %d services", len(o.Services))

	case TasksLoaded:
		s.Tasks = o.Tasks
		s.Containers = nil
		s = s.landOn(LevelTask)
		s.Status = fmt.Sprintf("Found %d tasks", len(o.Tasks))

	case ContainersLoaded:
		s.Containers = o.Containers
		s = s.landOn(LevelContainer)
		s.Status = fmt.Sprintf("Found %d containers", len(o.Containers))

	case InstancesLoaded:
		s.Instances = o.Instances
		s = s.landOn(LevelInstance)
		s.Status = fmt.Sprintf("Found %d EC2 instances", len(o.Instances))

	case DBClustersLoaded:
		s.DBClusters = o.Clusters
		s.DBInstances = nil
		s = s.landOn(LevelDBCluster)
		s.Status = fmt.Sprintf("Found %d database clusters", len(o.Clusters))

	case DBInstancesLoaded:
		s.DBInstances = o.Instances
		s = s.landOn(LevelDBInstance)
		s.Status = fmt.Sprintf("Found %d database instances", len(o.Instances))

	case DeploymentTriggered:
		s.Loading = false
		s.Status = fmt.Sprintf("Deployment triggered for %s", o.Service)

	case FetchFailed:
		s.Loading = false
		s.Err = o.Message
		s.Status = "Error occurred"
	}

	return s
}

// landOn settles on the level implied by a success payload without bumping
// the generation: arriving data is not a navigation step.
func (s State) landOn(level Level) State {
	s.Level = level
	s.Cursor = 0
	s.Loading = false
	return s
}
