package nav

import (
	"fmt"

	"github.com/awsdrill/awsdrill/internal/aws"
)

// Command is one operator action, already decoded from a keypress.
type Command int

const (
	CmdNext Command = iota
	CmdPrev
	CmdSelect
	CmdBack
	CmdRefresh
	CmdRedeploy
	CmdLeafAction
	CmdToggleInfo
	CmdQuit
)

// Effect is a side effect requested by a transition: a background fetch, a
// deployment trigger, or a terminal handoff. The reducer never performs I/O
// itself; the caller interprets effects and feeds the resulting outcomes
// back through ApplyOutcome.
type Effect interface {
	effect()
}

// Fetch requests one background list call. Target names the level the
// resulting collection belongs to; Gen is the generation current at
// dispatch.
type Fetch struct {
	Gen         uint64
	Target      Level
	Region      string
	ClusterArn  string
	ServiceName string
	TaskArn     string
	DBClusterID string
}

func (Fetch) effect() {}

// RedeployService requests a forced new deployment of a service without a
// level change.
type RedeployService struct {
	Gen         uint64
	Region      string
	ClusterArn  string
	ServiceName string
}

func (RedeployService) effect() {}

// StartExecSession hands the terminal to an interactive ECS Exec session.
type StartExecSession struct {
	Region        string
	ClusterArn    string
	TaskArn       string
	ContainerName string
}

func (StartExecSession) effect() {}

// StartSSHSession hands the terminal to an SSM or SSH session on an
// instance.
type StartSSHSession struct {
	Region   string
	Instance aws.Instance
}

func (StartSSHSession) effect() {}

// OpenDBConsole opens the console page of a database instance in the
// browser.
type OpenDBConsole struct {
	Region     string
	InstanceID string
}

func (OpenDBConsole) effect() {}

// Quit requests program termination.
type Quit struct{}

func (Quit) effect() {}

// Apply is the navigation reducer: it maps a command onto the current state
// and returns the new state plus any effects to run. Pure and synchronous.
func Apply(s State, cmd Command) (State, []Effect) {
	s.Err = ""

	switch cmd {
	case CmdNext:
		return s.next(), nil
	case CmdPrev:
		return s.prev(), nil
	case CmdToggleInfo:
		s.ShowInfo = !s.ShowInfo
		return s, nil
	case CmdSelect:
		return applySelect(s)
	case CmdBack:
		return applyBack(s), nil
	case CmdRefresh:
		return applyRefresh(s)
	case CmdRedeploy:
		return applyRedeploy(s)
	case CmdLeafAction:
		return applyLeafAction(s)
	case CmdQuit:
		return s, []Effect{Quit{}}
	default:
		return s, nil
	}
}

// transitionTo moves to a new level. Every transition resets the cursor,
// bumps the generation (invalidating in-flight fetches), closes the info
// view and replaces the status line.
func (s State) transitionTo(level Level, status string) State {
	s.Level = level
	s.Cursor = 0
	s.Generation++
	s.Loading = false
	s.ShowInfo = false
	s.Status = status
	return s
}

func applySelect(s State) (State, []Effect) {
	switch s.Level {
	case LevelRegion:
		if s.Cursor >= len(s.Regions) {
			return s, nil
		}
		s.Region = s.Regions[s.Cursor]
		return s.transitionTo(LevelFamily, "Select a service type"), nil

	case LevelFamily:
		if s.Cursor >= len(s.Families) {
			return s, nil
		}
		switch s.Families[s.Cursor] {
		case FamilyECS:
			s.Branch = ECSBranch{}
			s = s.transitionTo(LevelCluster, fmt.Sprintf("Loading ECS clusters in %s...", s.Region))
			s.Loading = true
			return s, []Effect{Fetch{Gen: s.Generation, Target: LevelCluster, Region: s.Region}}
		case FamilyEC2:
			s.Branch = EC2Branch{}
			s = s.transitionTo(LevelInstance, fmt.Sprintf("Loading EC2 instances in %s...", s.Region))
			s.Loading = true
			return s, []Effect{Fetch{Gen: s.Generation, Target: LevelInstance, Region: s.Region}}
		case FamilyRDS:
			s.Branch = RDSBranch{}
			s = s.transitionTo(LevelDBCluster, fmt.Sprintf("Loading RDS clusters in %s...", s.Region))
			s.Loading = true
			return s, []Effect{Fetch{Gen: s.Generation, Target: LevelDBCluster, Region: s.Region}}
		}
		return s, nil

	case LevelCluster:
		if s.Cursor >= len(s.Clusters) {
			return s, nil
		}
		b, ok := s.Branch.(ECSBranch)
		if !ok {
			return s, nil
		}
		cluster := s.Clusters[s.Cursor]
		b.Cluster = &cluster
		s.Branch = b
		s = s.transitionTo(LevelService, fmt.Sprintf("Loading services in %s...", cluster.Name))
		s.Loading = true
		return s, []Effect{Fetch{Gen: s.Generation, Target: LevelService, Region: s.Region, ClusterArn: cluster.Arn}}

	case LevelService:
		b, ok := s.Branch.(ECSBranch)
		if !ok || b.Cluster == nil || s.Cursor >= len(s.Services) {
			return s, nil
		}
		service := s.Services[s.Cursor]
		b.Service = &service
		s.Branch = b
		s = s.transitionTo(LevelTask, fmt.Sprintf("Loading tasks for %s...", service.Name))
		s.Loading = true
		return s, []Effect{Fetch{
			Gen: s.Generation, Target: LevelTask,
			Region: s.Region, ClusterArn: b.Cluster.Arn, ServiceName: service.Name,
		}}

	case LevelTask:
		b, ok := s.Branch.(ECSBranch)
		if !ok || b.Cluster == nil || s.Cursor >= len(s.Tasks) {
			return s, nil
		}
		task := s.Tasks[s.Cursor]
		b.Task = &task
		s.Branch = b
		s = s.transitionTo(LevelContainer, fmt.Sprintf("Loading containers for task %s...", task.ID))
		s.Loading = true
		return s, []Effect{Fetch{
			Gen: s.Generation, Target: LevelContainer,
			Region: s.Region, ClusterArn: b.Cluster.Arn, TaskArn: task.Arn,
		}}

	case LevelDBCluster:
		b, ok := s.Branch.(RDSBranch)
		if !ok || s.Cursor >= len(s.DBClusters) {
			return s, nil
		}
		cluster := s.DBClusters[s.Cursor]
		b.Cluster = &cluster
		s.Branch = b
		s = s.transitionTo(LevelDBInstance, fmt.Sprintf("Loading RDS instances for %s...", cluster.ID))
		s.Loading = true
		return s, []Effect{Fetch{
			Gen: s.Generation, Target: LevelDBInstance,
			Region: s.Region, DBClusterID: cluster.ID,
		}}

	case LevelContainer, LevelInstance, LevelDBInstance:
		// Leaves: select triggers the leaf action instead of a transition.
		return applyLeafAction(s)
	}
	return s, nil
}

func applyBack(s State) State {
	if s.ShowInfo {
		s.ShowInfo = false
		return s
	}

	switch s.Level {
	case LevelRegion:
		// Top of the tree.
		return s

	case LevelFamily:
		s.Region = ""
		s.Branch = nil
		// Leftover collections from whichever branch was active.
		s.Clusters, s.Instances, s.DBClusters = nil, nil, nil
		return s.transitionTo(LevelRegion, LevelRegion.Prompt())

	case LevelCluster:
		s.Branch = nil
		s.Clusters = nil
		return s.transitionTo(LevelFamily, LevelFamily.Prompt())

	case LevelService:
		if b, ok := s.Branch.(ECSBranch); ok {
			b.Cluster = nil
			s.Branch = b
		}
		s.Services = nil
		return s.transitionTo(LevelCluster, LevelCluster.Prompt())

	case LevelTask:
		if b, ok := s.Branch.(ECSBranch); ok {
			b.Service = nil
			s.Branch = b
		}
		s.Tasks = nil
		return s.transitionTo(LevelService, LevelService.Prompt())

	case LevelContainer:
		if b, ok := s.Branch.(ECSBranch); ok {
			b.Task = nil
			s.Branch = b
		}
		s.Containers = nil
		return s.transitionTo(LevelTask, LevelTask.Prompt())

	case LevelInstance:
		s.Branch = nil
		s.Instances = nil
		return s.transitionTo(LevelFamily, LevelFamily.Prompt())

	case LevelDBCluster:
		s.Branch = nil
		s.DBClusters = nil
		return s.transitionTo(LevelFamily, LevelFamily.Prompt())

	case LevelDBInstance:
		if b, ok := s.Branch.(RDSBranch); ok {
			b.Cluster = nil
			s.Branch = b
		}
		s.DBInstances = nil
		return s.transitionTo(LevelDBCluster, LevelDBCluster.Prompt())
	}
	return s
}

// applyRefresh re-issues the fetch for the current level without a level
// change. It reuses the current generation: a still-airborne fetch for this
// level stays valid, and whichever completion arrives last wins.
func applyRefresh(s State) (State, []Effect) {
	fetch := Fetch{Gen: s.Generation, Region: s.Region}

	switch s.Level {
	case LevelRegion, LevelFamily:
		// Static collections, nothing to refresh.
		return s, nil

	case LevelCluster:
		fetch.Target = LevelCluster
		s.Status = fmt.Sprintf("Loading ECS clusters in %s...", s.Region)

	case LevelService:
		b, ok := s.Branch.(ECSBranch)
		if !ok || b.Cluster == nil {
			return s, nil
		}
		fetch.Target = LevelService
		fetch.ClusterArn = b.Cluster.Arn
		s.Status = fmt.Sprintf("Loading services in %s...", b.Cluster.Name)

	case LevelTask:
		b, ok := s.Branch.(ECSBranch)
		if !ok || b.Cluster == nil || b.Service == nil {
			return s, nil
		}
		fetch.Target = LevelTask
		fetch.ClusterArn = b.Cluster.Arn
		fetch.ServiceName = b.Service.Name
		s.Status = fmt.Sprintf("Loading tasks for %s...", b.Service.Name)

	case LevelContainer:
		b, ok := s.Branch.(ECSBranch)
		if !ok || b.Cluster == nil || b.Task == nil {
			return s, nil
		}
		fetch.Target = LevelContainer
		fetch.ClusterArn = b.Cluster.Arn
		fetch.TaskArn = b.Task.Arn
		s.Status = fmt.Sprintf("Loading containers for task %s...", b.Task.ID)

	case LevelInstance:
		fetch.Target = LevelInstance
		s.Status = fmt.Sprintf("Loading EC2 instances in %s...", s.Region)

	case LevelDBCluster:
		fetch.Target = LevelDBCluster
		s.Status = fmt.Sprintf("Loading RDS clusters in %s...", s.Region)

	case LevelDBInstance:
		b, ok := s.Branch.(RDSBranch)
		if !ok || b.Cluster == nil {
			return s, nil
		}
		fetch.Target = LevelDBInstance
		fetch.DBClusterID = b.Cluster.ID
		s.Status = fmt.Sprintf("Loading RDS instances for %s...", b.Cluster.ID)

	default:
		return s, nil
	}

	s.Cursor = 0
	s.Loading = true
	return s, []Effect{fetch}
}

func applyRedeploy(s State) (State, []Effect) {
	if s.Level != LevelService || s.Cursor >= len(s.Services) {
		return s, nil
	}
	b, ok := s.Branch.(ECSBranch)
	if !ok || b.Cluster == nil {
		return s, nil
	}
	service := s.Services[s.Cursor]
	s.Loading = true
	s.Status = fmt.Sprintf("Triggering deployment for %s...", service.Name)
	return s, []Effect{RedeployService{
		Gen:         s.Generation,
		Region:      s.Region,
		ClusterArn:  b.Cluster.Arn,
		ServiceName: service.Name,
	}}
}

func applyLeafAction(s State) (State, []Effect) {
	switch s.Level {
	case LevelContainer:
		b, ok := s.Branch.(ECSBranch)
		if !ok || b.Cluster == nil || b.Task == nil || s.Cursor >= len(s.Containers) {
			return s, nil
		}
		container := s.Containers[s.Cursor]
		s.Status = fmt.Sprintf("Starting ECS Exec session for %s...", container.Name)
		return s, []Effect{StartExecSession{
			Region:        s.Region,
			ClusterArn:    b.Cluster.Arn,
			TaskArn:       b.Task.Arn,
			ContainerName: container.Name,
		}}

	case LevelInstance:
		if s.Cursor >= len(s.Instances) {
			return s, nil
		}
		instance := s.Instances[s.Cursor]
		s.Status = fmt.Sprintf("Starting session to %s...", instance.ID)
		return s, []Effect{StartSSHSession{Region: s.Region, Instance: instance}}

	case LevelDBInstance:
		if s.Cursor >= len(s.DBInstances) {
			return s, nil
		}
		instance := s.DBInstances[s.Cursor]
		s.Status = fmt.Sprintf("Opening %s in the AWS console...", instance.ID)
		return s, []Effect{OpenDBConsole{Region: s.Region, InstanceID: instance.ID}}
	}
	return s, nil
}
