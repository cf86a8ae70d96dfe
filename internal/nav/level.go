package nav

// Level is the current position in the drill-down hierarchy. Exactly one
// level is current at any time; leaves have no children and map "select" to
// an action instead of a transition.
type Level int

const (
	LevelRegion Level = iota
	LevelFamily
	// ECS path
	LevelCluster
	LevelService
	LevelTask
	LevelContainer
	// EC2 path
	LevelInstance
	// RDS path
	LevelDBCluster
	LevelDBInstance
)

func (l Level) String() string {
	switch l {
	case LevelRegion:
		return "regions"
	case LevelFamily:
		return "services"
	case LevelCluster:
		return "clusters"
	case LevelService:
		return "ecs-services"
	case LevelTask:
		return "tasks"
	case LevelContainer:
		return "containers"
	case LevelInstance:
		return "instances"
	case LevelDBCluster:
		return "db-clusters"
	case LevelDBInstance:
		return "db-instances"
	default:
		return "unknown"
	}
}

// Prompt is the status line shown when a backward transition lands on l.
func (l Level) Prompt() string {
	switch l {
	case LevelRegion:
		return "Select a region"
	case LevelFamily:
		return "Select a service type"
	case LevelCluster:
		return "Select a cluster"
	case LevelService:
		return "Select a service"
	case LevelTask:
		return "Select a task"
	case LevelDBCluster:
		return "Select a database cluster"
	default:
		return ""
	}
}

// IsLeaf reports whether l has no child level.
func (l Level) IsLeaf() bool {
	return l == LevelContainer || l == LevelInstance || l == LevelDBInstance
}

// Family is the top-level branch choice made once per region visit. It gates
// which subtree of levels is reachable.
type Family int

const (
	FamilyECS Family = iota
	FamilyEC2
	FamilyRDS
)

func (f Family) String() string {
	switch f {
	case FamilyECS:
		return "ECS - Container Services"
	case FamilyEC2:
		return "EC2 - Virtual Machines"
	case FamilyRDS:
		return "RDS - Managed Databases"
	default:
		return "unknown"
	}
}

// Families returns the selectable service families in display order.
func Families() []Family {
	return []Family{FamilyECS, FamilyEC2, FamilyRDS}
}
