package nav

import "github.com/awsdrill/awsdrill/internal/aws"

// State is the complete navigation state. It is a value: Apply and
// ApplyOutcome take a State and return a new one, so the state machine can
// be exercised without a provider or a terminal. The surrounding program
// owns the single authoritative copy and mutates it only on its event loop.
type State struct {
	Level  Level
	Region string
	Branch Branch // nil until a service family is chosen

	// Cached collections, one per level. A collection is populated only
	// while the current level is at or below it within the same branch;
	// backward transitions tear it down.
	Regions     []string
	Families    []Family
	Clusters    []aws.ECSCluster
	Services    []aws.ECSService
	Tasks       []aws.ECSTask
	Containers  []aws.ECSContainer
	Instances   []aws.Instance
	DBClusters  []aws.DBCluster
	DBInstances []aws.DBInstance

	// Cursor indexes the current level's collection; 0 when it is empty.
	Cursor int

	// Loading is true while a fetch for the current transition is
	// outstanding. Generation increments on every level transition; outcome
	// events carry the generation current at dispatch and stale ones are
	// discarded, so an abandoned fetch cannot overwrite the current level.
	Loading    bool
	Generation uint64

	Status   string
	Err      string
	ShowInfo bool
}

// NewState returns the initial state at region level.
func NewState(regions []string) State {
	return State{
		Level:    LevelRegion,
		Regions:  regions,
		Families: Families(),
		Status:   "Select a region to begin",
	}
}

// Count returns the number of items in the current level's collection.
func (s State) Count() int {
	switch s.Level {
	case LevelRegion:
		return len(s.Regions)
	case LevelFamily:
		return len(s.Families)
	case LevelCluster:
		return len(s.Clusters)
	case LevelService:
		return len(s.Services)
	case LevelTask:
		return len(s.Tasks)
	case LevelContainer:
		return len(s.Containers)
	case LevelInstance:
		return len(s.Instances)
	case LevelDBCluster:
		return len(s.DBClusters)
	case LevelDBInstance:
		return len(s.DBInstances)
	default:
		return 0
	}
}

// next advances the cursor with wraparound; no-op on an empty collection.
func (s State) next() State {
	if count := s.Count(); count > 0 {
		s.Cursor = (s.Cursor + 1) % count
	}
	return s
}

// prev retreats the cursor with wraparound; no-op on an empty collection.
func (s State) prev() State {
	count := s.Count()
	if count == 0 {
		return s
	}
	if s.Cursor == 0 {
		s.Cursor = count - 1
	} else {
		s.Cursor--
	}
	return s
}
