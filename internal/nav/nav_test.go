package nav

import (
	"fmt"
	"testing"

	"github.com/awsdrill/awsdrill/internal/aws"
)

func newTestState() State {
	return NewState([]string{"us-east-1", "eu-west-1"})
}

// drillToClusters selects us-east-1 and the ECS family, then delivers the
// cluster list, leaving the state settled at cluster level.
func drillToClusters(t *testing.T, clusters []aws.ECSCluster) State {
	t.Helper()
	s := newTestState()
	s, _ = Apply(s, CmdSelect) // us-east-1
	s, effects := Apply(s, CmdSelect)
	if len(effects) != 1 {
		t.Fatalf("Expected 1 fetch effect, got %d", len(effects))
	}
	return ApplyOutcome(s, ClustersLoaded{Gen: s.Generation, Clusters: clusters})
}

func drillToServices(t *testing.T, services []aws.ECSService) State {
	t.Helper()
	s := drillToClusters(t, []aws.ECSCluster{
		{Name: "prod", Arn: "arn:aws:ecs:us-east-1:123:cluster/prod"},
	})
	s, _ = Apply(s, CmdSelect)
	return ApplyOutcome(s, ServicesLoaded{Gen: s.Generation, Services: services})
}

func TestInitialState(t *testing.T) {
	s := newTestState()

	if s.Level != LevelRegion {
		t.Errorf("Expected region level, got %s", s.Level)
	}
	if s.Status != "Select a region to begin" {
		t.Errorf("Unexpected initial status: %q", s.Status)
	}
	if s.Cursor != 0 || s.Loading {
		t.Errorf("Expected idle cursor at 0, got cursor=%d loading=%t", s.Cursor, s.Loading)
	}
}

func TestCursorWraparound(t *testing.T) {
	s := newTestState() // 2 regions

	s, _ = Apply(s, CmdNext)
	if s.Cursor != 1 {
		t.Errorf("Expected cursor 1, got %d", s.Cursor)
	}
	s, _ = Apply(s, CmdNext)
	if s.Cursor != 0 {
		t.Errorf("Expected cursor to wrap to 0, got %d", s.Cursor)
	}
	s, _ = Apply(s, CmdPrev)
	if s.Cursor != 1 {
		t.Errorf("Expected cursor to wrap back to 1, got %d", s.Cursor)
	}
}

func TestCursorFullCycleReturnsToStart(t *testing.T) {
	// Advancing exactly count times is the identity, whatever the count and
	// wherever the cursor starts. Same for retreating.
	for _, count := range []int{1, 2, 3, 5, 8} {
		regions := make([]string, count)
		for i := range regions {
			regions[i] = fmt.Sprintf("region-%d", i)
		}
		s := NewState(regions)
		s.Cursor = count / 2
		start := s.Cursor

		for i := 0; i < count; i++ {
			s, _ = Apply(s, CmdNext)
		}
		if s.Cursor != start {
			t.Errorf("count=%d: expected cursor back at %d after a full forward cycle, got %d", count, start, s.Cursor)
		}

		for i := 0; i < count; i++ {
			s, _ = Apply(s, CmdPrev)
		}
		if s.Cursor != start {
			t.Errorf("count=%d: expected cursor back at %d after a full backward cycle, got %d", count, start, s.Cursor)
		}
	}
}

func TestCursorOnEmptyCollection(t *testing.T) {
	s := NewState(nil)

	s, _ = Apply(s, CmdNext)
	if s.Cursor != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", s.Cursor)
	}
	s, _ = Apply(s, CmdPrev)
	if s.Cursor != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", s.Cursor)
	}
}

func TestSelectRegion(t *testing.T) {
	s := newTestState()
	before := s.Generation

	s, effects := Apply(s, CmdSelect)

	if len(effects) != 0 {
		t.Errorf("Expected no effects, got %d", len(effects))
	}
	if s.Level != LevelFamily {
		t.Errorf("Expected family level, got %s", s.Level)
	}
	if s.Region != "us-east-1" {
		t.Errorf("Expected region us-east-1, got %q", s.Region)
	}
	if s.Status != "Select a service type" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if s.Generation != before+1 {
		t.Errorf("Expected generation bump, got %d -> %d", before, s.Generation)
	}
}

func TestSelectECSFamily(t *testing.T) {
	s := newTestState()
	s, _ = Apply(s, CmdSelect)

	s, effects := Apply(s, CmdSelect) // cursor 0 = ECS

	if s.Level != LevelCluster {
		t.Errorf("Expected cluster level at dispatch, got %s", s.Level)
	}
	if !s.Loading {
		t.Error("Expected loading to be set")
	}
	if s.Status != "Loading ECS clusters in us-east-1..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	fetch, ok := effects[0].(Fetch)
	if !ok {
		t.Fatalf("Expected Fetch effect, got %T", effects[0])
	}
	if fetch.Target != LevelCluster || fetch.Region != "us-east-1" || fetch.Gen != s.Generation {
		t.Errorf("Unexpected fetch: %+v", fetch)
	}
}

func TestClustersLoaded(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "a", Arn: "arn-a"}, {Name: "b", Arn: "arn-b"}})

	if s.Level != LevelCluster {
		t.Errorf("Expected cluster level, got %s", s.Level)
	}
	if s.Loading {
		t.Error("Expected loading cleared")
	}
	if s.Status != "Found 2 clusters" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if s.Cursor != 0 {
		t.Errorf("Expected cursor reset, got %d", s.Cursor)
	}
	if len(s.Clusters) != 2 {
		t.Errorf("Expected 2 clusters, got %d", len(s.Clusters))
	}
}

func TestStaleOutcomeDropped(t *testing.T) {
	s := newTestState()
	s, _ = Apply(s, CmdSelect)
	s, _ = Apply(s, CmdSelect) // ECS, fetch in flight
	staleGen := s.Generation

	// Navigate away before the fetch lands. The back transition bumps the
	// generation, so the airborne result must be discarded.
	s = applyBack(s)
	after := ApplyOutcome(s, ClustersLoaded{Gen: staleGen, Clusters: []aws.ECSCluster{{Name: "late", Arn: "arn"}}})

	if after.Level != LevelFamily {
		t.Errorf("Expected family level, got %s", after.Level)
	}
	if len(after.Clusters) != 0 {
		t.Errorf("Expected stale clusters dropped, got %d", len(after.Clusters))
	}
	if after.Status != "Select a service type" {
		t.Errorf("Unexpected status: %q", after.Status)
	}
}

func TestSameGenerationLaterCompletionWins(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})
	s, _ = Apply(s, CmdSelect) // services loading
	gen := s.Generation

	// A refresh at the same level reuses the generation, so two fetches for
	// this level can be airborne at once. Whichever completes last wins.
	s, effects := Apply(s, CmdRefresh)
	if len(effects) != 1 || effects[0].(Fetch).Gen != gen {
		t.Fatalf("Expected refresh to reuse generation %d, got %+v", gen, effects)
	}

	first := []aws.ECSService{{Name: "svc-old", Arn: "arn-old"}}
	second := []aws.ECSService{{Name: "svc-new", Arn: "arn-new"}, {Name: "svc-two", Arn: "arn-two"}}
	s = ApplyOutcome(s, ServicesLoaded{Gen: gen, Services: first})
	s = ApplyOutcome(s, ServicesLoaded{Gen: gen, Services: second})

	if len(s.Services) != 2 || s.Services[0].Name != "svc-new" {
		t.Errorf("Expected later completion to win, got %+v", s.Services)
	}
	if s.Status != "Found 2 services" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
}

func TestFetchFailed(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})
	s, _ = Apply(s, CmdSelect) // services loading

	s = ApplyOutcome(s, FetchFailed{Gen: s.Generation, Message: "Failed to load services: throttled"})

	if s.Loading {
		t.Error("Expected loading cleared on failure")
	}
	if s.Level != LevelService {
		t.Errorf("Expected level unchanged, got %s", s.Level)
	}
	if s.Err != "Failed to load services: throttled" {
		t.Errorf("Unexpected error: %q", s.Err)
	}
	if s.Status != "Error occurred" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	// The cluster collection survives; only the failed level is empty.
	if len(s.Clusters) != 1 {
		t.Errorf("Expected clusters retained, got %d", len(s.Clusters))
	}
}

func TestErrClearedOnNextCommand(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})
	s.Err = "Failed to load services: throttled"

	s, _ = Apply(s, CmdNext)

	if s.Err != "" {
		t.Errorf("Expected error cleared, got %q", s.Err)
	}
}

func TestBackFromService(t *testing.T) {
	s := drillToServices(t, []aws.ECSService{{Name: "api", Arn: "arn-api"}})

	s, _ = Apply(s, CmdBack)

	if s.Level != LevelCluster {
		t.Errorf("Expected cluster level, got %s", s.Level)
	}
	if s.Services != nil {
		t.Errorf("Expected services cleared, got %d", len(s.Services))
	}
	if len(s.Clusters) != 1 {
		t.Errorf("Expected clusters retained, got %d", len(s.Clusters))
	}
	b, ok := s.Branch.(ECSBranch)
	if !ok || b.Cluster != nil {
		t.Errorf("Expected cluster selection cleared, got %+v", s.Branch)
	}
	if s.Status != "Select a cluster" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
}

func TestBackRoundTripToRegion(t *testing.T) {
	s := drillToServices(t, []aws.ECSService{{Name: "api", Arn: "arn-api"}})

	s, _ = Apply(s, CmdBack) // to clusters
	s, _ = Apply(s, CmdBack) // to family
	s, _ = Apply(s, CmdBack) // to regions

	if s.Level != LevelRegion {
		t.Errorf("Expected region level, got %s", s.Level)
	}
	if s.Region != "" {
		t.Errorf("Expected region cleared, got %q", s.Region)
	}
	if s.Branch != nil {
		t.Errorf("Expected branch cleared, got %+v", s.Branch)
	}
	if s.Clusters != nil || s.Services != nil {
		t.Error("Expected collections torn down")
	}
	if len(s.Regions) != 2 {
		t.Errorf("Expected regions retained, got %d", len(s.Regions))
	}
}

func TestBackAtRegionIsNoop(t *testing.T) {
	s := newTestState()
	s.Cursor = 1

	after, _ := Apply(s, CmdBack)

	if after.Level != LevelRegion || after.Cursor != 1 {
		t.Errorf("Expected no-op, got level=%s cursor=%d", after.Level, after.Cursor)
	}
}

func TestBackClosesInfoViewFirst(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})
	s, _ = Apply(s, CmdToggleInfo)
	if !s.ShowInfo {
		t.Fatal("Expected info view open")
	}

	s, _ = Apply(s, CmdBack)

	if s.ShowInfo {
		t.Error("Expected info view closed")
	}
	if s.Level != LevelCluster {
		t.Errorf("Expected back to only close the info view, got level %s", s.Level)
	}
}

func TestRefreshReusesGeneration(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "a", Arn: "arn-a"}, {Name: "b", Arn: "arn-b"}})
	s.Cursor = 1
	gen := s.Generation

	s, effects := Apply(s, CmdRefresh)

	if s.Generation != gen {
		t.Errorf("Expected generation unchanged, got %d -> %d", gen, s.Generation)
	}
	if !s.Loading || s.Cursor != 0 {
		t.Errorf("Expected loading with cursor reset, got loading=%t cursor=%d", s.Loading, s.Cursor)
	}
	if s.Status != "Loading ECS clusters in us-east-1..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	if fetch := effects[0].(Fetch); fetch.Target != LevelCluster || fetch.Gen != gen {
		t.Errorf("Unexpected fetch: %+v", fetch)
	}
}

func TestRefreshAtStaticLevelsIsNoop(t *testing.T) {
	s := newTestState()
	s, effects := Apply(s, CmdRefresh)
	if len(effects) != 0 || s.Loading {
		t.Errorf("Expected no-op at region level, got %d effects", len(effects))
	}

	s, _ = Apply(s, CmdSelect)
	s, effects = Apply(s, CmdRefresh)
	if len(effects) != 0 || s.Loading {
		t.Errorf("Expected no-op at family level, got %d effects", len(effects))
	}
}

func TestRedeploy(t *testing.T) {
	s := drillToServices(t, []aws.ECSService{{Name: "api", Arn: "arn-api"}})

	s, effects := Apply(s, CmdRedeploy)

	if s.Status != "Triggering deployment for api..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	redeploy, ok := effects[0].(RedeployService)
	if !ok {
		t.Fatalf("Expected RedeployService effect, got %T", effects[0])
	}
	if redeploy.ServiceName != "api" || redeploy.ClusterArn != "arn:aws:ecs:us-east-1:123:cluster/prod" {
		t.Errorf("Unexpected redeploy: %+v", redeploy)
	}

	s = ApplyOutcome(s, DeploymentTriggered{Gen: s.Generation, Service: "api"})
	if s.Status != "Deployment triggered for api" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if s.Loading {
		t.Error("Expected loading cleared")
	}
	if s.Level != LevelService {
		t.Errorf("Expected level unchanged, got %s", s.Level)
	}
}

func TestRedeployOutsideServiceLevelIsNoop(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})

	after, effects := Apply(s, CmdRedeploy)

	if len(effects) != 0 {
		t.Errorf("Expected no effects, got %d", len(effects))
	}
	if after.Status != s.Status {
		t.Errorf("Expected status unchanged, got %q", after.Status)
	}
}

func TestEC2Path(t *testing.T) {
	s := newTestState()
	s, _ = Apply(s, CmdSelect)
	s.Cursor = 1 // EC2

	s, effects := Apply(s, CmdSelect)

	if s.Level != LevelInstance {
		t.Errorf("Expected instance level, got %s", s.Level)
	}
	if s.Status != "Loading EC2 instances in us-east-1..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 || effects[0].(Fetch).Target != LevelInstance {
		t.Fatalf("Unexpected effects: %+v", effects)
	}

	s = ApplyOutcome(s, InstancesLoaded{Gen: s.Generation, Instances: []aws.Instance{
		{ID: "i-0abc", Name: "web"},
		{ID: "i-0def", Name: "worker"},
	}})
	if s.Status != "Found 2 EC2 instances" {
		t.Errorf("Unexpected status: %q", s.Status)
	}

	// Instances sit directly under the family choice.
	s, _ = Apply(s, CmdBack)
	if s.Level != LevelFamily {
		t.Errorf("Expected family level, got %s", s.Level)
	}
	if s.Instances != nil {
		t.Error("Expected instances cleared")
	}
}

func TestRDSPath(t *testing.T) {
	s := newTestState()
	s, _ = Apply(s, CmdSelect)
	s.Cursor = 2 // RDS

	s, _ = Apply(s, CmdSelect)
	if s.Level != LevelDBCluster {
		t.Errorf("Expected db cluster level, got %s", s.Level)
	}
	if s.Status != "Loading RDS clusters in us-east-1..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}

	s = ApplyOutcome(s, DBClustersLoaded{Gen: s.Generation, Clusters: []aws.DBCluster{
		{ID: "aurora-prod", Arn: "arn-aurora"},
	}})
	if s.Status != "Found 1 database clusters" {
		t.Errorf("Unexpected status: %q", s.Status)
	}

	s, effects := Apply(s, CmdSelect)
	if s.Level != LevelDBInstance {
		t.Errorf("Expected db instance level, got %s", s.Level)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	if fetch := effects[0].(Fetch); fetch.Target != LevelDBInstance || fetch.DBClusterID != "aurora-prod" {
		t.Errorf("Unexpected fetch: %+v", fetch)
	}

	s = ApplyOutcome(s, DBInstancesLoaded{Gen: s.Generation, Instances: []aws.DBInstance{
		{ID: "aurora-prod-1"},
	}})
	if s.Status != "Found 1 database instances" {
		t.Errorf("Unexpected status: %q", s.Status)
	}
}

func TestContainerLeafAction(t *testing.T) {
	s := drillToServices(t, []aws.ECSService{{Name: "api", Arn: "arn-api"}})
	s, _ = Apply(s, CmdSelect)
	s = ApplyOutcome(s, TasksLoaded{Gen: s.Generation, Tasks: []aws.ECSTask{
		{Arn: "arn:aws:ecs:us-east-1:123:task/prod/abc123", ID: "abc123"},
	}})
	s, _ = Apply(s, CmdSelect)
	s = ApplyOutcome(s, ContainersLoaded{Gen: s.Generation, Containers: []aws.ECSContainer{
		{Name: "app", Image: "app:latest"},
	}})

	s, effects := Apply(s, CmdSelect)

	if s.Status != "Starting ECS Exec session for app..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	sess, ok := effects[0].(StartExecSession)
	if !ok {
		t.Fatalf("Expected StartExecSession, got %T", effects[0])
	}
	if sess.ContainerName != "app" || sess.TaskArn != "arn:aws:ecs:us-east-1:123:task/prod/abc123" {
		t.Errorf("Unexpected session: %+v", sess)
	}
}

func TestInstanceLeafAction(t *testing.T) {
	s := newTestState()
	s, _ = Apply(s, CmdSelect)
	s.Cursor = 1
	s, _ = Apply(s, CmdSelect)
	s = ApplyOutcome(s, InstancesLoaded{Gen: s.Generation, Instances: []aws.Instance{
		{ID: "i-0abc", SSMManaged: true},
	}})

	s, effects := Apply(s, CmdLeafAction)

	if s.Status != "Starting session to i-0abc..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	sess, ok := effects[0].(StartSSHSession)
	if !ok {
		t.Fatalf("Expected StartSSHSession, got %T", effects[0])
	}
	if sess.Instance.ID != "i-0abc" || sess.Region != "us-east-1" {
		t.Errorf("Unexpected session: %+v", sess)
	}
}

func TestDBInstanceLeafAction(t *testing.T) {
	s := newTestState()
	s, _ = Apply(s, CmdSelect)
	s.Cursor = 2
	s, _ = Apply(s, CmdSelect)
	s = ApplyOutcome(s, DBClustersLoaded{Gen: s.Generation, Clusters: []aws.DBCluster{{ID: "aurora-prod"}}})
	s, _ = Apply(s, CmdSelect)
	s = ApplyOutcome(s, DBInstancesLoaded{Gen: s.Generation, Instances: []aws.DBInstance{{ID: "aurora-prod-1"}}})

	s, effects := Apply(s, CmdSelect)

	if s.Status != "Opening aurora-prod-1 in the AWS console..." {
		t.Errorf("Unexpected status: %q", s.Status)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	console, ok := effects[0].(OpenDBConsole)
	if !ok {
		t.Fatalf("Expected OpenDBConsole, got %T", effects[0])
	}
	if console.InstanceID != "aurora-prod-1" {
		t.Errorf("Unexpected console effect: %+v", console)
	}
}

func TestSelectOnEmptyCollectionIsNoop(t *testing.T) {
	s := drillToClusters(t, nil)

	after, effects := Apply(s, CmdSelect)

	if len(effects) != 0 {
		t.Errorf("Expected no effects, got %d", len(effects))
	}
	if after.Level != LevelCluster {
		t.Errorf("Expected level unchanged, got %s", after.Level)
	}
}

func TestTransitionClosesInfoView(t *testing.T) {
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})
	s, _ = Apply(s, CmdToggleInfo)

	s, _ = Apply(s, CmdSelect)

	if s.ShowInfo {
		t.Error("Expected info view closed on transition")
	}
}

func TestQuit(t *testing.T) {
	s := newTestState()

	_, effects := Apply(s, CmdQuit)

	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	if _, ok := effects[0].(Quit); !ok {
		t.Errorf("Expected Quit effect, got %T", effects[0])
	}
}

func TestDeeperSelectionRequiresShallower(t *testing.T) {
	// A task select without a recorded cluster must not dispatch anything.
	s := drillToClusters(t, []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}})
	s.Level = LevelTask
	s.Tasks = []aws.ECSTask{{Arn: "arn-task", ID: "abc"}}
	s.Branch = ECSBranch{}

	_, effects := Apply(s, CmdSelect)

	if len(effects) != 0 {
		t.Errorf("Expected no effects without a cluster selection, got %d", len(effects))
	}
}
