package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/awsdrill/awsdrill/internal/aws"
	"github.com/awsdrill/awsdrill/internal/config"
	"github.com/awsdrill/awsdrill/internal/nav"
)

func newTestModel() Model {
	return New(nil, &config.Config{Regions: []string{"us-east-1"}}, zerolog.Nop())
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyCommand(t *testing.T) {
	cases := map[string]nav.Command{
		"j":         nav.CmdNext,
		"down":      nav.CmdNext,
		"k":         nav.CmdPrev,
		"up":        nav.CmdPrev,
		"enter":     nav.CmdSelect,
		"esc":       nav.CmdBack,
		"backspace": nav.CmdBack,
		"r":         nav.CmdRefresh,
		"d":         nav.CmdRedeploy,
		"e":         nav.CmdLeafAction,
		"s":         nav.CmdLeafAction,
		"i":         nav.CmdToggleInfo,
		"q":         nav.CmdQuit,
	}
	for key, want := range cases {
		got, ok := keyCommand(key)
		if !ok {
			t.Errorf("Expected %q to decode, got none", key)
			continue
		}
		if got != want {
			t.Errorf("Expected %q to decode to %d, got %d", key, want, got)
		}
	}

	if _, ok := keyCommand("x"); ok {
		t.Error("Expected unbound key to decode to nothing")
	}
}

func TestCursorMoveRefreshesInfoView(t *testing.T) {
	m := newTestModel()
	m.state = nav.State{
		Level:    nav.LevelTask,
		Region:   "us-east-1",
		Branch:   nav.ECSBranch{Cluster: &aws.ECSCluster{Name: "prod", Arn: "arn-prod"}},
		Tasks:    []aws.ECSTask{{Arn: "arn-a", ID: "task-a"}, {Arn: "arn-b", ID: "task-b"}},
		ShowInfo: true,
	}
	m.taskLogs = []aws.LogStream{{Container: "app", LogStream: "prefix/app/task-a"}}

	model, cmd := m.handleKey(keyPress('j'))
	got := model.(Model)

	if got.state.Cursor != 1 {
		t.Fatalf("Expected cursor 1, got %d", got.state.Cursor)
	}
	if !got.state.ShowInfo {
		t.Error("Expected info view to stay open")
	}
	// The previous task's logs must not render under the new selection.
	if got.taskLogs != nil {
		t.Errorf("Expected cached logs dropped on cursor move, got %+v", got.taskLogs)
	}
	if cmd == nil {
		t.Error("Expected a reload command for the new selection")
	}
}

func TestCursorMoveRefreshesInstanceMetrics(t *testing.T) {
	m := newTestModel()
	m.state = nav.State{
		Level:     nav.LevelInstance,
		Region:    "us-east-1",
		Branch:    nav.EC2Branch{},
		Instances: []aws.Instance{{ID: "i-0aaa"}, {ID: "i-0bbb"}},
		ShowInfo:  true,
	}
	m.cpuMetrics = []aws.CPUDatapoint{{Average: 42}}

	model, _ := m.handleKey(keyPress('k'))
	got := model.(Model)

	if got.state.Cursor != 1 {
		t.Fatalf("Expected cursor to wrap to 1, got %d", got.state.Cursor)
	}
	if got.cpuMetrics != nil {
		t.Errorf("Expected cached metrics dropped on cursor move, got %+v", got.cpuMetrics)
	}
}

func TestOpenConsoleClearsError(t *testing.T) {
	m := newTestModel()
	m.state = nav.State{
		Level:    nav.LevelCluster,
		Region:   "us-east-1",
		Clusters: []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}},
		Err:      "Failed to load services: throttled",
	}

	model, _ := m.handleKey(keyPress('o'))
	got := model.(Model)

	if got.state.Err != "" {
		t.Errorf("Expected error cleared, got %q", got.state.Err)
	}
}

func TestConsoleURLForCluster(t *testing.T) {
	s := nav.State{
		Level:    nav.LevelCluster,
		Region:   "us-east-1",
		Clusters: []aws.ECSCluster{{Name: "prod", Arn: "arn-prod"}},
	}

	url := consoleURL(s)

	if !strings.Contains(url, "us-east-1.console.aws.amazon.com/ecs") {
		t.Errorf("Unexpected URL: %s", url)
	}
	if !strings.Contains(url, "clusters/prod") {
		t.Errorf("Expected cluster name in URL, got: %s", url)
	}
}

func TestConsoleURLForInstance(t *testing.T) {
	s := nav.State{
		Level:     nav.LevelInstance,
		Region:    "eu-west-1",
		Instances: []aws.Instance{{ID: "i-0abc"}},
	}

	url := consoleURL(s)

	if !strings.Contains(url, "instanceId=i-0abc") {
		t.Errorf("Expected instance ID in URL, got: %s", url)
	}
}

func TestConsoleURLEmptySelection(t *testing.T) {
	s := nav.State{Level: nav.LevelCluster, Region: "us-east-1"}

	if url := consoleURL(s); url != "" {
		t.Errorf("Expected no URL for empty collection, got: %s", url)
	}
}

func TestConsoleURLNoRegion(t *testing.T) {
	s := nav.State{Level: nav.LevelRegion, Regions: []string{"us-east-1"}}

	url := consoleURL(s)

	if !strings.Contains(url, "us-east-1") {
		t.Errorf("Expected URL for the region under the cursor, got: %s", url)
	}
}

func TestViewportWindow(t *testing.T) {
	vp := viewport{height: 5}

	start, end := vp.window(7, 20)
	if start != 3 || end != 8 {
		t.Errorf("Expected range [3,8), got [%d,%d)", start, end)
	}

	// Scrolling back up pulls the window with the cursor.
	start, end = vp.window(1, 20)
	if start != 1 || end != 6 {
		t.Errorf("Expected range [1,6), got [%d,%d)", start, end)
	}
}

func TestViewportShortList(t *testing.T) {
	vp := viewport{height: 10}

	start, end := vp.window(2, 3)
	if start != 0 || end != 3 {
		t.Errorf("Expected full range [0,3), got [%d,%d)", start, end)
	}
	if got := vp.indicator(start, end, 3); got != "" {
		t.Errorf("Expected no indicator for a fully visible list, got %q", got)
	}
}

func TestViewportIndicator(t *testing.T) {
	vp := viewport{height: 5}

	start, end := vp.window(7, 20)
	got := vp.indicator(start, end, 20)
	if !strings.Contains(got, "Showing 4-8 of 20") {
		t.Errorf("Unexpected indicator: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected 'short', got '%s'", got)
	}
	if got := truncate("a-much-longer-string", 10); got != "a-much-..." {
		t.Errorf("Expected 'a-much-...', got '%s'", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("Expected empty string, got '%s'", got)
	}
}

func TestArnResource(t *testing.T) {
	if got := arnResource("arn:aws:ecs:us-east-1:123:task/prod/abc"); got != "abc" {
		t.Errorf("Expected 'abc', got '%s'", got)
	}
	if got := arnResource("plain-id"); got != "plain-id" {
		t.Errorf("Expected 'plain-id', got '%s'", got)
	}
}
