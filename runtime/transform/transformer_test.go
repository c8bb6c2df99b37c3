package transform

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/runtime/traversal"
)

const hour = int64(3600000)

func build(t *testing.T, elements []bpmn.Element, opts ...Option) *gantt.Result {
	t.Helper()
	ctx := context.Background()
	timings := traversal.New().Traverse(ctx, elements)
	return New(opts...).Transform(ctx, elements, timings)
}

func dependencyIDs(dependencies []*gantt.Dependency) []string {
	var ret []string
	for _, dependency := range dependencies {
		ret = append(ret, dependency.ID)
	}
	return ret
}

func TestTransformer_ParallelScenario(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		bpmn.NewTask("TaskA", bpmn.TypeUserTask).WithName("Prepare").WithDuration("PT1H"),
		bpmn.NewGateway("Split", bpmn.TypeParallelGateway),
		bpmn.NewTask("TaskB").WithDuration("PT2H"),
		bpmn.NewTask("TaskC").WithDuration("PT30M"),
		bpmn.NewGateway("Join", bpmn.TypeParallelGateway),
		bpmn.NewEvent("End", bpmn.TypeEndEvent),
		bpmn.NewFlow("f1", "Start", "TaskA"),
		bpmn.NewFlow("f2", "TaskA", "Split"),
		bpmn.NewFlow("f3", "Split", "TaskB"),
		bpmn.NewFlow("f4", "Split", "TaskC"),
		bpmn.NewFlow("f5", "TaskB", "Join"),
		bpmn.NewFlow("f6", "TaskC", "Join"),
		bpmn.NewFlow("f7", "Join", "End"),
	}
	result := build(t, elements)

	testCases := []struct {
		description string
		id          string
		elementType gantt.ElementType
		start, end  int64
		label       string
	}{
		{description: "start event", id: "Start", elementType: gantt.TypeMilestone, start: 0, end: 0, label: "Start"},
		{description: "user task", id: "TaskA", elementType: gantt.TypeTask, start: 0, end: hour, label: "User Task"},
		{description: "split", id: "Split", elementType: gantt.TypeMilestone, start: hour, end: hour, label: "Parallel Gateway"},
		{description: "long branch", id: "TaskB", elementType: gantt.TypeTask, start: hour, end: 3 * hour, label: "Task"},
		{description: "join", id: "Join", elementType: gantt.TypeMilestone, start: 3 * hour, end: 3 * hour, label: "Parallel Gateway"},
		{description: "end event", id: "End", elementType: gantt.TypeMilestone, start: 3 * hour, end: 3 * hour, label: "End"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			element := result.Lookup(testCase.id)
			require.NotNil(t, element)
			assert.Equal(t, testCase.elementType, element.Type())
			start, end := element.Span()
			assert.Equal(t, testCase.start, start)
			assert.Equal(t, testCase.end, end)
			assert.Equal(t, testCase.label, element.Common().TypeLabel)
			assert.Equal(t, Palette[0], element.Common().Color)
		})
	}

	assert.Len(t, result.Elements, 7)
	assert.Equal(t, []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7"}, dependencyIDs(result.Dependencies))
	for _, dependency := range result.Dependencies {
		assert.Equal(t, gantt.FinishToStart, dependency.Type)
		assert.False(t, dependency.IsGhost)
	}
	assert.Empty(t, result.Issues)
}

func loopProcess() []bpmn.Element {
	return []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		bpmn.NewTask("A").WithDuration("PT1H"),
		bpmn.NewTask("B").WithDuration("PT1H"),
		bpmn.NewFlow("f1", "Start", "A"),
		bpmn.NewFlow("f2", "A", "B"),
		bpmn.NewFlow("f3", "B", "A"),
	}
}

func TestTransformer_Modes(t *testing.T) {
	t.Run("every", func(t *testing.T) {
		result := build(t, loopProcess())
		require.Len(t, result.Elements, 6)
		last := result.Lookup("A_instance_3")
		require.NotNil(t, last)
		assert.True(t, last.Common().IsPathCutoff)
		assert.Equal(t, 3, last.Common().TotalInstances)
		assert.Equal(t, "A #3 ✕", gantt.DisplayLabel(last, true))
		assert.Equal(t, "B #2 ↻", gantt.DisplayLabel(result.Lookup("B_instance_2"), true))
		assert.Equal(t, []string{"f1", "f2", "f3", "f2_2", "f3_2"}, dependencyIDs(result.Dependencies))
		assert.Equal(t, "A_instance_2", result.Dependencies[2].TargetID)
	})

	testCases := []struct {
		description string
		mode        Mode
		aStart      int64
		aGhosts     []int64
	}{
		{description: "earliest", mode: ModeEarliest, aStart: 0, aGhosts: []int64{2 * hour, 4 * hour}},
		{description: "latest", mode: ModeLatest, aStart: 4 * hour, aGhosts: []int64{0, 2 * hour}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result := build(t, loopProcess(), WithMode(testCase.mode))
			require.Len(t, result.Elements, 3)
			a := result.Lookup("A")
			require.NotNil(t, a)
			start, _ := a.Span()
			assert.Equal(t, testCase.aStart, start)
			var ghosts []int64
			for _, occurrence := range a.Common().GhostOccurrences {
				ghosts = append(ghosts, occurrence.Start)
			}
			assert.Equal(t, testCase.aGhosts, ghosts)
			assert.Zero(t, a.Common().InstanceNumber)

			var ghostDependencies int
			for _, dependency := range result.Dependencies {
				if dependency.IsGhost {
					ghostDependencies++
					assert.NotEmpty(t, dependency.SourceInstanceID)
					assert.NotEmpty(t, dependency.TargetInstanceID)
				}
			}
			assert.Len(t, result.Dependencies, 5)
			assert.Greater(t, ghostDependencies, 0)
		})
	}
}

func TestFlowType(t *testing.T) {
	testCases := []struct {
		description string
		flow        *bpmn.SequenceFlow
		structural  bool
		heuristic   bool
		expect      gantt.FlowType
	}{
		{description: "plain", flow: bpmn.NewFlow("f", "a", "b"), heuristic: true, expect: gantt.FlowNormal},
		{description: "conditional", flow: bpmn.NewFlow("f", "a", "b").WithCondition("${amount > 10}"), heuristic: true, expect: gantt.FlowConditional},
		{description: "structural default", flow: bpmn.NewFlow("f", "a", "b").WithCondition("x"), structural: true, expect: gantt.FlowDefault},
		{description: "named else", flow: bpmn.NewFlow("f", "a", "b").WithName("Else branch"), heuristic: true, expect: gantt.FlowDefault},
		{description: "named default", flow: bpmn.NewFlow("f", "a", "b").WithName("DEFAULT"), heuristic: true, expect: gantt.FlowDefault},
		{description: "heuristic disabled", flow: bpmn.NewFlow("f", "a", "b").WithName("else"), expect: gantt.FlowNormal},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, FlowType(testCase.flow, testCase.structural, testCase.heuristic))
		})
	}
}

func TestTransformer_GatewayDefaultFlow(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		bpmn.NewGateway("Choice", bpmn.TypeExclusiveGateway).WithDefault("toB"),
		bpmn.NewTask("A"),
		bpmn.NewTask("B"),
		bpmn.NewFlow("f1", "Start", "Choice"),
		bpmn.NewFlow("toA", "Choice", "A").WithCondition("${approved}"),
		bpmn.NewFlow("toB", "Choice", "B"),
	}
	result := build(t, elements)
	types := map[string]gantt.FlowType{}
	for _, dependency := range result.Dependencies {
		types[dependency.ID] = dependency.FlowType
	}
	assert.Equal(t, gantt.FlowConditional, types["toA"])
	assert.Equal(t, gantt.FlowDefault, types["toB"])
	assert.Equal(t, gantt.FlowNormal, types["f1"])
}

func TestTransformer_BoundaryEvent(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		bpmn.NewTask("Work").WithDuration("PT2H"),
		bpmn.NewBoundaryEvent("Timeout", "Work", false, "bpmn:TimerEventDefinition").WithName("Late").WithDuration("PT30M"),
		bpmn.NewTask("Escalate").WithDuration("PT1H"),
		bpmn.NewFlow("f1", "Start", "Work"),
		bpmn.NewFlow("f2", "Timeout", "Escalate"),
	}
	result := build(t, elements)
	boundary, ok := result.Lookup("Timeout").(*gantt.Milestone)
	require.True(t, ok)
	assert.True(t, boundary.IsBoundaryEvent)
	assert.Equal(t, "Work", boundary.AttachedToID)
	require.NotNil(t, boundary.CancelActivity)
	assert.False(t, *boundary.CancelActivity)
	assert.False(t, boundary.HasRange())
	assert.Equal(t, hour/2, boundary.Start)

	var attachment *gantt.Dependency
	for _, dependency := range result.Dependencies {
		if dependency.IsBoundaryEvent {
			attachment = dependency
		}
	}
	require.NotNil(t, attachment)
	assert.Equal(t, BoundaryDependencyID("Timeout"), attachment.ID)
	assert.Equal(t, "Work", attachment.SourceID)
	assert.Equal(t, "Timeout", attachment.TargetID)
	assert.Equal(t, gantt.StartToStart, attachment.Type)
	assert.Equal(t, gantt.FlowBoundaryNonInterrupting, attachment.FlowType)
	assert.Equal(t, "Late", attachment.Name)
}

func TestTransformer_RangeMilestone(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Wait", bpmn.TypeIntermediateCatchEvent, "bpmn:TimerEventDefinition").WithDuration("PT2H"),
		bpmn.NewGateway("Check", bpmn.TypeExclusiveGateway).WithDuration("PT1H"),
		bpmn.NewFlow("f1", "Wait", "Check"),
	}
	result := build(t, elements)
	wait := result.Lookup("Wait").(*gantt.Milestone)
	assert.True(t, wait.HasRange())
	assert.Equal(t, "Timer (Intermediate)", wait.TypeLabel)
	check := result.Lookup("Check").(*gantt.Milestone)
	assert.True(t, check.HasRange())
	_, end := check.Span()
	assert.Equal(t, 3*hour, end)
}

func TestTransformer_UnsupportedElement(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		&bpmn.Unknown{BaseElement: bpmn.BaseElement{ID: "Odd", Type: "bpmn:ChoreographyTask"}},
		bpmn.NewTask("After"),
		bpmn.NewFlow("f1", "Start", "Odd"),
		bpmn.NewFlow("f2", "Odd", "After"),
	}
	result := build(t, elements)
	assert.Nil(t, result.Lookup("Odd"))
	assert.NotNil(t, result.Lookup("After"))
	assert.Empty(t, result.Dependencies, "dependencies touching the omitted element are dropped")
	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Odd", warnings[0].ElementID)
	assert.True(t, strings.Contains(warnings[0].Reason, "bpmn:ChoreographyTask"))
}

func TestTransformer_DisconnectedUnsupportedElements(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		bpmn.NewTask("Work"),
		bpmn.NewFlow("f1", "Start", "Work"),
		&bpmn.Unknown{BaseElement: bpmn.BaseElement{ID: "Note", Type: "bpmn:TextAnnotation"}},
		bpmn.NewSubProcess("Sub",
			&bpmn.Unknown{BaseElement: bpmn.BaseElement{ID: "Inner", Type: "bpmn:Association"}},
		),
		bpmn.NewFlow("f2", "Work", "Sub"),
	}
	result := build(t, elements)
	assert.Nil(t, result.Lookup("Note"))
	var ids []string
	for _, warning := range result.Warnings() {
		if strings.HasPrefix(warning.Reason, "unsupported element type") {
			ids = append(ids, warning.ElementID)
		}
	}
	assert.ElementsMatch(t, []string{"Note", "Inner"}, ids)
}

func TestTransformer_SubProcessGroup(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewEvent("Start", bpmn.TypeStartEvent),
		bpmn.NewSubProcess("Sub",
			bpmn.NewTask("S1").WithDuration("PT1H"),
			bpmn.NewTask("S2").WithDuration("PT1H"),
			bpmn.NewFlow("s1", "S1", "S2"),
		).WithName("Handle"),
		bpmn.NewFlow("f1", "Start", "Sub"),
	}
	result := build(t, elements)
	group, ok := result.Lookup("Sub").(*gantt.Group)
	require.True(t, ok)
	assert.Equal(t, []string{"S1", "S2"}, group.ChildIDs)
	assert.True(t, group.IsSubProcess)
	assert.True(t, group.HasChildren)
	assert.Equal(t, 2*hour, group.End)
	s2 := result.Lookup("S2")
	assert.Equal(t, "Sub", s2.Common().ParentSubProcessID)
	assert.Equal(t, 1, s2.Common().HierarchyLevel)
	assert.Equal(t, group.Color, s2.Common().Color)
	assert.Equal(t, []string{"f1", "s1"}, dependencyIDs(result.Dependencies))
}

func TestTransformer_IssuesAndDefaults(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewTask("Broken").WithDuration("P1X"),
		bpmn.NewTask("Plain"),
		bpmn.NewFlow("f1", "Broken", "Plain"),
	}
	result := build(t, elements)
	require.Len(t, result.Warnings(), 1)
	assert.Empty(t, result.Errors())
	require.Len(t, result.DefaultDurations, 1)
	assert.Equal(t, "Plain", result.DefaultDurations[0].ElementID)
	assert.Equal(t, gantt.DurationTask, result.DefaultDurations[0].Type)
}

func partition(components map[string]int) [][]string {
	groups := map[int][]string{}
	for id, component := range components {
		groups[component] = append(groups[component], id)
	}
	var ret [][]string
	for _, group := range groups {
		sort.Strings(group)
		ret = append(ret, group)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

func TestFindConnectedComponents(t *testing.T) {
	elements := []bpmn.Element{
		bpmn.NewTask("A"),
		bpmn.NewTask("B"),
		bpmn.NewTask("C"),
		bpmn.NewTask("X"),
		bpmn.NewTask("Y"),
		bpmn.NewTask("Lonely"),
		bpmn.NewSubProcess("Sub", bpmn.NewTask("Inner")),
		bpmn.NewFlow("f1", "A", "B"),
		bpmn.NewFlow("f2", "C", "B"),
		bpmn.NewFlow("f3", "X", "Y"),
		bpmn.NewFlow("f4", "Y", "Sub"),
		bpmn.NewFlow("f5", "Y", "Missing"),
	}
	expect := [][]string{{"A", "B", "C"}, {"Inner", "Sub", "X", "Y"}, {"Lonely"}}
	components := FindConnectedComponents(elements)
	assert.Equal(t, expect, partition(components))
	assert.Equal(t, 0, components["A"])

	reversed := make([]bpmn.Element, len(elements))
	for i, element := range elements {
		reversed[len(elements)-1-i] = element
	}
	again := FindConnectedComponents(reversed)
	assert.Equal(t, expect, partition(again))
	assert.Equal(t, partition(components), partition(FindConnectedComponents(elements)))

	colors := AssignColors(components)
	assert.Equal(t, colors["A"], colors["C"])
	assert.NotEqual(t, colors["A"], colors["X"])
}

func TestGroupAndSort(t *testing.T) {
	task := func(id string, start int64) gantt.Element {
		return &gantt.Task{Base: gantt.Base{ID: id, SourceID: id, Start: start}, End: start + 1}
	}
	elements := []gantt.Element{task("a1", 50), task("a2", 10), task("b1", 30), task("b2", 5), task("c1", 100)}
	components := map[string]int{"a1": 0, "a2": 0, "b1": 1, "b2": 1}

	ids := func(elements []gantt.Element) []string {
		var ret []string
		for _, element := range elements {
			ret = append(ret, element.Common().ID)
		}
		return ret
	}
	testCases := []struct {
		description   string
		chronological bool
		expect        []string
	}{
		{description: "traversal order", expect: []string{"b1", "b2", "a1", "a2", "c1"}},
		{description: "chronological", chronological: true, expect: []string{"b2", "b1", "a2", "a1", "c1"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, ids(GroupAndSort(elements, components, testCase.chronological)))
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	options := Options{}
	assert.NoError(t, options.Validate())
	assert.Equal(t, ModeEvery, options.Mode)
	options.Mode = "random"
	assert.Error(t, options.Validate())
}
