package bpmn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type refHolder struct{ id string }

func (r refHolder) RefID() string { return r.id }

func TestResolveRef(t *testing.T) {
	id := "Task_1"
	testCases := []struct {
		name   string
		ref    Ref
		expect string
	}{
		{name: "bare string", ref: "Task_1", expect: "Task_1"},
		{name: "string pointer", ref: &id, expect: "Task_1"},
		{name: "object with id", ref: map[string]interface{}{"id": "Task_1", "$type": "bpmn:Task"}, expect: "Task_1"},
		{name: "string map", ref: map[string]string{"id": "Task_1"}, expect: "Task_1"},
		{name: "yaml style map", ref: map[interface{}]interface{}{"id": "Task_1"}, expect: "Task_1"},
		{name: "element", ref: NewTask("Task_1"), expect: "Task_1"},
		{name: "ref holder", ref: refHolder{id: "Task_1"}, expect: "Task_1"},
		{name: "nil", ref: nil, expect: ""},
		{name: "object without id", ref: map[string]interface{}{"name": "x"}, expect: ""},
		{name: "unsupported", ref: 12, expect: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ResolveRef(tc.ref))
		})
	}
}

func TestExtractSourceTargetID(t *testing.T) {
	asString := &SequenceFlow{SourceRef: "Task_1", TargetRef: "Task_2"}
	asObject := &SequenceFlow{
		SourceRef: map[string]interface{}{"id": "Task_1"},
		TargetRef: map[string]interface{}{"id": "Task_2"},
	}
	assert.Equal(t, ExtractSourceID(asString), ExtractSourceID(asObject))
	assert.Equal(t, ExtractTargetID(asString), ExtractTargetID(asObject))
	assert.Equal(t, "Task_1", ExtractSourceID(asObject))
	assert.Equal(t, "Task_2", ExtractTargetID(asObject))
	assert.Equal(t, "", ExtractSourceID(nil))

	boundary := NewBoundaryEvent("B1", "Task_1", true)
	assert.Equal(t, "Task_1", ExtractAttachedToID(boundary))
	boundary.AttachedToRef = map[string]interface{}{"id": "Task_9"}
	assert.Equal(t, "Task_9", ExtractAttachedToID(boundary))
}
