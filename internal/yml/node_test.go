package yml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNode_Lookup(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("id: p1\nName: Order\nflowElements:\n  - id: a\n  - id: b\n"), &doc))
	root := Root(&doc)
	assert.Equal(t, "p1", root.String("id"))
	assert.Equal(t, "Order", root.String("name"))
	assert.Equal(t, "", root.String("missing"))
	assert.Nil(t, root.Lookup("missing"))

	var ids []string
	require.NoError(t, root.Lookup("flowElements").Items(func(_ int, node *Node) error {
		ids = append(ids, node.String("id"))
		return nil
	}))
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestNode_Interface(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      interface{}
	}{
		{description: "string", input: "abc", expect: "abc"},
		{description: "int", input: "12", expect: 12},
		{description: "float", input: "1.5", expect: 1.5},
		{description: "bool", input: "true", expect: true},
		{description: "null", input: "null", expect: nil},
		{description: "map", input: "id: x\nn: 2", expect: map[string]interface{}{"id": "x", "n": 2}},
		{description: "slice", input: "[a, 1]", expect: []interface{}{"a", 1}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var doc yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(testCase.input), &doc))
			assert.Equal(t, testCase.expect, Root(&doc).Interface())
		})
	}
}
