package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/flowline/service/dao"
)

func TestMatch(t *testing.T) {
	testCases := []struct {
		description string
		value       string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", value: "order", expect: true},
		{description: "equal", value: "order", parameters: []*dao.Parameter{dao.NewParameter("Name", "order")}, expect: true},
		{description: "different", value: "order", parameters: []*dao.Parameter{dao.NewParameter("Name", "invoice")}, expect: false},
		{description: "one of", value: "order", parameters: []*dao.Parameter{dao.NewParameter("Name", "invoice", "order")}, expect: true},
		{description: "none of", value: "order", parameters: []*dao.Parameter{dao.NewParameter("Name", "a", "b")}, expect: false},
		{description: "other name ignored", value: "order", parameters: []*dao.Parameter{dao.NewParameter("ID", "x")}, expect: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Match("Name", testCase.value, testCase.parameters))
		})
	}
}
