package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	env := map[string]string{"FOO": "bar", "A": "1", "B": "2", "X": "x"}
	getenv := func(key string) string { return env[key] }
	testCases := []struct {
		description string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "just a plain string", expect: "just a plain string"},
		{description: "single", input: "name: ${env.FOO}", expect: "name: bar"},
		{description: "multiple", input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset becomes empty", input: "unset=${env.NOTSET}-end", expect: "unset=-end"},
		{description: "missing brace", input: "start ${env.X and ${env.Y} end", expect: "start ${env.X and  end"},
		{description: "empty key", input: "oops ${env.} done", expect: "oops  done"},
		{description: "unclosed", input: "tail ${env.FOO", expect: "tail ${env.FOO"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, expandEnv(testCase.input, getenv))
		})
	}
}
