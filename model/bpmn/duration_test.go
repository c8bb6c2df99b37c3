package bpmn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		value     string
		expect    time.Duration
		expectErr bool
	}{
		{value: "", expect: 0},
		{value: "P1D", expect: 24 * time.Hour},
		{value: "PT2H", expect: 2 * time.Hour},
		{value: "PT30M", expect: 30 * time.Minute},
		{value: "PT45S", expect: 45 * time.Second},
		{value: "P1DT2H30M", expect: 26*time.Hour + 30*time.Minute},
		{value: "P2DT1H1M1S", expect: 49*time.Hour + time.Minute + time.Second},
		{value: "P1X", expectErr: true},
		{value: "P1Y", expectErr: true},
		{value: "PT1.5H", expectErr: true},
		{value: "1H", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			actual, err := ParseDuration(tc.value)
			if tc.expectErr {
				assert.Error(t, err)
				assert.EqualValues(t, 0, actual)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestPlannedDuration(t *testing.T) {
	testCases := []struct {
		name       string
		extensions *Extensions
		expect     string
	}{
		{name: "none", expect: ""},
		{
			name:       "direct property",
			extensions: &Extensions{Values: []*Extension{{TimePlannedDuration: &ExtensionValue{Value: "PT1H"}}}},
			expect:     "PT1H",
		},
		{
			name: "typed child value",
			extensions: &Extensions{Values: []*Extension{{Children: []*ExtensionChild{
				{Type: "proceed:costs", Value: "10"},
				{Type: PlannedDurationType, Value: "PT2H"},
			}}}},
			expect: "PT2H",
		},
		{
			name:       "typed child body",
			extensions: &Extensions{Values: []*Extension{{Children: []*ExtensionChild{{Type: PlannedDurationType, RawBody: "P1D"}}}}},
			expect:     "P1D",
		},
		{
			name:       "legacy named child",
			extensions: &Extensions{Values: []*Extension{{Children: []*ExtensionChild{{Name: PlannedDurationType, Body: "PT5M"}}}}},
			expect:     "PT5M",
		},
		{
			name: "direct property wins over later child",
			extensions: &Extensions{Values: []*Extension{
				{TimePlannedDuration: &ExtensionValue{Value: "PT1M"}},
				{Children: []*ExtensionChild{{Type: PlannedDurationType, Value: "PT9M"}}},
			}},
			expect: "PT1M",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := NewTask("A")
			task.Extensions = tc.extensions
			assert.Equal(t, tc.expect, PlannedDuration(task))
		})
	}
}

func TestExtractDuration(t *testing.T) {
	duration, present, err := ExtractDuration(NewTask("A").WithDuration("PT1H"))
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, time.Hour, duration)

	duration, present, err = ExtractDuration(NewTask("B").WithDuration("P1X"))
	assert.Error(t, err)
	assert.True(t, present)
	assert.EqualValues(t, 0, duration)

	_, present, err = ExtractDuration(NewTask("C"))
	assert.NoError(t, err)
	assert.False(t, present)
}
