package flowline_test

import (
	"bytes"
	"context"
	"embed"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"

	"github.com/viant/flowline"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/progress"
)

//go:embed testdata/*
var embedFS embed.FS

const hour = int64(3600000)

func newService(t *testing.T, options ...flowline.Option) *flowline.Service {
	t.Helper()
	config := flowline.DefaultConfig()
	config.Traversal.Anchor = "2024-01-01T00:00:00Z"
	options = append([]flowline.Option{
		flowline.WithFsOptions(&embedFS),
		flowline.WithBaseURL("embed:///testdata"),
	}, options...)
	srv, err := flowline.NewFromConfig(config, options...)
	require.NoError(t, err)
	return srv
}

func TestService_Timeline(t *testing.T) {
	var mux sync.Mutex
	var last progress.Progress
	srv := newService(t, flowline.WithProgress(func(p progress.Progress) {
		mux.Lock()
		last = p
		mux.Unlock()
	}))
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	result, err := srv.Runtime().Timeline(context.Background(), "approval")
	require.NoError(t, err)
	assert.Len(t, result.Elements, 7)
	assert.Len(t, result.Dependencies, 7)
	assert.Empty(t, result.Errors())

	testCases := []struct {
		description string
		id          string
		elementType gantt.ElementType
		start, end  int64
	}{
		{description: "start event", id: "Start", elementType: gantt.TypeMilestone, start: anchor, end: anchor},
		{description: "first task", id: "TaskA", elementType: gantt.TypeTask, start: anchor, end: anchor + hour},
		{description: "long branch", id: "TaskB", elementType: gantt.TypeTask, start: anchor + hour, end: anchor + 3*hour},
		{description: "short branch", id: "TaskC", elementType: gantt.TypeTask, start: anchor + hour, end: anchor + hour + hour/2},
		{description: "join waits for both branches", id: "Join", elementType: gantt.TypeMilestone, start: anchor + 3*hour, end: anchor + 3*hour},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			element := result.Lookup(testCase.id)
			require.NotNil(t, element)
			assert.Equal(t, testCase.elementType, element.Type())
			start, end := element.Span()
			assert.Equal(t, testCase.start, start)
			assert.Equal(t, testCase.end, end)
		})
	}

	mux.Lock()
	defer mux.Unlock()
	assert.Equal(t, "approval", last.Process)
	assert.NotEmpty(t, last.RunID)
	assert.Equal(t, 7, last.Emitted)
}

func TestService_RenderPNG(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()
	result, err := srv.Runtime().Timeline(ctx, "approval")
	require.NoError(t, err)

	buffer := new(bytes.Buffer)
	require.NoError(t, srv.Runtime().RenderPNG(ctx, result, buffer))
	config, err := png.DecodeConfig(buffer)
	require.NoError(t, err)
	assert.Equal(t, 1200, config.Width)
	assert.Equal(t, 600, config.Height)

	assert.Error(t, srv.Runtime().RenderPNG(ctx, nil, buffer))
}

func TestService_UpsertDefinition(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()
	runtime := srv.Runtime()

	require.NoError(t, runtime.UpsertDefinition("approval", []byte("- {$type: bpmn:Task, id: only}")))
	result, err := runtime.Timeline(ctx, "approval")
	require.NoError(t, err)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, "only", result.Elements[0].Common().ID)

	runtime.RefreshProcess("approval")
	result, err = runtime.Timeline(ctx, "approval")
	require.NoError(t, err)
	assert.Len(t, result.Elements, 7)

	assert.Error(t, runtime.UpsertDefinition("approval", []byte("- just text")))
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(config *flowline.Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(config *flowline.Config) {}},
		{description: "anchor", mutate: func(config *flowline.Config) { config.Traversal.Anchor = "2024-05-01T10:00:00Z" }},
		{description: "bad anchor", mutate: func(config *flowline.Config) { config.Traversal.Anchor = "yesterday" }, expectErr: true},
		{description: "bad mode", mutate: func(config *flowline.Config) { config.Transform.Mode = "random" }, expectErr: true},
		{description: "zero width", mutate: func(config *flowline.Config) { config.Renderer.Width = 0 }, expectErr: true},
		{description: "tracing without name", mutate: func(config *flowline.Config) {
			config.Tracing.Enabled = true
			config.Tracing.ServiceName = ""
		}, expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			config := flowline.DefaultConfig()
			testCase.mutate(config)
			err := config.Validate()
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewFromConfig_Invalid(t *testing.T) {
	config := flowline.DefaultConfig()
	config.Transform.Mode = "random"
	_, err := flowline.NewFromConfig(config)
	assert.Error(t, err)
}
