package flowline

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/viant/flowline/internal/clock"
	"github.com/viant/flowline/internal/idgen"
	"github.com/viant/flowline/model"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/progress"
	"github.com/viant/flowline/render"
	"github.com/viant/flowline/render/canvas"
	"github.com/viant/flowline/render/chart"
	"github.com/viant/flowline/runtime/transform"
	"github.com/viant/flowline/runtime/traversal"
	"github.com/viant/flowline/service/dao/process"
)

// Runtime turns process documents into timelines and timelines into charts.
type Runtime struct {
	config        *Config
	processes     *process.Service
	renderer      *render.Renderer
	canvasFactory func(width, height, pixelRatio float64) (canvas.Canvas, error)
	logger        logr.Logger
	onProgress    func(progress.Progress)
}

// LoadProcess loads a process document
func (r *Runtime) LoadProcess(ctx context.Context, location string) (*model.Process, error) {
	return r.processes.Load(ctx, location)
}

// DecodeProcess parses a process document without caching it
func (r *Runtime) DecodeProcess(location string, data []byte) (*model.Process, error) {
	return process.Decode(location, data)
}

// RefreshProcess discards the cached copy of location; the next load reads it again.
func (r *Runtime) RefreshProcess(location string) {
	r.processes.Refresh(location)
}

// UpsertDefinition parses data and caches it under location. Nil data falls
// back to RefreshProcess.
func (r *Runtime) UpsertDefinition(location string, data []byte) error {
	if _, err := r.processes.Upsert(location, data); err != nil {
		return fmt.Errorf("failed to decode process: %w", err)
	}
	return nil
}

// Traverse computes element timings of a process.
func (r *Runtime) Traverse(ctx context.Context, aProcess *model.Process) (*traversal.Result, error) {
	if aProcess == nil {
		return nil, fmt.Errorf("process is nil")
	}
	options, err := r.config.Traversal.Options()
	if err != nil {
		return nil, err
	}
	runID := idgen.New()
	ctx, _ = progress.WithNewTracker(ctx, runID, aProcess.ID, r.onProgress)
	engine := traversal.New(traversal.WithOptions(options), traversal.WithLogger(r.logger.WithValues("runId", runID, "process", aProcess.ID)))
	return engine.Traverse(ctx, aProcess.Elements), nil
}

// Transform traverses a process and builds its timeline.
func (r *Runtime) Transform(ctx context.Context, aProcess *model.Process) (*gantt.Result, error) {
	timings, err := r.Traverse(ctx, aProcess)
	if err != nil {
		return nil, err
	}
	options, err := r.config.Transform.Options()
	if err != nil {
		return nil, err
	}
	transformer := transform.New(transform.WithOptions(options), transform.WithLogger(r.logger.WithValues("process", aProcess.ID)))
	return transformer.Transform(ctx, aProcess.Elements, timings), nil
}

// Timeline loads location and builds its timeline.
func (r *Runtime) Timeline(ctx context.Context, location string) (*gantt.Result, error) {
	aProcess, err := r.LoadProcess(ctx, location)
	if err != nil {
		return nil, err
	}
	return r.Transform(ctx, aProcess)
}

// NewChart creates a chart sized and styled by the renderer configuration;
// the current-date marker shows the present time.
func (r *Runtime) NewChart(opts ...chart.Option) (*chart.Chart, error) {
	options := r.config.Renderer.ChartOptions()
	options.CurrentDate = clock.Now().UnixMilli()
	base := []chart.Option{
		chart.WithOptions(options),
		chart.WithRenderer(r.renderer),
		chart.WithCanvasFactory(r.canvasFactory),
		chart.WithLogger(r.logger),
	}
	return chart.New(append(base, opts...)...)
}

// RenderPNG paints result into a fresh chart and writes it as a PNG.
func (r *Runtime) RenderPNG(ctx context.Context, result *gantt.Result, w io.Writer) error {
	if result == nil {
		return fmt.Errorf("timeline is nil")
	}
	aChart, err := r.NewChart()
	if err != nil {
		return err
	}
	defer aChart.Close()
	if err = aChart.SetData(result.Elements, result.Dependencies); err != nil {
		return err
	}
	return aChart.Snapshot(ctx, w)
}
