// Package flowline turns BPMN process documents into Gantt timelines.
//
// A process is loaded from YAML or JSON (any afs URL), traversed from its
// start events to compute element timings, transformed into timeline rows and
// dependency arrows, and optionally painted onto a canvas:
//
//	srv, _ := flowline.NewFromConfig(flowline.DefaultConfig())
//	rt := srv.Runtime()
//	result, _ := rt.Timeline(ctx, "order.yaml")
//	_ = rt.RenderPNG(ctx, result, w)
//
// Interactive hosts create a chart with Runtime.NewChart and drive it with
// wheel, click and resize events.
package flowline
