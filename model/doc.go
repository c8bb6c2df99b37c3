// Package model contains the in-memory representation of BPMN processes
// consumed by the flowline engine and the Gantt primitives it produces.
//
// Flow elements are defined in the `bpmn` sub-package as a closed sum type;
// the visual output (tasks, milestones, groups and dependency arrows) lives
// in `gantt`. The root model package aggregates a process definition so that
// it can be loaded, cached and referenced with a single import.
package model
