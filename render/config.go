package render

import (
	"fmt"

	"github.com/viant/flowline/render/canvas"
)

const (
	RowHeight       = 30.0
	TaskPadding     = 6.0
	MilestoneSize   = 14.0
	ElementMinWidth = 2.0
	HoverOpacity    = 0.8
	GhostOpacity    = 0.75
	// TimelineHeight is the height of the ruler layer.
	TimelineHeight = 50.0
	// Overscan is the number of rows painted past the viewport bottom.
	Overscan = 20
)

// GridLine styles one level of the time grid.
type GridLine struct {
	Color     string  `json:"color" yaml:"color" mapstructure:"color" toml:"color"`
	LineWidth float64 `json:"lineWidth" yaml:"lineWidth" mapstructure:"lineWidth" toml:"lineWidth"`
	// TimelineTickSize is the tick length on the ruler; 0 spans the full ruler height.
	TimelineTickSize float64 `json:"timelineTickSize" yaml:"timelineTickSize" mapstructure:"timelineTickSize" toml:"timelineTickSize"`
}

// Grid styles the major and minor grid lines.
type Grid struct {
	Major GridLine `json:"major" yaml:"major" mapstructure:"major" toml:"major"`
	Minor GridLine `json:"minor" yaml:"minor" mapstructure:"minor" toml:"minor"`
}

// Config controls painting.
type Config struct {
	TaskColor       string `json:"taskColor" yaml:"taskColor" mapstructure:"taskColor" toml:"taskColor"`
	MilestoneColor  string `json:"milestoneColor" yaml:"milestoneColor" mapstructure:"milestoneColor" toml:"milestoneColor"`
	GroupColor      string `json:"groupColor" yaml:"groupColor" mapstructure:"groupColor" toml:"groupColor"`
	TextColor       string `json:"textColor" yaml:"textColor" mapstructure:"textColor" toml:"textColor"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor" mapstructure:"backgroundColor" toml:"backgroundColor"`
	MarkerColor     string `json:"markerColor" yaml:"markerColor" mapstructure:"markerColor" toml:"markerColor"`
	DependencyColor string `json:"dependencyColor" yaml:"dependencyColor" mapstructure:"dependencyColor" toml:"dependencyColor"`
	HighlightColor  string `json:"highlightColor" yaml:"highlightColor" mapstructure:"highlightColor" toml:"highlightColor"`

	Grid Grid `json:"grid" yaml:"grid" mapstructure:"grid" toml:"grid"`

	ShowLoopIcons       bool `json:"showLoopIcons" yaml:"showLoopIcons" mapstructure:"showLoopIcons" toml:"showLoopIcons"`
	ShowInstanceNumbers bool `json:"showInstanceNumbers" yaml:"showInstanceNumbers" mapstructure:"showInstanceNumbers" toml:"showInstanceNumbers"`
	CurvedDependencies  bool `json:"curvedDependencies" yaml:"curvedDependencies" mapstructure:"curvedDependencies" toml:"curvedDependencies"`
	ShowDependencies    bool `json:"showDependencies" yaml:"showDependencies" mapstructure:"showDependencies" toml:"showDependencies"`
}

// DefaultConfig returns the default palette and grid.
func DefaultConfig() Config {
	return Config{
		TaskColor:       "#4F94F9",
		MilestoneColor:  "#F05454",
		GroupColor:      "#722ED1",
		TextColor:       "#333333",
		BackgroundColor: "#FFFFFF",
		MarkerColor:     "#FF4D4F",
		DependencyColor: "#8C8C8C",
		HighlightColor:  "#1890FF",
		Grid: Grid{
			Major: GridLine{Color: "#C9C9C9", LineWidth: 1, TimelineTickSize: 10},
			Minor: GridLine{Color: "#E8E8E8", LineWidth: 0.5},
		},
		ShowLoopIcons:       true,
		ShowInstanceNumbers: true,
		ShowDependencies:    true,
	}
}

// Validate checks that every color parses.
func (c *Config) Validate() error {
	colors := map[string]string{
		"taskColor":       c.TaskColor,
		"milestoneColor":  c.MilestoneColor,
		"groupColor":      c.GroupColor,
		"textColor":       c.TextColor,
		"backgroundColor": c.BackgroundColor,
		"markerColor":     c.MarkerColor,
		"dependencyColor": c.DependencyColor,
		"highlightColor":  c.HighlightColor,
		"grid.major":      c.Grid.Major.Color,
		"grid.minor":      c.Grid.Minor.Color,
	}
	for key, value := range colors {
		if value == "" {
			continue
		}
		if _, err := canvas.ParseColor(value); err != nil {
			return fmt.Errorf("invalid renderer %v: %w", key, err)
		}
	}
	if c.Grid.Major.LineWidth < 0 || c.Grid.Minor.LineWidth < 0 {
		return fmt.Errorf("invalid renderer grid: negative line width")
	}
	return nil
}
