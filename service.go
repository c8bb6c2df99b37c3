package flowline

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/viant/afs/storage"

	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/progress"
	"github.com/viant/flowline/render"
	"github.com/viant/flowline/render/canvas"
	"github.com/viant/flowline/render/chart"
	"github.com/viant/flowline/service/dao/process"
	"github.com/viant/flowline/tracing"
)

// Service wires the process loader, traversal engine, transformer and
// renderer from one configuration.
type Service struct {
	config        *Config
	runtime       *Runtime
	processes     *process.Service
	baseURL       string
	fsOptions     []storage.Option
	logger        logr.Logger
	onProgress    func(progress.Progress)
	canvasFactory func(width, height, pixelRatio float64) (canvas.Canvas, error)
	initErrors    []error
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.runtime = &Runtime{
		config:        s.config,
		processes:     s.processes,
		renderer:      render.New(render.WithConfig(s.config.Renderer.Config), render.WithLogger(s.logger)),
		canvasFactory: s.canvasFactory,
		logger:        s.logger,
		onProgress:    s.onProgress,
	}
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.logger.GetSink() == nil {
		s.logger = logging.Default()
	}
	if s.processes == nil {
		s.processes = process.New(
			process.WithBaseURL(s.baseURL),
			process.WithFsOptions(s.fsOptions...),
			process.WithLogger(s.logger),
		)
	}
	if s.canvasFactory == nil {
		s.canvasFactory = chart.RasterFactory
	}
}

// Runtime returns the runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Processes returns the process loader
func (s *Service) Processes() *process.Service {
	return s.processes
}

// New creates a service with default configuration unless WithConfig is given.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}

// NewFromConfig validates config, applies its log and tracing sections and
// creates a service.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logging.SetVerbosity(config.Log.Verbosity)
	if config.Tracing.Enabled {
		if err := tracing.Init(config.Tracing.ServiceName, config.Tracing.ServiceVersion, config.Tracing.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	ret := &Service{}
	ret.init(append([]Option{WithConfig(config)}, options...))
	if len(ret.initErrors) > 0 {
		return nil, errors.Join(ret.initErrors...)
	}
	return ret, nil
}
