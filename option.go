package flowline

import (
	"github.com/go-logr/logr"
	"github.com/viant/afs/storage"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/flowline/progress"
	"github.com/viant/flowline/render/canvas"
	"github.com/viant/flowline/service/dao/process"
	"github.com/viant/flowline/tracing"
)

// Option configures the service
type Option func(s *Service)

// WithConfig replaces the default configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithProcessService sets the process loader
func WithProcessService(service *process.Service) Option {
	return func(s *Service) {
		s.processes = service
	}
}

// WithBaseURL sets the location relative process paths resolve against
func WithBaseURL(URL string) Option {
	return func(s *Service) {
		s.baseURL = URL
	}
}

// WithFsOptions sets storage options used to load processes, e.g. an embed.FS
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithLogger sets the logger passed to every component
func WithLogger(logger logr.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithProgress registers a callback receiving traversal counters of every run
func WithProgress(onChange func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = onChange
	}
}

// WithCanvasFactory sets the canvas backend of charts; raster by default
func WithCanvasFactory(factory func(width, height, pixelRatio float64) (canvas.Canvas, error)) Option {
	return func(s *Service) {
		s.canvasFactory = factory
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.initErrors = append(s.initErrors, err)
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.initErrors = append(s.initErrors, err)
		}
	}
}
