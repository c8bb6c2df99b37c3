package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/model"
	"github.com/viant/flowline/service/dao"
	"github.com/viant/flowline/service/dao/criteria"
	"github.com/viant/flowline/service/dao/store"
	"github.com/viant/flowline/tracing"
)

// ErrEmptyProcess is returned for documents without flow elements.
var ErrEmptyProcess = errors.New("process: no flow elements")

// Service loads process documents from any afs location and caches the
// decoded processes by URL.
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
	cache     *store.MemoryStore[string, model.Process]
	getenv    func(string) string
	logger    logr.Logger
}

// Load returns the process at location, decoding it on first use.
func (s *Service) Load(ctx context.Context, location string) (*model.Process, error) {
	URL := s.URL(location)
	if cached, err := s.cache.Load(ctx, URL); err == nil {
		return cached, nil
	}
	ctx, span := tracing.StartSpan(ctx, "flowline.load", "INTERNAL")
	span.WithAttributes(map[string]string{"url": URL})
	process, err := s.load(ctx, URL)
	tracing.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	if err = s.cache.Save(ctx, process); err != nil {
		return nil, err
	}
	s.logger.V(1).Info("process loaded", "url", URL, "id", process.ID, "elements", len(process.Elements))
	return process, nil
}

func (s *Service) load(ctx context.Context, URL string) (*model.Process, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load process from %s: %w", URL, err)
	}
	return Decode(URL, []byte(expandEnv(string(data), s.getenv)))
}

// Save writes process as JSON to location and caches it.
func (s *Service) Save(ctx context.Context, location string, process *model.Process) error {
	if process == nil {
		return dao.ErrNilEntity
	}
	URL := s.URL(location)
	data, err := json.Marshal(document{ID: process.ID, Name: process.Name, Elements: process.Elements})
	if err != nil {
		return fmt.Errorf("failed to encode process %s: %w", process.ID, err)
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data), s.fsOptions...); err != nil {
		return fmt.Errorf("failed to save process to %s: %w", URL, err)
	}
	process.Source = &model.Source{URL: URL}
	return s.cache.Save(ctx, process)
}

// Refresh drops the cached copy of location so the next Load reads it again.
func (s *Service) Refresh(location string) {
	_ = s.cache.Delete(context.Background(), s.URL(location))
}

// Upsert decodes data and caches the result under location; nil data
// falls back to Refresh.
func (s *Service) Upsert(location string, data []byte) (*model.Process, error) {
	if data == nil {
		s.Refresh(location)
		return nil, nil
	}
	URL := s.URL(location)
	process, err := Decode(URL, []byte(expandEnv(string(data), s.getenv)))
	if err != nil {
		return nil, err
	}
	return process, s.cache.Save(context.Background(), process)
}

// List returns cached processes matching the ID and Name parameters.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Process, error) {
	processes, err := s.cache.List(ctx)
	if err != nil {
		return nil, err
	}
	var ret []*model.Process
	for _, process := range processes {
		if criteria.Match("ID", process.ID, parameters) && criteria.Match("Name", process.Name, parameters) {
			ret = append(ret, process)
		}
	}
	return ret, nil
}

// URL resolves location against the base URL; a location without extension
// gets ".yaml".
func (s *Service) URL(location string) string {
	if path.Ext(location) == "" {
		location += ".yaml"
	}
	if url.IsRelative(location) && s.baseURL != "" {
		return url.Join(s.baseURL, location)
	}
	return url.Normalize(location, file.Scheme)
}

type document struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Elements interface{} `json:"flowElements"`
}

func sourceURL(process *model.Process) string {
	if process.Source == nil {
		return process.ID
	}
	return process.Source.URL
}

// New creates a process service
func New(opts ...Option) *Service {
	ret := &Service{getenv: os.Getenv, logger: logging.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.cache = store.NewMemoryStore[string, model.Process](sourceURL)
	return ret
}
