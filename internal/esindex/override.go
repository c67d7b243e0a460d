// Package esindex lets a job read from or write to Elasticsearch by naming an
// "es://index/type" location wherever a filesystem path would go.
//
// An Override wraps the job's base api.Invocation. While neither location uses
// the es:// scheme every answer comes from the base unchanged. Otherwise the
// Override swaps in the streaming format classes shipped with the Elasticsearch
// handlers, points the engine at a temporary staging directory on HDFS, and
// appends the parameters those handlers read back at runtime.
package esindex

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/prxssh/wonderdog/api"
)

const (
	// StreamingInputFormat is the input format used when reading from
	// Elasticsearch.
	StreamingInputFormat = "com.infochimps.elasticsearch.ElasticSearchStreamingInputFormat"

	// StreamingOutputFormat is the output format used when writing to
	// Elasticsearch.
	StreamingOutputFormat = "com.infochimps.elasticsearch.ElasticSearchStreamingOutputFormat"
)

// Setting keys consulted by the Override.
const (
	SettingInput         = "input"
	SettingOutput        = "output"
	SettingConfig        = "config"
	SettingTmpDir        = "tmp_dir"
	SettingInputSplits   = "input_splits"
	SettingQuery         = "query"
	SettingRequestSize   = "request_size"
	SettingScrollTimeout = "scroll_timeout"
	SettingIndexField    = "index_field"
	SettingTypeField     = "type_field"
	SettingIDField       = "id_field"
	SettingBulkSize      = "bulk_size"
)

// Override is an api.Invocation that redirects es:// locations through a
// staging directory. It is not meant to be copied.
type Override struct {
	base   api.Invocation
	now    func() time.Time
	logger *slog.Logger

	inputIndex  func() Locator
	outputIndex func() Locator
}

var _ api.Invocation = (*Override)(nil)

// Option configures an Override.
type Option func(*Override)

// WithClock sets the clock used to timestamp staging paths.
func WithClock(now func() time.Time) Option {
	return func(o *Override) {
		o.now = now
	}
}

// WithLogger sets the logger. If nil, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Override) {
		o.logger = logger
	}
}

// New wraps base.
func New(base api.Invocation, opts ...Option) *Override {
	o := &Override{
		base: base,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	o.inputIndex = sync.OnceValue(func() Locator {
		return ParseLocator(o.base.Settings().String(SettingInput))
	})
	o.outputIndex = sync.OnceValue(func() Locator {
		return ParseLocator(o.base.Settings().String(SettingOutput))
	})

	return o
}

// Settings returns the base job's settings.
func (o *Override) Settings() api.Settings {
	return o.base.Settings()
}

// JobName returns the base job's name.
func (o *Override) JobName() string {
	return o.base.JobName()
}

// ReadsFromIndexStore reports whether the job's input is an es:// location.
func (o *Override) ReadsFromIndexStore() bool {
	return IsIndexURI(o.base.Settings().String(SettingInput))
}

// WritesToIndexStore reports whether the job's output is an es:// location.
func (o *Override) WritesToIndexStore() bool {
	return IsIndexURI(o.base.Settings().String(SettingOutput))
}

// InputIndex is the parsed input location. It is computed once.
func (o *Override) InputIndex() Locator {
	return o.inputIndex()
}

// OutputIndex is the parsed output location. It is computed once.
func (o *Override) OutputIndex() Locator {
	return o.outputIndex()
}

// InputFormat is StreamingInputFormat when reading from Elasticsearch.
func (o *Override) InputFormat() string {
	if o.ReadsFromIndexStore() {
		return StreamingInputFormat
	}
	return o.base.InputFormat()
}

// OutputFormat is StreamingOutputFormat when writing to Elasticsearch.
func (o *Override) OutputFormat() string {
	if o.WritesToIndexStore() {
		return StreamingOutputFormat
	}
	return o.base.OutputFormat()
}

// InputPaths returns a fresh staging path when reading from Elasticsearch.
func (o *Override) InputPaths() string {
	if !o.ReadsFromIndexStore() {
		return o.base.InputPaths()
	}
	return o.stagingPath("input", o.InputIndex())
}

// OutputPath returns a fresh staging path when writing to Elasticsearch.
func (o *Override) OutputPath() string {
	if !o.WritesToIndexStore() {
		return o.base.OutputPath()
	}
	return o.stagingPath("output", o.OutputIndex())
}

// ExecutionParameters appends the Elasticsearch handler parameters to the base
// ones. Unset settings are left out.
func (o *Override) ExecutionParameters() []string {
	params := slices.Clip(o.base.ExecutionParameters())

	reads, writes := o.ReadsFromIndexStore(), o.WritesToIndexStore()
	if !reads && !writes {
		return params
	}

	settings := o.base.Settings()
	params = api.AppendParam(params, "es.config", settings.String(SettingConfig))

	if reads {
		in := o.InputIndex()
		params = api.AppendParam(params, "elasticsearch.input.index", in.Index)
		params = api.AppendParam(params, "elasticsearch.input.type", in.Type)
		params = api.AppendParam(params, "elasticsearch.input.splits", settings.String(SettingInputSplits))
		params = api.AppendParam(params, "elasticsearch.input.query", settings.String(SettingQuery))
		params = api.AppendParam(params, "elasticsearch.input.request_size", settings.String(SettingRequestSize))
		params = api.AppendParam(params, "elasticsearch.input.scroll_timeout", settings.String(SettingScrollTimeout))
	}

	if writes {
		out := o.OutputIndex()
		params = api.AppendParam(params, "elasticsearch.output.index", out.Index)
		params = api.AppendParam(params, "elasticsearch.output.type", out.Type)
		params = api.AppendParam(params, "elasticsearch.output.index.field", settings.String(SettingIndexField))
		params = api.AppendParam(params, "elasticsearch.output.type.field", settings.String(SettingTypeField))
		params = api.AppendParam(params, "elasticsearch.output.id.field", settings.String(SettingIDField))
		params = api.AppendParam(params, "elasticsearch.output.bulk_size", settings.String(SettingBulkSize))
	}

	return params
}

func (o *Override) stagingPath(direction string, loc Locator) string {
	p := StagingPath(o.base.Settings().String(SettingTmpDir), loc, o.base.JobName(), o.now())
	o.logger.Debug(
		"staging elasticsearch data on hdfs",
		"direction", direction,
		"index", loc.Index,
		"type", loc.Type,
		"staging-path", p,
	)
	return p
}
