// Package wonderdog resolves how a streaming MapReduce job is launched when its
// input or output lives in Elasticsearch.
//
// A job names its locations in settings. Plain paths are handed to the engine
// unchanged; "es://index/type" locations are staged through a temporary HDFS
// directory and read or written by the Elasticsearch streaming formats.
package wonderdog

import (
	"log/slog"

	"github.com/prxssh/wonderdog/api"
	"github.com/prxssh/wonderdog/internal/esindex"
)

// Resolve validates cfg and returns the invocation the engine should be
// launched with.
func Resolve(cfg *Config) (api.Invocation, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.validate(); err != nil {
		logger.Error("Failed to validate config", "err", err)
		return nil, err
	}

	// The job keeps its own copy so later edits to cfg cannot move its paths.
	job := NewJob(cfg.Name, cfg.Settings.Clone())
	logger = logger.With("job-name", job.JobName(), "run-id", job.RunID())

	if !cfg.IndexStore {
		logger.Info("Resolved hdfs job")
		return job, nil
	}

	opts := []esindex.Option{esindex.WithLogger(logger)}
	if cfg.Clock != nil {
		opts = append(opts, esindex.WithClock(cfg.Clock))
	}
	inv := esindex.New(job, opts...)

	logger.Info(
		"Resolved job",
		"reads-es", inv.ReadsFromIndexStore(),
		"writes-es", inv.WritesToIndexStore(),
	)
	return inv, nil
}
