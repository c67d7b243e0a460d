package wonderdog

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prxssh/wonderdog/api"
)

const (
	defaultTmpDir      = "/tmp/wonderdog"
	defaultReduceTasks = 1
)

// Setting keys understood by the base Job.
const (
	SettingInput          = "input"
	SettingOutput         = "output"
	SettingTmpDir         = "tmp_dir"
	SettingInputFormat    = "input_format"
	SettingOutputFormat   = "output_format"
	SettingMapTasks       = "map_tasks"
	SettingReduceTasks    = "reduce_tasks"
	SettingMinSplitSize   = "min_split_size"
	SettingFieldSeparator = "field_separator"
	SettingMapCommand     = "map_command"
	SettingReduceCommand  = "reduce_command"
)

// Config holds the settings of a single job and the knobs controlling how its
// invocation is resolved.
type Config struct {
	// Name identifies the job. It names the staging directory and is passed
	// to the engine as the job name (required).
	Name string

	// Settings are the job's key/value settings. Well known keys are listed
	// as Setting* constants; anything else is carried along untouched for
	// wrappers such as the Elasticsearch override.
	Settings api.Settings

	// IndexStore wraps the job so that "es://" inputs and outputs are staged
	// through HDFS. Defaults to true.
	IndexStore bool

	// Clock timestamps staging paths. If nil, time.Now is used.
	Clock func() time.Time

	// Logger receives resolution logs. If nil, slog.Default is used.
	Logger *slog.Logger
}

type Option func(*Config)

// WithName sets the job name.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithInput sets the input location (a path, a comma separated list of paths,
// or an "es://index/type" URI).
func WithInput(input string) Option {
	return WithSetting(SettingInput, input)
}

// WithOutput sets the output location (a path or an "es://index/type" URI).
func WithOutput(output string) Option {
	return WithSetting(SettingOutput, output)
}

// WithTmpDir sets the HDFS directory under which staging paths are created.
func WithTmpDir(dir string) Option {
	return WithSetting(SettingTmpDir, dir)
}

// WithReduceTasks sets the number of reduce tasks. Zero runs a map-only job.
func WithReduceTasks(n int) Option {
	return WithSetting(SettingReduceTasks, n)
}

// WithMapTasks sets a hint for the number of map tasks.
func WithMapTasks(n int) Option {
	return WithSetting(SettingMapTasks, n)
}

// WithMapSplitSize sets the minimum input split size in bytes.
func WithMapSplitSize(size int64) Option {
	return WithSetting(SettingMinSplitSize, size)
}

// WithSetting sets a single setting.
func WithSetting(key string, value any) Option {
	return func(c *Config) {
		c.Settings[key] = value
	}
}

// WithSettings merges settings, overwriting existing keys.
func WithSettings(settings api.Settings) Option {
	return func(c *Config) {
		for k, v := range settings {
			c.Settings[k] = v
		}
	}
}

// WithIndexStore toggles the Elasticsearch override.
func WithIndexStore(enabled bool) Option {
	return func(c *Config) {
		c.IndexStore = enabled
	}
}

// WithClock sets the clock used for staging path timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Clock = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func defaultConfig() *Config {
	return &Config{
		Settings: api.Settings{
			SettingTmpDir:      defaultTmpDir,
			SettingReduceTasks: defaultReduceTasks,
		},
		IndexStore: true,
	}
}

func NewConfig(opts ...Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func (cfg *Config) validate() error {
	var result *multierror.Error

	if cfg.Name == "" {
		result = multierror.Append(result, errors.New("wonderdog: Name is required"))
	}

	if _, ok := cfg.Settings.Lookup(SettingInput); !ok {
		result = multierror.Append(result, errors.New("wonderdog: input is required"))
	}

	if _, ok := cfg.Settings.Lookup(SettingOutput); !ok {
		result = multierror.Append(result, errors.New("wonderdog: output is required"))
	}

	if _, ok := cfg.Settings.Lookup(SettingTmpDir); !ok {
		result = multierror.Append(result, errors.New("wonderdog: tmp_dir cannot be empty"))
	}

	for _, key := range []string{SettingMapTasks, SettingReduceTasks, SettingMinSplitSize} {
		if err := checkNonNegative(cfg.Settings, key); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func checkNonNegative(settings api.Settings, key string) error {
	raw, ok := settings.Lookup(key)
	if !ok {
		return nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("wonderdog: %s must be an integer, got %q", key, raw)
	}
	if n < 0 {
		return fmt.Errorf("wonderdog: %s must not be negative, got %d", key, n)
	}

	return nil
}
