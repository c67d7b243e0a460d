// Package jobfile loads job definitions from YAML files.
//
// A job file looks like:
//
//	name: index-logs
//	index_store: true
//	settings:
//	  input: /data/logs/2024-*
//	  output: es://logs/events
//	  tmp_dir: /tmp/stage
//	  bulk_size: 1000
//	  map_command: ./mapper.rb
//
// "${VAR}" placeholders are expanded from the environment before parsing, and
// a WONDERDOG_<KEY> environment variable overrides the setting <key>.
package jobfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/prxssh/wonderdog"
	"github.com/prxssh/wonderdog/api"
)

// EnvPrefix prefixes environment variables that override settings.
const EnvPrefix = "WONDERDOG_"

// envPlaceholder matches "${NAME}" only; a bare "$1" or "$field" is left for
// the mapper or the query to interpret.
var envPlaceholder = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}`)

// File is a parsed job file.
type File struct {
	// Name is the job name.
	Name string `yaml:"name"`

	// IndexStore toggles the Elasticsearch override. Nil leaves the default.
	IndexStore *bool `yaml:"index_store"`

	// Settings are the job settings.
	Settings map[string]any `yaml:"settings"`
}

// LoadEnv loads a .env file into the process environment. An empty path loads
// ".env" from the working directory, and a missing default file is ignored.
func LoadEnv(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("jobfile: load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("jobfile: load %s: %w", path, err)
	}
	return nil
}

// Read parses a job file from r using the process environment.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jobfile: %w", err)
	}

	f, err := Parse(data, os.Environ())
	if err != nil {
		return nil, fmt.Errorf("jobfile: %w", err)
	}
	return f, nil
}

// Parse parses a job file. environ has the form of os.Environ.
func Parse(data []byte, environ []string) (*File, error) {
	env := envMap(environ)
	expanded := envPlaceholder.ReplaceAllStringFunc(string(data), func(m string) string {
		return env[m[2:len(m)-1]]
	})

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job file: %w", err)
	}

	var f File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode job file: %w", err)
	}

	if f.Settings == nil {
		f.Settings = map[string]any{}
	}
	for k, v := range env {
		if key, ok := strings.CutPrefix(k, EnvPrefix); ok && key != "" {
			f.Settings[strings.ToLower(key)] = v
		}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	var result *multierror.Error

	if f.Name == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	for k, v := range f.Settings {
		if strings.TrimSpace(k) == "" {
			result = multierror.Append(result, errors.New("setting with empty key"))
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			result = multierror.Append(result, fmt.Errorf("setting %q must be a scalar", k))
		}
	}

	return result.ErrorOrNil()
}

// Options turns the file into resolver options.
func (f *File) Options() []wonderdog.Option {
	opts := []wonderdog.Option{
		wonderdog.WithName(f.Name),
		wonderdog.WithSettings(api.Settings(f.Settings)),
	}
	if f.IndexStore != nil {
		opts = append(opts, wonderdog.WithIndexStore(*f.IndexStore))
	}
	return opts
}

func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
