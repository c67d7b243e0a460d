package api

import "fmt"

// Settings is the key/value configuration of a single job, as loaded from a job
// file or assembled through options.
//
// Values are kept as loaded (strings, numbers, booleans) and rendered with
// fmt.Sprint when they are turned into execution parameters. A key that is
// missing, nil, or renders to an empty string is considered unset.
type Settings map[string]any

// Lookup returns the rendered value of key and whether it is set.
func (s Settings) Lookup(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false
	}

	var str string
	switch t := v.(type) {
	case string:
		str = t
	case fmt.Stringer:
		str = t.String()
	default:
		str = fmt.Sprint(t)
	}

	if str == "" {
		return "", false
	}
	return str, true
}

// String returns the rendered value of key, or "" if it is unset.
func (s Settings) String(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Clone returns a shallow copy of the settings.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Invocation is the contract between a job's configuration and the execution
// engine that launches it.
//
// The engine asks an Invocation for everything it needs to build the launch
// command: where to read, where to write, which I/O format classes to load, and
// the low-level parameters to pass through. Implementations may wrap another
// Invocation to alter some of those answers.
type Invocation interface {
	// Settings returns the job's settings. Callers must not mutate them.
	Settings() Settings

	// JobName is the identifier of the running job.
	JobName() string

	// InputFormat is the class name of the input format, or "" for the
	// engine's default.
	InputFormat() string

	// OutputFormat is the class name of the output format, or "" for the
	// engine's default.
	OutputFormat() string

	// InputPaths is the (possibly comma separated) input location.
	InputPaths() string

	// OutputPath is the output location.
	OutputPath() string

	// ExecutionParameters returns the ordered "name=value" parameters handed
	// to the execution engine.
	ExecutionParameters() []string
}

// AppendParam appends "name=value" to params unless value is empty.
func AppendParam(params []string, name, value string) []string {
	if value == "" {
		return params
	}
	return append(params, name+"="+value)
}
