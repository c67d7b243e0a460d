// Package launch renders a resolved invocation into the command line of a
// Hadoop streaming job.
package launch

import (
	"errors"

	"github.com/kballard/go-shellquote"
	"github.com/prxssh/wonderdog/api"
)

const (
	defaultHadoop       = "hadoop"
	defaultStreamingJar = "/usr/lib/hadoop-mapreduce/hadoop-streaming.jar"

	// Setting keys for the streaming commands.
	settingMapCommand    = "map_command"
	settingReduceCommand = "reduce_command"
)

var errNoMapper = errors.New("launch: map_command is required")

// Options controls how the command is rendered.
type Options struct {
	// Hadoop is the hadoop executable. Defaults to "hadoop".
	Hadoop string

	// StreamingJar is the path of the streaming jar.
	StreamingJar string
}

func (o Options) withDefaults() Options {
	if o.Hadoop == "" {
		o.Hadoop = defaultHadoop
	}
	if o.StreamingJar == "" {
		o.StreamingJar = defaultStreamingJar
	}
	return o
}

// Command builds the argv that launches inv. Every path and format is queried
// exactly once, so staging paths stay stable within one command.
func Command(inv api.Invocation, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	settings := inv.Settings()
	mapper, ok := settings.Lookup(settingMapCommand)
	if !ok {
		return nil, errNoMapper
	}

	argv := []string{opts.Hadoop, "jar", opts.StreamingJar}
	for _, p := range inv.ExecutionParameters() {
		argv = append(argv, "-D", p)
	}

	if f := inv.InputFormat(); f != "" {
		argv = append(argv, "-inputformat", f)
	}
	if f := inv.OutputFormat(); f != "" {
		argv = append(argv, "-outputformat", f)
	}

	argv = append(argv,
		"-input", inv.InputPaths(),
		"-output", inv.OutputPath(),
		"-mapper", mapper,
	)
	if reducer, ok := settings.Lookup(settingReduceCommand); ok {
		argv = append(argv, "-reducer", reducer)
	}

	return argv, nil
}

// Script renders Command as a single shell-quoted line.
func Script(inv api.Invocation, opts Options) (string, error) {
	argv, err := Command(inv, opts)
	if err != nil {
		return "", err
	}
	return shellquote.Join(argv...), nil
}
