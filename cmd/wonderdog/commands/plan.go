package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/prxssh/wonderdog"
	"github.com/prxssh/wonderdog/api"
	"github.com/prxssh/wonderdog/internal/jobfile"
	"github.com/prxssh/wonderdog/internal/launch"
)

var (
	planOut          string
	planJar          string
	planHadoop       string
	planNoIndexStore bool
)

var planCmd = &cobra.Command{
	Use:   "plan <job.yaml>...",
	Short: "Resolve job files into streaming commands",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := jobfile.LoadEnv(envFile); err != nil {
			return err
		}

		scripts, err := planJobs(storer, args, launch.Options{
			Hadoop:       planHadoop,
			StreamingJar: planJar,
		}, !planNoIndexStore)
		if err != nil {
			return err
		}

		out := strings.Join(scripts, "\n") + "\n"
		if planOut == "" {
			_, err := io.WriteString(cmd.OutOrStdout(), out)
			return err
		}

		w, err := storer.OpenWrite(planOut)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, "#!/bin/sh\nset -e\n"+out); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}

		slog.Info("wrote launch script", "path", planOut, "jobs", len(scripts))
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "write a launch script to this path instead of stdout")
	planCmd.Flags().StringVar(&planJar, "jar", "", "path of the hadoop streaming jar")
	planCmd.Flags().StringVar(&planHadoop, "hadoop", "", "hadoop executable")
	planCmd.Flags().BoolVar(&planNoIndexStore, "no-es", false, "treat es:// locations as plain paths")
}

// planJobs resolves every job file concurrently and returns one script line
// per file, in the order given.
func planJobs(storer api.Storer, paths []string, opts launch.Options, indexStore bool) ([]string, error) {
	scripts := make([]string, len(paths))

	var grp errgroup.Group
	for i, path := range paths {
		i, path := i, path
		grp.Go(func() error {
			script, err := planJob(storer, path, opts, indexStore)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			scripts[i] = script
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return scripts, nil
}

func planJob(storer api.Storer, path string, opts launch.Options, indexStore bool) (string, error) {
	r, err := storer.OpenRead(path, 0, -1)
	if err != nil {
		return "", err
	}
	defer r.Close()

	f, err := jobfile.Read(r)
	if err != nil {
		return "", err
	}

	cfgOpts := f.Options()
	if !indexStore {
		cfgOpts = append(cfgOpts, wonderdog.WithIndexStore(false))
	}

	inv, err := wonderdog.Resolve(wonderdog.NewConfig(cfgOpts...))
	if err != nil {
		return "", err
	}

	return launch.Script(inv, opts)
}
