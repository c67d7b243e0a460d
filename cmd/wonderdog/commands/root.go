package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prxssh/wonderdog/api"
	"github.com/prxssh/wonderdog/pkg/fs"
)

var (
	// Global flags
	envFile string
	verbose bool

	// storer reads job files and writes launch scripts.
	storer api.Storer = fs.NewLocalStorage()
)

var rootCmd = &cobra.Command{
	Use:   "wonderdog",
	Short: "Launch Hadoop streaming jobs that read from or write to Elasticsearch",
	Long: `wonderdog resolves job files into Hadoop streaming commands.

A job may name "es://index/type" as its input or output. Such jobs are given
the Elasticsearch streaming formats, a temporary HDFS staging directory, and
the parameters the formats need.

Examples:
  # Print the command for a job
  wonderdog plan jobs/index-logs.yaml

  # Write commands for several jobs to a script
  wonderdog plan --out launch.sh jobs/*.yaml
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading job files (default .env if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}
