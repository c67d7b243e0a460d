package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prxssh/wonderdog/internal/launch"
	"github.com/prxssh/wonderdog/pkg/fs"
)

func TestPlanJobsKeepsOrder(t *testing.T) {
	scripts, err := planJobs(
		fs.NewLocalStorage(),
		[]string{"testdata/word-count.yaml", "testdata/read-events.yaml"},
		launch.Options{StreamingJar: "streaming.jar"},
		true,
	)
	require.NoError(t, err)
	require.Len(t, scripts, 2)

	assert.Equal(t,
		"hadoop jar streaming.jar -D mapred.job.name=word-count -D mapred.reduce.tasks=10 "+
			"-input /data/books -output /data/counts -mapper ./map.rb -reducer ./reduce.rb",
		scripts[0],
	)

	assert.Regexp(t,
		`^hadoop jar streaming.jar -D mapred.job.name=read-events -D mapred.reduce.tasks=1 `+
			`-D elasticsearch.input.index=logs -D elasticsearch.input.type=events `+
			`-D elasticsearch.input.splits=4 `+
			`-D 'elasticsearch.input.query=\{"term": \{"level": "error"}}' `+
			`-inputformat com.infochimps.elasticsearch.ElasticSearchStreamingInputFormat `+
			`-input /tmp/stage/logs/events/read-events/\d{4}(-\d{2}){5} -output /data/events -mapper cat$`,
		scripts[1],
	)
}

func TestPlanJobsWithoutIndexStore(t *testing.T) {
	scripts, err := planJobs(fs.NewLocalStorage(), []string{"testdata/read-events.yaml"}, launch.Options{}, false)
	require.NoError(t, err)

	assert.Contains(t, scripts[0], "-input es://logs/events")
	assert.NotContains(t, scripts[0], "elasticsearch.input")
}

func TestPlanJobsReportsFile(t *testing.T) {
	_, err := planJobs(
		fs.NewLocalStorage(),
		[]string{"testdata/word-count.yaml", "testdata/broken.yaml"},
		launch.Options{},
		true,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testdata/broken.yaml")
	assert.Contains(t, err.Error(), "name is required")
}

func TestPlanCommandWritesScript(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bin", "launch.sh")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"plan", "--out", out, "--env-file", filepath.Join("testdata", "test.env"), "testdata/word-count.yaml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		planOut = ""
		envFile = ""
		os.Unsetenv("WONDERDOG_FIELD_SEPARATOR")
	})

	require.NoError(t, rootCmd.Execute())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#!/bin/sh", lines[0])
	assert.Equal(t, "set -e", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "hadoop jar "))
	assert.Contains(t, lines[2], "-D stream.map.output.field.separator=,")
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "dev\n", stdout.String())
}
