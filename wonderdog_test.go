package wonderdog

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prxssh/wonderdog/internal/esindex"
)

var (
	discard  = slog.New(slog.NewTextHandler(io.Discard, nil))
	fixedNow = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.True(t, cfg.IndexStore)
	assert.Equal(t, defaultTmpDir, cfg.Settings.String(SettingTmpDir))
	assert.Equal(t, "1", cfg.Settings.String(SettingReduceTasks))
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := NewConfig(
		WithTmpDir(""),
		WithReduceTasks(-1),
		WithSetting(SettingMapTasks, "many"),
	)

	err := cfg.validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 6)
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "input is required")
	assert.Contains(t, err.Error(), "output is required")
	assert.Contains(t, err.Error(), "tmp_dir cannot be empty")
	assert.Contains(t, err.Error(), "reduce_tasks must not be negative")
	assert.Contains(t, err.Error(), "map_tasks must be an integer")
}

func TestValidateOK(t *testing.T) {
	cfg := NewConfig(
		WithName("job1"),
		WithInput("/data/in"),
		WithOutput("/data/out"),
		WithMapSplitSize(128<<20),
	)

	assert.NoError(t, cfg.validate())
}

func TestJobExecutionParameters(t *testing.T) {
	cfg := NewConfig(
		WithName("job1"),
		WithMapTasks(4),
		WithReduceTasks(0),
		WithSetting(SettingFieldSeparator, "\t"),
	)
	job := NewJob(cfg.Name, cfg.Settings)

	assert.Equal(t, []string{
		"mapred.job.name=job1",
		"mapred.map.tasks=4",
		"mapred.reduce.tasks=0",
		"stream.map.output.field.separator=\t",
	}, job.ExecutionParameters())
}

func TestJobDefaults(t *testing.T) {
	job := NewJob("job1", nil)

	assert.NotEqual(t, job.RunID(), NewJob("job1", nil).RunID())
	assert.Empty(t, job.InputFormat())
	assert.Empty(t, job.OutputFormat())
	assert.Empty(t, job.InputPaths())
	assert.Empty(t, job.OutputPath())
	assert.Equal(t, []string{"mapred.job.name=job1"}, job.ExecutionParameters())
}

func TestResolvePlainJob(t *testing.T) {
	inv, err := Resolve(NewConfig(
		WithName("job1"),
		WithInput("/data/in"),
		WithOutput("/data/out"),
		WithSetting(SettingInputFormat, "org.apache.hadoop.mapred.SequenceFileInputFormat"),
		WithLogger(discard),
	))
	require.NoError(t, err)

	assert.Equal(t, "org.apache.hadoop.mapred.SequenceFileInputFormat", inv.InputFormat())
	assert.Equal(t, "/data/in", inv.InputPaths())
	assert.Equal(t, "/data/out", inv.OutputPath())
	assert.Equal(t, []string{"mapred.job.name=job1", "mapred.reduce.tasks=1"}, inv.ExecutionParameters())
}

func TestResolveIndexStoreJob(t *testing.T) {
	inv, err := Resolve(NewConfig(
		WithName("job1"),
		WithInput("es://logs/events"),
		WithOutput("/data/out"),
		WithTmpDir("/tmp/stage"),
		WithSetting("config", "/etc/es.yml"),
		WithClock(fixedNow),
		WithLogger(discard),
	))
	require.NoError(t, err)

	o, ok := inv.(*esindex.Override)
	require.True(t, ok)
	assert.True(t, o.ReadsFromIndexStore())

	assert.Equal(t, esindex.StreamingInputFormat, inv.InputFormat())
	assert.Empty(t, inv.OutputFormat())
	assert.Equal(t, "/tmp/stage/logs/events/job1/2024-01-02-03-04-05", inv.InputPaths())
	assert.Equal(t, "/data/out", inv.OutputPath())
	assert.Equal(t, []string{
		"mapred.job.name=job1",
		"mapred.reduce.tasks=1",
		"es.config=/etc/es.yml",
		"elasticsearch.input.index=logs",
		"elasticsearch.input.type=events",
	}, inv.ExecutionParameters())
}

func TestResolveWithoutIndexStore(t *testing.T) {
	inv, err := Resolve(NewConfig(
		WithName("job1"),
		WithInput("es://logs/events"),
		WithOutput("/data/out"),
		WithIndexStore(false),
		WithLogger(discard),
	))
	require.NoError(t, err)

	_, ok := inv.(*Job)
	require.True(t, ok)
	assert.Equal(t, "es://logs/events", inv.InputPaths())
}

func TestResolveCopiesSettings(t *testing.T) {
	cfg := NewConfig(
		WithName("job1"),
		WithInput("es://logs/events"),
		WithOutput("/data/out"),
		WithTmpDir("/tmp/stage"),
		WithClock(fixedNow),
		WithLogger(discard),
	)
	inv, err := Resolve(cfg)
	require.NoError(t, err)

	cfg.Settings[SettingInput] = "/data/in"
	cfg.Settings[SettingTmpDir] = "/elsewhere"

	assert.Equal(t, "es://logs/events", inv.Settings().String(SettingInput))
	assert.Equal(t, "/tmp/stage/logs/events/job1/2024-01-02-03-04-05", inv.InputPaths())
}

func TestResolveInvalid(t *testing.T) {
	inv, err := Resolve(NewConfig(WithLogger(discard)))
	assert.Error(t, err)
	assert.Nil(t, inv)
}
