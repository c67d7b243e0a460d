package wonderdog

import (
	"github.com/google/uuid"
	"github.com/prxssh/wonderdog/api"
)

// Job is the plain HDFS invocation of a job: every location is taken from the
// settings as is.
type Job struct {
	name     string
	settings api.Settings

	// runID tells apart two resolutions of the same job in the logs.
	runID uuid.UUID
}

var _ api.Invocation = (*Job)(nil)

// NewJob creates the base invocation for a job. The settings are not copied.
func NewJob(name string, settings api.Settings) *Job {
	if settings == nil {
		settings = api.Settings{}
	}

	return &Job{
		name:     name,
		settings: settings,
		runID:    uuid.New(),
	}
}

func (j *Job) RunID() uuid.UUID { return j.runID }

func (j *Job) Settings() api.Settings { return j.settings }

func (j *Job) JobName() string { return j.name }

func (j *Job) InputFormat() string { return j.settings.String(SettingInputFormat) }

func (j *Job) OutputFormat() string { return j.settings.String(SettingOutputFormat) }

func (j *Job) InputPaths() string { return j.settings.String(SettingInput) }

func (j *Job) OutputPath() string { return j.settings.String(SettingOutput) }

// ExecutionParameters returns the generic Hadoop parameters derived from the
// settings.
func (j *Job) ExecutionParameters() []string {
	var params []string
	params = api.AppendParam(params, "mapred.job.name", j.name)
	params = api.AppendParam(params, "mapred.map.tasks", j.settings.String(SettingMapTasks))
	params = api.AppendParam(params, "mapred.reduce.tasks", j.settings.String(SettingReduceTasks))
	params = api.AppendParam(params, "mapred.min.split.size", j.settings.String(SettingMinSplitSize))
	params = api.AppendParam(params, "stream.map.output.field.separator", j.settings.String(SettingFieldSeparator))
	return params
}
