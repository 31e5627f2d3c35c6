package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryBuild(t *testing.T) {
	tests := []struct {
		name string
		cfg  RawConfig
		kind Kind
	}{
		{
			name: "freestyle",
			cfg:  freestyleConfig("d", ""),
			kind: FreestyleKind,
		},
		{
			name: "project wins over other content",
			cfg: RawConfig{
				"project": map[string]interface{}{"@plugin": "maven-plugin@3.4", "description": "d", "triggers": ""},
				"extra":   map[string]interface{}{"@plugin": "workflow-job@2.36"},
			},
			kind: FreestyleKind,
		},
		{
			name: "pipeline",
			cfg:  pipelineConfig(""),
			kind: PipelineKind,
		},
		{
			name: "maven",
			cfg: RawConfig{"maven2-moduleset": map[string]interface{}{
				"@plugin":     "maven-plugin@3.4",
				"description": "d",
			}},
			kind: MavenKind,
		},
		{
			name: "plugin attribute without version and uppercase",
			cfg: RawConfig{"flow-definition": map[string]interface{}{
				"@plugin":     "Workflow-Job",
				"description": "d",
				"properties":  "",
			}},
			kind: PipelineKind,
		},
	}

	factory := NewFactory(DefaultPlugins())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			job, err := factory.Build("sample", test.cfg)
			require.NoError(t, err)
			assert.Equal(t, test.kind, job.Kind())
			assert.Equal(t, "sample", job.Name())
		})
	}
}

func TestFactoryErrors(t *testing.T) {
	factory := NewFactory(DefaultPlugins())

	t.Run("empty config", func(t *testing.T) {
		_, err := factory.Build("empty", RawConfig{})
		var invalid *InvalidConfigError
		require.True(t, errors.As(err, &invalid), "unexpected error: %v", err)
		assert.Equal(t, rootElement, invalid.Key)
	})

	t.Run("missing plugin attribute", func(t *testing.T) {
		_, err := factory.Build("noplugin", RawConfig{"flow-definition": map[string]interface{}{"description": "d"}})
		var invalid *InvalidConfigError
		require.True(t, errors.As(err, &invalid), "unexpected error: %v", err)
		assert.Equal(t, "@plugin", invalid.Key)
	})

	t.Run("unknown plugin", func(t *testing.T) {
		_, err := factory.Build("matrix", RawConfig{"matrix-project": map[string]interface{}{"@plugin": "matrix-project@1.14"}})
		var unknown *UnknownJobTypeError
		require.True(t, errors.As(err, &unknown), "unexpected error: %v", err)
		assert.Equal(t, "matrix-project", unknown.JobType)
		assert.Equal(t, `Unknown job type "matrix-project"`, err.Error())
	})

	t.Run("construction error is passed through", func(t *testing.T) {
		_, err := factory.Build("bad", RawConfig{"project": map[string]interface{}{"triggers": ""}})
		var missing *MissingElementError
		require.True(t, errors.As(err, &missing), "unexpected error: %v", err)
		assert.Equal(t, "description", missing.Element)
	})
}

func TestFactoryCopiesRegistrations(t *testing.T) {
	plugins := map[string]Variant{"workflow-job": Pipeline{}}
	factory := NewFactory(plugins)
	plugins["maven-plugin"] = Maven{}
	delete(plugins, "workflow-job")

	assert.Equal(t, []string{"workflow-job"}, factory.Plugins())

	_, err := factory.Build("mvn", RawConfig{"maven2-moduleset": map[string]interface{}{"@plugin": "maven-plugin@3.4"}})
	var unknown *UnknownJobTypeError
	assert.True(t, errors.As(err, &unknown))
}

func TestFactoryCustomRegistration(t *testing.T) {
	factory := NewFactory(map[string]Variant{"maven-plugin": Pipeline{}})
	job, err := factory.Build("p", RawConfig{"flow-definition": map[string]interface{}{
		"@plugin":     "maven-plugin@1.0",
		"description": "d",
		"properties":  "",
	}})
	require.NoError(t, err)
	assert.Equal(t, PipelineKind, job.Kind())
}

func TestPlugin(t *testing.T) {
	plugin, err := Plugin(RawConfig{"flow-definition": map[string]interface{}{"@plugin": "workflow-job@2.36"}})
	require.NoError(t, err)
	assert.Equal(t, "workflow-job", plugin)

	pluginType, err := PluginType(RawConfig{"maven2-moduleset": ""})
	require.NoError(t, err)
	assert.Equal(t, "maven2-moduleset", pluginType)
}

func TestTimerInvariant(t *testing.T) {
	factory := NewFactory(DefaultPlugins())
	configs := []RawConfig{
		freestyleConfig("d", ""),
		freestyleConfig("d", timerTriggers("H 1 * * *")),
		pipelineConfig(map[string]interface{}{
			PipelineTriggersProperty: map[string]interface{}{"triggers": timerTriggers("H 4 * * 1-5")},
		}),
		pipelineConfig(""),
	}
	for i, cfg := range configs {
		job, err := factory.Build("job", cfg)
		require.NoError(t, err, "config %d", i)
		_, hasSpec := job.TimerTriggerSpec()
		assert.Equal(t, job.TimerTriggerBased(), hasSpec, "config %d", i)
	}
}
