package jobs

import "strings"

// Kind names a job variant. The value is what appears in report lines.
type Kind string

const (
	FreestyleKind Kind = "FreestyleJob"
	PipelineKind  Kind = "PipelineJob"
	MavenKind     Kind = "MavenJob"
)

// Valid tells whether k is one of the known job variants.
func (k Kind) Valid() bool {
	switch k {
	case FreestyleKind, PipelineKind, MavenKind:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

const (
	descriptionNode = "description"
	triggersNode    = "triggers"
	propertiesNode  = "properties"

	// PipelineTriggersProperty holds the triggers of a Pipeline job.
	PipelineTriggersProperty = "org.jenkinsci.plugins.workflow.job.properties.PipelineTriggersJobProperty"
)

// Variant knows where a job type keeps its description and timer trigger.
type Variant interface {
	Kind() Kind
	// RootNode is the top-level element of the configuration.
	RootNode() string
	FindDescription(jobName string, cfg RawConfig) (*string, error)
	FindTimerTrigger(jobName string, cfg RawConfig) (TimerTrigger, error)
}

// Freestyle is the classic Jenkins job. It is not provided by a plugin.
type Freestyle struct{}

func (Freestyle) Kind() Kind       { return FreestyleKind }
func (Freestyle) RootNode() string { return "project" }

func (f Freestyle) FindDescription(jobName string, cfg RawConfig) (*string, error) {
	desc, missing, ok := lookup(cfg, f.RootNode(), descriptionNode)
	if !ok {
		return nil, &MissingElementError{Element: missing, Context: ContextDescription, JobName: jobName}
	}
	return text(desc), nil
}

func (f Freestyle) FindTimerTrigger(jobName string, cfg RawConfig) (TimerTrigger, error) {
	return locateTimerTrigger(jobName, cfg, []string{f.RootNode(), triggersNode}, nil)
}

// PluginBased holds what all plugin provided jobs share: the description
// lives directly under the plugin element. It has no timer trigger lookup,
// so it only becomes a Variant when embedded in a type that supplies one.
type PluginBased struct{}

// FindDescription reads the description under the plugin element.
func (PluginBased) FindDescription(jobName string, cfg RawConfig) (*string, error) {
	pluginType, err := PluginType(cfg)
	if err != nil {
		return nil, &MissingElementError{Element: rootElement, Context: ContextDescription, JobName: jobName}
	}
	desc, missing, ok := lookup(cfg, pluginType, descriptionNode)
	if !ok {
		return nil, &MissingElementError{Element: missing, Context: ContextDescription, JobName: jobName}
	}
	return text(desc), nil
}

// PluginType returns the top-level element of a plugin based configuration,
// for example "flow-definition".
func PluginType(cfg RawConfig) (string, error) {
	keys := rootKeys(cfg)
	if len(keys) == 0 {
		return "", &InvalidConfigError{Key: rootElement}
	}
	return keys[0], nil
}

// Plugin returns the lowercased name of the plugin that provides the job,
// without version: <flow-definition plugin="workflow-job@2.36"> gives
// "workflow-job".
func Plugin(cfg RawConfig) (string, error) {
	pluginType, err := PluginType(cfg)
	if err != nil {
		return "", err
	}
	attr, ok := child(cfg[pluginType], pluginAttr)
	if !ok {
		return "", &InvalidConfigError{Key: pluginAttr}
	}
	plugin := text(attr)
	if plugin == nil {
		return "", &InvalidConfigError{Key: pluginAttr}
	}
	name, _, _ := strings.Cut(*plugin, "@")
	return strings.ToLower(name), nil
}

// Pipeline is a job provided by the workflow-job plugin.
type Pipeline struct {
	PluginBased
}

func (Pipeline) Kind() Kind       { return PipelineKind }
func (Pipeline) RootNode() string { return "flow-definition" }

func (p Pipeline) FindTimerTrigger(jobName string, cfg RawConfig) (TimerTrigger, error) {
	return locateTimerTrigger(jobName, cfg,
		[]string{p.RootNode(), propertiesNode},
		[]string{PipelineTriggersProperty, triggersNode},
	)
}

// Maven is a job provided by the maven-plugin.
type Maven struct {
	PluginBased
}

func (Maven) Kind() Kind       { return MavenKind }
func (Maven) RootNode() string { return "maven2-moduleset" }

func (m Maven) FindTimerTrigger(jobName string, cfg RawConfig) (TimerTrigger, error) {
	return locateTimerTrigger(jobName, cfg, []string{m.RootNode()}, []string{triggersNode})
}
