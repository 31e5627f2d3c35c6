package jenkins

// JobSummary is one entry of the job list returned by /api/json.
type JobSummary struct {
	Class string `json:"_class"`
	Name  string `json:"name"`
	Url   string `json:"url"`
	Color string `json:"color"`
}

// IsFolder tells if the entry is a folder rather than a buildable job.
func (j JobSummary) IsFolder() bool {
	switch j.Class {
	case "com.cloudbees.hudson.plugins.folder.Folder",
		"jenkins.branch.OrganizationFolder",
		"org.jenkinsci.plugins.workflow.multibranch.WorkflowMultiBranchProject":
		return true
	}
	return false
}

type jobList struct {
	Class string       `json:"_class"`
	Jobs  []JobSummary `json:"jobs"`
}
