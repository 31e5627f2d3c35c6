package jenkins

import (
	"bytes"
	"regexp"

	"github.com/clbanning/mxj/v2"
	"github.com/pkg/errors"

	"github.com/glasswalk3r/jenkins-jobs/jobs"
)

// Jenkins writes XML 1.1 prologs, which encoding/xml refuses. The documents
// do not use any 1.1 feature.
var xml11Prolog = regexp.MustCompile(`^(\s*<\?xml\s+version\s*=\s*)(['"])1\.1(['"])`)

func init() {
	mxj.SetAttrPrefix("@")
}

// ParseConfig turns a job's config.xml into a RawConfig. Attributes are
// keyed with an "@" prefix and empty elements become "".
func ParseConfig(data []byte) (jobs.RawConfig, error) {
	data = xml11Prolog.ReplaceAll(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), []byte("${1}${2}1.0${3}"))
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing job configuration")
	}
	return jobs.RawConfig(m), nil
}
