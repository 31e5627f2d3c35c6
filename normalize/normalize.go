package normalize

import "strings"

// MissingDescription replaces a description that is absent or has no visible text.
const MissingDescription = "*** MISSING DESCRIPTION ***"

const commentMarker = "#"

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// Spec removes comment lines and blank lines from a timer trigger
// specification. A nil spec stays nil. A spec made only of comments and
// blank lines becomes the empty string.
func Spec(spec *string) *string {
	if spec == nil {
		return nil
	}
	kept := make([]string, 0)
	for _, line := range lines(*spec) {
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		kept = append(kept, line)
	}
	clean := strings.Join(kept, "\n")
	return &clean
}

// Description collapses a multi-line description into a single line,
// dropping blank lines. Absent or empty descriptions become MissingDescription.
func Description(desc *string) string {
	if desc == nil || *desc == "" {
		return MissingDescription
	}
	kept := make([]string, 0)
	for _, line := range lines(strings.TrimSpace(*desc)) {
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return MissingDescription
	}
	return strings.Join(kept, " ")
}
