package esindex

import (
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the layout of the last element of a staging path.
const TimestampLayout = "2006-01-02-15-04-05"

var unsafePathChars = regexp.MustCompile(`[^\w/.\-+]+`)

// StagingPath returns the temporary HDFS directory that holds a job's data
// while it is shipped to or from Elasticsearch:
//
//	<tmpRoot>/<index>[/<type>]/<jobName>/<YYYY-MM-DD-HH-MM-SS>
//
// Index and type are stripped of every character outside word characters and
// "/.-+", and dropped when nothing is left. The parts are joined verbatim,
// never cleaned, so a fully qualified root such as "hdfs://nn:8020/tmp" keeps
// its scheme. Two jobs with the same name started within the same second get
// the same path.
func StagingPath(tmpRoot string, loc Locator, jobName string, at time.Time) string {
	var parts []string
	for _, s := range []string{sanitize(loc.Index), sanitize(loc.Type)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, jobName, at.Format(TimestampLayout))

	return strings.TrimRight(tmpRoot, "/") + "/" + strings.Join(parts, "/")
}

func sanitize(s string) string {
	return unsafePathChars.ReplaceAllString(s, "")
}
