package normalize

import (
	"strings"
)

// Remote-work options.
const (
	RemoteOptionRemote       = "Remote"
	RemoteOptionHybrid       = "Hybrid"
	RemoteOptionOnSite       = "On-site"
	RemoteOptionNotSpecified = "Not Specified"
)

// negativeRemotePhrases force On-site regardless of any other signal.
// Postings routinely say "this is not a remote role" right after listing
// "work from home" under benefits, so the hard override runs first.
var negativeRemotePhrases = []string{
	"not remote", "not wfh", "not work from home", "not a hybrid role",
	"must work in office", "in the office full time", "on-site only",
	"office based", "office base",
}

var remotePhrases = []string{"remote", "wfh", "work from home"}

// RemoteOption classifies the work arrangement from title, location and
// qualifications text. fallback is the source's default when no signal is
// present (On-site canonically, Not Specified for sources with no reliable
// default).
func RemoteOption(title, location, qualifications, fallback string) string {
	text := strings.ToLower(title + " " + location + " " + qualifications)

	for _, phrase := range negativeRemotePhrases {
		if strings.Contains(text, phrase) {
			return RemoteOptionOnSite
		}
	}

	if strings.Contains(text, "hybrid") {
		return RemoteOptionHybrid
	}

	for _, phrase := range remotePhrases {
		if strings.Contains(text, phrase) {
			return RemoteOptionRemote
		}
	}

	if fallback == "" {
		return RemoteOptionOnSite
	}
	return fallback
}
