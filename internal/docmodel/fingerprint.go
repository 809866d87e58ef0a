package docmodel

import (
	"strings"

	"github.com/inful/mdfp"
)

// Fingerprint is the content hash of the document, ignoring any existing
// fingerprint field. The watch loop uses it to skip rebuilds for saves that
// did not change content.
func (d *ParsedDoc) Fingerprint() string {
	var kept []string
	for _, line := range strings.SplitAfter(string(d.fmRaw), "\n") {
		if strings.HasPrefix(line, mdfp.FingerprintField+":") {
			continue
		}
		kept = append(kept, line)
	}
	fm := strings.TrimSuffix(strings.Join(kept, ""), "\n")
	return mdfp.CalculateFingerprintFromParts(fm, string(d.body))
}
