package codec

import (
	"regexp"
	"strings"
)

var gotoPattern = regexp.MustCompile(`goto\s+(\S+)`)

// splitGoto lifts the first `goto <node>` fragment out of a legacy script.
// The fragment is removed and the remaining script trimmed. Later goto
// fragments stay in the script untouched.
func splitGoto(script string) (rest, target string) {
	loc := gotoPattern.FindStringSubmatchIndex(script)
	if loc == nil {
		return script, ""
	}
	target = script[loc[2]:loc[3]]
	rest = strings.TrimSpace(script[:loc[0]] + script[loc[1]:])
	return rest, target
}
