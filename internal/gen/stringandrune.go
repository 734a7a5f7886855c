//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"strings"
)

//
// STRINGS and []RUNE
//

// IsAllPunct - true if every rune of s is in the set; "" is not punctuation
func IsAllPunct(s string, set map[string]struct{}) bool {
	if s == "" {
		return false
	}
	if _, ok := set[s]; ok {
		return true
	}
	for _, r := range s {
		if _, ok := set[string(r)]; !ok {
			return false
		}
	}
	return strings.TrimSpace(s) != ""
}
