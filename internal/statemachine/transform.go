package statemachine

import (
	"path/filepath"
	"strings"

	"github.com/mgree/modernish/pkg/scopetypes"
)

// TransformArgs turns the trailing token list into the body's local
// argument vector under the given policy. The transform is pure: it reads
// the filesystem for glob policies but never mutates interpreter state,
// and it cannot fail: a pattern the filesystem rejects is treated as a
// pattern with zero matches.
func TransformArgs(policy scopetypes.TransformPolicy, tokens []string) []string {
	fields := splitFields(policy, tokens)
	return globFields(policy.Glob, fields)
}

// splitFields applies the split half of the policy.
func splitFields(policy scopetypes.TransformPolicy, tokens []string) []string {
	switch policy.Split {
	case scopetypes.NoSplit:
		// Strict identity map: one field per original token, empty
		// strings included.
		out := make([]string, len(tokens))
		copy(out, tokens)
		return out

	case scopetypes.HostDefaultSplit:
		var out []string
		for _, token := range tokens {
			out = append(out, strings.Fields(token)...)
		}
		return out

	case scopetypes.SplitOnCharset:
		var out []string
		for _, token := range tokens {
			out = append(out, splitOnAny(token, policy.Charset)...)
		}
		return out

	default:
		out := make([]string, len(tokens))
		copy(out, tokens)
		return out
	}
}

// splitOnAny splits s at every occurrence of any character in charset,
// preserving empty fields between consecutive delimiters.
func splitOnAny(s string, charset string) []string {
	fields := []string{""}
	for _, r := range s {
		if strings.ContainsRune(charset, r) {
			fields = append(fields, "")
			continue
		}
		fields[len(fields)-1] += string(r)
	}
	return fields
}

// globFields applies pathname expansion to each field.
func globFields(mode scopetypes.GlobMode, fields []string) []string {
	if mode == scopetypes.NoGlob {
		return fields
	}

	var out []string
	for _, field := range fields {
		matches, err := filepath.Glob(field)
		if err != nil || len(matches) == 0 {
			// Zero matches: keep the literal under Glob, drop under
			// GlobDropEmptyMatches. A malformed pattern counts as zero
			// matches so it can never abort an already-applied scope.
			if mode == scopetypes.Glob {
				out = append(out, field)
			}
			continue
		}
		out = append(out, matches...)
	}
	return out
}
