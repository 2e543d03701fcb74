package configuration

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a and b as YAML and returns a line diff labelled with
// labelA and labelB. It returns the empty string when both render equally.
func Diff(a, b any, labelA, labelB string) (string, error) {
	left, err := Encode(a, FormatYAML)
	if err != nil {
		return "", err
	}
	right, err := Encode(b, FormatYAML)
	if err != nil {
		return "", err
	}
	if string(left) == string(right) {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(left), string(right))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	sb.WriteString("--- " + labelA + "\n")
	sb.WriteString("+++ " + labelB + "\n")
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString("- " + line + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString("+ " + line + "\n")
			case diffmatchpatch.DiffEqual:
				sb.WriteString("  " + line + "\n")
			}
		}
	}
	return sb.String(), nil
}
