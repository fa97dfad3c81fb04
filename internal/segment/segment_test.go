// ABOUTME: Tests for splitting note content into paragraphs and joining it back.
// ABOUTME: Checks that split and join round trip.

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single", "Hello world", []string{"Hello world"}},
		{"two paragraphs", "Para one\n\nPara two", []string{"Para one", "Para two"}},
		{"extra blank lines", "a\n\n\n\nb", []string{"a", "b"}},
		{"whitespace-only separator", "a\n  \t\nb", []string{"a", "b"}},
		{"crlf", "a\r\n\r\nb", []string{"a", "b"}},
		{"single newline kept", "line one\nline two", []string{"line one\nline two"}},
		{"sentences stay together", "First. Second sentence.", []string{"First. Second sentence."}},
		{"leading and trailing blanks", "\n\n a \n\n", []string{" a "}},
		{"whitespace only", "  \n\n \t ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.content))
		})
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	inputs := []string{
		"Para one\n\nPara two",
		"a\n\n\n\nb\n  \nc",
		"one\ntwo\n\nthree",
		"  indented\n\n\ttabbed",
	}
	for _, in := range inputs {
		p := Split(in)
		assert.Equal(t, p, Split(Join(p)), "round trip of %q", in)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Para one\n\nPara two", Join([]string{"Para one", "Para two"}))
	assert.Equal(t, "", Join(nil))
}
