package app

import "testing"

func TestSplitReasoning(t *testing.T) {
	cases := []struct {
		name          string
		content       string
		wantAnswer    string
		wantReasoning string
	}{
		{"answer around block", "Hello <think>because</think> world", "Hello world", "because"},
		{"plain text", "plain text", "plain text", ""},
		{"block only", "<think>all reasoning</think>", "", "all reasoning"},
		{"trailing block", "the answer\n<think>the rationale</think>", "the answer", "the rationale"},
		{"unterminated block", "partial <think>never closed", "partial", "never closed"},
		{"empty input", "", "", ""},
		{"whitespace padding", "  hi  <think>  why  </think>  there  ", "hi there", "why"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answer, reasoning := SplitReasoning(tc.content)
			if answer != tc.wantAnswer || reasoning != tc.wantReasoning {
				t.Fatalf("SplitReasoning(%q) = (%q, %q), want (%q, %q)",
					tc.content, answer, reasoning, tc.wantAnswer, tc.wantReasoning)
			}
		})
	}
}
