package app

import "testing"

func TestValidateResponse(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \n\t ", false},
		{"answer then reasoning", "answer <think>sufficiently long reasoning text</think>", true},
		{"reasoning only", "<think>here is the full chain of reasoning</think>", true},
		{"content after block", "<think>short</think> trailing", false},
		{"no blocks", "no blocks here", false},
		{"reasoning too short", "<think>tiny</think>", false},
		{"reasoning exactly too short", "answer <think>123456789</think>", false},
		{"whitespace after block accepted", "answer <think>plenty of reasoning here</think>  \n", true},
		{"element after block", "<think>plenty of reasoning here</think><b>more</b>", false},
		{"last of several blocks counts", "<think>first reasoning passage</think> middle <think>second reasoning passage</think>", true},
		{"last block too short", "<think>first reasoning passage</think> middle <think>tiny</think>", false},
		{"nested inner block too short", "<think>outer reasoning <think>tiny</think> tail</think>", false},
		{"nested inner block judged", "<think>pad <think>inner reasoning long enough</think></think>", true},
		{"unbalanced markers", "answer <think>never closed", false},
		{"interleaved close before open", "</think>answer<think>", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateResponse(tc.content); got != tc.want {
				t.Fatalf("ValidateResponse(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}
