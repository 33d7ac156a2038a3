package app

import (
	"encoding/xml"
	"io"
	"strings"
)

const (
	reasoningTag    = "think"
	minReasoningLen = 10
)

// ValidateResponse reports whether a model reply ends with a well-formed,
// substantive <think>...</think> reasoning block.
//
// The reply is parsed as XML under a synthetic root, so a reply whose markers
// do not nest cleanly is rejected outright. The accepted shape is: the last
// think block in document order is the final element among its siblings,
// nothing but whitespace follows it at that level, and its text content is at
// least minReasoningLen characters after trimming.
func ValidateResponse(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}

	dec := xml.NewDecoder(strings.NewReader("<root>" + content + "</root>"))

	var (
		depth        int
		thinkDepth   = -1 // depth of the open think block, -1 when outside
		siblingLevel int  // nesting level of the last completed think block
		trailing     bool // content seen after the last completed think block
		found        bool
		buf          strings.Builder
		lastText     string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == reasoningTag {
				// Every opening tag, nested ones included, starts a new
				// candidate, so the last block in document order is judged.
				thinkDepth = depth + 1
				siblingLevel = depth
				trailing = false
				found = false
				buf.Reset()
			} else if found && depth == siblingLevel {
				trailing = true
			}
			depth++
		case xml.EndElement:
			if thinkDepth != -1 && depth == thinkDepth && t.Name.Local == reasoningTag {
				found = true
				lastText = buf.String()
				thinkDepth = -1
			}
			depth--
		case xml.CharData:
			if thinkDepth != -1 {
				buf.Write(t)
			} else if found && depth == siblingLevel && strings.TrimSpace(string(t)) != "" {
				trailing = true
			}
		}
	}

	return found && !trailing && len(strings.TrimSpace(lastText)) >= minReasoningLen
}
