package llm

import _ "embed"

//go:embed prompts/v1.txt
var promptV1 string

// PromptTemplate returns the prompt template text and whether the version was
// recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "v1":
		return promptV1, true
	default:
		return promptV1, false
	}
}
