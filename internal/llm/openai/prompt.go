package openai

import (
	"fmt"
	"log"
	"strings"

	"github.com/Haunschild/dolosX/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const systemPromptStrict = "You are a forensic transcript analysis engine. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."

// BuildPrompt creates the chat messages for a transcript analysis request.
func BuildPrompt(promptVersion string, transcriptText string, model string) []Message {
	_, developer := resolvePromptTemplate(promptVersion, model)

	return []Message{
		{Role: "system", Content: systemPromptStrict},
		{Role: "developer", Content: developer},
		{Role: "user", Content: buildUserPrompt(transcriptText)},
	}
}

func resolvePromptTemplate(promptVersion string, model string) (string, string) {
	version := strings.TrimSpace(promptVersion)
	template, ok := llm.PromptTemplate(version)
	usedVersion := version
	if !ok {
		log.Printf("unknown prompt version %q, defaulting to v1", version)
		usedVersion = "v1"
		template, _ = llm.PromptTemplate(usedVersion)
	}

	replacer := strings.NewReplacer(
		"{{PROMPT_VERSION}}", usedVersion,
		"{{MODEL}}", model,
	)
	return usedVersion, replacer.Replace(template)
}

func buildUserPrompt(transcriptText string) string {
	return fmt.Sprintf("Transcript to analyze:\n---\n%s\n---", transcriptText)
}
