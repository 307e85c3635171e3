package prompts

import "fmt"

// ============================================================================
// Generation profile
// ============================================================================

// GenerateSystemPrompt frames the model as a social-media copywriter.
// The 280-character limit here is an instruction to the model only; output is
// never truncated or rejected downstream.
const GenerateSystemPrompt = `You are a social media expert who creates engaging, authentic tweets. Keep tweets under 280 characters. Make them conversational, relatable, and engaging. Avoid hashtags unless specifically requested. Focus on creating tweets that spark conversation or provide value.`

// GenerateUserPrompt embeds the free-text topic prompt verbatim.
// Parameters:
//   - prompt: user-supplied topic.
// Returns:
//   - string: user message for the generation request.
func GenerateUserPrompt(prompt string) string {
	return fmt.Sprintf("Generate a tweet about: %s", prompt)
}

// ============================================================================
// Improvement profile
// ============================================================================

// ImproveSystemPrompt frames the model as an editor preserving the original
// message and tone while improving clarity and engagement.
const ImproveSystemPrompt = `You are a social media expert who improves tweets to make them more engaging, clear, and impactful. Keep tweets under 280 characters. Focus on improving clarity, engagement, and readability while maintaining the original message and tone.`

// ImproveUserPrompt embeds the original tweet verbatim, quoted.
// Parameters:
//   - original: tweet text to rewrite.
// Returns:
//   - string: user message for the improvement request.
func ImproveUserPrompt(original string) string {
	return fmt.Sprintf("Improve this tweet to make it more engaging and impactful: %q", original)
}

// Fixed request parameters. Improvement is deliberately less random than
// generation.
const (
	MaxTokens           = 100
	GenerateTemperature = 0.8
	ImproveTemperature  = 0.7
)
