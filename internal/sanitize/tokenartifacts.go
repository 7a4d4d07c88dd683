package sanitize

import "regexp"

// llmTokenArtifactRe matches special tokens that leak out of chat-template
// prompting or streaming frameworks: instruction/role markers, end-of-turn
// sentinels, and tool-call wrapper tags.
var llmTokenArtifactRe = regexp.MustCompile(`(?i)<\|[a-z_]*\|>|\[/?INST\]|<s>|</s>|<\|endoftext\|>|<\|im_(start|end)\|>|^\s*assistant:\s*|^\s*system:\s*`)

// stripLLMTokenArtifacts removes chat-template and streaming-framework
// artifacts that are not part of the model's own JSON output.
func stripLLMTokenArtifacts(content string) (string, bool) {
	if !llmTokenArtifactRe.MatchString(content) {
		return content, false
	}
	return llmTokenArtifactRe.ReplaceAllString(content, ""), true
}
