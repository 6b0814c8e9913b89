package rag

// Centralized prompts for the assistant - anything that talks to the LLM
// pulls its wording from here.

const ChatAssistantBaseSystem = "You are a helpful product assistant. Answer concisely and accurately. If you are given context from documentation, use it to answer; if the context does not contain the answer, say so."

const ChatAssistantContextPrefix = "Use the following context from the product documentation when answering. If the context does not contain the answer, say so.\n\nContext:\n"

const SummaryPrompt = `Summarize the following product documentation in a single sentence that gives an overview of what the product is and what it does.
Output only that one sentence, no quotes, no preamble, no "Summary:" label.`

// BuildSystemInstruction returns the base instruction, with the retrieved
// context injected when there is any.
func BuildSystemInstruction(contextBlock string) string {
	if contextBlock == "" {
		return ChatAssistantBaseSystem
	}
	return ChatAssistantBaseSystem + "\n\n" + ChatAssistantContextPrefix + contextBlock
}
