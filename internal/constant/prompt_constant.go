package constant

const (
	JournalSummaryPromptV1 = `As an AI therapist, please summarize the user's journal entries from %s to %s.
Describe the highs, the lows, and how the user's emotional state changed across this period.

Entries:
%s`

	ChatSummaryPromptV1 = "Please summarize this conversation:\n\n%s"

	ProfilePromptV1 = `You are an AI therapist building a concise, JSON-formatted user profile. Given the following chat and journal summaries, output ONLY valid JSON with keys: name (string), strengths (array of {area,description}), weaknesses (array of {area,description}), socialSkills ({score:int,description:string}).

ChatSummaries:
%s

JournalSummaries:
%s`

	InsightPromptV1 = `As an AI therapist, analyze the following goals and journal entries:

Goals:
%s

Journal Entries:
%s

Please provide therapeutic insights, patterns observed, and suggestions for personal growth.
Focus on emotional patterns, behavioral trends, and potential areas for development.`
)
