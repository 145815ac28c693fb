package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Personas
	PersonaEmpatheticSummarizer = "You are an empathetic summarizer."
	PersonaConciseSummarizer    = "You are a concise summarizer."
	PersonaSessionTherapist     = "You are an empathetic AI therapist named Therapost."
	PersonaInsightTherapist     = "You are an empathetic AI therapist."
	PersonaChatTherapist        = `You are an empathetic AI therapist.
Use the provided context about the user's journal entries and previous chat
to give thoughtful, therapeutic responses. Focus on being supportive while
maintaining professional boundaries. Avoid giving medical advice.`

	ChatContextPrefix = "Context from user's journal entries and goals: "

	// Output caps, in tokens
	JournalSummaryMaxTokens = 500
	ChatSummaryMaxTokens    = 300
	ProfileMaxTokens        = 800
	SessionReplyMaxTokens   = 300
	ChatReplyMaxTokens      = 1000
	InsightMaxTokens        = 1000

	ChatTemperature = 0.7

	// ChatHistoryWindow is how many prior turns are replayed to the model.
	ChatHistoryWindow = 10

	// ProfileSummaryWindow is how many recent summaries of each kind feed a profile.
	ProfileSummaryWindow = 5

	// BackfillJournalWindow is the number of distinct journal dates per backfilled summary.
	BackfillJournalWindow = 7

	NoInsightData      = "No new data available for analysis."
	NoInsightAvailable = "No insights available yet."
)
