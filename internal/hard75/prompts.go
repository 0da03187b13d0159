package hard75

// Prompt is the text of a confirmation shown before a destructive operation.
type Prompt struct {
	Title   string
	Message string
	Confirm string
}

var (
	PromptIncompleteDay = Prompt{
		Title:   "Incomplete Day",
		Message: "You haven't completed all tasks. If you end the day now, you'll have to start over from Day 1. Are you sure?",
		Confirm: "Start Over",
	}

	PromptResetChallenge = Prompt{
		Title:   "Start New Challenge?",
		Message: "This will save your current attempt and start a new challenge from Day 1. Are you sure?",
		Confirm: "Start New",
	}

	PromptClearData = Prompt{
		Title:   "⚠️ Clear All Data?",
		Message: "This will permanently delete all your progress, photos, and history. This action cannot be undone!",
		Confirm: "Delete Everything",
	}

	PromptChallengeComplete = Prompt{
		Title:   "🎉 Challenge Complete! 🎉",
		Message: "Congratulations! You've completed the 75 Hard Challenge! You've proven your mental toughness and transformed your life. This is just the beginning!",
		Confirm: "Start New Challenge",
	}
)

// PromptImport is shown before a snapshot import replaces existing progress.
var PromptImport = Prompt{
	Title:   "Replace Current Progress?",
	Message: "Importing a snapshot replaces your current challenge, photos and history.",
	Confirm: "Import",
}
