package bot

// BotConfig represents the fixed UI choices offered by the bot's keyboards
type BotConfig struct {
	// Options for the quiz settings menus
	ConceptLimitOptions  []int
	QuestionLimitOptions []int
	ReminderHourOptions  []int
	// File types the server accepts for note uploads
	FileTypes []string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		ConceptLimitOptions:  []int{3, 5, 10, 15, 20},
		QuestionLimitOptions: []int{5, 10, 20, 30, 50},
		ReminderHourOptions:  []int{9, 12, 15, 18, 21},
		FileTypes:            []string{"txt", "pdf", "docx", "pptx", "png", "jpeg"},
	}
}
