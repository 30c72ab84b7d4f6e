package bot

import (
	"fmt"
	"log"
	"os"

	"github.com/example/conceptbot/internal/api"
	"github.com/example/conceptbot/internal/database"
	"github.com/example/conceptbot/internal/scheduler"
	"github.com/example/conceptbot/internal/session"
	"github.com/example/conceptbot/internal/workflow"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates an inline keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// replyKeyboard builds a one-column reply keyboard from selector labels.
// Reply buttons carry only their text back to the bot, which is why the
// labels embed the resource id.
func replyKeyboard(labels []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, label := range labels {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	return keyboard
}

// Bot represents the Telegram frontend for the ConceptCycle API
type Bot struct {
	api              *tgbotapi.BotAPI
	token            string
	client           *api.Client
	flows            *workflow.Coordinator
	sessions         *session.Manager
	scheduler        *scheduler.Scheduler
	schedulerEnabled bool
	config           *BotConfig
}

// New creates a new bot instance from the environment
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5046"
	}

	client := api.New(api.Config{
		BaseURL: apiURL,
		Token:   os.Getenv("API_TOKEN"),
	})

	return &Bot{
		token:            token,
		client:           client,
		flows:            workflow.New(client),
		sessions:         session.NewManager(),
		schedulerEnabled: os.Getenv("ENABLE_SCHEDULER") != "false",
		config:           DefaultConfig(),
	}, nil
}

// Start connects to Telegram and handles updates until Stop is called
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	if b.schedulerEnabled {
		b.scheduler = scheduler.New(b.client, b)
		b.scheduler.Start()
		log.Println("Reminder scheduler started")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	// Updates are handled one at a time: a handler must observe the session
	// effects of the previous one before it runs.
	for update := range updates {
		b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// SendDueReminder implements the scheduler.Notifier interface
func (b *Bot) SendDueReminder(chatID int64, count int) error {
	conceptForm := "concepts"
	if count == 1 {
		conceptForm = "concept"
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏰ You have %d %s due for review! Create a quiz to practice them.", count, conceptForm))
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending reminder to chat %d: %v", chatID, err)
		return err
	}

	return nil
}

// handleUpdate routes one incoming update
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// send pushes a message and logs delivery failures; a failed send is never
// fatal to the handler.
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// reply sends plain text to a chat
func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// MainMenuButtons returns the buttons for the main menu
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "🗂 Notes", CallbackData: "notes_menu"},
			{Text: "💡 Concepts", CallbackData: "concepts_menu"},
		},
		{
			{Text: "📝 Quizzes", CallbackData: "quizzes_menu"},
			{Text: "⚙️ Settings", CallbackData: "settings_menu"},
		},
	}
}

// showMainMenu shows the main menu
func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Main Menu - choose an option:")
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.send(msg)
}
