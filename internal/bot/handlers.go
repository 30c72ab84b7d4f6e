package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/conceptbot/internal/database"
	"github.com/example/conceptbot/internal/excel"
	"github.com/example/conceptbot/internal/session"
	"github.com/example/conceptbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram caps messages at 4096 characters; long note contents are cut
const maxMessageLength = 4000

// handleMessage routes a plain (non-callback) incoming message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	s := b.sessions.Get(chatID)

	if message.IsCommand() {
		b.handleCommand(s, message)
		return
	}

	if message.Document != nil && s.InputState == session.InputNoteFile {
		b.handleDocumentUpload(s, message)
		return
	}

	switch s.InputState {
	case session.InputNoteName:
		name := strings.TrimSpace(message.Text)
		if name == "" {
			b.reply(chatID, "⚠️ The note needs a name. Try again:")
			return
		}
		s.PendingNoteName = name
		s.InputState = session.InputNoteContent
		b.reply(chatID, "Now send the note content:")

	case session.InputNoteContent:
		s.InputState = session.InputNone
		result := b.flows.UploadText(context.Background(), s.PendingNoteName, message.Text)
		s.PendingNoteName = ""
		if strings.HasPrefix(result, "❌") {
			b.reply(chatID, result)
			return
		}
		b.reply(chatID, "✅ Note uploaded. Id: "+result+"\nRefresh the note list to see it.")

	case session.InputQuizAnswer:
		b.recordAnswer(s, chatID, message.Text)

	default:
		b.handleSelection(s, message)
	}
}

// handleSelection treats a plain message as a tap on one of the selector
// keyboards. Anything that matches no selector falls through to the menu.
func (b *Bot) handleSelection(s *session.Session, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := message.Text

	switch {
	case s.Notes.Contains(text):
		s.Notes.Value = text
		msg := tgbotapi.NewMessage(chatID, "Selected: "+text)
		msg.ReplyMarkup = createKeyboard(b.noteActionButtons())
		b.send(msg)

	case s.ActiveQuizzes.Contains(text):
		s.ActiveQuizzes.Value = text
		b.startAnswering(s, chatID, text)

	case s.CompletedQuizzes.Contains(text):
		s.CompletedQuizzes.Value = text
		table := b.flows.SelectCompletedQuiz(context.Background(), text)
		b.reply(chatID, "📋 Completed quiz:\n\n"+table.Render())

	default:
		msg := tgbotapi.NewMessage(chatID, "I don't understand. Use /menu to show the main menu.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		b.send(msg)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(s *session.Session, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "menu":
		b.showMainMenu(chatID)
	case "notes":
		b.showNotesMenu(chatID)
	case "concepts":
		b.showConceptsMenu(chatID)
	case "quizzes":
		b.showQuizzesMenu(chatID)
	case "settings":
		b.showSettings(chatID)
	case "due":
		b.handleDueCommand(chatID)
	case "cancel":
		s.InputState = session.InputNone
		s.PendingNoteName = ""
		b.showMainMenu(chatID)
	default:
		msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /menu to show the main menu.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		b.send(msg)
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcomeText := `Welcome to ConceptCycle! 🎓

Upload your study notes, extract concepts from them and practice with spaced-repetition quizzes.

Available commands:
/menu - Show main menu
/notes - Manage notes
/concepts - Browse extracted concepts
/quizzes - Create and take quizzes
/settings - Configure quiz defaults and reminders
/due - Check for concepts due for review`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.send(msg)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := "📖 How it works\n\n" +
		"1. Upload a note (text or file) in 🗂 Notes\n" +
		"2. Extract concepts from it - the server derives learnable facts with review scheduling\n" +
		"3. Create a quiz over one or more notes in 📝 Quizzes\n" +
		"4. Answer the questions and submit for grading\n\n" +
		"💡 Tips:\n" +
		"• The note list is not refreshed automatically after an upload\n" +
		"• Concept extraction can take a couple of minutes for large notes\n" +
		"• Turn on reminders in ⚙️ Settings to get a daily nudge when concepts are due"

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.send(msg)
}

func (b *Bot) handleDueCommand(chatID int64) {
	if b.scheduler == nil {
		b.reply(chatID, "Reminders are disabled.")
		return
	}
	count, err := b.scheduler.RunManualCheck(chatID)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	if count == 0 {
		b.reply(chatID, "✅ Nothing is due right now.")
	}
}

// handleDocumentUpload downloads a Telegram document and forwards it to the
// API as a file note
func (b *Bot) handleDocumentUpload(s *session.Session, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	s.InputState = session.InputNone

	doc := message.Document
	contentType := fileType(doc.FileName)
	if !b.supportedFileType(contentType) {
		b.reply(chatID, fmt.Sprintf("⚠️ Unsupported file type %q. Supported: %s.", contentType, strings.Join(b.config.FileTypes, ", ")))
		return
	}

	fileURL, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		b.reply(chatID, "❌ Failed to fetch the file from Telegram: "+err.Error())
		return
	}

	localPath, err := downloadToTemp(fileURL, doc.FileName)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	defer os.Remove(localPath)

	result := b.flows.UploadFile(context.Background(), localPath, contentType)
	if strings.HasPrefix(result, "❌") {
		b.reply(chatID, result)
		return
	}
	b.reply(chatID, "✅ File uploaded. Note id: "+result+"\nRefresh the note list to see it.")
}

// handleCallbackQuery handles callback queries from inline buttons
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	s := b.sessions.Get(chatID)
	ctx := context.Background()

	// Stop the button spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	switch callback.Data {
	case "main_menu":
		b.showMainMenu(chatID)
	case "notes_menu":
		b.showNotesMenu(chatID)
	case "concepts_menu":
		b.showConceptsMenu(chatID)
	case "quizzes_menu":
		b.showQuizzesMenu(chatID)
	case "settings_menu":
		b.showSettings(chatID)

	case "notes_refresh":
		b.refreshNotes(ctx, s, chatID)
	case "note_upload_text":
		s.InputState = session.InputNoteName
		b.reply(chatID, "✍️ Send a name for the new note (or /cancel):")
	case "note_upload_file":
		s.InputState = session.InputNoteFile
		b.reply(chatID, fmt.Sprintf("📎 Send a document to upload (%s), or /cancel.", strings.Join(b.config.FileTypes, ", ")))
	case "note_view":
		b.reply(chatID, truncate(b.flows.ViewContent(ctx, s.Notes.Value)))
	case "note_process":
		b.reply(chatID, b.flows.ProcessNote(ctx, s, s.Notes.Value))
	case "note_delete":
		b.deleteNote(ctx, s, chatID)

	case "concepts_show":
		b.showConcepts(ctx, s, chatID)
	case "concepts_export":
		b.exportConcepts(ctx, s, chatID)

	case "quiz_pick_notes":
		b.showQuizNotePicker(s, chatID)
	case "quiz_create":
		b.createQuiz(ctx, s, chatID)
	case "quiz_refresh_active":
		b.refreshQuizzes(ctx, s, chatID, models.QuizStatusActive)
	case "quiz_submit":
		b.submitQuiz(ctx, s, chatID)
	case "quiz_refresh_completed":
		b.refreshQuizzes(ctx, s, chatID, models.QuizStatusCompleted)

	case "set_concept_limit":
		b.showLimitOptions(chatID, "Concepts per quiz:", "concept_limit_", b.config.ConceptLimitOptions)
	case "set_question_limit":
		b.showLimitOptions(chatID, "Questions per quiz:", "question_limit_", b.config.QuestionLimitOptions)
	case "set_mode":
		b.showModeOptions(chatID)
	case "set_reminder_hour":
		b.showLimitOptions(chatID, "Reminder hour (UTC):", "reminder_hour_", b.config.ReminderHourOptions)
	case "reminders_toggle":
		b.toggleReminders(ctx, chatID)

	default:
		b.handleCallbackPrefix(ctx, s, callback)
	}
}

// handleCallbackPrefix handles parameterized callbacks like quiz_toggle_3
func (b *Bot) handleCallbackPrefix(ctx context.Context, s *session.Session, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	if strings.HasPrefix(data, "quiz_toggle_") {
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "quiz_toggle_"))
		if err != nil || idx < 0 || idx >= len(s.Notes.Options) {
			log.Printf("Invalid quiz note toggle: %s", data)
			return
		}
		s.ToggleNote(s.Notes.Options[idx])
		markup := b.quizNotePickerKeyboard(s)
		edit := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, markup)
		if _, err := b.api.Send(edit); err != nil {
			log.Printf("Error updating note picker: %v", err)
		}
		return
	}

	if strings.HasPrefix(data, "concept_limit_") {
		b.savePreference(ctx, chatID, data, "concept_limit_", func(prefs *database.ChatPreferences, v int) {
			prefs.ConceptLimit = v
		})
		return
	}

	if strings.HasPrefix(data, "question_limit_") {
		b.savePreference(ctx, chatID, data, "question_limit_", func(prefs *database.ChatPreferences, v int) {
			prefs.QuestionLimit = v
		})
		return
	}

	if strings.HasPrefix(data, "reminder_hour_") {
		b.savePreference(ctx, chatID, data, "reminder_hour_", func(prefs *database.ChatPreferences, v int) {
			prefs.ReminderHour = v
		})
		return
	}

	if strings.HasPrefix(data, "mode_") {
		mode := strings.TrimPrefix(data, "mode_")
		prefs, err := database.GetChatPreferences(ctx, chatID)
		if err != nil {
			log.Printf("Error getting chat preferences: %v", err)
			b.reply(chatID, "❌ Error loading your settings. Please try again.")
			return
		}
		prefs.Mode = mode
		if err := database.SaveChatPreferences(ctx, prefs); err != nil {
			log.Printf("Error saving chat preferences: %v", err)
			b.reply(chatID, "❌ Error updating settings. Please try again.")
			return
		}
		b.reply(chatID, "✅ Quiz mode set to "+mode)
		b.showSettings(chatID)
	}
}

// ----- notes -----

func (b *Bot) showNotesMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "🗂 Notes - choose an action:")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{
			{Text: "🔄 Refresh note list", CallbackData: "notes_refresh"},
		},
		{
			{Text: "✍️ Upload text", CallbackData: "note_upload_text"},
			{Text: "📎 Upload file", CallbackData: "note_upload_file"},
		},
		{
			{Text: "« Back to Menu", CallbackData: "main_menu"},
		},
	})
	b.send(msg)
}

// noteActionButtons is shown after a note has been selected
func (b *Bot) noteActionButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📄 Show content", CallbackData: "note_view"},
			{Text: "🧠 Extract concepts", CallbackData: "note_process"},
		},
		{
			{Text: "💡 Show concepts", CallbackData: "concepts_show"},
			{Text: "📊 Export to Excel", CallbackData: "concepts_export"},
		},
		{
			{Text: "❌ Delete note", CallbackData: "note_delete"},
			{Text: "« Back to Menu", CallbackData: "main_menu"},
		},
	}
}

func (b *Bot) refreshNotes(ctx context.Context, s *session.Session, chatID int64) {
	table, err := b.flows.RefreshNotes(ctx, s)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	if len(s.Notes.Options) == 0 {
		b.reply(chatID, "No notes yet. Upload one first.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Your notes:\n\n"+table.Render()+"\n\nPick a note below.")
	msg.ReplyMarkup = replyKeyboard(s.Notes.Options)
	b.send(msg)
}

func (b *Bot) deleteNote(ctx context.Context, s *session.Session, chatID int64) {
	status, table := b.flows.DeleteNote(ctx, s)
	text := status
	if len(table.Rows) > 0 {
		text += "\n\nRemaining notes:\n\n" + table.Render() + "\n\nPick a note below."
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if len(s.Notes.Options) > 0 {
		// Selection was cleared on purpose: the user has to re-pick
		msg.ReplyMarkup = replyKeyboard(s.Notes.Options)
	} else {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	b.send(msg)
}

// ----- concepts -----

func (b *Bot) showConceptsMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "💡 Concepts - pick a note from the list first, then view its concepts:")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{
			{Text: "🔄 Refresh note list", CallbackData: "notes_refresh"},
		},
		{
			{Text: "💡 Show concepts", CallbackData: "concepts_show"},
			{Text: "📊 Export to Excel", CallbackData: "concepts_export"},
		},
		{
			{Text: "« Back to Menu", CallbackData: "main_menu"},
		},
	})
	b.send(msg)
}

func (b *Bot) showConcepts(ctx context.Context, s *session.Session, chatID int64) {
	table, err := b.flows.LoadConcepts(ctx, s.Notes.Value)
	if err != nil {
		b.reply(chatID, prefixError(err))
		return
	}
	b.reply(chatID, truncate("💡 Concepts:\n\n"+table.Render()))
}

func (b *Bot) exportConcepts(ctx context.Context, s *session.Session, chatID int64) {
	table, err := b.flows.LoadConcepts(ctx, s.Notes.Value)
	if err != nil {
		b.reply(chatID, prefixError(err))
		return
	}
	if len(table.Rows) == 0 {
		b.reply(chatID, "⚠️ This note has no concepts yet. Extract them first.")
		return
	}

	path, err := excel.ExportConcepts(s.Notes.Value, table, os.TempDir())
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	defer os.Remove(path)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = "📊 Concept export"
	b.send(doc)
}

// ----- quizzes -----

func (b *Bot) showQuizzesMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📝 Quizzes - choose an action:")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{
			{Text: "🆕 Create quiz", CallbackData: "quiz_pick_notes"},
		},
		{
			{Text: "🎯 Answer active quiz", CallbackData: "quiz_refresh_active"},
			{Text: "📤 Submit answers", CallbackData: "quiz_submit"},
		},
		{
			{Text: "📋 Review completed", CallbackData: "quiz_refresh_completed"},
			{Text: "« Back to Menu", CallbackData: "main_menu"},
		},
	})
	b.send(msg)
}

// quizNotePickerKeyboard builds the multi-select keyboard over the current
// note options, marking the selected ones
func (b *Bot) quizNotePickerKeyboard(s *session.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, label := range s.Notes.Options {
		text := label
		if s.NoteSelected(label) {
			text = "✅ " + text
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, fmt.Sprintf("quiz_toggle_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🆕 Create quiz", "quiz_create"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back to Quizzes", "quizzes_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) showQuizNotePicker(s *session.Session, chatID int64) {
	if len(s.Notes.Options) == 0 {
		msg := tgbotapi.NewMessage(chatID, "⚠️ Refresh the note list first.")
		msg.ReplyMarkup = createKeyboard([][]MenuButton{
			{{Text: "🔄 Refresh note list", CallbackData: "notes_refresh"}},
			{{Text: "« Back to Quizzes", CallbackData: "quizzes_menu"}},
		})
		b.send(msg)
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Choose notes for the quiz, then hit Create:")
	msg.ReplyMarkup = b.quizNotePickerKeyboard(s)
	b.send(msg)
}

func (b *Bot) createQuiz(ctx context.Context, s *session.Session, chatID int64) {
	prefs, err := database.GetChatPreferences(ctx, chatID)
	if err != nil {
		log.Printf("Error getting chat preferences: %v", err)
		b.reply(chatID, "❌ Error loading your settings. Please try again.")
		return
	}

	quiz, err := b.flows.CreateQuiz(ctx, s, prefs.ConceptLimit, prefs.QuestionLimit, prefs.Mode)
	if err != nil {
		b.reply(chatID, prefixError(err))
		return
	}

	name := quiz.Name
	if name == "" {
		name = quiz.ID
	}
	b.reply(chatID, fmt.Sprintf("✅ Quiz %q created with %d questions. Answer them one by one.", name, len(quiz.Questions)))
	b.askNextQuestion(s, chatID)
}

func (b *Bot) refreshQuizzes(ctx context.Context, s *session.Session, chatID int64, status string) {
	labels, err := b.flows.RefreshQuizzes(ctx, s, status)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	if len(labels) == 0 {
		b.reply(chatID, fmt.Sprintf("No %s quizzes.", status))
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Pick a %s quiz below.", status))
	msg.ReplyMarkup = replyKeyboard(labels)
	b.send(msg)
}

func (b *Bot) startAnswering(s *session.Session, chatID int64, selection string) {
	table, err := b.flows.SelectActiveQuiz(context.Background(), s, selection)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	if len(table.Rows) == 0 {
		b.reply(chatID, "⚠️ This quiz has no questions.")
		return
	}
	if !s.Sheet.Editable {
		// The quiz completed since the list was refreshed: show it locked
		b.reply(chatID, "🔒 This quiz is already completed:\n\n"+table.Render())
		return
	}

	b.reply(chatID, fmt.Sprintf("📝 Quiz loaded with %d questions.", len(table.Rows)))
	b.askNextQuestion(s, chatID)
}

// askNextQuestion advances the answer conversation
func (b *Bot) askNextQuestion(s *session.Session, chatID int64) {
	sheet := s.Sheet
	if sheet == nil || len(sheet.Questions) == 0 {
		b.reply(chatID, "⚠️ No quiz loaded.")
		return
	}
	if !sheet.Editable {
		b.reply(chatID, "🔒 This quiz is already completed and cannot be answered.")
		return
	}

	if sheet.Current >= len(sheet.Questions) {
		s.InputState = session.InputNone
		msg := tgbotapi.NewMessage(chatID, "All questions answered. Submit when ready.")
		msg.ReplyMarkup = createKeyboard([][]MenuButton{
			{{Text: "📤 Submit answers", CallbackData: "quiz_submit"}},
			{{Text: "« Back to Quizzes", CallbackData: "quizzes_menu"}},
		})
		b.send(msg)
		return
	}

	s.InputState = session.InputQuizAnswer
	b.reply(chatID, fmt.Sprintf("❓ Question %d/%d:\n\n%s", sheet.Current+1, len(sheet.Questions), sheet.Questions[sheet.Current]))
}

func (b *Bot) recordAnswer(s *session.Session, chatID int64, text string) {
	sheet := s.Sheet
	if sheet == nil || !sheet.Editable || sheet.Current >= len(sheet.Answers) {
		s.InputState = session.InputNone
		b.reply(chatID, "⚠️ No quiz loaded.")
		return
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		b.reply(chatID, "⚠️ All questions must be attempted. Try again:")
		return
	}

	sheet.Answers[sheet.Current] = answer
	sheet.Current++
	b.askNextQuestion(s, chatID)
}

func (b *Bot) submitQuiz(ctx context.Context, s *session.Session, chatID int64) {
	result, err := b.flows.SubmitQuiz(ctx, s)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result, "", "  "); err != nil {
		b.reply(chatID, "🏁 Grading result:\n\n"+string(result))
		return
	}
	b.reply(chatID, truncate("🏁 Grading result:\n\n"+pretty.String()))
}

// ----- settings -----

func (b *Bot) showSettings(chatID int64) {
	prefs, err := database.GetChatPreferences(context.Background(), chatID)
	if err != nil {
		log.Printf("Error getting chat preferences: %v", err)
		b.reply(chatID, "❌ Error loading your settings. Please try again.")
		return
	}

	reminders := "off"
	if prefs.RemindersEnabled {
		reminders = fmt.Sprintf("on, at %d:00 UTC", prefs.ReminderHour)
	}

	text := "⚙️ Settings\n\n" +
		fmt.Sprintf("Concepts per quiz: %d\n", prefs.ConceptLimit) +
		fmt.Sprintf("Questions per quiz: %d\n", prefs.QuestionLimit) +
		fmt.Sprintf("Quiz mode: %s\n", prefs.Mode) +
		fmt.Sprintf("Due reminders: %s\n", reminders)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{
			{Text: "🔢 Concept limit", CallbackData: "set_concept_limit"},
			{Text: "🔢 Question limit", CallbackData: "set_question_limit"},
		},
		{
			{Text: "🎚 Quiz mode", CallbackData: "set_mode"},
		},
		{
			{Text: "⏰ Reminders on/off", CallbackData: "reminders_toggle"},
			{Text: "🕒 Reminder hour", CallbackData: "set_reminder_hour"},
		},
		{
			{Text: "« Back to Menu", CallbackData: "main_menu"},
		},
	})
	b.send(msg)
}

func (b *Bot) showLimitOptions(chatID int64, title, prefix string, options []int) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(v), fmt.Sprintf("%s%d", prefix, v)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back to Settings", "settings_menu"),
	))

	msg := tgbotapi.NewMessage(chatID, title)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

func (b *Bot) showModeOptions(chatID int64) {
	modes := []string{models.QuizModeDueOnly, models.QuizModeLearningOnly, models.QuizModeNewOnly, models.QuizModeMixed}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range modes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(m, "mode_"+m),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back to Settings", "settings_menu"),
	))

	msg := tgbotapi.NewMessage(chatID, "Quiz mode:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

// savePreference parses an integer setting out of callback data and stores it
func (b *Bot) savePreference(ctx context.Context, chatID int64, data, prefix string, apply func(*database.ChatPreferences, int)) {
	value, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		log.Printf("Invalid setting callback: %s", data)
		return
	}

	prefs, err := database.GetChatPreferences(ctx, chatID)
	if err != nil {
		log.Printf("Error getting chat preferences: %v", err)
		b.reply(chatID, "❌ Error loading your settings. Please try again.")
		return
	}

	apply(prefs, value)
	if err := database.SaveChatPreferences(ctx, prefs); err != nil {
		log.Printf("Error saving chat preferences: %v", err)
		b.reply(chatID, "❌ Error updating settings. Please try again.")
		return
	}

	b.showSettings(chatID)
}

func (b *Bot) toggleReminders(ctx context.Context, chatID int64) {
	prefs, err := database.GetChatPreferences(ctx, chatID)
	if err != nil {
		log.Printf("Error getting chat preferences: %v", err)
		b.reply(chatID, "❌ Error loading your settings. Please try again.")
		return
	}

	prefs.RemindersEnabled = !prefs.RemindersEnabled
	if err := database.SaveChatPreferences(ctx, prefs); err != nil {
		log.Printf("Error saving chat preferences: %v", err)
		b.reply(chatID, "❌ Error updating settings. Please try again.")
		return
	}

	b.showSettings(chatID)
}

// ----- helpers -----

// prefixError marks a missing selection as a warning and everything else as
// an error
func prefixError(err error) string {
	if strings.Contains(err.Error(), "no note selected") {
		return "⚠️ No note selected."
	}
	return "❌ " + err.Error()
}

// truncate cuts a message down to Telegram's length limit
func truncate(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	return text[:maxMessageLength] + "\n… (truncated)"
}

// fileType maps a file name to the server's content_type hint
func fileType(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "jpg":
		return "jpeg"
	case "":
		return "txt"
	}
	return ext
}

func (b *Bot) supportedFileType(contentType string) bool {
	for _, t := range b.config.FileTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// downloadToTemp fetches a Telegram file to a temporary local path
func downloadToTemp(fileURL, name string) (string, error) {
	resp, err := http.Get(fileURL)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: %s", resp.Status)
	}

	f, err := os.CreateTemp("", "conceptbot-*"+filepath.Ext(name))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return f.Name(), nil
}
