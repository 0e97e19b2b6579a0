package bot

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leonkonan76/MyTelegramBo/catalog"
)

const (
	msgNotAdmin      = "⛔ Action réservée à l'admin"
	msgFileNotFound  = "❌ Fichier introuvable"
	msgPickFirst     = "❌ Veuillez d'abord sélectionner une sous-catégorie"
	msgBadToken      = "❌ Action inconnue, utilisez /start"
	msgUploadAborted = "❌ Upload annulé"
)

func (b *Bot) handleMessage(m *tgbotapi.Message) {
	if m.From == nil {
		return
	}

	if m.IsCommand() {
		b.handleCommand(m)
		return
	}
	if m.Location != nil {
		b.handleLocation(m)
		return
	}

	pos := b.sessions.get(m.From.ID)
	if pos.State == StateAwaitingUpload {
		b.handleUploadMessage(m, pos)
		return
	}
	// Free text outside any flow: point back to the menu.
	if m.Text != "" {
		b.reply(m.Chat.ID, "ℹ️ Utilisez /start pour afficher le menu")
	}
}

func (b *Bot) handleCommand(m *tgbotapi.Message) {
	switch m.Command() {
	case "start":
		b.sessions.set(m.From.ID, Position{State: StateMainMenu})
		name := strings.TrimSpace(m.From.FirstName)
		if name == "" {
			name = m.From.UserName
		}
		msg := tgbotapi.NewMessage(m.Chat.ID, fmt.Sprintf("👋 Bonjour %s !\nChoisissez une catégorie :", name))
		msg.ReplyMarkup = mainMenuKeyboard()
		b.send(msg)
	case "logs":
		b.handleLogsCommand(m)
	case "upload":
		b.handleUploadCommand(m)
	case "cancel":
		b.handleCancelCommand(m)
	default:
		b.reply(m.Chat.ID, "❓ Commande inconnue")
	}
}

func (b *Bot) handleLogsCommand(m *tgbotapi.Message) {
	if !b.isAdmin(m.From.ID) {
		b.reply(m.Chat.ID, msgNotAdmin)
		return
	}
	entries := b.store.RecentLogs(b.logsLimit)
	if len(entries) == 0 {
		b.reply(m.Chat.ID, "📒 Journal vide")
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📒 Dernières activités (%d) :\n", len(entries)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("\n%s — %d — %s — %s",
			e.At.Format("2006-01-02 15:04:05"), e.UserID, e.Action, e.Details))
	}
	b.reply(m.Chat.ID, sb.String())
}

// handleUploadCommand is the alternate entry into the upload flow: it only
// works once a sub-category has been selected through the menus.
func (b *Bot) handleUploadCommand(m *tgbotapi.Message) {
	if !b.isAdmin(m.From.ID) {
		b.reply(m.Chat.ID, msgNotAdmin)
		return
	}
	pos := b.sessions.get(m.From.ID)
	if pos.State != StateSubcategory {
		b.reply(m.Chat.ID, msgPickFirst)
		return
	}
	b.beginUpload(m.Chat.ID, m.From.ID, pos)
}

// handleCancelCommand aborts any in-progress admin flow. Cancel always lands
// on the main menu.
func (b *Bot) handleCancelCommand(m *tgbotapi.Message) {
	pos := b.sessions.get(m.From.ID)
	b.sessions.set(m.From.ID, Position{State: StateMainMenu})
	switch pos.State {
	case StateAwaitingUpload:
		b.reply(m.Chat.ID, msgUploadAborted)
	case StateAwaitingDeleteConfirm:
		b.reply(m.Chat.ID, "❌ Suppression annulée")
	default:
		b.reply(m.Chat.ID, "ℹ️ Aucune opération en cours")
	}
}

func (b *Bot) handleLocation(m *tgbotapi.Message) {
	loc := m.Location
	b.reply(m.Chat.ID, fmt.Sprintf("📍 Position reçue:\nLatitude: %.6f\nLongitude: %.6f", loc.Latitude, loc.Longitude))
	b.store.LogActivity(m.From.ID, "location", fmt.Sprintf("%.6f,%.6f", loc.Latitude, loc.Longitude))
}

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	if q.From == nil || q.Message == nil {
		return
	}

	action, err := ParseAction(q.Data)
	if err != nil {
		b.logger.Warn("bad_callback_data", "data", q.Data, "user_id", q.From.ID)
		b.answer(q.ID, msgBadToken, true)
		return
	}

	userID := q.From.ID
	chatID := q.Message.Chat.ID
	messageID := q.Message.MessageID
	pos := b.sessions.get(userID)

	switch action.Kind {
	case ActionMainMenu:
		b.sessions.set(userID, Position{State: StateMainMenu})
		b.answer(q.ID, "", false)
		b.edit(chatID, messageID, "📂 Menu principal :", mainMenuKeyboard())

	case ActionSelectCategory:
		if action.Index >= len(catalog.Categories) {
			b.answer(q.ID, msgBadToken, true)
			return
		}
		category := catalog.Categories[action.Index]
		if category == catalog.LocationCategory {
			// Location is not a browsable category: prompt and stay put.
			b.answer(q.ID, "", false)
			b.edit(chatID, messageID, "📍 Partagez votre position :", locationKeyboard())
			return
		}
		b.sessions.set(userID, Position{State: StateCategory, Category: category})
		b.answer(q.ID, "", false)
		b.edit(chatID, messageID,
			fmt.Sprintf("📁 Catégorie : %s\nSélectionnez une sous-catégorie :", category),
			subcategoryKeyboard(b.isAdmin(userID)))

	case ActionSelectSubcategory:
		if action.Index >= len(catalog.Subcategories) {
			b.answer(q.ID, msgBadToken, true)
			return
		}
		if pos.Category == "" {
			b.answer(q.ID, "❌ Veuillez d'abord choisir une catégorie", true)
			return
		}
		subcategory := catalog.Subcategories[action.Index]
		b.sessions.set(userID, Position{State: StateSubcategory, Category: pos.Category, Subcategory: subcategory})
		b.answer(q.ID, "", false)
		b.showFiles(chatID, messageID, userID, pos.Category, subcategory)

	case ActionSendFile:
		if pos.Category == "" || pos.Subcategory == "" {
			b.answer(q.ID, msgBadToken, true)
			return
		}
		files := b.store.Files(pos.Category, pos.Subcategory)
		if action.Index >= len(files) {
			// Stale menu: the record is gone. Report, do not transition.
			b.answer(q.ID, msgFileNotFound, true)
			return
		}
		rec := files[action.Index]
		b.answer(q.ID, "", false)
		if err := b.deliverFile(chatID, rec); err != nil {
			b.logger.Warn("file_delivery_error", "name", rec.Name, "kind", string(rec.Kind), "error", err.Error())
			b.reply(chatID, "❌ Erreur lors du téléchargement, réessayez")
			return
		}
		b.store.LogActivity(userID, "download", fmt.Sprintf("%s/%s %s", pos.Category, pos.Subcategory, rec.Name))

	case ActionStartUpload:
		if !b.isAdmin(userID) {
			b.answer(q.ID, msgNotAdmin, true)
			return
		}
		if pos.Category == "" || pos.Subcategory == "" {
			b.answer(q.ID, msgPickFirst, true)
			return
		}
		b.answer(q.ID, "", false)
		b.beginUpload(chatID, userID, pos)

	case ActionManageFiles:
		if !b.isAdmin(userID) {
			b.answer(q.ID, msgNotAdmin, true)
			return
		}
		if pos.Category == "" || pos.Subcategory == "" {
			b.answer(q.ID, msgPickFirst, true)
			return
		}
		files := b.store.Files(pos.Category, pos.Subcategory)
		if len(files) == 0 {
			b.answer(q.ID, "ℹ️ Aucun fichier à gérer", true)
			return
		}
		b.answer(q.ID, "", false)
		b.edit(chatID, messageID,
			fmt.Sprintf("⚙️ Gestion des fichiers (%s > %s) :\nCliquez sur un fichier pour le supprimer", pos.Category, pos.Subcategory),
			manageKeyboard(files, b.backToCategory(pos.Category)))

	case ActionDeleteFile:
		if !b.isAdmin(userID) {
			b.answer(q.ID, msgNotAdmin, true)
			return
		}
		if pos.Category == "" || pos.Subcategory == "" {
			b.answer(q.ID, msgPickFirst, true)
			return
		}
		files := b.store.Files(pos.Category, pos.Subcategory)
		if action.Index >= len(files) {
			b.answer(q.ID, msgFileNotFound, true)
			return
		}
		b.sessions.set(userID, Position{
			State: StateAwaitingDeleteConfirm, Category: pos.Category, Subcategory: pos.Subcategory, Index: action.Index,
		})
		b.answer(q.ID, "", false)
		b.edit(chatID, messageID,
			fmt.Sprintf("🗑️ Supprimer « %s » de %s > %s ?", files[action.Index].Name, pos.Category, pos.Subcategory),
			confirmDeleteKeyboard(action.Index))

	case ActionConfirmDelete:
		if !b.isAdmin(userID) {
			b.answer(q.ID, msgNotAdmin, true)
			return
		}
		if pos.State != StateAwaitingDeleteConfirm || pos.Index != action.Index {
			b.answer(q.ID, msgBadToken, true)
			return
		}
		removed, err := b.store.RemoveFile(pos.Category, pos.Subcategory, action.Index)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				b.answer(q.ID, msgFileNotFound, true)
			} else {
				b.logger.Error("delete_error", "error", err.Error())
				b.answer(q.ID, "❌ Échec de la suppression", true)
			}
			b.sessions.set(userID, Position{State: StateSubcategory, Category: pos.Category, Subcategory: pos.Subcategory})
			return
		}
		b.store.LogActivity(userID, "delete", fmt.Sprintf("%s/%s %s", pos.Category, pos.Subcategory, removed.Name))
		b.sessions.set(userID, Position{State: StateSubcategory, Category: pos.Category, Subcategory: pos.Subcategory})
		b.answer(q.ID, fmt.Sprintf("🗑️ Fichier supprimé: %s", removed.Name), true)
		b.showFiles(chatID, messageID, userID, pos.Category, pos.Subcategory)

	case ActionCancelDelete:
		if pos.State != StateAwaitingDeleteConfirm {
			b.answer(q.ID, msgBadToken, true)
			return
		}
		b.sessions.set(userID, Position{State: StateSubcategory, Category: pos.Category, Subcategory: pos.Subcategory})
		b.answer(q.ID, "", false)
		b.showFiles(chatID, messageID, userID, pos.Category, pos.Subcategory)

	case ActionCancelUpload:
		b.sessions.set(userID, Position{State: StateMainMenu})
		b.answer(q.ID, "", false)
		b.edit(chatID, messageID, msgUploadAborted, mainMenuKeyboard())

	case ActionShareLocation:
		b.answer(q.ID, "Veuillez utiliser le bouton de partage de position dans le chat", true)
	}
}

func (b *Bot) backToCategory(category string) Action {
	for i, c := range catalog.Categories {
		if c == category {
			return Action{Kind: ActionSelectCategory, Index: i}
		}
	}
	return Action{Kind: ActionMainMenu}
}

// showFiles renders the file list for (category, subcategory), or the empty
// message when nothing is stored there.
func (b *Bot) showFiles(chatID int64, messageID int, userID int64, category, subcategory string) {
	files := b.store.Files(category, subcategory)
	back := b.backToCategory(category)
	if len(files) == 0 {
		text := fmt.Sprintf("📭 Aucun fichier dans '%s'", subcategory)
		if b.isAdmin(userID) {
			text += "\n\nVous pouvez ajouter des fichiers avec le bouton " + labelUpload
		}
		b.edit(chatID, messageID, text, backOnlyKeyboard(back))
		return
	}
	b.edit(chatID, messageID,
		fmt.Sprintf("📂 Fichiers disponibles dans '%s' :", subcategory),
		fileKeyboard(files, back))
}

func (b *Bot) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb))
}
