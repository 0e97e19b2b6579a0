package bot

import (
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leonkonan76/MyTelegramBo/catalog"
)

func (b *Bot) beginUpload(chatID, userID int64, pos Position) {
	b.sessions.set(userID, Position{
		State: StateAwaitingUpload, Category: pos.Category, Subcategory: pos.Subcategory,
	})
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"⬆️ Envoyez le fichier à ajouter à :\nCatégorie : %s\nSous-catégorie : %s\n\n"+
			"Document, photo, audio, vidéo ou message vocal.\n/cancel pour annuler",
		pos.Category, pos.Subcategory))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelCancel, Action{Kind: ActionCancelUpload}.Encode()),
		),
	)
	b.send(msg)
}

// handleUploadMessage commits the inbound media as a catalog entry. Anything
// that is not a supported media kind leaves the flow open for a retry.
func (b *Bot) handleUploadMessage(m *tgbotapi.Message, pos Position) {
	if !b.isAdmin(m.From.ID) {
		// Only the admin can ever enter this state; treat anything else as a
		// stale session and drop it.
		b.sessions.reset(m.From.ID)
		b.reply(m.Chat.ID, msgNotAdmin)
		return
	}

	handle, name, kind, ok := classifyMedia(m, time.Now())
	if !ok {
		if m.Text != "" {
			b.reply(m.Chat.ID, "❌ Veuillez envoyer un fichier valide (/cancel pour annuler)")
		} else {
			b.reply(m.Chat.ID, "❌ Format de fichier non supporté (/cancel pour annuler)")
		}
		return
	}

	rec := catalog.FileRecord{
		Handle:     handle,
		Name:       name,
		Kind:       kind,
		UploadedAt: time.Now().UTC(),
		UploadedBy: m.From.ID,
	}
	if err := b.store.AddFile(pos.Category, pos.Subcategory, rec); err != nil {
		if errors.Is(err, catalog.ErrDuplicateName) {
			b.reply(m.Chat.ID, fmt.Sprintf("⚠️ Un fichier nommé « %s » existe déjà dans %s > %s. Envoyez un autre fichier ou /cancel.",
				name, pos.Category, pos.Subcategory))
			return
		}
		b.logger.Error("upload_commit_error", "error", err.Error())
		b.reply(m.Chat.ID, "❌ Échec de l'enregistrement, réessayez")
		return
	}

	b.store.LogActivity(m.From.ID, "upload", fmt.Sprintf("%s/%s %s (%s)", pos.Category, pos.Subcategory, name, kind))
	b.sessions.set(m.From.ID, Position{State: StateSubcategory, Category: pos.Category, Subcategory: pos.Subcategory})
	b.reply(m.Chat.ID, fmt.Sprintf(
		"✅ Fichier ajouté avec succès à :\nCatégorie : %s\nSous-catégorie : %s\n\nNom : %s",
		pos.Category, pos.Subcategory, name))
}

// classifyMedia probes the message for the first supported media kind, in a
// fixed priority order. Photos keep the largest variant Telegram offers.
func classifyMedia(m *tgbotapi.Message, now time.Time) (handle, name string, kind catalog.MediaKind, ok bool) {
	switch {
	case m.Document != nil:
		name = m.Document.FileName
		if name == "" {
			name = "document"
		}
		return m.Document.FileID, name, catalog.KindDocument, true
	case len(m.Photo) > 0:
		largest := m.Photo[len(m.Photo)-1]
		return largest.FileID, fmt.Sprintf("photo_%s.jpg", now.Format("20060102-150405")), catalog.KindPhoto, true
	case m.Audio != nil:
		name = m.Audio.FileName
		if name == "" {
			name = "audio.mp3"
		}
		return m.Audio.FileID, name, catalog.KindAudio, true
	case m.Video != nil:
		name = m.Video.FileName
		if name == "" {
			name = "video.mp4"
		}
		return m.Video.FileID, name, catalog.KindVideo, true
	case m.Voice != nil:
		return m.Voice.FileID, fmt.Sprintf("voice_%s.ogg", now.Format("20060102-150405")), catalog.KindVoice, true
	}
	return "", "", "", false
}
