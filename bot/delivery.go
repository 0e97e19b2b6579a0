package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leonkonan76/MyTelegramBo/catalog"
)

// deliverFile re-requests the stored file from Telegram by its handle, using
// the send method matching the stored kind. Unrecognized kinds fall back to
// document.
func (b *Bot) deliverFile(chatID int64, rec catalog.FileRecord) error {
	fileID := tgbotapi.FileID(rec.Handle)

	var msg tgbotapi.Chattable
	switch rec.Kind {
	case catalog.KindPhoto:
		c := tgbotapi.NewPhoto(chatID, fileID)
		c.Caption = "📸 " + rec.Name
		msg = c
	case catalog.KindAudio:
		c := tgbotapi.NewAudio(chatID, fileID)
		c.Caption = "🎵 " + rec.Name
		msg = c
	case catalog.KindVideo:
		c := tgbotapi.NewVideo(chatID, fileID)
		c.Caption = "🎬 " + rec.Name
		msg = c
	case catalog.KindVoice:
		c := tgbotapi.NewVoice(chatID, fileID)
		c.Caption = "🎤 " + rec.Name
		msg = c
	default:
		c := tgbotapi.NewDocument(chatID, fileID)
		c.Caption = "📥 " + rec.Name
		msg = c
	}

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send %s %q: %w", rec.Kind, rec.Name, err)
	}
	return nil
}
