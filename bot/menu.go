package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leonkonan76/MyTelegramBo/catalog"
)

// Menu builders are pure: (position, admin flag) in, keyboard out. Buttons
// follow the catalog's stored order, no sorting.

const (
	labelBack    = "🔙 Retour"
	labelUpload  = "⬆️ Upload Fichier"
	labelManage  = "⚙️ Gérer Fichiers"
	labelShare   = "📍 Partager position"
	labelConfirm = "✅ Confirmer"
	labelCancel  = "❌ Annuler"
)

// rows folds buttons into a grid of the given column count.
func rows(buttons []tgbotapi.InlineKeyboardButton, columns int) [][]tgbotapi.InlineKeyboardButton {
	if columns < 1 {
		columns = 1
	}
	var grid [][]tgbotapi.InlineKeyboardButton
	for len(buttons) > 0 {
		n := columns
		if n > len(buttons) {
			n = len(buttons)
		}
		grid = append(grid, buttons[:n])
		buttons = buttons[n:]
	}
	return grid
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for i, cat := range catalog.Categories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			cat, Action{Kind: ActionSelectCategory, Index: i}.Encode()))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows(buttons, 2)...)
}

func subcategoryKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for i, sub := range catalog.Subcategories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			sub, Action{Kind: ActionSelectSubcategory, Index: i}.Encode()))
	}
	if isAdmin {
		buttons = append(buttons,
			tgbotapi.NewInlineKeyboardButtonData(labelUpload, Action{Kind: ActionStartUpload}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData(labelManage, Action{Kind: ActionManageFiles}.Encode()),
		)
	}
	grid := rows(buttons, 2)
	grid = append(grid, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(labelBack, Action{Kind: ActionMainMenu}.Encode()),
	})
	return tgbotapi.NewInlineKeyboardMarkup(grid...)
}

// fileKeyboard lists one row per record; the callback carries the record's
// position in the stored list.
func fileKeyboard(files []catalog.FileRecord, backTo Action) tgbotapi.InlineKeyboardMarkup {
	var grid [][]tgbotapi.InlineKeyboardButton
	for i, f := range files {
		grid = append(grid, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📄 "+f.Name, Action{Kind: ActionSendFile, Index: i}.Encode()),
		})
	}
	grid = append(grid, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(labelBack, backTo.Encode()),
	})
	return tgbotapi.NewInlineKeyboardMarkup(grid...)
}

func manageKeyboard(files []catalog.FileRecord, backTo Action) tgbotapi.InlineKeyboardMarkup {
	var grid [][]tgbotapi.InlineKeyboardButton
	for i, f := range files {
		grid = append(grid, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🗑️ "+f.Name, Action{Kind: ActionDeleteFile, Index: i}.Encode()),
		})
	}
	grid = append(grid, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(labelBack, backTo.Encode()),
	})
	return tgbotapi.NewInlineKeyboardMarkup(grid...)
}

func confirmDeleteKeyboard(index int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelConfirm, Action{Kind: ActionConfirmDelete, Index: index}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData(labelCancel, Action{Kind: ActionCancelDelete}.Encode()),
		),
	)
}

func locationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelShare, Action{Kind: ActionShareLocation}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData(labelBack, Action{Kind: ActionMainMenu}.Encode()),
		),
	)
}

func backOnlyKeyboard(backTo Action) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelBack, backTo.Encode()),
		),
	)
}
