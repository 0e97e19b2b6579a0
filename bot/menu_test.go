package bot

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leonkonan76/MyTelegramBo/catalog"
)

func flatten(kb tgbotapi.InlineKeyboardMarkup) []tgbotapi.InlineKeyboardButton {
	var out []tgbotapi.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}

func TestMainMenuKeyboard(t *testing.T) {
	t.Parallel()

	buttons := flatten(mainMenuKeyboard())
	if len(buttons) != len(catalog.Categories) {
		t.Fatalf("main menu has %d buttons, want %d", len(buttons), len(catalog.Categories))
	}
	for i, btn := range buttons {
		if btn.Text != catalog.Categories[i] {
			t.Fatalf("button %d label = %q, want %q (order must follow the enum)", i, btn.Text, catalog.Categories[i])
		}
		want := Action{Kind: ActionSelectCategory, Index: i}.Encode()
		if btn.CallbackData == nil || *btn.CallbackData != want {
			t.Fatalf("button %d callback = %v, want %q", i, btn.CallbackData, want)
		}
	}
}

func TestSubcategoryKeyboardAdminAffordances(t *testing.T) {
	t.Parallel()

	plain := flatten(subcategoryKeyboard(false))
	admin := flatten(subcategoryKeyboard(true))

	// Non-admin: every sub-category plus the back button, nothing else.
	if len(plain) != len(catalog.Subcategories)+1 {
		t.Fatalf("non-admin keyboard has %d buttons, want %d", len(plain), len(catalog.Subcategories)+1)
	}
	for _, btn := range plain {
		if btn.Text == labelUpload || btn.Text == labelManage {
			t.Fatalf("non-admin keyboard leaks admin button %q", btn.Text)
		}
	}

	if len(admin) != len(catalog.Subcategories)+3 {
		t.Fatalf("admin keyboard has %d buttons, want %d", len(admin), len(catalog.Subcategories)+3)
	}
	var haveUpload, haveManage bool
	for _, btn := range admin {
		switch btn.Text {
		case labelUpload:
			haveUpload = true
		case labelManage:
			haveManage = true
		}
	}
	if !haveUpload || !haveManage {
		t.Fatalf("admin keyboard missing upload/manage buttons (upload=%v manage=%v)", haveUpload, haveManage)
	}
}

func TestFileKeyboardOrderAndBack(t *testing.T) {
	t.Parallel()

	files := []catalog.FileRecord{
		{Name: "b.txt", Kind: catalog.KindDocument, UploadedAt: time.Now()},
		{Name: "a.txt", Kind: catalog.KindDocument, UploadedAt: time.Now()},
	}
	back := Action{Kind: ActionSelectCategory, Index: 2}
	kb := fileKeyboard(files, back)

	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("file keyboard has %d rows, want 3", len(kb.InlineKeyboard))
	}
	// Stored order, not alphabetical.
	if kb.InlineKeyboard[0][0].Text != "📄 b.txt" || kb.InlineKeyboard[1][0].Text != "📄 a.txt" {
		t.Fatalf("file rows out of order: %q, %q", kb.InlineKeyboard[0][0].Text, kb.InlineKeyboard[1][0].Text)
	}
	for i := 0; i < 2; i++ {
		want := Action{Kind: ActionSendFile, Index: i}.Encode()
		if got := *kb.InlineKeyboard[i][0].CallbackData; got != want {
			t.Fatalf("file row %d callback = %q, want %q", i, got, want)
		}
	}
	if got := *kb.InlineKeyboard[2][0].CallbackData; got != back.Encode() {
		t.Fatalf("back callback = %q, want %q", got, back.Encode())
	}
}

func TestConfirmDeleteKeyboard(t *testing.T) {
	t.Parallel()

	kb := confirmDeleteKeyboard(4)
	buttons := flatten(kb)
	if len(buttons) != 2 {
		t.Fatalf("confirm keyboard has %d buttons, want 2", len(buttons))
	}
	if got := *buttons[0].CallbackData; got != (Action{Kind: ActionConfirmDelete, Index: 4}).Encode() {
		t.Fatalf("confirm callback = %q", got)
	}
	if got := *buttons[1].CallbackData; got != (Action{Kind: ActionCancelDelete}).Encode() {
		t.Fatalf("cancel callback = %q", got)
	}
}
