package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ActionKind enumerates every button the bot ever renders. Callback data is
// decoded into an Action exactly once, at the dispatch boundary; handlers
// never string-match raw tokens.
type ActionKind string

const (
	ActionMainMenu          ActionKind = "menu"
	ActionSelectCategory    ActionKind = "cat"
	ActionSelectSubcategory ActionKind = "sub"
	ActionSendFile          ActionKind = "file"
	ActionStartUpload       ActionKind = "upload"
	ActionManageFiles       ActionKind = "manage"
	ActionDeleteFile        ActionKind = "del"
	ActionConfirmDelete     ActionKind = "delok"
	ActionCancelDelete      ActionKind = "delno"
	ActionCancelUpload      ActionKind = "cancelup"
	ActionShareLocation     ActionKind = "loc"
)

// Action is one decoded button press. Index addresses into the enumerated
// category/sub-category slices or into the current file list, depending on
// Kind; kinds without an argument leave it at zero.
type Action struct {
	Kind  ActionKind
	Index int
}

var ErrBadAction = errors.New("bot: malformed action token")

const actionSep = ":"

// indexed reports whether the kind carries an index argument. Category and
// sub-category tokens carry a position, never the label itself, so labels
// containing the separator can never corrupt parsing.
func (k ActionKind) indexed() bool {
	switch k {
	case ActionSelectCategory, ActionSelectSubcategory, ActionSendFile, ActionDeleteFile, ActionConfirmDelete:
		return true
	}
	return false
}

func (k ActionKind) valid() bool {
	switch k {
	case ActionMainMenu, ActionSelectCategory, ActionSelectSubcategory, ActionSendFile,
		ActionStartUpload, ActionManageFiles, ActionDeleteFile, ActionConfirmDelete,
		ActionCancelDelete, ActionCancelUpload, ActionShareLocation:
		return true
	}
	return false
}

func (a Action) Encode() string {
	if a.Kind.indexed() {
		return string(a.Kind) + actionSep + strconv.Itoa(a.Index)
	}
	return string(a.Kind)
}

func ParseAction(data string) (Action, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return Action{}, fmt.Errorf("%w: empty", ErrBadAction)
	}

	kindPart, indexPart, hasIndex := strings.Cut(data, actionSep)
	kind := ActionKind(kindPart)
	if !kind.valid() {
		return Action{}, fmt.Errorf("%w: unknown kind %q", ErrBadAction, kindPart)
	}
	if kind.indexed() != hasIndex {
		return Action{}, fmt.Errorf("%w: %q", ErrBadAction, data)
	}
	if !hasIndex {
		return Action{Kind: kind}, nil
	}

	index, err := strconv.Atoi(indexPart)
	if err != nil || index < 0 {
		return Action{}, fmt.Errorf("%w: bad index in %q", ErrBadAction, data)
	}
	return Action{Kind: kind, Index: index}, nil
}
