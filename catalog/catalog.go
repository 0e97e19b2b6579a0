// Package catalog holds the persisted file catalog: the fixed
// category/sub-category tree, the file records uploaded against it, and the
// activity log shown to the administrator.
package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Categories shown on the main menu, in display order. Labels are
// case-sensitive and must match the persisted document keys.
var Categories = []string{"KF", "BELO", "SOULAN", "KfClone", "Filtres", "Géolocalisation"}

// Subcategories shown under every category, in display order.
var Subcategories = []string{
	"SMS",
	"CONTACTS",
	"Historiques appels",
	"iMessenger",
	"Facebook Messenger",
	"Audio",
	"Vidéo",
	"Documents",
	"Autres",
}

// LocationCategory is the category that prompts for a shared position instead
// of opening a sub-category menu.
const LocationCategory = "Géolocalisation"

func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func KnownSubcategory(name string) bool {
	for _, s := range Subcategories {
		if s == name {
			return true
		}
	}
	return false
}

// MediaKind identifies which Telegram send method re-delivers a stored file.
type MediaKind string

const (
	KindDocument MediaKind = "document"
	KindPhoto    MediaKind = "photo"
	KindAudio    MediaKind = "audio"
	KindVideo    MediaKind = "video"
	KindVoice    MediaKind = "voice"
)

func (k MediaKind) Valid() bool {
	switch k {
	case KindDocument, KindPhoto, KindAudio, KindVideo, KindVoice:
		return true
	}
	return false
}

func ParseMediaKind(s string) (MediaKind, error) {
	k := MediaKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown media kind: %q", s)
	}
	return k, nil
}

// FileRecord references a platform-held file by its opaque identifier. The
// bot never stores the bytes, only the handle Telegram re-accepts.
type FileRecord struct {
	Handle     string    `json:"handle"`
	Name       string    `json:"name"`
	Kind       MediaKind `json:"kind"`
	UploadedAt time.Time `json:"uploaded_at"`
	UploadedBy int64     `json:"uploaded_by"`
}

// LogEntry is one line of the append-only activity log.
type LogEntry struct {
	ID      string    `json:"id"`
	At      time.Time `json:"timestamp"`
	UserID  int64     `json:"user_id"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
}

// DuplicatePolicy decides what happens when an upload reuses a display name
// already present in the same sub-category.
type DuplicatePolicy string

const (
	// DuplicateAllow keeps both records; names are labels, not keys.
	DuplicateAllow DuplicatePolicy = "allow"
	// DuplicateReject refuses the second upload with ErrDuplicateName.
	DuplicateReject DuplicatePolicy = "reject"
)

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DuplicateAllow):
		return DuplicateAllow, nil
	case string(DuplicateReject):
		return DuplicateReject, nil
	default:
		return "", fmt.Errorf("unknown catalog.duplicate_policy: %q", s)
	}
}
