package bot

import "sync"

// NavState tags the per-user Position union.
type NavState int

const (
	// StateMainMenu is the rest state; a fresh user starts here.
	StateMainMenu NavState = iota
	StateCategory
	StateSubcategory
	// StateAwaitingUpload means the admin initiated an upload and the next
	// media message commits to Category/Subcategory.
	StateAwaitingUpload
	// StateAwaitingDeleteConfirm means the admin picked the file at Index for
	// deletion and a confirmation is on screen.
	StateAwaitingDeleteConfirm
)

// Position is where a user currently is in the menu tree. Ephemeral: losing
// it on restart only drops the user back to the main menu.
type Position struct {
	State       NavState
	Category    string
	Subcategory string
	Index       int
}

// sessions maps user id to Position. Updates arrive from concurrently handled
// events, so access goes through one mutex; positions themselves are values.
type sessions struct {
	mu     sync.Mutex
	byUser map[int64]Position
}

func newSessions() *sessions {
	return &sessions{byUser: make(map[int64]Position)}
}

func (s *sessions) get(userID int64) Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byUser[userID]
}

func (s *sessions) set(userID int64, pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = pos
}

func (s *sessions) reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
