// Package session drives the per-conversation booking state machine: it
// tracks the partially specified intent across turns, prompts for missing
// fields and commits confirmed mutations through the schedule store.
package session

import "time"

// PendingAction names the operation a conversation is in the middle of.
type PendingAction string

const (
	// ActionIdle means no operation is in progress.
	ActionIdle PendingAction = "idle"
	// ActionAwaitingRegistration blocks booking operations until the
	// caller's identity is captured.
	ActionAwaitingRegistration PendingAction = "awaiting_registration"
	// ActionAwaitingDoctor waits for a doctor choice.
	ActionAwaitingDoctor PendingAction = "awaiting_doctor"
	// ActionAwaitingDatetime has a doctor; date and time are both missing.
	ActionAwaitingDatetime PendingAction = "awaiting_datetime"
	// ActionAwaitingTime has doctor and date; the time is missing.
	ActionAwaitingTime PendingAction = "awaiting_time"
	// ActionConfirmBook holds a validated candidate awaiting yes/no.
	ActionConfirmBook PendingAction = "confirm_book"
	// ActionHasExisting is entered when a book request arrives for a
	// patient who already holds an appointment.
	ActionHasExisting PendingAction = "has_existing_appointment"
	// ActionMoveAskDate waits for the new date of a move.
	ActionMoveAskDate PendingAction = "move_ask_date"
	// ActionMoveAskTime waits for the new time of a move.
	ActionMoveAskTime PendingAction = "move_ask_time"
	// ActionConfirmMove holds a validated relocation awaiting yes/no.
	ActionConfirmMove PendingAction = "confirm_move"
	// ActionConfirmCancel awaits yes/no on removing the appointment.
	ActionConfirmCancel PendingAction = "confirm_cancel"
)

// SlotOption is one entry of a lettered availability menu.
type SlotOption struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// State is the ephemeral per-conversation session. It is serialized as
// JSON into the session store and lives only as long as the conversation
// (plus the idle TTL).
type State struct {
	ConversationID string        `json:"conversation_id"`
	PatientKey     string        `json:"patient_key,omitempty"`
	Pending        PendingAction `json:"pending_action"`

	// Candidate booking fields, filled in across turns.
	Doctor string `json:"doctor,omitempty"`
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`

	// Move candidate: the appointment's doctor stays fixed.
	NewDate string `json:"new_date,omitempty"`
	NewTime string `json:"new_time,omitempty"`

	// Options maps menu labels ("A", "B", ...) to concrete slots from the
	// last availability listing.
	Options map[string]SlotOption `json:"options,omitempty"`

	LastActivityAt time.Time `json:"last_activity_at"`
}

// NewState creates an idle session for a conversation.
func NewState(conversationID string) *State {
	return &State{
		ConversationID: conversationID,
		Pending:        ActionIdle,
	}
}

// ClearPending discards the in-progress operation, keeping the patient
// registration and conversation identity.
func (s *State) ClearPending() {
	s.Pending = ActionIdle
	s.Doctor = ""
	s.Date = ""
	s.Time = ""
	s.NewDate = ""
	s.NewTime = ""
	s.Options = nil
}

// Touch records turn activity for idle-expiry bookkeeping.
func (s *State) Touch(now time.Time) {
	s.LastActivityAt = now
}
