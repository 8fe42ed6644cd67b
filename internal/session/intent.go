package session

// Intent is the recognized intent kind delivered by the voice front end.
type Intent string

const (
	IntentLaunch       Intent = "launch"
	IntentRegister     Intent = "register"
	IntentBook         Intent = "book"
	IntentQuery        Intent = "query"
	IntentCancel       Intent = "cancel"
	IntentMove         Intent = "move"
	IntentDoctorInfo   Intent = "doctor_info"
	IntentAvailability Intent = "availability_query"
	IntentYes          Intent = "confirm_yes"
	IntentNo           Intent = "confirm_no"
	IntentFallback     Intent = "fallback"
	IntentSessionEnd   Intent = "session_end"
)

// Field keys the front end may populate on a turn.
const (
	FieldDoctor      = "doctor"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldNewDate     = "new_date"
	FieldNewTime     = "new_time"
	FieldOptionLabel = "option_label"
	// FieldQuery carries a combined free-text utterance such as
	// "martes a las tres" when the front end could not split it.
	FieldQuery = "query"
)

// ParseIntent validates an intent kind from the wire.
func ParseIntent(kind string) (Intent, bool) {
	switch Intent(kind) {
	case IntentLaunch, IntentRegister, IntentBook, IntentQuery, IntentCancel,
		IntentMove, IntentDoctorInfo, IntentAvailability, IntentYes,
		IntentNo, IntentFallback, IntentSessionEnd:
		return Intent(kind), true
	}
	return "", false
}
