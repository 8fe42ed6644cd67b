package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clinicavoz/voice-scheduler/internal/observability/metrics"
	"github.com/clinicavoz/voice-scheduler/internal/patients"
	"github.com/clinicavoz/voice-scheduler/internal/resolver"
	"github.com/clinicavoz/voice-scheduler/internal/schedule"
	"github.com/clinicavoz/voice-scheduler/pkg/logging"
)

// Reply is the outcome of a turn: text for the TTS engine and whether the
// conversation stays open for another turn.
type Reply struct {
	Speech       string `json:"speech"`
	ExpectsReply bool   `json:"expects_reply"`
}

// Fixed spoken templates. Per-field prompts are built inline next to the
// state transitions that need them.
const (
	msgGreeting = "Bienvenido a la clínica. Puedo agendar, consultar, mover o cancelar su cita. ¿En qué puedo ayudarle?"
	msgHelp     = "Puedo agendar, consultar, mover o cancelar citas, o informarle sobre nuestros doctores. ¿Qué desea hacer?"
	msgNeutral  = "De acuerdo. ¿En qué más puedo ayudarle?"
	msgGoodbye  = "Hasta luego. Que tenga un buen día."
	msgApology  = "Lo siento, ha ocurrido un problema. ¿Puede repetirlo?"

	msgNeedRegistration = "Primero necesito registrarle. Por favor dígame su nombre y su teléfono."
	msgRegisterRetry    = "Necesito al menos su nombre o su teléfono para registrarle. ¿Me los puede repetir?"
	msgBadDay           = "No entendí el día. Dígame por ejemplo, el martes."
	msgBadTime          = "No entendí la hora. Dígame por ejemplo, a las tres de la tarde."
	msgSlotGone         = "Lo siento, esa hora ya no está disponible. ¿Quiere que busquemos otra?"
	msgNoChanges        = "De acuerdo, no he hecho ningún cambio. ¿En qué más puedo ayudarle?"
	msgNoAppointment    = "No tiene ninguna cita agendada."
	msgYesOrNo          = "Solo necesito un sí o un no."
)

// EngineConfig configures the Engine.
type EngineConfig struct {
	Store    *schedule.Store
	Patients *patients.Registry
	Logger   *logging.Logger
	// Metrics is optional; a nil TurnMetrics is a no-op.
	Metrics *metrics.TurnMetrics
	// MaxOptions caps how many alternatives or menu entries are spoken.
	MaxOptions int
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Engine applies one conversational turn to a session. It holds no
// per-conversation state itself; everything mutable lives in State.
type Engine struct {
	store      *schedule.Store
	patients   *patients.Registry
	logger     *logging.Logger
	metrics    *metrics.TurnMetrics
	maxOptions int
	now        func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MaxOptions <= 0 {
		cfg.MaxOptions = 5
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		store:      cfg.Store,
		patients:   cfg.Patients,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		maxOptions: cfg.MaxOptions,
		now:        cfg.Now,
	}
}

// HandleTurn merges a turn into the session and produces the spoken reply.
// It mutates state in place; the caller persists it afterwards. No input
// is fatal: unexpected faults are caught here and answered with a generic
// apology, leaving the session as it was.
func (e *Engine) HandleTurn(ctx context.Context, state *State, intent Intent, fields map[string]string) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("turn handler panicked",
				"conversation_id", state.ConversationID,
				"intent", string(intent),
				"panic", fmt.Sprint(r),
			)
			reply = Reply{Speech: msgApology, ExpectsReply: true}
		}
	}()

	if fields == nil {
		fields = map[string]string{}
	}
	state.Touch(e.now())

	switch intent {
	case IntentLaunch:
		return Reply{Speech: msgGreeting, ExpectsReply: true}
	case IntentRegister:
		return e.handleRegister(state, fields)
	case IntentBook:
		return e.handleBook(state, fields)
	case IntentQuery:
		return e.handleQuery(state)
	case IntentCancel:
		return e.handleCancel(state)
	case IntentMove:
		return e.handleMove(state, fields)
	case IntentDoctorInfo:
		return e.handleDoctorInfo(fields)
	case IntentAvailability:
		return e.handleAvailability(state, fields)
	case IntentYes:
		return e.handleYes(state)
	case IntentNo:
		return e.handleNo(state)
	case IntentSessionEnd:
		state.ClearPending()
		return Reply{Speech: msgGoodbye, ExpectsReply: false}
	default:
		return e.handleFallback(state, fields)
	}
}

// ----- registration & identity -----

func (e *Engine) handleRegister(state *State, fields map[string]string) Reply {
	name := fields[FieldName]
	phone := fields[FieldPhone]

	key, err := e.patients.Register(name, phone)
	if err != nil {
		return Reply{Speech: msgRegisterRetry, ExpectsReply: true}
	}
	state.PatientKey = key
	if state.Pending == ActionAwaitingRegistration {
		// The interrupted request is not retried; the caller reissues it.
		state.Pending = ActionIdle
	}

	e.logger.Info("patient registered", "conversation_id", state.ConversationID, "patient_key", key)
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return Reply{
			Speech:       fmt.Sprintf("Perfecto %s, queda registrado. ¿En qué puedo ayudarle?", trimmed),
			ExpectsReply: true,
		}
	}
	return Reply{Speech: "Perfecto, queda registrado. ¿En qué puedo ayudarle?", ExpectsReply: true}
}

// ensureIdentity redirects to the registration flow when the session has
// no patient. The requested operation is not resumed automatically.
func (e *Engine) ensureIdentity(state *State) *Reply {
	if state.PatientKey != "" {
		return nil
	}
	state.Pending = ActionAwaitingRegistration
	return &Reply{Speech: msgNeedRegistration, ExpectsReply: true}
}

// ----- booking -----

func (e *Engine) handleBook(state *State, fields map[string]string) Reply {
	if r := e.ensureIdentity(state); r != nil {
		return *r
	}

	if appt, ok := e.store.GetAppointment(state.PatientKey); ok {
		state.Pending = ActionHasExisting
		doctor := e.store.GetDoctor(appt.DoctorID)
		return Reply{
			Speech: fmt.Sprintf(
				"Ya tiene una cita con %s el %s a las %s. Puede moverla o cancelarla antes de agendar otra.",
				doctor.DisplayName, speakDate(appt.Date), appt.Time),
			ExpectsReply: true,
		}
	}

	if label := strings.ToUpper(strings.TrimSpace(fields[FieldOptionLabel])); label != "" {
		if opt, ok := state.Options[label]; ok {
			state.Date = opt.Date
			state.Time = opt.Time
		} else {
			return Reply{Speech: "Esa opción no está disponible. Intente con otra.", ExpectsReply: true}
		}
	}

	if r := e.mergeBookingFields(state, fields); r != nil {
		return *r
	}
	return e.advanceBooking(state)
}

// mergeBookingFields folds the turn's raw slot values into the candidate.
// A resolution failure returns a targeted re-prompt and leaves everything
// already captured intact.
func (e *Engine) mergeBookingFields(state *State, fields map[string]string) *Reply {
	if text := fields[FieldDoctor]; text != "" {
		id, ok := resolver.NormalizeDoctor(e.store, text)
		if !ok {
			return &Reply{
				Speech: fmt.Sprintf("No encuentro al doctor %s. Puede elegir entre %s.",
					strings.TrimSpace(text), doctorNames(e.store.ListDoctors())),
				ExpectsReply: true,
			}
		}
		state.Doctor = id
	}

	dayWord := fields[FieldDate]
	timeText := fields[FieldTime]
	if query := fields[FieldQuery]; query != "" && (dayWord == "" || timeText == "") {
		day, fragment := resolver.ExtractDayAndTime(query)
		if dayWord == "" {
			dayWord = day
		}
		if timeText == "" {
			timeText = fragment
		}
	}

	if dayWord != "" {
		iso, ok := resolver.ResolveDay(dayWord, e.now())
		if !ok {
			return &Reply{Speech: msgBadDay, ExpectsReply: true}
		}
		state.Date = iso
	}
	if timeText != "" {
		hhmm, ok := resolver.ParseSpokenTime(timeText)
		if !ok {
			return &Reply{Speech: msgBadTime, ExpectsReply: true}
		}
		state.Time = hhmm
	}
	return nil
}

// advanceBooking prompts for the next missing field, or validates the
// complete candidate and asks for confirmation.
func (e *Engine) advanceBooking(state *State) Reply {
	if state.Doctor == "" {
		state.Pending = ActionAwaitingDoctor
		return Reply{
			Speech: fmt.Sprintf("¿Con qué doctor desea la cita? Tenemos a %s.",
				doctorNames(e.store.ListDoctors())),
			ExpectsReply: true,
		}
	}
	doctor := e.store.GetDoctor(state.Doctor)

	if state.Date == "" {
		state.Pending = ActionAwaitingDatetime
		return Reply{
			Speech: fmt.Sprintf("¿Para qué día desea la cita? %s atiende los %s.",
				doctor.DisplayName, speakWeekdays(doctor.Days)),
			ExpectsReply: true,
		}
	}

	slots := e.store.AvailableSlots(state.Doctor, state.Date)
	if len(slots) == 0 {
		spokenDay := speakDate(state.Date)
		state.Date = ""
		state.Pending = ActionAwaitingDatetime
		return Reply{
			Speech: fmt.Sprintf("%s no tiene horas libres el %s. Atiende los %s. ¿Qué otro día le viene bien?",
				doctor.DisplayName, spokenDay, speakWeekdays(doctor.Days)),
			ExpectsReply: true,
		}
	}

	if state.Time == "" {
		state.Pending = ActionAwaitingTime
		return Reply{
			Speech: fmt.Sprintf("¿A qué hora? El %s %s tiene libre a las %s.",
				speakDate(state.Date), doctor.DisplayName, speakSlots(slots, e.maxOptions)),
			ExpectsReply: true,
		}
	}

	if !e.store.IsAvailable(state.Doctor, state.Date, state.Time) {
		requested := state.Time
		state.Time = ""
		state.Pending = ActionAwaitingTime
		return Reply{
			Speech: fmt.Sprintf("Las %s no está disponible. %s tiene libre a las %s. ¿Cuál prefiere?",
				requested, doctor.DisplayName, speakSlots(slots, e.maxOptions)),
			ExpectsReply: true,
		}
	}

	state.Pending = ActionConfirmBook
	return Reply{Speech: e.confirmBookPrompt(state), ExpectsReply: true}
}

func (e *Engine) confirmBookPrompt(state *State) string {
	doctor := e.store.GetDoctor(state.Doctor)
	return fmt.Sprintf("¿Confirmo su cita con %s el %s a las %s?",
		doctor.DisplayName, speakDate(state.Date), state.Time)
}

// ----- query, cancel, move -----

func (e *Engine) handleQuery(state *State) Reply {
	if r := e.ensureIdentity(state); r != nil {
		return *r
	}
	appt, ok := e.store.GetAppointment(state.PatientKey)
	if !ok {
		return Reply{Speech: msgNoAppointment, ExpectsReply: true}
	}
	doctor := e.store.GetDoctor(appt.DoctorID)
	return Reply{
		Speech: fmt.Sprintf("Tiene una cita con %s el %s a las %s.",
			doctor.DisplayName, speakDate(appt.Date), appt.Time),
		ExpectsReply: true,
	}
}

func (e *Engine) handleCancel(state *State) Reply {
	if r := e.ensureIdentity(state); r != nil {
		return *r
	}
	appt, ok := e.store.GetAppointment(state.PatientKey)
	if !ok {
		return Reply{Speech: "No tiene ninguna cita que cancelar.", ExpectsReply: true}
	}
	state.Pending = ActionConfirmCancel
	doctor := e.store.GetDoctor(appt.DoctorID)
	return Reply{
		Speech: fmt.Sprintf("¿Seguro que desea cancelar su cita con %s el %s a las %s?",
			doctor.DisplayName, speakDate(appt.Date), appt.Time),
		ExpectsReply: true,
	}
}

func (e *Engine) handleMove(state *State, fields map[string]string) Reply {
	if r := e.ensureIdentity(state); r != nil {
		return *r
	}
	appt, ok := e.store.GetAppointment(state.PatientKey)
	if !ok {
		return Reply{Speech: "No tiene ninguna cita que mover. ¿Quiere agendar una?", ExpectsReply: true}
	}

	dayWord := fields[FieldNewDate]
	if dayWord == "" {
		dayWord = fields[FieldDate]
	}
	timeText := fields[FieldNewTime]
	if timeText == "" {
		timeText = fields[FieldTime]
	}
	if query := fields[FieldQuery]; query != "" && (dayWord == "" || timeText == "") {
		day, fragment := resolver.ExtractDayAndTime(query)
		if dayWord == "" {
			dayWord = day
		}
		if timeText == "" {
			timeText = fragment
		}
	}

	if dayWord != "" {
		iso, ok := resolver.ResolveDay(dayWord, e.now())
		if !ok {
			return Reply{Speech: msgBadDay, ExpectsReply: true}
		}
		state.NewDate = iso
	}
	if timeText != "" {
		hhmm, ok := resolver.ParseSpokenTime(timeText)
		if !ok {
			return Reply{Speech: msgBadTime, ExpectsReply: true}
		}
		state.NewTime = hhmm
	}

	return e.advanceMove(state, appt)
}

func (e *Engine) advanceMove(state *State, appt schedule.Appointment) Reply {
	doctor := e.store.GetDoctor(appt.DoctorID)

	if state.NewDate == "" {
		state.Pending = ActionMoveAskDate
		return Reply{
			Speech: fmt.Sprintf("¿Para qué día quiere mover su cita? %s atiende los %s.",
				doctor.DisplayName, speakWeekdays(doctor.Days)),
			ExpectsReply: true,
		}
	}

	slots := e.store.AvailableSlots(appt.DoctorID, state.NewDate)
	if len(slots) == 0 {
		spokenDay := speakDate(state.NewDate)
		state.NewDate = ""
		state.Pending = ActionMoveAskDate
		return Reply{
			Speech: fmt.Sprintf("%s no tiene horas libres el %s. Atiende los %s. ¿Qué otro día le viene bien?",
				doctor.DisplayName, spokenDay, speakWeekdays(doctor.Days)),
			ExpectsReply: true,
		}
	}

	if state.NewTime == "" {
		state.Pending = ActionMoveAskTime
		return Reply{
			Speech: fmt.Sprintf("¿A qué hora? El %s %s tiene libre a las %s.",
				speakDate(state.NewDate), doctor.DisplayName, speakSlots(slots, e.maxOptions)),
			ExpectsReply: true,
		}
	}

	if !e.store.IsAvailable(appt.DoctorID, state.NewDate, state.NewTime) {
		requested := state.NewTime
		state.NewTime = ""
		state.Pending = ActionMoveAskTime
		return Reply{
			Speech: fmt.Sprintf("Las %s no está disponible. %s tiene libre a las %s. ¿Cuál prefiere?",
				requested, doctor.DisplayName, speakSlots(slots, e.maxOptions)),
			ExpectsReply: true,
		}
	}

	state.Pending = ActionConfirmMove
	return Reply{Speech: e.confirmMovePrompt(state, appt), ExpectsReply: true}
}

func (e *Engine) confirmMovePrompt(state *State, appt schedule.Appointment) string {
	doctor := e.store.GetDoctor(appt.DoctorID)
	return fmt.Sprintf("¿Muevo su cita con %s al %s a las %s?",
		doctor.DisplayName, speakDate(state.NewDate), state.NewTime)
}

// ----- confirmation turns -----

func (e *Engine) handleYes(state *State) Reply {
	switch state.Pending {
	case ActionConfirmBook:
		err := e.store.BookIfAvailable(state.PatientKey, state.Doctor, state.Date, state.Time)
		if err != nil {
			e.logger.Info("booking conflict at commit",
				"conversation_id", state.ConversationID,
				"doctor", state.Doctor, "date", state.Date, "time", state.Time,
			)
			e.metrics.ObserveBooking("conflict")
			state.ClearPending()
			return Reply{Speech: msgSlotGone, ExpectsReply: true}
		}
		e.metrics.ObserveBooking("booked")
		doctor := e.store.GetDoctor(state.Doctor)
		speech := fmt.Sprintf("Listo. Su cita con %s queda para el %s a las %s.",
			doctor.DisplayName, speakDate(state.Date), state.Time)
		state.ClearPending()
		return Reply{Speech: speech, ExpectsReply: true}

	case ActionConfirmMove:
		newDate, newTime := state.NewDate, state.NewTime
		err := e.store.MoveIfAvailable(state.PatientKey, newDate, newTime)
		state.ClearPending()
		if err != nil {
			if err == schedule.ErrNoAppointment {
				return Reply{Speech: msgNoAppointment, ExpectsReply: true}
			}
			e.metrics.ObserveBooking("conflict")
			return Reply{Speech: msgSlotGone, ExpectsReply: true}
		}
		e.metrics.ObserveBooking("moved")
		return Reply{
			Speech:       fmt.Sprintf("Listo. Su cita queda para el %s a las %s.", speakDate(newDate), newTime),
			ExpectsReply: true,
		}

	case ActionConfirmCancel:
		removed := e.store.DeleteAppointment(state.PatientKey)
		state.ClearPending()
		if !removed {
			return Reply{Speech: msgNoAppointment, ExpectsReply: true}
		}
		e.metrics.ObserveBooking("cancelled")
		return Reply{Speech: "Su cita ha sido cancelada. ¿En qué más puedo ayudarle?", ExpectsReply: true}

	default:
		// A bare "yes" outside a confirmation is only an acknowledgment.
		return Reply{Speech: msgNeutral, ExpectsReply: true}
	}
}

func (e *Engine) handleNo(state *State) Reply {
	switch state.Pending {
	case ActionConfirmBook, ActionConfirmMove, ActionConfirmCancel:
		state.ClearPending()
		return Reply{Speech: msgNoChanges, ExpectsReply: true}
	default:
		return Reply{Speech: msgNeutral, ExpectsReply: true}
	}
}

// ----- information intents -----

func (e *Engine) handleDoctorInfo(fields map[string]string) Reply {
	text := fields[FieldDoctor]
	if strings.TrimSpace(text) == "" {
		return Reply{
			Speech: fmt.Sprintf("¿Sobre qué doctor desea información? Tenemos a %s.",
				doctorNames(e.store.ListDoctors())),
			ExpectsReply: true,
		}
	}
	id, ok := resolver.NormalizeDoctor(e.store, text)
	if !ok {
		return Reply{
			Speech: fmt.Sprintf("No encuentro al doctor %s. Puede elegir entre %s.",
				strings.TrimSpace(text), doctorNames(e.store.ListDoctors())),
			ExpectsReply: true,
		}
	}
	doctor := e.store.GetDoctor(id)
	return Reply{
		Speech: fmt.Sprintf("%s es especialista en %s. Atiende los %s, de %02d:00 a %02d:00.",
			doctor.DisplayName, doctor.Specialty, speakWeekdays(doctor.Days),
			doctor.OpenHour, doctor.CloseHour),
		ExpectsReply: true,
	}
}

func (e *Engine) handleAvailability(state *State, fields map[string]string) Reply {
	if text := fields[FieldDoctor]; text != "" {
		id, ok := resolver.NormalizeDoctor(e.store, text)
		if !ok {
			return Reply{
				Speech: fmt.Sprintf("No encuentro al doctor %s. Puede elegir entre %s.",
					strings.TrimSpace(text), doctorNames(e.store.ListDoctors())),
				ExpectsReply: true,
			}
		}
		state.Doctor = id
	}
	if state.Doctor == "" {
		return Reply{
			Speech: fmt.Sprintf("¿De qué doctor quiere saber la disponibilidad? Tenemos a %s.",
				doctorNames(e.store.ListDoctors())),
			ExpectsReply: true,
		}
	}
	doctor := e.store.GetDoctor(state.Doctor)

	dayWord := fields[FieldDate]
	if query := fields[FieldQuery]; query != "" && dayWord == "" {
		dayWord, _ = resolver.ExtractDayAndTime(query)
	}
	if dayWord == "" {
		return Reply{
			Speech: fmt.Sprintf("¿Para qué día? %s atiende los %s.",
				doctor.DisplayName, speakWeekdays(doctor.Days)),
			ExpectsReply: true,
		}
	}
	date, ok := resolver.ResolveDay(dayWord, e.now())
	if !ok {
		return Reply{Speech: msgBadDay, ExpectsReply: true}
	}

	slots := e.store.AvailableSlots(state.Doctor, date)
	if len(slots) == 0 {
		return Reply{
			Speech: fmt.Sprintf("%s no tiene horas libres el %s. Atiende los %s.",
				doctor.DisplayName, speakDate(date), speakWeekdays(doctor.Days)),
			ExpectsReply: true,
		}
	}

	// Render the open slots as a lettered menu; choosing a label later
	// feeds the same confirm-book path as a free-form date and time.
	limit := e.maxOptions
	if limit > len(optionLabels) {
		limit = len(optionLabels)
	}
	if limit > len(slots) {
		limit = len(slots)
	}
	state.Options = make(map[string]SlotOption, limit)
	var parts []string
	for i := 0; i < limit; i++ {
		label := string(optionLabels[i])
		state.Options[label] = SlotOption{Date: date, Time: slots[i]}
		parts = append(parts, fmt.Sprintf("opción %s, a las %s", label, slots[i]))
	}
	return Reply{
		Speech: fmt.Sprintf("El %s %s tiene libre: %s. Diga una opción para agendar.",
			speakDate(date), doctor.DisplayName, strings.Join(parts, "; ")),
		ExpectsReply: true,
	}
}

// ----- fallback -----

// handleFallback re-prompts for whatever the session is waiting on. In a
// partial slot-filling state it first tries to salvage fields from the
// turn, so captured values are never lost to a misrecognized intent.
func (e *Engine) handleFallback(state *State, fields map[string]string) Reply {
	switch state.Pending {
	case ActionAwaitingRegistration:
		if fields[FieldName] != "" || fields[FieldPhone] != "" {
			return e.handleRegister(state, fields)
		}
		return Reply{Speech: msgNeedRegistration, ExpectsReply: true}

	case ActionAwaitingDoctor, ActionAwaitingDatetime, ActionAwaitingTime:
		if r := e.mergeBookingFields(state, fields); r != nil {
			return *r
		}
		return e.advanceBooking(state)

	case ActionMoveAskDate, ActionMoveAskTime:
		return e.handleMove(state, fields)

	case ActionConfirmBook:
		return Reply{Speech: msgYesOrNo + " " + e.confirmBookPrompt(state), ExpectsReply: true}

	case ActionConfirmMove:
		if appt, ok := e.store.GetAppointment(state.PatientKey); ok {
			return Reply{Speech: msgYesOrNo + " " + e.confirmMovePrompt(state, appt), ExpectsReply: true}
		}
		state.ClearPending()
		return Reply{Speech: msgNoAppointment, ExpectsReply: true}

	case ActionConfirmCancel:
		return Reply{Speech: msgYesOrNo + " ¿Desea cancelar su cita?", ExpectsReply: true}

	case ActionHasExisting:
		return Reply{
			Speech:       "Ya tiene una cita agendada. Puede decir mover mi cita, o cancelar mi cita.",
			ExpectsReply: true,
		}

	default:
		return Reply{Speech: msgHelp, ExpectsReply: true}
	}
}
