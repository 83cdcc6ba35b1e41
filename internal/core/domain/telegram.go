package domain

// TelegramProfile maps a Telegram chat to a web account. A row is created on
// first inbound contact with a null UserID; linking binds the owner, unlinking
// clears it but keeps the row so the chat can re-link later.
type TelegramProfile struct {
	ID        uint64
	UserID    *uint64
	ChatID    int64
	TempToken *string
}

// Linked reports whether the chat is bound to a web account.
func (p TelegramProfile) Linked() bool {
	return p.UserID != nil
}

// InboundEvent is a messaging-platform update reduced to what the bot
// front-end acts on. Exactly one of Text or CallbackID is meaningful.
type InboundEvent struct {
	ChatID       int64
	Text         string
	CallbackID   string
	CallbackData string
}

// IsCallback reports whether the event is a button press.
func (e InboundEvent) IsCallback() bool {
	return e.CallbackID != ""
}

// Button is a single inline keyboard entry: either a deep link (URL set) or a
// callback button (CallbackData set).
type Button struct {
	Text         string
	URL          string
	CallbackData string
}

// OutboundMessage is a platform-agnostic message to one chat.
type OutboundMessage struct {
	ChatID    int64
	Text      string
	ParseMode string
	Buttons   []Button
}

// ReminderReport summarizes one dispatcher run.
type ReminderReport struct {
	Notified int
	Failed   int
}
