package output

// Notifier delivers user-facing messages, fire-and-forget. Implementations
// must swallow per-recipient delivery failures (log them) so a single
// unreachable user never aborts a broadcast.
type Notifier interface {
	// Notify sends a plain message to the user.
	Notify(userID, content string)
	// NotifyOffer sends a seat offer to the user with accept/decline
	// affordances tied to the event.
	NotifyOffer(userID string, eventID int64, content string)
}
