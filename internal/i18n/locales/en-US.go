package locales

// MessagesEnUS English (US) translations
var MessagesEnUS = map[string]string{
	// Common messages
	"common.success": "Success",
	"error":          "Operation failed",
	"unauthorized":   "Unauthorized",
	"not_found":      "Not found",
	"bad_request":    "Bad request",
	"internal_error": "Internal error",

	// Validation
	"validation.invalid_restaurant_id": "Invalid restaurant ID",
	"validation.invalid_entry_id":      "Invalid entry ID",
	"validation.invalid_step":          "Invalid step number",
	"validation.invalid_session_id":    "Invalid session ID",
	"validation.invalid_date_range":    "Invalid date range",

	// Onboarding
	"onboarding.session_started":   "Onboarding session started",
	"onboarding.session_not_found": "Onboarding session not found or expired",
	"onboarding.draft_updated":     "Draft updated",
	"onboarding.step_advanced":     "Step saved",
	"onboarding.step_blocked":      "Current step is incomplete",
	"onboarding.completed":         "Onboarding completed",
	"onboarding.reset":             "Onboarding restarted",

	// Waiting list
	"waiting.enqueued":           "Added to the waiting list",
	"waiting.status_updated":     "Status updated",
	"waiting.entry_not_found":    "Waiting entry not found",
	"waiting.invalid_transition": "This entry can no longer change to that status",

	// Restaurant
	"restaurant.not_found": "Restaurant not found",
}
