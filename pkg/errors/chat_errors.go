package errors

var (
	ErrConversationNotFound = NotFound("conversation not found")
	ErrNotParticipant       = Forbidden("user is not a participant of this conversation")
	ErrAdminRequired        = Forbidden("operation requires the admin role")
	ErrDirectExists         = Conflict("a direct conversation already exists for this pair")
	ErrInvalidConversation  = InvalidInput("invalid conversation shape for its type")
	ErrEmptyMessage         = InvalidInput("message body cannot be empty")
)
