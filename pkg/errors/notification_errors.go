package errors

var (
	ErrNotificationNotFound = NotFound("notification not found")
	ErrNotAddressee         = Forbidden("notification is addressed to someone else")
	ErrNotRequester         = Forbidden("only the sender can cancel a friend request")
	ErrSelfRequest          = InvalidInput("cannot send a friend request to yourself")
	ErrRequestPending       = Conflict("a pending friend request already exists for this pair")
	ErrReversePending       = Conflict("this user already has a pending friend request waiting for your response")
	ErrRequestSettled       = BusinessRule("friend request is no longer pending")
)
