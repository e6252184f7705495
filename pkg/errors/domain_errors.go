package errors

var (
	// Domain errors — used in service/repository
	ErrUserNotFound         = NotFound("user not found")
	ErrEmailTaken           = AlreadyExists("email is already registered")
	ErrInvalidCredentials   = Unauthorized("invalid email or password")
	ErrUserSuspended        = Forbidden("account is suspended")
	ErrPostNotFound         = NotFound("post not found")
	ErrNotificationNotFound = NotFound("notification not found")
	ErrNotOwner             = Unauthorized("resource belongs to a different user")
	ErrHistoryItemNotFound  = NotFound("search history item not found")
	ErrAdminsOnly           = Forbidden("admins only")
)
