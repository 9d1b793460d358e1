// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Cars
	KeyCarCreated  = "car.created"
	KeyCarUpdated  = "car.updated"
	KeyCarDeleted  = "car.deleted"
	KeyCarNotFound = "car.not_found"

	// Car images
	KeyImageDeleted  = "image.deleted"
	KeyImageNotFound = "image.not_found"

	// Clients
	KeyClientCreated  = "client.created"
	KeyClientUpdated  = "client.updated"
	KeyClientDeleted  = "client.deleted"
	KeyClientNotFound = "client.not_found"

	// Dealerships
	KeyDealershipCreated  = "dealership.created"
	KeyDealershipUpdated  = "dealership.updated"
	KeyDealershipDeleted  = "dealership.deleted"
	KeyDealershipNotFound = "dealership.not_found"

	// Favorites
	KeyFavoriteAdded    = "favorite.added"
	KeyFavoriteRemoved  = "favorite.removed"
	KeyFavoriteNotFound = "favorite.not_found"

	// Alert filters
	KeyFilterCreated  = "filter.created"
	KeyFilterUpdated  = "filter.updated"
	KeyFilterDeleted  = "filter.deleted"
	KeyFilterNotFound = "filter.not_found"

	// Reference data
	KeyReferenceCreated  = "reference.created"
	KeyReferenceUpdated  = "reference.updated"
	KeyReferenceDeleted  = "reference.deleted"
	KeyReferenceNotFound = "reference.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"

	// Notifications
	KeyNotificationRead = "notification.read"
)
