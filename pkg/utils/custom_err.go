package utils

import "errors"

var (
	// Caller input / business rule errors (4xx, no state change).
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailAlreadyExists     = errors.New("email already registered")
	ErrCustomerNotFound       = errors.New("customer profile not found")
	ErrVendorNotFound         = errors.New("vendor profile not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrAccountNotFound        = errors.New("bank account not found")
	ErrAccountRequired        = errors.New("account id is required for installment payments")
	ErrAccountNotVerified     = errors.New("account not verified, verify BVN first")
	ErrAccountAlreadyLinked   = errors.New("account already linked to your profile")
	ErrAccountLinkedElsewhere = errors.New("account already linked to another user")
	ErrMaxAccountsReached     = errors.New("maximum number of linked accounts reached")
	ErrBvnMismatch            = errors.New("BVN does not match this account")
	ErrInvalidInstallments    = errors.New("invalid installment count")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrForbidden              = errors.New("forbidden")

	// Webhook ingestion.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMandateNotFound  = errors.New("mandate not found")
	// ErrDuplicateEvent is not a failure: the event was already applied and the
	// delivery must be acknowledged as a no-op success.
	ErrDuplicateEvent = errors.New("duplicate webhook event")

	// Infrastructure.
	ErrProviderFailure = errors.New("mandate provider request failed")
	ErrDatabaseError   = errors.New("database error")
)
