package services

import "errors"

// Domain errors. Every rule violation gets a stable sentinel so the API
// layer can map it to a status without parsing messages.
var (
	// validation
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
	ErrCommentRequired    = errors.New("comment is required for 1 and 5 star ratings")
	ErrNoteRequired       = errors.New("moderation note is required")
	ErrReasonRequired     = errors.New("flag reason is required")
	ErrInvalidDuration    = errors.New("leaving time must fall within the allowed broadcast window")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidMenuWindow  = errors.New("available_until must be after available_from")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidFavoritable = errors.New("unknown favoritable type")
	ErrTokenRequired      = errors.New("device token is required")

	// state conflicts
	ErrAlreadyBroadcastingElsewhere = errors.New("already broadcasting from another location")
	ErrNotBroadcasting              = errors.New("not currently broadcasting")
	ErrWrongLocation                = errors.New("not broadcasting from this location")
	ErrDuplicateReview              = errors.New("seller already reviewed for this encounter date")
	ErrAlreadyFlagged               = errors.New("review is already flagged")
	ErrNotFlaggable                 = errors.New("only published reviews can be flagged")
	ErrUnderModeration              = errors.New("review is under moderation and cannot be changed")
	ErrEditWindowClosed             = errors.New("edit window has expired")
	ErrLocationInUse                = errors.New("cannot delete the location while broadcasting from it")
	ErrLocationLimit                = errors.New("cannot have more than 3 selling locations")
	ErrQuantityExhausted            = errors.New("dish quantity exhausted")
	ErrDishAlreadyOnMenu            = errors.New("dish already added to this menu")
	ErrEmailTaken                   = errors.New("email already registered")
	ErrProfileExists                = errors.New("seller profile already exists")

	// permission
	ErrForbidden               = errors.New("forbidden")
	ErrCannotReviewOwnBusiness = errors.New("cannot review your own business")
	ErrOwnReview               = errors.New("cannot act on your own review")
	ErrInvalidCredentials      = errors.New("invalid credentials")

	// not found
	ErrNotFound = errors.New("not found")
)

// ErrorKind buckets domain errors for transport mapping.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindPermission
	KindNotFound
)

var kindOf = map[error]ErrorKind{
	ErrInvalidRating:      KindValidation,
	ErrCommentRequired:    KindValidation,
	ErrNoteRequired:       KindValidation,
	ErrReasonRequired:     KindValidation,
	ErrInvalidDuration:    KindValidation,
	ErrInvalidCoordinates: KindValidation,
	ErrInvalidMenuWindow:  KindValidation,
	ErrInvalidQuantity:    KindValidation,
	ErrInvalidFavoritable: KindValidation,
	ErrTokenRequired:      KindValidation,

	ErrAlreadyBroadcastingElsewhere: KindConflict,
	ErrNotBroadcasting:              KindConflict,
	ErrWrongLocation:                KindConflict,
	ErrDuplicateReview:              KindConflict,
	ErrAlreadyFlagged:               KindConflict,
	ErrNotFlaggable:                 KindConflict,
	ErrUnderModeration:              KindConflict,
	ErrEditWindowClosed:             KindConflict,
	ErrLocationInUse:                KindConflict,
	ErrLocationLimit:                KindConflict,
	ErrQuantityExhausted:            KindConflict,
	ErrDishAlreadyOnMenu:            KindConflict,
	ErrEmailTaken:                   KindConflict,
	ErrProfileExists:                KindConflict,

	ErrForbidden:               KindPermission,
	ErrCannotReviewOwnBusiness: KindPermission,
	ErrOwnReview:               KindPermission,
	ErrInvalidCredentials:      KindPermission,

	ErrNotFound: KindNotFound,
}

// Classify reports which bucket a domain error belongs to. Infrastructure
// errors come back as KindInternal and propagate untouched.
func Classify(err error) ErrorKind {
	for sentinel, kind := range kindOf {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}
