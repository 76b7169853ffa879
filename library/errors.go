package library

import "errors"

// Kind classifies a rejected operation.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidState:
		return "invalid state"
	default:
		return "unknown"
	}
}

// Error is a rejected operation. Rejections never change library state.
type Error struct {
	Code    int
	Kind    Kind
	Message string
}

func (e Error) Error() string {
	return e.Message
}

var ErrUserNotRegistered = Error{100, KindNotFound, "User not registered. Please register first."}
var ErrBookNotFound = Error{101, KindNotFound, "Invalid book ID. Please enter a valid ID."}
var ErrBookUnavailable = Error{102, KindInvalidState, "Book not available for checkout."}
var ErrCheckoutLimitReached = Error{103, KindInvalidState, "Maximum checkout limit reached. Return a book to checkout another."}
var ErrBookAlreadyCheckedOut = Error{104, KindInvalidState, "Book already checked out by this user."}
var ErrBookNotCheckedOut = Error{105, KindInvalidState, "Book not checked out by this user."}
var ErrBookIDExists = Error{106, KindInvalidState, "Book ID already exists. Please use a different ID."}
var ErrExtensionUsed = Error{107, KindInvalidState, "Due date can be extended only once per checkout."}
var ErrInvalidQuantity = Error{108, KindInvalidState, "Quantity cannot be negative."}

// IsNotFound reports whether err is a rejection for an unknown user or book.
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

// IsInvalidState reports whether err is a rejection caused by the current state.
func IsInvalidState(err error) bool {
	return kindOf(err) == KindInvalidState
}

func kindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
