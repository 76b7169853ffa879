package library

import "time"

// Book is a catalog entry. Quantity counts the copies currently on the shelf.
type Book struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Quantity int    `json:"quantity"`
}

// User is a registered borrower together with their active checkouts, keyed by book ID.
type User struct {
	ID         int              `json:"id"`
	Name       string           `json:"name"`
	CheckedOut map[int]Checkout `json:"checked_out"`
}

// Checkout is one active borrowing of a book by a user.
type Checkout struct {
	UserID       int       `json:"user_id"`
	BookID       int       `json:"book_id"`
	CheckoutDate time.Time `json:"checkout_date"`
	DueDate      time.Time `json:"due_date"`
	Extended     bool      `json:"extended"`
}

// TransactionKind tells a checkout entry from a return entry in the log.
type TransactionKind string

const (
	TransactionCheckout TransactionKind = "checkout"
	TransactionReturn   TransactionKind = "return"
)

// Transaction is an immutable log entry. Checkout entries carry CheckoutDate;
// return entries carry ReturnDate, OverdueDays and Fine.
type Transaction struct {
	ID           int             `json:"id"`
	Kind         TransactionKind `json:"kind"`
	UserID       int             `json:"user_id"`
	BookID       int             `json:"book_id"`
	CheckoutDate time.Time       `json:"checkout_date"`
	ReturnDate   time.Time       `json:"return_date"`
	OverdueDays  int             `json:"overdue_days,omitempty"`
	Fine         int             `json:"fine,omitempty"`
}

// CheckoutReceipt is what a successful checkout reports back.
type CheckoutReceipt struct {
	Book          Book
	Checkout      Checkout
	TransactionID int
}

// ReturnReceipt is what a successful return reports back.
type ReturnReceipt struct {
	Book          Book
	ReturnDate    time.Time
	OverdueDays   int
	Fine          int
	TransactionID int
}

// OverdueItem is one active checkout past its due date.
type OverdueItem struct {
	BookID      int
	Title       string
	DueDate     time.Time
	OverdueDays int
	Fine        int
}

// OverdueReport lists a user's overdue checkouts and the fine accrued so far.
type OverdueReport struct {
	UserID    int
	Items     []OverdueItem
	TotalFine int
}
