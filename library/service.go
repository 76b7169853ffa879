package library

import (
	"errors"
	"fmt"
)

// Service is the library: catalog, users, active checkouts and the
// transaction log, all held in one in-memory Store. Each operation runs in a
// single write transaction, so a rejected operation changes nothing.
type Service struct {
	store  *Store
	policy Policy
	clock  Clock
	logger Logger
	seed   []Book

	lastTxID int
}

// NewService creates a library seeded with DefaultCatalog unless WithCatalog says otherwise.
func NewService(opts ...Option) (*Service, error) {
	store, err := NewStore()
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:  store,
		policy: DefaultPolicy(),
		clock:  systemClock{},
		logger: discardLogger(),
		seed:   DefaultCatalog(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("configure library: %w", err)
		}
	}

	for _, b := range s.seed {
		if _, err := s.AddBook(b.ID, b.Title, b.Author, b.Quantity); err != nil {
			return nil, fmt.Errorf("seed book %d: %w", b.ID, err)
		}
	}
	s.seed = nil
	return s, nil
}

// Policy returns the circulation rules in effect.
func (s *Service) Policy() Policy { return s.policy }

// ------------------ Catalog ------------------

// Catalog lists every book with its available quantity, ordered by ID.
func (s *Service) Catalog() ([]Book, error) {
	txn := s.store.Read()
	defer txn.Abort()
	return txn.Books()
}

// Book looks up one catalog entry by ID.
func (s *Service) Book(id int) (Book, error) {
	txn := s.store.Read()
	defer txn.Abort()
	return txn.Book(id)
}

// AddBook inserts a new catalog entry. Existing IDs are never overwritten.
func (s *Service) AddBook(id int, title, author string, quantity int) (Book, error) {
	if quantity < 0 {
		return Book{}, ErrInvalidQuantity
	}

	txn := s.store.Write()
	defer txn.Abort()

	if _, err := txn.Book(id); err == nil {
		return Book{}, ErrBookIDExists
	} else if !errors.Is(err, ErrBookNotFound) {
		return Book{}, err
	}

	b := Book{ID: id, Title: title, Author: author, Quantity: quantity}
	if err := txn.PutBook(b); err != nil {
		return Book{}, err
	}
	txn.Commit()

	s.logger.Debug("book added", "book_id", id, "title", title, "quantity", quantity)
	return b, nil
}

// RemoveBook deletes a catalog entry. Outstanding checkouts of the book are
// left in place; they can no longer be returned.
func (s *Service) RemoveBook(id int) (Book, error) {
	txn := s.store.Write()
	defer txn.Abort()

	b, err := txn.Book(id)
	if err != nil {
		return Book{}, err
	}
	if err := txn.DeleteBook(id); err != nil {
		return Book{}, err
	}
	txn.Commit()

	s.logger.Debug("book removed", "book_id", id, "title", b.Title)
	return b, nil
}

// ------------------ Users ------------------

// RegisterUser stores a user with no checkouts. An existing user with the
// same ID is replaced, and their active checkouts go with the old record.
func (s *Service) RegisterUser(id int, name string) (replaced bool, err error) {
	txn := s.store.Write()
	defer txn.Abort()

	replaced, err = txn.HasUser(id)
	if err != nil {
		return false, err
	}

	dropped := 0
	if replaced {
		if dropped, err = txn.DeleteCheckouts(id); err != nil {
			return false, err
		}
	}
	if err := txn.PutUser(User{ID: id, Name: name}); err != nil {
		return false, err
	}
	txn.Commit()

	if replaced {
		s.logger.Warn("user record overwritten", "user_id", id, "name", name, "dropped_checkouts", dropped)
	} else {
		s.logger.Debug("user registered", "user_id", id, "name", name)
	}
	return replaced, nil
}

// User returns a registered user with their active checkouts.
func (s *Service) User(id int) (User, error) {
	txn := s.store.Read()
	defer txn.Abort()
	return txn.User(id)
}

// ------------------ Circulation ------------------

// CheckoutBook lends one copy of bookID to userID, due after the loan period.
// A user may hold only one copy of a book at a time; a second checkout of the
// same bookID fails with ErrBookAlreadyCheckedOut.
func (s *Service) CheckoutBook(userID, bookID int) (CheckoutReceipt, error) {
	txn := s.store.Write()
	defer txn.Abort()

	user, err := txn.User(userID)
	if err != nil {
		return CheckoutReceipt{}, err
	}
	b, err := txn.Book(bookID)
	if err != nil {
		return CheckoutReceipt{}, err
	}
	if b.Quantity == 0 {
		return CheckoutReceipt{}, ErrBookUnavailable
	}
	if _, ok := user.CheckedOut[bookID]; ok {
		return CheckoutReceipt{}, ErrBookAlreadyCheckedOut
	}
	if len(user.CheckedOut) >= s.policy.MaxCheckouts {
		return CheckoutReceipt{}, ErrCheckoutLimitReached
	}

	now := s.clock.Now()
	c := Checkout{
		UserID:       userID,
		BookID:       bookID,
		CheckoutDate: now,
		DueDate:      now.Add(s.policy.LoanPeriod),
	}
	b.Quantity--

	if err := txn.PutCheckout(c); err != nil {
		return CheckoutReceipt{}, err
	}
	if err := txn.PutBook(b); err != nil {
		return CheckoutReceipt{}, err
	}
	tr := Transaction{
		ID:           s.lastTxID + 1,
		Kind:         TransactionCheckout,
		UserID:       userID,
		BookID:       bookID,
		CheckoutDate: now,
	}
	if err := txn.AppendTransaction(tr); err != nil {
		return CheckoutReceipt{}, err
	}
	txn.Commit()
	s.lastTxID = tr.ID

	s.logger.Debug("book checked out", "user_id", userID, "book_id", bookID, "due", c.DueDate, "transaction_id", tr.ID)
	return CheckoutReceipt{Book: b, Checkout: c, TransactionID: tr.ID}, nil
}

// ReturnBook closes the user's checkout of bookID and charges the overdue fine.
func (s *Service) ReturnBook(userID, bookID int) (ReturnReceipt, error) {
	txn := s.store.Write()
	defer txn.Abort()

	if _, err := txn.User(userID); err != nil {
		return ReturnReceipt{}, err
	}
	b, err := txn.Book(bookID)
	if err != nil {
		return ReturnReceipt{}, err
	}
	c, err := txn.Checkout(userID, bookID)
	if err != nil {
		return ReturnReceipt{}, err
	}

	now := s.clock.Now()
	days := overdueDays(c.DueDate, now)
	fine := s.policy.fine(days)
	b.Quantity++

	if err := txn.PutBook(b); err != nil {
		return ReturnReceipt{}, err
	}
	if err := txn.DeleteCheckout(userID, bookID); err != nil {
		return ReturnReceipt{}, err
	}
	tr := Transaction{
		ID:          s.lastTxID + 1,
		Kind:        TransactionReturn,
		UserID:      userID,
		BookID:      bookID,
		ReturnDate:  now,
		OverdueDays: days,
		Fine:        fine,
	}
	if err := txn.AppendTransaction(tr); err != nil {
		return ReturnReceipt{}, err
	}
	txn.Commit()
	s.lastTxID = tr.ID

	s.logger.Debug("book returned", "user_id", userID, "book_id", bookID, "overdue_days", days, "fine", fine, "transaction_id", tr.ID)
	return ReturnReceipt{
		Book:          b,
		ReturnDate:    now,
		OverdueDays:   days,
		Fine:          fine,
		TransactionID: tr.ID,
	}, nil
}

// ExtendDueDate pushes the due date of an active checkout back by the
// extension period. Each checkout can be extended once.
func (s *Service) ExtendDueDate(userID, bookID int) (Checkout, error) {
	txn := s.store.Write()
	defer txn.Abort()

	if _, err := txn.User(userID); err != nil {
		return Checkout{}, err
	}
	c, err := txn.Checkout(userID, bookID)
	if err != nil {
		return Checkout{}, err
	}
	if c.Extended {
		return Checkout{}, ErrExtensionUsed
	}

	c.DueDate = c.DueDate.Add(s.policy.ExtensionPeriod)
	c.Extended = true
	if err := txn.PutCheckout(c); err != nil {
		return Checkout{}, err
	}
	txn.Commit()

	s.logger.Debug("due date extended", "user_id", userID, "book_id", bookID, "due", c.DueDate)
	return c, nil
}

// OverdueBooks lists the user's active checkouts that are past due, with the
// fine accrued up to now.
func (s *Service) OverdueBooks(userID int) (OverdueReport, error) {
	txn := s.store.Read()
	defer txn.Abort()

	user, err := txn.User(userID)
	if err != nil {
		return OverdueReport{}, err
	}
	checkouts, err := txn.Checkouts(user.ID)
	if err != nil {
		return OverdueReport{}, err
	}

	now := s.clock.Now()
	report := OverdueReport{UserID: userID, Items: []OverdueItem{}}
	for _, c := range checkouts {
		if !now.After(c.DueDate) {
			continue
		}
		title := "(removed)"
		if b, err := txn.Book(c.BookID); err == nil {
			title = b.Title
		}
		days := overdueDays(c.DueDate, now)
		item := OverdueItem{
			BookID:      c.BookID,
			Title:       title,
			DueDate:     c.DueDate,
			OverdueDays: days,
			Fine:        s.policy.fine(days),
		}
		report.Items = append(report.Items, item)
		report.TotalFine += item.Fine
	}
	return report, nil
}

// Transactions returns the transaction log, oldest first.
func (s *Service) Transactions() ([]Transaction, error) {
	txn := s.store.Read()
	defer txn.Abort()
	return txn.Transactions()
}
