package library

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"
)

const (
	tableBook        = "book"
	tableUser        = "user"
	tableCheckout    = "checkout"
	tableTransaction = "transaction"
)

// Store keeps the library tables in process memory. Every read or write goes
// through a Txn; an aborted write transaction leaves no trace.
type Store struct {
	db *memdb.MemDB
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableBook: {
				Name: tableBook,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
			tableUser: {
				Name: tableUser,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
			tableCheckout: {
				Name: tableCheckout,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:   "id",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.IntFieldIndex{Field: "UserID"},
								&memdb.IntFieldIndex{Field: "BookID"},
							},
						},
					},
					"user_id": {
						Name:    "user_id",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "UserID"},
					},
					"book_id": {
						Name:    "book_id",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "BookID"},
					},
				},
			},
			tableTransaction: {
				Name: tableTransaction,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"user_id": {
						Name:    "user_id",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "UserID"},
					},
				},
			},
		},
	}
}

// NewStore creates empty tables.
func NewStore() (*Store, error) {
	s := schema()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate schema: %w", err)
	}
	db, err := memdb.NewMemDB(s)
	if err != nil {
		return nil, fmt.Errorf("create in-memory database: %w", err)
	}
	return &Store{db: db}, nil
}

// Read opens a read-only view of the tables.
func (s *Store) Read() *Txn { return &Txn{txn: s.db.Txn(false)} }

// Write opens a write transaction. Callers must Commit or Abort it; Abort
// after Commit is a no-op, so `defer txn.Abort()` is always safe.
func (s *Store) Write() *Txn { return &Txn{txn: s.db.Txn(true)} }

// Txn wraps a memdb transaction with typed table helpers.
type Txn struct {
	txn *memdb.Txn
}

func (t *Txn) Commit() { t.txn.Commit() }
func (t *Txn) Abort()  { t.txn.Abort() }

// userRecord is the stored form of a User; checkouts live in their own table.
type userRecord struct {
	ID   int
	Name string
}

// ------------------ Books ------------------

func (t *Txn) Book(id int) (Book, error) {
	raw, err := t.txn.First(tableBook, "id", id)
	if err != nil {
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	if raw == nil {
		return Book{}, ErrBookNotFound
	}
	return raw.(Book), nil
}

// Books returns the catalog ordered by ID.
func (t *Txn) Books() ([]Book, error) {
	it, err := t.txn.Get(tableBook, "id")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	books := []Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		books = append(books, obj.(Book))
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (t *Txn) PutBook(b Book) error {
	if err := t.txn.Insert(tableBook, b); err != nil {
		return fmt.Errorf("store book %d: %w", b.ID, err)
	}
	return nil
}

func (t *Txn) DeleteBook(id int) error {
	n, err := t.txn.DeleteAll(tableBook, "id", id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// ------------------ Users ------------------

// User returns the user with their active checkouts.
func (t *Txn) User(id int) (User, error) {
	raw, err := t.txn.First(tableUser, "id", id)
	if err != nil {
		return User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	if raw == nil {
		return User{}, ErrUserNotRegistered
	}
	rec := raw.(userRecord)

	checkouts, err := t.Checkouts(id)
	if err != nil {
		return User{}, err
	}
	u := User{ID: rec.ID, Name: rec.Name, CheckedOut: make(map[int]Checkout, len(checkouts))}
	for _, c := range checkouts {
		u.CheckedOut[c.BookID] = c
	}
	return u, nil
}

func (t *Txn) HasUser(id int) (bool, error) {
	raw, err := t.txn.First(tableUser, "id", id)
	if err != nil {
		return false, fmt.Errorf("get user %d: %w", id, err)
	}
	return raw != nil, nil
}

// PutUser stores the user's ID and name. CheckedOut is ignored.
func (t *Txn) PutUser(u User) error {
	if err := t.txn.Insert(tableUser, userRecord{ID: u.ID, Name: u.Name}); err != nil {
		return fmt.Errorf("store user %d: %w", u.ID, err)
	}
	return nil
}

// ------------------ Checkouts ------------------

func (t *Txn) Checkout(userID, bookID int) (Checkout, error) {
	raw, err := t.txn.First(tableCheckout, "id", userID, bookID)
	if err != nil {
		return Checkout{}, fmt.Errorf("get checkout %d/%d: %w", userID, bookID, err)
	}
	if raw == nil {
		return Checkout{}, ErrBookNotCheckedOut
	}
	return raw.(Checkout), nil
}

// Checkouts returns a user's active checkouts ordered by due date, then book ID.
func (t *Txn) Checkouts(userID int) ([]Checkout, error) {
	it, err := t.txn.Get(tableCheckout, "user_id", userID)
	if err != nil {
		return nil, fmt.Errorf("list checkouts of user %d: %w", userID, err)
	}
	checkouts := []Checkout{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		checkouts = append(checkouts, obj.(Checkout))
	}
	sort.Slice(checkouts, func(i, j int) bool {
		if checkouts[i].DueDate.Equal(checkouts[j].DueDate) {
			return checkouts[i].BookID < checkouts[j].BookID
		}
		return checkouts[i].DueDate.Before(checkouts[j].DueDate)
	})
	return checkouts, nil
}

func (t *Txn) PutCheckout(c Checkout) error {
	if err := t.txn.Insert(tableCheckout, c); err != nil {
		return fmt.Errorf("store checkout %d/%d: %w", c.UserID, c.BookID, err)
	}
	return nil
}

func (t *Txn) DeleteCheckout(userID, bookID int) error {
	n, err := t.txn.DeleteAll(tableCheckout, "id", userID, bookID)
	if err != nil {
		return fmt.Errorf("delete checkout %d/%d: %w", userID, bookID, err)
	}
	if n == 0 {
		return ErrBookNotCheckedOut
	}
	return nil
}

// DeleteCheckouts drops every active checkout of a user and reports how many went.
func (t *Txn) DeleteCheckouts(userID int) (int, error) {
	n, err := t.txn.DeleteAll(tableCheckout, "user_id", userID)
	if err != nil {
		return 0, fmt.Errorf("delete checkouts of user %d: %w", userID, err)
	}
	return n, nil
}

// ------------------ Transactions ------------------

func (t *Txn) AppendTransaction(tr Transaction) error {
	raw, err := t.txn.First(tableTransaction, "id", tr.ID)
	if err != nil {
		return fmt.Errorf("append transaction %d: %w", tr.ID, err)
	}
	if raw != nil {
		return fmt.Errorf("append transaction %d: id already used", tr.ID)
	}
	if err := t.txn.Insert(tableTransaction, tr); err != nil {
		return fmt.Errorf("append transaction %d: %w", tr.ID, err)
	}
	return nil
}

// Transactions returns the log ordered by ID.
func (t *Txn) Transactions() ([]Transaction, error) {
	it, err := t.txn.Get(tableTransaction, "id")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	log := []Transaction{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		log = append(log, obj.(Transaction))
	}
	sort.Slice(log, func(i, j int) bool { return log[i].ID < log[j].ID })
	return log, nil
}
