package library

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestStoreBooks(t *testing.T) {
	s := newTestStore(t)

	t.Run("lists books ordered by ID", func(t *testing.T) {
		is := is.New(t)

		txn := s.Write()
		for _, id := range []int{12, 3, 7, 300} {
			is.NoErr(txn.PutBook(Book{ID: id, Title: "T", Author: "A", Quantity: id}))
		}
		txn.Commit()

		books, err := s.Read().Books()
		is.NoErr(err)
		is.Equal(len(books), 4)
		is.Equal([]int{books[0].ID, books[1].ID, books[2].ID, books[3].ID}, []int{3, 7, 12, 300})
	})

	t.Run("aborted writes are discarded", func(t *testing.T) {
		is := is.New(t)

		txn := s.Write()
		is.NoErr(txn.PutBook(Book{ID: 50, Title: "Ghost"}))
		is.NoErr(txn.DeleteBook(3))
		txn.Abort()

		_, err := s.Read().Book(50)
		is.True(errors.Is(err, ErrBookNotFound))
		b, err := s.Read().Book(3)
		is.NoErr(err)
		is.Equal(b.Quantity, 3)
	})

	t.Run("deleting an unknown book", func(t *testing.T) {
		is := is.New(t)

		txn := s.Write()
		defer txn.Abort()
		is.True(errors.Is(txn.DeleteBook(999), ErrBookNotFound))
	})
}

func TestStoreUsersAndCheckouts(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)
	due := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	txn := s.Write()
	is.NoErr(txn.PutUser(User{ID: 1, Name: "Alice"}))
	is.NoErr(txn.PutUser(User{ID: 2, Name: "Bob"}))
	is.NoErr(txn.PutCheckout(Checkout{UserID: 1, BookID: 4, DueDate: due.Add(day)}))
	is.NoErr(txn.PutCheckout(Checkout{UserID: 1, BookID: 9, DueDate: due}))
	is.NoErr(txn.PutCheckout(Checkout{UserID: 2, BookID: 4, DueDate: due}))
	txn.Commit()

	u, err := s.Read().User(1)
	is.NoErr(err)
	is.Equal(u.Name, "Alice")
	is.Equal(len(u.CheckedOut), 2)
	is.Equal(u.CheckedOut[4].DueDate, due.Add(day))

	checkouts, err := s.Read().Checkouts(1)
	is.NoErr(err)
	is.Equal(checkouts[0].BookID, 9) // earliest due first

	c, err := s.Read().Checkout(2, 4)
	is.NoErr(err)
	is.Equal(c.DueDate, due)

	_, err = s.Read().Checkout(2, 9)
	is.True(errors.Is(err, ErrBookNotCheckedOut))

	_, err = s.Read().User(3)
	is.True(errors.Is(err, ErrUserNotRegistered))

	txn = s.Write()
	n, err := txn.DeleteCheckouts(1)
	is.NoErr(err)
	is.Equal(n, 2)
	txn.Commit()

	u, err = s.Read().User(1)
	is.NoErr(err)
	is.Equal(len(u.CheckedOut), 0)

	// Bob's checkout of the same book is untouched
	_, err = s.Read().Checkout(2, 4)
	is.NoErr(err)
}

func TestStoreTransactions(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)

	txn := s.Write()
	for _, id := range []int{2, 1, 3} {
		is.NoErr(txn.AppendTransaction(Transaction{ID: id, Kind: TransactionCheckout, UserID: 1, BookID: id}))
	}
	is.True(txn.AppendTransaction(Transaction{ID: 2}) != nil) // ids are never reused
	txn.Commit()

	log, err := s.Read().Transactions()
	is.NoErr(err)
	is.Equal(len(log), 3)
	is.Equal(log[0].ID, 1)
	is.Equal(log[2].ID, 3)
	is.Equal(log[1].BookID, 2)
}
