package library

import (
	"errors"
	"time"
)

const day = 24 * time.Hour

// Policy holds the circulation rules applied by the Service.
type Policy struct {
	LoanPeriod      time.Duration
	ExtensionPeriod time.Duration
	MaxCheckouts    int
	FinePerDay      int
}

// DefaultPolicy is a 14 day loan, one 7 day extension, 3 books per user and
// a fine of 1 per overdue day.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriod:      14 * day,
		ExtensionPeriod: 7 * day,
		MaxCheckouts:    3,
		FinePerDay:      1,
	}
}

// Validate rejects policies the service cannot operate with.
func (p Policy) Validate() error {
	if p.LoanPeriod <= 0 {
		return errors.New("loan period must be positive")
	}
	if p.ExtensionPeriod < 0 {
		return errors.New("extension period cannot be negative")
	}
	if p.MaxCheckouts < 1 {
		return errors.New("max checkouts must be at least 1")
	}
	if p.FinePerDay < 0 {
		return errors.New("fine per day cannot be negative")
	}
	return nil
}

// DefaultCatalog is the catalog a fresh library starts with.
func DefaultCatalog() []Book {
	return []Book{
		{ID: 1, Title: "Book1", Author: "Author1", Quantity: 5},
		{ID: 2, Title: "Book2", Author: "Author2", Quantity: 3},
	}
}
