package main

import (
	"fmt"
	"os"

	"library-management/cli"
	"library-management/library"
)

// step is one scripted call against the library; it prints its own outcome.
type step struct {
	name string
	run  func(lib *library.Service) error
}

func main() {
	lib, err := library.NewService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating library: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	steps := []step{
		{"register user 1", func(lib *library.Service) error {
			_, err := lib.RegisterUser(1, "John Doe")
			return err
		}},
		{"display catalog", func(lib *library.Service) error {
			books, err := lib.Catalog()
			if err == nil {
				cli.PrintCatalog(out, books)
			}
			return err
		}},
		{"checkout book 1", func(lib *library.Service) error {
			r, err := lib.CheckoutBook(1, 1)
			if err == nil {
				cli.PrintCheckout(out, r)
			}
			return err
		}},
		{"return book 1", func(lib *library.Service) error {
			r, err := lib.ReturnBook(1, 1)
			if err == nil {
				cli.PrintReturn(out, r)
			}
			return err
		}},
		{"list overdue books", func(lib *library.Service) error {
			report, err := lib.OverdueBooks(1)
			if err == nil {
				cli.PrintOverdue(out, report)
			}
			return err
		}},
		{"add book 3", func(lib *library.Service) error {
			_, err := lib.AddBook(3, "Book3", "Author3", 2)
			return err
		}},
		{"remove book 2", func(lib *library.Service) error {
			_, err := lib.RemoveBook(2)
			return err
		}},
		// book 1 was returned above, so this is expected to be rejected
		{"extend due date of book 1", func(lib *library.Service) error {
			_, err := lib.ExtendDueDate(1, 1)
			return err
		}},
		{"display transactions", func(lib *library.Service) error {
			log, err := lib.Transactions()
			if err == nil {
				cli.PrintTransactions(out, log)
			}
			return err
		}},
	}

	successCount := 0
	errorCount := 0
	for _, s := range steps {
		fmt.Fprintf(out, "\n== %s\n", s.name)
		if err := s.run(lib); err != nil {
			fmt.Fprintf(out, "REJECTED - %v\n", err)
			errorCount++
			continue
		}
		fmt.Fprintln(out, "OK")
		successCount++
	}

	fmt.Fprintf(out, "\nDemo complete!\n")
	fmt.Fprintf(out, "Succeeded: %d\n", successCount)
	fmt.Fprintf(out, "Rejected: %d\n", errorCount)

	books, err := lib.Catalog()
	if err != nil {
		fmt.Printf("Error retrieving books: %v\n", err)
		return
	}
	cli.PrintCatalog(out, books)
}
