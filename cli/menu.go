package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-management/library"
)

const menuText = `
Library Management System
1. Display Catalog
2. Register User
3. Checkout Book
4. Return Book
5. List Overdue Books
6. Display Transactions
7. Exit
Additional Features
8. Add Book to Catalog
9. Remove Book from Catalog
10. Extend Due Date`

// Menu is the numbered command loop in front of a library.Service.
type Menu struct {
	lib         *library.Service
	sc          *bufio.Scanner
	out         io.Writer
	interactive bool
}

// NewMenu reads choices from in and writes everything to out. When
// interactive is false the menu text and prompts are not printed, which keeps
// scripted sessions readable.
func NewMenu(lib *library.Service, in io.Reader, out io.Writer, interactive bool) *Menu {
	return &Menu{lib: lib, sc: bufio.NewScanner(in), out: out, interactive: interactive}
}

// Run loops until the user exits or input ends.
func (m *Menu) Run() error {
	for {
		if m.interactive {
			fmt.Fprintln(m.out, menuText)
		}
		choice, ok := m.ask("Enter your choice: ")
		if !ok {
			return m.sc.Err()
		}

		switch strings.ToLower(choice) {
		case "1":
			m.handleDisplayCatalog()
		case "2":
			m.handleRegisterUser()
		case "3":
			m.handleCheckout()
		case "4":
			m.handleReturn()
		case "5":
			m.handleListOverdue()
		case "6":
			m.handleDisplayTransactions()
		case "7", "exit", "q", "quit":
			fmt.Fprintln(m.out, "Exiting the Library Management System. Goodbye!")
			return nil
		case "8":
			m.handleAddBook()
		case "9":
			m.handleRemoveBook()
		case "10":
			m.handleExtendDueDate()
		case "":
			continue
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter a number between 1 and 10.")
		}
	}
}

func (m *Menu) handleDisplayCatalog() {
	books, err := m.lib.Catalog()
	if err != nil {
		m.report(err)
		return
	}
	PrintCatalog(m.out, books)
}

func (m *Menu) handleRegisterUser() {
	userID, ok := m.askID("User ID: ")
	if !ok {
		return
	}
	name, ok := m.ask("Name: ")
	if !ok {
		return
	}
	if name == "" {
		fmt.Fprintln(m.out, "Name cannot be empty.")
		return
	}

	replaced, err := m.lib.RegisterUser(userID, name)
	if err != nil {
		m.report(err)
		return
	}
	if replaced {
		fmt.Fprintf(m.out, "User %d re-registered as '%s'. Previous record replaced.\n", userID, name)
		return
	}
	fmt.Fprintf(m.out, "User '%s' registered with ID %d.\n", name, userID)
}

func (m *Menu) handleCheckout() {
	userID, bookID, ok := m.askUserAndBook()
	if !ok {
		return
	}
	receipt, err := m.lib.CheckoutBook(userID, bookID)
	if err != nil {
		m.report(err)
		return
	}
	PrintCheckout(m.out, receipt)
}

func (m *Menu) handleReturn() {
	userID, bookID, ok := m.askUserAndBook()
	if !ok {
		return
	}
	receipt, err := m.lib.ReturnBook(userID, bookID)
	if err != nil {
		m.report(err)
		return
	}
	PrintReturn(m.out, receipt)
}

func (m *Menu) handleListOverdue() {
	userID, ok := m.askID("User ID: ")
	if !ok {
		return
	}
	report, err := m.lib.OverdueBooks(userID)
	if err != nil {
		m.report(err)
		return
	}
	PrintOverdue(m.out, report)
}

func (m *Menu) handleDisplayTransactions() {
	log, err := m.lib.Transactions()
	if err != nil {
		m.report(err)
		return
	}
	PrintTransactions(m.out, log)
}

func (m *Menu) handleAddBook() {
	bookID, ok := m.askID("Book ID: ")
	if !ok {
		return
	}
	title, ok := m.ask("Title: ")
	if !ok {
		return
	}
	author, ok := m.ask("Author: ")
	if !ok {
		return
	}
	qty, ok := m.askID("Quantity: ")
	if !ok {
		return
	}

	b, err := m.lib.AddBook(bookID, title, author, qty)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Book '%s' added to the catalog successfully.\n", b.Title)
}

func (m *Menu) handleRemoveBook() {
	bookID, ok := m.askID("Book ID: ")
	if !ok {
		return
	}
	if _, err := m.lib.RemoveBook(bookID); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Book removed from the catalog successfully.")
}

func (m *Menu) handleExtendDueDate() {
	userID, bookID, ok := m.askUserAndBook()
	if !ok {
		return
	}
	c, err := m.lib.ExtendDueDate(userID, bookID)
	if err != nil {
		m.report(err)
		return
	}

	title := fmt.Sprintf("ID %d", bookID)
	if b, err := m.lib.Book(bookID); err == nil {
		title = b.Title
	}
	fmt.Fprintf(m.out, "Due date for Book '%s' extended by %d days. New due date: %s\n",
		title, int(m.lib.Policy().ExtensionPeriod.Hours()/24), formatDate(c.DueDate))
}

// ------------------ Input helpers ------------------

func (m *Menu) ask(prompt string) (string, bool) {
	if m.interactive {
		fmt.Fprint(m.out, prompt)
	}
	if !m.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.sc.Text()), true
}

// askID reads a non-negative integer. Bad input is reported and yields false.
func (m *Menu) askID(prompt string) (int, bool) {
	raw, ok := m.ask(prompt)
	if !ok {
		return 0, false
	}
	field := strings.TrimSuffix(strings.TrimSpace(prompt), ":")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		fmt.Fprintf(m.out, "Invalid %s: %q\n", strings.ToLower(field), raw)
		return 0, false
	}
	return n, true
}

func (m *Menu) askUserAndBook() (userID, bookID int, ok bool) {
	if userID, ok = m.askID("User ID: "); !ok {
		return 0, 0, false
	}
	if bookID, ok = m.askID("Book ID: "); !ok {
		return 0, 0, false
	}
	return userID, bookID, true
}

// report prints a rejection as-is and anything else as an error.
func (m *Menu) report(err error) {
	var rejected library.Error
	if errors.As(err, &rejected) {
		fmt.Fprintln(m.out, rejected.Message)
		return
	}
	fmt.Fprintf(m.out, "Error: %v\n", err)
}
