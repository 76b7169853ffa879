package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"library-management/library"
)

const dateLayout = "2006-01-02 15:04"

// PrintCatalog writes the catalog as a table.
func PrintCatalog(w io.Writer, books []library.Book) {
	fmt.Fprintln(w, "\nLibrary Catalog:")
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in library.")
		return
	}
	fmt.Fprintf(w, "%-5s %-30s %-25s %s\n", "ID", "Title", "Author", "Available")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, b := range books {
		fmt.Fprintf(w, "%-5d %-30s %-25s %d\n", b.ID, truncateString(b.Title, 30), truncateString(b.Author, 25), b.Quantity)
	}
}

// PrintTransactions writes the transaction log, one line per entry.
func PrintTransactions(w io.Writer, log []library.Transaction) {
	fmt.Fprintln(w, "\nTransactions:")
	if len(log) == 0 {
		fmt.Fprintln(w, "No transactions yet.")
		return
	}
	fmt.Fprintf(w, "%-5s %-9s %-6s %-6s %-17s %s\n", "ID", "Type", "User", "Book", "Date", "Details")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, tr := range log {
		switch tr.Kind {
		case library.TransactionCheckout:
			fmt.Fprintf(w, "%-5d %-9s %-6d %-6d %-17s\n", tr.ID, tr.Kind, tr.UserID, tr.BookID, formatDate(tr.CheckoutDate))
		case library.TransactionReturn:
			fmt.Fprintf(w, "%-5d %-9s %-6d %-6d %-17s overdue days: %d, fine: $%d\n",
				tr.ID, tr.Kind, tr.UserID, tr.BookID, formatDate(tr.ReturnDate), tr.OverdueDays, tr.Fine)
		}
	}
}

// PrintOverdue writes a user's overdue books and the total fine due.
func PrintOverdue(w io.Writer, report library.OverdueReport) {
	if len(report.Items) == 0 {
		fmt.Fprintln(w, "No overdue books for this user.")
		return
	}
	fmt.Fprintln(w, "\nOverdue Books:")
	for _, item := range report.Items {
		fmt.Fprintf(w, "Book ID: %d, Title: %s, Overdue Days: %d, Fine: $%d\n", item.BookID, item.Title, item.OverdueDays, item.Fine)
	}
	fmt.Fprintf(w, "Total Fine Due: $%d\n", report.TotalFine)
}

// PrintCheckout confirms a checkout.
func PrintCheckout(w io.Writer, r library.CheckoutReceipt) {
	fmt.Fprintf(w, "Book '%s' checked out successfully. Due date: %s\n", r.Book.Title, formatDate(r.Checkout.DueDate))
}

// PrintReturn confirms a return and reports the fine when there is one.
func PrintReturn(w io.Writer, r library.ReturnReceipt) {
	fmt.Fprintf(w, "Book '%s' returned successfully.\n", r.Book.Title)
	if r.OverdueDays > 0 {
		fmt.Fprintf(w, "Overdue fine: $%d (%d days late)\n", r.Fine, r.OverdueDays)
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// truncateString shortens s to at most maxLen characters, cutting on rune
// boundaries so multi-byte titles stay valid UTF-8.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
