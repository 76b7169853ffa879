package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-management/library"
)

// runSession feeds one input line per entry to a fresh library and returns the output.
func runSession(t *testing.T, interactive bool, lines ...string) string {
	t.Helper()
	lib, err := library.NewService()
	require.NoError(t, err)

	var out bytes.Buffer
	menu := NewMenu(lib, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, interactive)
	require.NoError(t, menu.Run())
	return out.String()
}

func Test_Menu_ExampleSession(t *testing.T) {
	out := runSession(t, false,
		"2", "1", "John Doe",
		"1",
		"3", "1", "1",
		"4", "1", "1",
		"5", "1",
		"7",
	)

	assert.Contains(t, out, "User 'John Doe' registered with ID 1.")
	assert.Contains(t, out, "Book1")
	assert.Contains(t, out, "Book 'Book1' checked out successfully. Due date:")
	assert.Contains(t, out, "Book 'Book1' returned successfully.")
	assert.NotContains(t, out, "Overdue fine")
	assert.Contains(t, out, "No overdue books for this user.")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func Test_Menu_ReportsRejections(t *testing.T) {
	out := runSession(t, false,
		"3", "1", "1", // nobody registered yet
		"2", "1", "Alice",
		"3", "1", "42",
		"4", "1", "2",
		"8", "1", "Dup", "Someone", "3",
		"9", "77",
		"10", "1", "1",
		"exit",
	)

	assert.Contains(t, out, library.ErrUserNotRegistered.Message)
	assert.Contains(t, out, library.ErrBookNotFound.Message)
	assert.Contains(t, out, library.ErrBookNotCheckedOut.Message)
	assert.Contains(t, out, library.ErrBookIDExists.Message)
	assert.Equal(t, 2, strings.Count(out, library.ErrBookNotCheckedOut.Message))
}

func Test_Menu_CatalogMaintenance(t *testing.T) {
	out := runSession(t, false,
		"8", "3", "Book3", "Author3", "2",
		"9", "2",
		"1",
		"7",
	)

	assert.Contains(t, out, "Book 'Book3' added to the catalog successfully.")
	assert.Contains(t, out, "Book removed from the catalog successfully.")

	catalog := out[strings.Index(out, "Library Catalog:"):]
	assert.Contains(t, catalog, "Book3")
	assert.NotContains(t, catalog, "Book2")
}

func Test_Menu_ExtendDueDateOnce(t *testing.T) {
	out := runSession(t, false,
		"2", "1", "Alice",
		"3", "1", "2",
		"10", "1", "2",
		"10", "1", "2",
		"7",
	)

	assert.Contains(t, out, "Due date for Book 'Book2' extended by 7 days.")
	assert.Contains(t, out, library.ErrExtensionUsed.Message)
}

func Test_Menu_DisplayTransactions(t *testing.T) {
	out := runSession(t, false,
		"6",
		"2", "1", "Alice",
		"3", "1", "1",
		"4", "1", "1",
		"6",
		"7",
	)

	assert.Contains(t, out, "No transactions yet.")
	log := out[strings.LastIndex(out, "Transactions:"):]
	assert.Contains(t, log, "checkout")
	assert.Contains(t, log, "return")
	assert.Contains(t, log, "overdue days: 0, fine: $0")
}

func Test_Menu_BadInput(t *testing.T) {
	out := runSession(t, false,
		"11",
		"3", "abc",
		"2", "-4",
		"2", "5", "",
		"7",
	)

	assert.Contains(t, out, "Invalid choice. Please enter a number between 1 and 10.")
	assert.Contains(t, out, `Invalid user id: "abc"`)
	assert.Contains(t, out, `Invalid user id: "-4"`)
	assert.Contains(t, out, "Name cannot be empty.")
}

func Test_Menu_EndOfInputExitsCleanly(t *testing.T) {
	lib, err := library.NewService()
	require.NoError(t, err)

	var out bytes.Buffer
	menu := NewMenu(lib, strings.NewReader("1\n"), &out, false)
	require.NoError(t, menu.Run())
	assert.Contains(t, out.String(), "Library Catalog:")
}

func Test_Menu_InteractivePrintsMenuAndPrompts(t *testing.T) {
	out := runSession(t, true, "2", "1", "Alice", "7")

	assert.Contains(t, out, "1. Display Catalog")
	assert.Contains(t, out, "10. Extend Due Date")
	assert.Contains(t, out, "Enter your choice: ")
	assert.Contains(t, out, "Name: ")
}
