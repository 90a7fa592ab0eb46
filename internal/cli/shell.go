package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkhart/bookshelf/internal/catalog"
	"github.com/mkhart/bookshelf/internal/config"
	"github.com/mkhart/bookshelf/internal/entities"
	"github.com/mkhart/bookshelf/internal/identity"
	"github.com/mkhart/bookshelf/internal/kv"
	"github.com/mkhart/bookshelf/internal/transform"
)

// ShellCommand runs the interactive catalog shell. It holds no state of its
// own: every action is collected from input and handed to the stores, and
// each failure kind is mapped to a message.
type ShellCommand struct {
	DatabasePath string

	in       *bufio.Scanner
	out      io.Writer
	identity *identity.Service
	catalog  *catalog.Service
	user     *entities.User
}

// NewShellCommand creates a new ShellCommand.
func NewShellCommand() *ShellCommand {
	return &ShellCommand{}
}

// ParseFlags parses command line flags.
func (cmd *ShellCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s shell [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Open the personal library catalog in an interactive shell.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the shell until EOF or "quit".
func (cmd *ShellCommand) Run() error {
	cfg := config.NewConfig()
	dbPath := cmd.DatabasePath
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	store, err := kv.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer store.Close()

	cmd.in = bufio.NewScanner(os.Stdin)
	cmd.out = os.Stdout
	cmd.identity = identity.NewService(store, cfg.Auth)
	cmd.catalog = catalog.NewService(store)

	// Resume a persisted session, if any.
	if user, err := cmd.identity.CurrentSession(); err == nil && user != nil {
		cmd.user = user
		fmt.Fprintf(cmd.out, "Welcome back, %s!\n", user.Name)
	}

	fmt.Fprintln(cmd.out, `Type "help" for the list of commands.`)
	for {
		fmt.Fprint(cmd.out, "> ")
		line, ok := cmd.readLine()
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		command, arg := splitCommand(line)
		switch command {
		case "quit", "exit":
			return nil
		case "help":
			cmd.printHelp()
		case "register":
			cmd.register()
		case "login":
			cmd.login()
		case "logout":
			cmd.logout()
		case "whoami":
			cmd.whoami()
		case "list":
			cmd.list()
		case "search":
			cmd.search(arg)
		case "add":
			cmd.save("")
		case "edit":
			cmd.edit(arg)
		case "remove":
			cmd.remove(arg)
		default:
			fmt.Fprintf(cmd.out, "Unknown command %q. Type \"help\" for the list of commands.\n", command)
		}
	}
}

func (cmd *ShellCommand) printHelp() {
	fmt.Fprint(cmd.out, `Commands:
  register          Create a new account
  login             Log in and start a session
  logout            End the current session
  whoami            Show the active user
  list              Show your books
  search <query>    Filter your books by substring
  add               Add a book
  edit <book-id>    Edit a book
  remove <book-id>  Delete a book
  quit              Leave the shell
`)
}

func (cmd *ShellCommand) register() {
	name := cmd.prompt("Name")
	email := cmd.prompt("Email")
	password := cmd.prompt("Password")
	confirm := cmd.prompt("Confirm password")

	if _, err := cmd.identity.Register(name, email, password, confirm); err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	fmt.Fprintln(cmd.out, "Account created successfully! You can now login.")
}

func (cmd *ShellCommand) login() {
	email := cmd.prompt("Email")
	password := cmd.prompt("Password")

	user, err := cmd.identity.Login(email, password)
	if err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	cmd.user = user
	fmt.Fprintf(cmd.out, "Welcome, %s!\n", user.Name)
}

func (cmd *ShellCommand) logout() {
	if err := cmd.identity.Logout(); err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	cmd.user = nil
	fmt.Fprintln(cmd.out, "Logged out.")
}

func (cmd *ShellCommand) whoami() {
	if cmd.user == nil {
		fmt.Fprintln(cmd.out, "Not logged in.")
		return
	}
	fmt.Fprintf(cmd.out, "%s <%s>\n", cmd.user.Name, cmd.user.Email)
}

func (cmd *ShellCommand) list() {
	if !cmd.requireLogin() {
		return
	}
	books, err := cmd.catalog.List(cmd.user.ID)
	if err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	cmd.renderBooks(books)
}

func (cmd *ShellCommand) search(query string) {
	if !cmd.requireLogin() {
		return
	}
	books, err := cmd.catalog.Search(cmd.user.ID, query)
	if err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	cmd.renderBooks(books)
}

// save collects a book form and upserts it; an empty editingID means create.
func (cmd *ShellCommand) save(editingID string) {
	if !cmd.requireLogin() {
		return
	}

	draft := catalog.Draft{
		Title:       cmd.prompt("Title"),
		Author:      cmd.prompt("Author"),
		ISBN:        cmd.prompt("ISBN"),
		Genre:       cmd.prompt("Genre (optional)"),
		Description: cmd.prompt("Description (optional)"),
	}
	if year := cmd.prompt("Year (optional)"); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			fmt.Fprintln(cmd.out, "Year must be a number.")
			return
		}
		draft.Year = n
	}
	if coverPath := cmd.prompt("Cover image file (optional)"); coverPath != "" {
		cover, err := transform.FileDataURL(coverPath)
		if err != nil {
			fmt.Fprintln(cmd.out, errorMessage(err))
			return
		}
		draft.Cover = cover
	}
	draft.Extracts = cmd.collectExtracts()

	if _, err := cmd.catalog.Upsert(cmd.user.ID, draft, editingID); err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	if editingID == "" {
		fmt.Fprintln(cmd.out, "Book added successfully!")
	} else {
		fmt.Fprintln(cmd.out, "Book updated successfully!")
	}
}

func (cmd *ShellCommand) edit(bookID string) {
	if bookID == "" {
		fmt.Fprintln(cmd.out, "Usage: edit <book-id>")
		return
	}
	cmd.save(bookID)
}

func (cmd *ShellCommand) remove(bookID string) {
	if !cmd.requireLogin() {
		return
	}
	if bookID == "" {
		fmt.Fprintln(cmd.out, "Usage: remove <book-id>")
		return
	}
	if err := cmd.catalog.Remove(cmd.user.ID, bookID); err != nil {
		fmt.Fprintln(cmd.out, errorMessage(err))
		return
	}
	fmt.Fprintln(cmd.out, "Book deleted successfully!")
}

// collectExtracts prompts for text extracts until the type is left empty.
// Extract text may be typed inline or imported from a file with "@path".
func (cmd *ShellCommand) collectExtracts() []entities.TextExtract {
	var extracts []entities.TextExtract
	for {
		kind := cmd.prompt("Extract type (quote/summary/note/chapter, empty to finish)")
		if kind == "" {
			return extracts
		}

		extract := entities.TextExtract{Type: entities.ExtractType(kind)}
		if page := cmd.prompt("  Page (optional)"); page != "" {
			if n, err := strconv.Atoi(page); err == nil && n > 0 {
				extract.Page = n
			}
		}
		if paragraph := cmd.prompt("  Paragraph (optional)"); paragraph != "" {
			if n, err := strconv.Atoi(paragraph); err == nil && n > 0 {
				extract.Paragraph = n
			}
		}

		text := cmd.prompt("  Text (or @file to import)")
		if strings.HasPrefix(text, "@") {
			imported, err := transform.FileText(strings.TrimPrefix(text, "@"))
			if err != nil {
				fmt.Fprintln(cmd.out, errorMessage(err))
				continue
			}
			text = imported
		}
		extract.Text = text
		extracts = append(extracts, extract)
	}
}

func (cmd *ShellCommand) renderBooks(books []entities.Book) {
	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "No books found.")
		return
	}
	for _, b := range books {
		fmt.Fprintf(cmd.out, "%s  %q by %s (isbn %s)", b.ID, b.Title, b.Author, b.ISBN)
		if b.Year != 0 {
			fmt.Fprintf(cmd.out, ", %d", b.Year)
		}
		if b.Genre != "" {
			fmt.Fprintf(cmd.out, " [%s]", b.Genre)
		}
		if len(b.TextExtracts) > 0 {
			fmt.Fprintf(cmd.out, " — %d extracts", len(b.TextExtracts))
		}
		fmt.Fprintln(cmd.out)
	}
}

// requireLogin is the redirect guard: catalog operations must not run
// without a session.
func (cmd *ShellCommand) requireLogin() bool {
	if cmd.user == nil {
		fmt.Fprintln(cmd.out, "Please login first.")
		return false
	}
	return true
}

func (cmd *ShellCommand) prompt(label string) string {
	fmt.Fprintf(cmd.out, "%s: ", label)
	line, _ := cmd.readLine()
	return strings.TrimSpace(line)
}

func (cmd *ShellCommand) readLine() (string, bool) {
	if !cmd.in.Scan() {
		return "", false
	}
	return cmd.in.Text(), true
}

func splitCommand(line string) (command, arg string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	command = parts[0]
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return command, arg
}

// errorMessage maps store failures to user-visible messages; unrecognized
// errors pass through as-is.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, identity.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, identity.ErrWeakPassword):
		return "Password must be at least 6 characters long"
	case errors.Is(err, identity.ErrDuplicateEmail):
		return "Email already exists"
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, catalog.ErrDuplicateISBN):
		return "A book with this ISBN already exists!"
	case errors.Is(err, catalog.ErrNotFound):
		return "No such book"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
