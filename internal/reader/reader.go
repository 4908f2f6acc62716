package reader

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gamebook/internal/catalog"
	"gamebook/internal/cli/scheme/colours"
	"gamebook/internal/config"
	"gamebook/internal/domain/book"
	"gamebook/internal/saves"
	"gamebook/internal/session"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Reader is the CLI front over the engine: it wires the catalog, the
// session and the save store into cobra handlers. It only calls the core
// API and renders plain data back to the terminal.
type Reader struct {
	catalog *catalog.Catalog
	session *session.Session
	saves   *saves.Store
	in      *bufio.Reader
}

func New() *Reader {
	store, err := saves.NewStore(config.SavesDir())
	if err != nil {
		logrus.WithError(err).Fatal("failed to create save store")
	}

	return &Reader{
		catalog: catalog.New(config.BooksDir()),
		session: session.New(),
		saves:   store,
		in:      bufio.NewReader(os.Stdin),
	}
}

func (r *Reader) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("📖 Welcome to Gamebook! 📖")
	fmt.Println()
	colours.Info.Println("Available commands:")
	fmt.Println("  • gamebook list    - Browse available books")
	fmt.Println("  • gamebook play    - Pick a book and start reading")
	fmt.Println("  • gamebook random  - Jump into a random book")
	fmt.Println("  • gamebook saves   - Manage saved games")
	fmt.Println("  • gamebook reload  - Rescan the books directory")
	fmt.Println()
	colours.Prompt.Println("✨ Every choice writes a different story ✨")
}

// ListBooks prints the catalog. A hard failure here means the books
// directory itself is unusable; individual bad files were already skipped.
func (r *Reader) ListBooks(cmd *cobra.Command, args []string) {
	books, err := r.catalog.LoadBooks(false)
	if err != nil {
		colours.Error.Printf("❌ Cannot read the books directory: %v\n", err)
		return
	}

	fmt.Println()
	colours.Title.Println("📚 Available Books 📚")
	fmt.Println()

	for i, b := range books {
		fmt.Printf("  %d. ", i+1)
		colours.Title.Printf("%s", b.Title)
		fmt.Printf("\n     💡 %s\n", b.Description)
		colours.Info.Printf("     ID: %s | %d paragraphs\n", b.ID, len(b.Paragraphs))
		fmt.Println()
	}

	if len(books) == 0 {
		colours.Warning.Printf("🔍 No books found in %s\n", config.BooksDir())
	} else {
		colours.Success.Printf("✨ Found %d books ✨\n", len(books))
	}
}

// ReloadBooks drops the catalog cache and rescans the books directory.
func (r *Reader) ReloadBooks(cmd *cobra.Command, args []string) {
	books, err := r.catalog.LoadBooks(true)
	if err != nil {
		colours.Error.Printf("❌ Cannot read the books directory: %v\n", err)
		return
	}
	colours.Success.Printf("🔄 Rescanned %s: %d books\n", config.BooksDir(), len(books))
}

// PlayBook starts the interactive loop for the book named by the argument,
// or asks the player to pick one.
func (r *Reader) PlayBook(cmd *cobra.Command, args []string) {
	var selected *book.Book
	if len(args) > 0 {
		b, ok, err := r.catalog.FindBook(args[0])
		if err != nil {
			colours.Error.Printf("❌ Cannot read the books directory: %v\n", err)
			return
		}
		if !ok {
			colours.Error.Printf("❌ No book with ID '%s'\n", args[0])
			return
		}
		selected = b
	} else {
		selected = r.pickBook()
		if selected == nil {
			return
		}
	}

	r.session.SelectBook(selected)
	r.bookMenu()
}

// PlayRandomBook picks a random book from the catalog and plays it.
func (r *Reader) PlayRandomBook(cmd *cobra.Command, args []string) {
	books, err := r.catalog.LoadBooks(false)
	if err != nil {
		colours.Error.Printf("❌ Cannot read the books directory: %v\n", err)
		return
	}
	if len(books) == 0 {
		colours.Error.Println("❌ No books available!")
		return
	}

	b := books[rand.Intn(len(books))]
	fmt.Println()
	colours.Prompt.Printf("🎲 Fate picked: %s 🎲\n", b.Title)

	r.session.SelectBook(&b)
	r.bookMenu()
}

// ShowSaves lists saved games, most recent first.
func (r *Reader) ShowSaves(cmd *cobra.Command, args []string) {
	records, err := r.saves.ListSaves()
	if err != nil {
		colours.Error.Printf("❌ Cannot read the saves directory: %v\n", err)
		return
	}

	if len(records) == 0 {
		colours.Warning.Println("🔍 No saved games yet.")
		return
	}

	fmt.Println()
	colours.Title.Println("💾 Saved Games 💾")
	fmt.Println()
	for i, rec := range records {
		fmt.Printf("  %d. ", i+1)
		colours.Title.Printf("%s", rec.Title)
		fmt.Printf(" — book '%s', paragraph %d\n", rec.BookID, rec.Paragraph)
		colours.Info.Printf("     %s (%s)\n", rec.Timestamp, rec.Filename)
	}
}

// DeleteSave removes the save at the given listing position.
func (r *Reader) DeleteSave(cmd *cobra.Command, args []string) {
	records, err := r.saves.ListSaves()
	if err != nil {
		colours.Error.Printf("❌ Cannot read the saves directory: %v\n", err)
		return
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 || idx > len(records) {
		colours.Error.Printf("❌ Invalid save number '%s'\n", args[0])
		return
	}

	rec := records[idx-1]
	if err := r.saves.DeleteSave(rec); err != nil {
		if errors.Is(err, saves.ErrSaveNotFound) {
			colours.Warning.Println("⚠️ That save is already gone. Refresh the list.")
			return
		}
		colours.Error.Printf("❌ Failed to delete save: %v\n", err)
		return
	}
	colours.Success.Printf("🗑 Deleted save '%s'\n", rec.Title)
}

func (r *Reader) pickBook() *book.Book {
	books, err := r.catalog.LoadBooks(false)
	if err != nil {
		colours.Error.Printf("❌ Cannot read the books directory: %v\n", err)
		return nil
	}
	if len(books) == 0 {
		colours.Error.Println("❌ No books available!")
		return nil
	}

	fmt.Println()
	colours.Title.Println("📚 Choose Your Book 📚")
	fmt.Println()
	for i, b := range books {
		fmt.Printf("%d. ", i+1)
		colours.Title.Printf("%s", b.Title)
		fmt.Printf(" — %s\n", b.Description)
	}

	fmt.Println()
	colours.Prompt.Print("🌟 Enter the number of your book (or 'q' to quit): ")
	input := r.readLine()
	if input == "q" || input == "quit" {
		return nil
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(books) {
		colours.Error.Println("❌ Invalid selection!")
		return nil
	}
	return &books[choice-1]
}

// bookMenu is the per-book main menu: new game, load, or back out.
func (r *Reader) bookMenu() {
	b := r.session.Book()
	fmt.Println()
	colours.Title.Printf("📖 %s\n", b.Title)
	fmt.Printf("💡 %s\n", b.Description)
	fmt.Println()
	fmt.Println("  1. 🚀 New game")
	fmt.Println("  2. 💾 Load game")
	fmt.Println("  3. 🚪 Back")
	colours.Prompt.Print("> ")

	switch r.readLine() {
	case "1":
		if err := r.session.StartNewGame(); err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return
		}
		r.playLoop()
	case "2":
		if r.loadGame() {
			r.playLoop()
		}
	default:
		r.session.ExitToMenu()
	}
}

// playLoop runs the paragraph-by-paragraph loop until the story ends, the
// player leaves, or navigation hits a paragraph that does not exist.
func (r *Reader) playLoop() {
	for {
		p, err := r.session.Current()
		if err != nil {
			if errors.Is(err, book.ErrParagraphNotFound) {
				colours.Error.Printf("❌ Paragraph %d not found in this book!\n", r.session.Paragraph())
				colours.Info.Println("🏠 Returning to the main menu.")
				r.session.ExitToMenu()
				return
			}
			colours.Error.Printf("❌ %v\n", err)
			return
		}

		fmt.Println()
		if p.ImagePath != "" {
			colours.Info.Printf("🖼  [%s]\n", filepath.Join(config.ImagesDir(), p.ImagePath))
		}
		fmt.Println(p.Text)
		fmt.Println()

		if p.Terminal() {
			colours.Success.Println("🏁 The End 🏁")
			r.session.ExitToMenu()
			return
		}

		for i, o := range p.Options {
			fmt.Printf("  %d. ", i+1)
			colours.Option.Printf("%s\n", o.Text)
		}
		colours.Prompt.Print("\n➡  Choice number, 'save <title>', 'menu' or 'quit': ")

		input := r.readLine()
		switch {
		case input == "quit" || input == "q":
			r.session.ExitToMenu()
			return
		case input == "menu":
			colours.Warning.Println("⚠️ Unsaved progress will be lost!")
			r.session.ExitToMenu()
			return
		case strings.HasPrefix(input, "save"):
			title := strings.TrimSpace(strings.TrimPrefix(input, "save"))
			if title == "" {
				title = "Quick save"
			}
			if err := r.saves.SaveGame(r.session, title); err != nil {
				colours.Error.Printf("❌ Failed to save: %v\n", err)
			} else {
				colours.Success.Printf("💾 Saved as '%s'\n", title)
			}
		default:
			choice, err := strconv.Atoi(input)
			if err != nil || choice < 1 || choice > len(p.Options) {
				colours.Error.Println("❌ Invalid choice!")
				continue
			}
			r.session.ChooseOption(p.Options[choice-1])
		}
	}
}

// loadGame lets the player pick a save and restores the session from it.
// Returns true when the session was restored.
func (r *Reader) loadGame() bool {
	records, err := r.saves.ListSaves()
	if err != nil {
		colours.Error.Printf("❌ Cannot read the saves directory: %v\n", err)
		return false
	}
	if len(records) == 0 {
		colours.Warning.Println("🔍 No saved games yet.")
		return false
	}

	fmt.Println()
	for i, rec := range records {
		fmt.Printf("  %d. ", i+1)
		colours.Title.Printf("%s", rec.Title)
		fmt.Printf(" — book '%s', paragraph %d (%s)\n", rec.BookID, rec.Paragraph, rec.Timestamp)
	}
	colours.Prompt.Print("\n📂 Save number to load (or 'q'): ")

	input := r.readLine()
	if input == "q" || input == "quit" {
		return false
	}
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(records) {
		colours.Error.Println("❌ Invalid selection!")
		return false
	}

	bookID, paragraph, err := r.saves.LoadSave(records[idx-1])
	if err != nil {
		if errors.Is(err, saves.ErrSaveNotFound) {
			colours.Warning.Println("⚠️ That save vanished. Refresh the list.")
		} else {
			colours.Error.Printf("❌ Failed to load save: %v\n", err)
		}
		return false
	}

	b, ok, err := r.catalog.FindBook(bookID)
	if err != nil {
		colours.Error.Printf("❌ Cannot read the books directory: %v\n", err)
		return false
	}
	if !ok {
		colours.Error.Printf("❌ The book '%s' is no longer in the catalog.\n", bookID)
		return false
	}

	r.session.Restore(b, paragraph)
	colours.Success.Printf("📂 Restored '%s' at paragraph %d\n", b.Title, paragraph)
	return true
}

func (r *Reader) readLine() string {
	input, _ := r.in.ReadString('\n')
	return strings.TrimSpace(input)
}
