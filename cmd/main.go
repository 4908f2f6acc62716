package main

import (
	"os"

	"gamebook/internal/cli/scheme/colours"
	"gamebook/internal/config"
	"gamebook/internal/reader"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {

	config.SetDefaults()

	app := reader.New()

	rootCmd := &cobra.Command{
		Use:   "gamebook",
		Short: "📖 A branching-narrative book reader",
		Long: `
┌─────────────────────────────────────┐
│  📖 Welcome to Gamebook! 🎲        │
│  Branching stories, your choices    │
│  decide how they end ✨            │
└─────────────────────────────────────┘

Gamebook loads choose-your-own-adventure books from a content directory,
lets you read them paragraph by paragraph, and saves your progress so you
can pick the story back up later.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "📋 List available books",
		Long:  "Display all books found in the content directory",
		Run:   app.ListBooks,
	}

	playCmd := &cobra.Command{
		Use:   "play [book-id]",
		Short: "📖 Play a book",
		Long:  "Start or continue a book by its ID, or pick one from a list",
		Args:  cobra.MaximumNArgs(1),
		Run:   app.PlayBook,
	}

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "🎲 Play a random book",
		Long:  "Let fate pick a book from the catalog",
		Run:   app.PlayRandomBook,
	}

	savesCmd := &cobra.Command{
		Use:   "saves",
		Short: "💾 List saved games",
		Long:  "Display saved games, most recent first",
		Run:   app.ShowSaves,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [number]",
		Short: "🗑 Delete a saved game",
		Long:  "Delete the saved game at the given listing position",
		Args:  cobra.ExactArgs(1),
		Run:   app.DeleteSave,
	}
	savesCmd.AddCommand(deleteCmd)

	reloadCmd := &cobra.Command{
		Use:   "reload",
		Short: "🔄 Rescan the books directory",
		Long:  "Drop the catalog cache and rescan the content directory",
		Run:   app.ReloadBooks,
	}

	rootCmd.AddCommand(listCmd, playCmd, randomCmd, savesCmd, reloadCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("gamebook")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.gamebook")
	viper.AddConfigPath(".")

	viper.ReadInConfig()
}
