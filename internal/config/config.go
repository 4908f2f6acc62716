package config

import "github.com/spf13/viper"

func SetDefaults() {
	viper.SetDefault("books.dir", "books")
	viper.SetDefault("saves.dir", "saves")
	viper.SetDefault("images.dir", "images")
}

// BooksDir is the directory scanned for book definition files.
func BooksDir() string { return viper.GetString("books.dir") }

// SavesDir is the directory save records are written to. It is created on
// startup if absent.
func SavesDir() string { return viper.GetString("saves.dir") }

// ImagesDir is the directory image references in book content resolve
// against. Opaque to the core; only the presentation layer reads it.
func ImagesDir() string { return viper.GetString("images.dir") }
