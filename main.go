package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var settingsPath string

var rootCmd = &cobra.Command{
	Use:   "scrape [category]",
	Short: "Mirror the legacy WordPress blog into the local content store",
	Long: `Scrapes posts from the WordPress site at sokolskuhrov.cz, downloads media
files, converts HTML to Markdown, and saves them to content.

Supported categories:
  akce         - events posts, saved to content/posts
  fotogalerie  - photo gallery posts, saved to content/fotogalerie`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := "akce"
		if len(args) > 0 {
			category = args[0]
		}
		if category != "akce" && category != "fotogalerie" {
			return fmt.Errorf(`invalid category: %s. Must be "akce" or "fotogalerie"`, category)
		}

		settings, err := loadSettings(settingsPath)
		if err != nil {
			log.Printf("Failed to load settings: %v", err)
			return nil
		}
		migrator, err := NewMigrator(settings, category)
		if err != nil {
			log.Printf("Failed to set up migration: %v", err)
			return nil
		}

		log.Printf("Starting migration of %s posts...", category)
		if err := migrator.Run(cmd.Context()); err != nil {
			log.Printf("Migration failed: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&settingsPath, "settings", getConfigPath("settings.yaml"), "Path to settings YAML file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
