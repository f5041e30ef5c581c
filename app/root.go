// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "givehub-admin",
	Short: "GiveHub-Admin is the administrative backend for the GiveHub donation platform",
	Long: `GiveHub-Admin is the administrative backend for the GiveHub donation platform.
It manages donors, NGOs, companies, campaigns, donations, notices, platform
settings and shareable public profile/campaign links over a JSON API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
