package main

import (
	"github.com/spf13/cobra"
	"github.com/ypbrand/storebot/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "storebot",
	Short: "storebot - Telegram bot behind the YP BRAND storefront",
	Long: `storebot long-polls the Telegram Bot API, routes storefront commands and
inline keyboard callbacks, and exposes connection status and recent
updates to the host application over HTTP.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
