package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ypbrand/storebot/internal/config"
)

var configCheckPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configCheckPath
		if path == "" {
			path = "./config.toml"
		}

		cfg, err := config.Load(path)
		if err != nil {
			fmt.Printf("❌ Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		if errs := cfg.Validate(); len(errs) > 0 {
			fmt.Println("❌ Configuration validation failed:")
			for _, e := range errs {
				fmt.Printf("  - %v\n", e)
			}
			os.Exit(1)
		}

		fmt.Println("✅ Configuration is valid")
	},
}

func init() {
	configCmd.Flags().StringVarP(&configCheckPath, "config", "c", "", "path to config file (default ./config.toml)")
}
