/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [new_display_name]",
	Short: "Gets or sets the display name.",
	Long: `Manages the profile stored on the chatroom server for your owner token.
If called without arguments, it displays the current display name.
If called with an argument, it sets the display name to the provided value.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			name, err := displayName()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting config: %v\n", err)
				return
			}
			fmt.Printf("Display Name: %s\n", name)
			return
		}

		req := chatpb.SetConfigRequest{
			OwnerToken:  ownerToken,
			DisplayName: args[0],
		}
		var res chatpb.ConfigResponse
		if err := invoke(chatClient.SetConfig, req, &res); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting config: %v\n", err)
			return
		}
		fmt.Printf("Display name set to: %s\n", res.DisplayName)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
