/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// idCmd represents the id command
var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Prints user configuration information.",
	Long:  `Prints the display name registered for your owner token and the room you are in.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		name, err := displayName()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting user config (id): %v\n", err)
			return
		}
		fmt.Printf("DisplayName: %s\n", name)
		fmt.Printf("Room: %s\n", viper.GetString(currentRoomKey))
	},
}

func init() {
	rootCmd.AddCommand(idCmd)
}
