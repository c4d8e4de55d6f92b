/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cdCmd represents the cd command
var cdCmd = &cobra.Command{
	Use:   "cd [room]",
	Short: "Changes the current room.",
	Long: `Changes the room used by commands called without one.
If no room is specified, it changes back to the general room.
This command updates the room stored in the configuration file.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: roomCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		target := defaultRoom
		if len(args) == 1 {
			target = args[0]
		}

		rooms, err := listRooms("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error calling ListRooms: %v\n", err)
			return
		}
		if !slices.Contains(rooms, target) {
			fmt.Fprintf(os.Stderr, "Room does not exist: %s\n", target)
			return
		}

		viper.Set(currentRoomKey, target)
		if err := viper.WriteConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				if err := viper.SafeWriteConfig(); err != nil {
					fmt.Fprintln(os.Stderr, "Error creating config file:", err)
				}
			} else {
				fmt.Fprintln(os.Stderr, "Error writing config file:", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(cdCmd)
}
