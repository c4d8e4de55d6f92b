/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	currentRoomKey = "current_room"
	defaultRoom    = "general"
)

// pwdCmd represents the pwd command
var pwdCmd = &cobra.Command{
	Use:   "pwd",
	Short: "Prints the current room.",
	Long: `Prints the room this CLI uses when a command is called without one.
The value is kept in the CLI config file and changed with cd.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentRoom())
	},
}

func currentRoom() string {
	room := viper.GetString(currentRoomKey)
	if room == "" {
		return defaultRoom
	}
	return room
}

// roomArg returns args[i] when present and the current room otherwise.
func roomArg(args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return currentRoom()
}

func init() {
	rootCmd.AddCommand(pwdCmd)
}
