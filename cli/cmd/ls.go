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

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [pattern]",
	Short: "Lists rooms.",
	Long: `Lists the rooms known to the chatroom server. With a pattern, only rooms
whose name matches the regular expression are listed. The current room is
marked with an asterisk.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		rooms, err := listRooms(pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error calling ListRooms: %v\n", err)
			return
		}
		if len(rooms) == 0 {
			fmt.Println("No rooms found.")
			return
		}

		current := currentRoom()
		for _, room := range rooms {
			marker := " "
			if room == current {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, room)
		}
	},
}

func listRooms(pattern string) ([]string, error) {
	var res chatpb.ListRoomsResponse
	if err := invoke(chatClient.ListRooms, chatpb.ListRoomsRequest{Pattern: pattern}, &res); err != nil {
		return nil, err
	}
	return res.Rooms, nil
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
