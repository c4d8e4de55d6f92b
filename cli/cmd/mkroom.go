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

// mkroomCmd represents the mkroom command
var mkroomCmd = &cobra.Command{
	Use:   "mkroom <room_name...>",
	Short: "Creates new rooms.",
	Long: `Creates one or more new rooms on the chatroom server. Every connected
client receives the updated room list.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			var res chatpb.CreateRoomResponse
			if err := invoke(chatClient.CreateRoom, chatpb.CreateRoomRequest{Name: name}, &res); err != nil {
				fmt.Fprintf(os.Stderr, "Error calling CreateRoom for %s: %v\n", name, err)
				continue
			}
			fmt.Printf("Room created: %s\n", res.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(mkroomCmd)
}
