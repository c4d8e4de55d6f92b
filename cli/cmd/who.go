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

var whoAll bool

// whoCmd represents the who command
var whoCmd = &cobra.Command{
	Use:   "who [room]",
	Short: "Lists users connected to a room.",
	Long: `Lists the users currently connected to a room, the current room by
default. With -a, every connected user is listed with the room they are in.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: roomCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		req := chatpb.ListUsersRequest{Room: roomArg(args, 0)}
		if whoAll {
			req.Room = ""
		}
		var res chatpb.ListUsersResponse
		if err := invoke(chatClient.ListUsers, req, &res); err != nil {
			fmt.Fprintf(os.Stderr, "Error calling ListUsers: %v\n", err)
			return
		}
		if len(res.Users) == 0 {
			fmt.Println("Nobody is here.")
			return
		}
		for _, user := range res.Users {
			fmt.Printf("%-20s %s\n", user.Username, user.CurrentRoom)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoCmd)
	whoCmd.Flags().BoolVarP(&whoAll, "all", "a", false, "List users of every room")
}
