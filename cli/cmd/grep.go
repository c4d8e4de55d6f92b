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

// grepCmd represents the grep command
var grepCmd = &cobra.Command{
	Use:   "grep <query> [room]",
	Short: "Searches the messages of a room.",
	Long: `Prints the messages of a room, the current room by default, whose text
contains the query. Matching ignores case.`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return roomCompletionFunc(cmd, nil, toComplete)
	},
	Run: func(cmd *cobra.Command, args []string) {
		req := chatpb.SearchMessagesRequest{
			Room:  roomArg(args, 1),
			Query: args[0],
		}
		var res chatpb.SearchMessagesResponse
		if err := invoke(chatClient.SearchMessages, req, &res); err != nil {
			fmt.Fprintf(os.Stderr, "Error calling SearchMessages in %s: %v\n", req.Room, err)
			return
		}
		for _, msg := range res.Messages {
			fmt.Println(formatMessage(msg))
		}
	},
}

func init() {
	rootCmd.AddCommand(grepCmd)
}
