/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"github.com/spf13/cobra"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat [room]",
	Short: "Prints every retained message of a room.",
	Long: `Pages through the whole retained history of a room, the current room by
default, and prints it oldest first.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: roomCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		room := roomArg(args, 0)
		var pages [][]domain.Message
		for page := 0; ; page++ {
			res, err := listMessages(room, page, domain.DefaultPageSize)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error calling ListMessages for %s: %v\n", room, err)
				return
			}
			pages = append(pages, res.Messages)
			if !res.HasMore {
				break
			}
		}
		// page 0 is the newest
		for _, messages := range slices.Backward(pages) {
			for _, msg := range messages {
				fmt.Println(formatMessage(msg))
			}
		}
	},
}

func listMessages(room string, page, limit int) (domain.PageResult, error) {
	var res domain.PageResult
	req := chatpb.ListMessagesRequest{Room: room, Page: page, Limit: limit}
	if err := invoke(chatClient.ListMessages, req, &res); err != nil {
		return domain.PageResult{}, err
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(catCmd)
}
