/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"github.com/spf13/cobra"
)

// echoCmd represents the echo command
var echoCmd = &cobra.Command{
	Use:   "echo <text> [room]",
	Short: "Sends a message to a room.",
	Long: `Joins a room, the current room by default, under your display name,
sends the given text and leaves again.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		room := roomArg(args, 1)
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := sendOnce(ctx, room, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error sending message to %s: %v\n", room, err)
		}
	},
}

// sendOnce joins room, sends text and waits until the server echoes it back.
func sendOnce(ctx context.Context, room, text string) error {
	stream, err := openStream(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Join("", room); err != nil {
		return err
	}
	joined := false
	for {
		frame, err := stream.Recv()
		if err != nil {
			return err
		}
		switch frame.Event {
		case "message_history":
			if joined {
				continue
			}
			joined = true
			if err := stream.Send("send_message", chatpb.SendMessagePayload{Message: text}); err != nil {
				return err
			}
		case "receive_message":
			var msg domain.Message
			if err := frame.DecodePayload(&msg); err != nil {
				return err
			}
			if joined && msg.Text == text {
				return nil
			}
		case "error", "room_error":
			return printFrame(frame)
		}
	}
}

func init() {
	rootCmd.AddCommand(echoCmd)
}
