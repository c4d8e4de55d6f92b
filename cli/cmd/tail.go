/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	follow    bool // Flag for -f option
	tailLines int
)

// tailCmd represents the tail command
var tailCmd = &cobra.Command{
	Use:   "tail [-f] [-n lines] [room]",
	Short: "Displays the latest messages of a room.",
	Long: `Displays the latest messages of a room, the current room by default.
With -f, joins the room and prints new messages as they arrive until interrupted.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: roomCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		room := roomArg(args, 0)
		res, err := listMessages(room, 0, tailLines)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error calling ListMessages for %s: %v\n", room, err)
			return
		}
		for _, msg := range res.Messages {
			fmt.Println(formatMessage(msg))
		}
		if !follow {
			return
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if err := followRoom(ctx, room); err != nil {
			fmt.Fprintf(os.Stderr, "Error following %s: %v\n", room, err)
		}
	},
}

func followRoom(ctx context.Context, room string) error {
	stream, err := openStream(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Join("", room); err != nil {
		return fmt.Errorf("failed to send join message: %w", err)
	}
	for {
		frame, err := stream.Recv()
		if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
			return nil
		}
		if err != nil {
			return err
		}
		if err := printFrame(frame); err != nil {
			return err
		}
	}
}

// printFrame prints live room events and returns server errors.
func printFrame(frame chatpb.ServerFrame) error {
	switch frame.Event {
	case "receive_message", "private_message":
		var msg domain.Message
		if err := frame.DecodePayload(&msg); err != nil {
			return err
		}
		fmt.Println(formatMessage(msg))
	case "user_joined":
		var p domain.PresencePayload
		if err := frame.DecodePayload(&p); err == nil {
			fmt.Printf("* %s joined\n", p.Username)
		}
	case "user_left":
		var p domain.PresencePayload
		if err := frame.DecodePayload(&p); err == nil {
			fmt.Printf("* %s left\n", p.Username)
		}
	case "error", "room_error":
		var p domain.ErrorPayload
		if err := frame.DecodePayload(&p); err != nil {
			return err
		}
		return errors.New(p.Message)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new messages")
	tailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of messages to print")
}
