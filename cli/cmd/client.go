package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

const requestTimeout = 10 * time.Second

type unaryCall func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

// invoke encodes req, performs call and decodes the reply into resp.
func invoke(call unaryCall, req, resp any) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	in, err := chatpb.Encode(req)
	if err != nil {
		return err
	}
	out, err := call(ctx, in)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	return chatpb.Decode(out, resp)
}

// chatStream wraps a StreamMessage call in JSON frames.
type chatStream struct {
	stream chatpb.ChatService_StreamMessageClient
}

func openStream(ctx context.Context) (*chatStream, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, "owner-token", ownerToken)
	stream, err := chatClient.StreamMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error opening message stream: %w", err)
	}
	return &chatStream{stream: stream}, nil
}

func (s *chatStream) Send(typ string, payload any) error {
	frame, err := chatpb.NewClientFrame(typ, payload)
	if err != nil {
		return err
	}
	out, err := chatpb.Encode(frame)
	if err != nil {
		return err
	}
	return s.stream.Send(out)
}

// Join enters room, leaving the name empty so the server resolves the
// display name from the owner token.
func (s *chatStream) Join(name, room string) error {
	return s.Send("user_join", chatpb.JoinPayload{Username: name, RoomID: room})
}

func (s *chatStream) Recv() (chatpb.ServerFrame, error) {
	in, err := s.stream.Recv()
	if err != nil {
		return chatpb.ServerFrame{}, err
	}
	var frame chatpb.ServerFrame
	if err := chatpb.Decode(in, &frame); err != nil {
		return chatpb.ServerFrame{}, err
	}
	return frame, nil
}

func (s *chatStream) Close() error {
	return s.stream.CloseSend()
}

func formatMessage(msg domain.Message) string {
	line := fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Local().Format("15:04:05"), msg.Sender, msg.Text)
	if msg.Attachment != nil {
		line += fmt.Sprintf(" (file: %s, %d bytes)", msg.Attachment.Name, msg.Attachment.Size)
	}
	return line
}

func displayName() (string, error) {
	var res chatpb.ConfigResponse
	if err := invoke(chatClient.GetConfig, chatpb.GetConfigRequest{OwnerToken: ownerToken}, &res); err != nil {
		return "", err
	}
	return res.DisplayName, nil
}
