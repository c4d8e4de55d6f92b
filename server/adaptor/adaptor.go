package adaptor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ownerTokenMetadataKey = "owner-token"

type Adaptor struct {
	uc      Usecase
	suc     StreamUsecase
	logger  *slog.Logger
	limiter func() *rate.Limiter
	chatpb.UnimplementedChatServiceServer
}

func NewAdaptor(uc Usecase, suc StreamUsecase, logger *slog.Logger, limiter func() *rate.Limiter) *Adaptor {
	return &Adaptor{
		uc:      uc,
		suc:     suc,
		logger:  logger,
		limiter: limiter,
	}
}

// toStatus maps usecase errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidName):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func decodeRequest(in *structpb.Struct, v any) error {
	if err := chatpb.Decode(in, v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func encodeResponse(v any) (*structpb.Struct, error) {
	out, err := chatpb.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (a *Adaptor) ListRooms(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.ListRoomsRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	rooms, err := a.uc.ListRooms(req.Pattern)
	if err != nil {
		a.logger.Error("Error listing rooms", "error", err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return encodeResponse(chatpb.ListRoomsResponse{Rooms: rooms})
}

func (a *Adaptor) ListUsers(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.ListUsersRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	return encodeResponse(chatpb.ListUsersResponse{Users: a.uc.ListUsers(req.Room)})
}

func (a *Adaptor) ListMessages(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.ListMessagesRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	result, err := a.uc.ListMessages(req.Room, req.Page, req.Limit)
	if err != nil {
		a.logger.Error("Error getting past messages", "room", req.Room, "error", err)
		return nil, toStatus(err)
	}
	return encodeResponse(result)
}

func (a *Adaptor) SearchMessages(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.SearchMessagesRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	messages, err := a.uc.SearchMessages(req.Room, req.Query)
	if err != nil {
		a.logger.Error("Error searching messages", "room", req.Room, "error", err)
		return nil, toStatus(err)
	}
	return encodeResponse(chatpb.SearchMessagesResponse{Messages: messages})
}

func (a *Adaptor) CreateRoom(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.CreateRoomRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := a.uc.CreateRoom(req.Name); err != nil {
		a.logger.Error("Error creating room", "room", req.Name, "error", err)
		return nil, toStatus(err)
	}
	return encodeResponse(chatpb.CreateRoomResponse{Name: req.Name})
}

func (a *Adaptor) GetConfig(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.GetConfigRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	config, err := a.uc.GetConfig(req.OwnerToken)
	if err != nil {
		a.logger.Error("Error getting config", "error", err)
		return nil, toStatus(err)
	}
	return encodeResponse(chatpb.ConfigResponse{OwnerToken: config.OwnerToken, DisplayName: config.DisplayName})
}

func (a *Adaptor) SetConfig(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req chatpb.SetConfigRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	config := domain.NewConfig(req.DisplayName, req.OwnerToken)
	if err := a.uc.SetConfig(config); err != nil {
		a.logger.Error("Error setting config", "error", err)
		return nil, toStatus(err)
	}
	return encodeResponse(chatpb.ConfigResponse{OwnerToken: config.OwnerToken, DisplayName: config.DisplayName})
}

type grpcFrameConn struct {
	stream chatpb.ChatService_StreamMessageServer
}

func (c grpcFrameConn) ReadFrame() (chatpb.ClientFrame, error) {
	in, err := c.stream.Recv()
	if err != nil {
		return chatpb.ClientFrame{}, err
	}
	// malformed frames surface as unknown requests
	var frame chatpb.ClientFrame
	if err := chatpb.Decode(in, &frame); err != nil {
		return chatpb.ClientFrame{}, nil
	}
	return frame, nil
}

func (c grpcFrameConn) WriteFrame(frame chatpb.ServerFrame) error {
	out, err := chatpb.Encode(frame)
	if err != nil {
		return err
	}
	return c.stream.Send(out)
}

func (a *Adaptor) StreamMessage(stream chatpb.ChatService_StreamMessageServer) error {
	ctx := stream.Context()
	remote := "unknown"
	if p, ok := peer.FromContext(ctx); ok {
		remote = p.Addr.String()
	}
	var ownerToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(ownerTokenMetadataKey); len(values) > 0 {
			ownerToken = values[0]
		}
	}
	session := domain.NewStreamSession(uuid.NewString(), remote, "grpc", ownerToken)

	var limiter *rate.Limiter
	if a.limiter != nil {
		limiter = a.limiter()
	}
	return serveSession(ctx, a.suc, session, grpcFrameConn{stream: stream}, limiter, a.logger)
}
