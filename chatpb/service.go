// Package chatpb holds the gRPC contract of chatroom.v1.ChatService. Every
// request and response is a google.protobuf.Struct whose JSON shape is
// described by the types in frame.go.
package chatpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "chatroom.v1.ChatService"

const (
	ChatService_ListRooms_FullMethodName      = "/chatroom.v1.ChatService/ListRooms"
	ChatService_ListUsers_FullMethodName      = "/chatroom.v1.ChatService/ListUsers"
	ChatService_ListMessages_FullMethodName   = "/chatroom.v1.ChatService/ListMessages"
	ChatService_SearchMessages_FullMethodName = "/chatroom.v1.ChatService/SearchMessages"
	ChatService_CreateRoom_FullMethodName     = "/chatroom.v1.ChatService/CreateRoom"
	ChatService_GetConfig_FullMethodName      = "/chatroom.v1.ChatService/GetConfig"
	ChatService_SetConfig_FullMethodName      = "/chatroom.v1.ChatService/SetConfig"
	ChatService_StreamMessage_FullMethodName  = "/chatroom.v1.ChatService/StreamMessage"
)

type (
	ChatService_StreamMessageServer = grpc.BidiStreamingServer[structpb.Struct, structpb.Struct]
	ChatService_StreamMessageClient = grpc.BidiStreamingClient[structpb.Struct, structpb.Struct]
)

type ChatServiceClient interface {
	ListRooms(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListUsers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListMessages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SearchMessages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateRoom(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetConfig(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetConfig(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	StreamMessage(ctx context.Context, opts ...grpc.CallOption) (ChatService_StreamMessageClient, error)
}

type chatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) ChatServiceClient {
	return &chatServiceClient{cc}
}

func (c *chatServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatServiceClient) ListRooms(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_ListRooms_FullMethodName, in, opts...)
}

func (c *chatServiceClient) ListUsers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_ListUsers_FullMethodName, in, opts...)
}

func (c *chatServiceClient) ListMessages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_ListMessages_FullMethodName, in, opts...)
}

func (c *chatServiceClient) SearchMessages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_SearchMessages_FullMethodName, in, opts...)
}

func (c *chatServiceClient) CreateRoom(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_CreateRoom_FullMethodName, in, opts...)
}

func (c *chatServiceClient) GetConfig(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_GetConfig_FullMethodName, in, opts...)
}

func (c *chatServiceClient) SetConfig(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ChatService_SetConfig_FullMethodName, in, opts...)
}

func (c *chatServiceClient) StreamMessage(ctx context.Context, opts ...grpc.CallOption) (ChatService_StreamMessageClient, error) {
	stream, err := c.cc.NewStream(ctx, &ChatService_ServiceDesc.Streams[0], ChatService_StreamMessage_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[structpb.Struct, structpb.Struct]{ClientStream: stream}, nil
}

type ChatServiceServer interface {
	ListRooms(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListUsers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMessages(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchMessages(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateRoom(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetConfig(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetConfig(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StreamMessage(ChatService_StreamMessageServer) error
}

// UnimplementedChatServiceServer must be embedded by value in server
// implementations.
type UnimplementedChatServiceServer struct{}

func (UnimplementedChatServiceServer) ListRooms(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRooms not implemented")
}

func (UnimplementedChatServiceServer) ListUsers(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListUsers not implemented")
}

func (UnimplementedChatServiceServer) ListMessages(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMessages not implemented")
}

func (UnimplementedChatServiceServer) SearchMessages(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SearchMessages not implemented")
}

func (UnimplementedChatServiceServer) CreateRoom(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateRoom not implemented")
}

func (UnimplementedChatServiceServer) GetConfig(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetConfig not implemented")
}

func (UnimplementedChatServiceServer) SetConfig(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetConfig not implemented")
}

func (UnimplementedChatServiceServer) StreamMessage(ChatService_StreamMessageServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamMessage not implemented")
}

func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

type unaryMethod func(ChatServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ChatServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ChatServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func streamMessageHandler(srv any, stream grpc.ServerStream) error {
	return srv.(ChatServiceServer).StreamMessage(&grpc.GenericServerStream[structpb.Struct, structpb.Struct]{ServerStream: stream})
}

var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListRooms",
			Handler:    unaryHandler(ChatService_ListRooms_FullMethodName, ChatServiceServer.ListRooms),
		},
		{
			MethodName: "ListUsers",
			Handler:    unaryHandler(ChatService_ListUsers_FullMethodName, ChatServiceServer.ListUsers),
		},
		{
			MethodName: "ListMessages",
			Handler:    unaryHandler(ChatService_ListMessages_FullMethodName, ChatServiceServer.ListMessages),
		},
		{
			MethodName: "SearchMessages",
			Handler:    unaryHandler(ChatService_SearchMessages_FullMethodName, ChatServiceServer.SearchMessages),
		},
		{
			MethodName: "CreateRoom",
			Handler:    unaryHandler(ChatService_CreateRoom_FullMethodName, ChatServiceServer.CreateRoom),
		},
		{
			MethodName: "GetConfig",
			Handler:    unaryHandler(ChatService_GetConfig_FullMethodName, ChatServiceServer.GetConfig),
		},
		{
			MethodName: "SetConfig",
			Handler:    unaryHandler(ChatService_SetConfig_FullMethodName, ChatServiceServer.SetConfig),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamMessage",
			Handler:       streamMessageHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "chatroom/v1/chat.proto",
}
