package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "easysurf.Bridge"

// Full method names.
const (
	MethodGetSettings      = "/" + ServiceName + "/GetSettings"
	MethodSaveSettings     = "/" + ServiceName + "/SaveSettings"
	MethodGetCurrentStatus = "/" + ServiceName + "/GetCurrentStatus"
	MethodRefresh          = "/" + ServiceName + "/Refresh"
	MethodGetDaemonStatus  = "/" + ServiceName + "/GetDaemonStatus"
	MethodShutdown         = "/" + ServiceName + "/Shutdown"
	MethodSubscribeStatus  = "/" + ServiceName + "/SubscribeStatus"
)

// BridgeServer is the server interface for the bridge service.
type BridgeServer interface {
	GetSettings(context.Context, *emptypb.Empty) (*Settings, error)
	SaveSettings(context.Context, *SaveSettingsRequest) (*SaveSettingsResponse, error)
	GetCurrentStatus(context.Context, *emptypb.Empty) (*CurrentStatus, error)
	Refresh(context.Context, *emptypb.Empty) (*CurrentStatus, error)
	GetDaemonStatus(context.Context, *emptypb.Empty) (*DaemonStatus, error)
	Shutdown(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	SubscribeStatus(*SubscribeRequest, Bridge_SubscribeStatusServer) error
}

// Bridge_SubscribeStatusServer is the server side of the push stream.
type Bridge_SubscribeStatusServer interface {
	Send(*StatusEvent) error
	grpc.ServerStream
}

type bridgeSubscribeStatusServer struct {
	grpc.ServerStream
}

func (x *bridgeSubscribeStatusServer) Send(m *StatusEvent) error {
	return x.ServerStream.SendMsg(m)
}

// unaryHandler adapts a typed BridgeServer method to a grpc.MethodHandler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(BridgeServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BridgeServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BridgeServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func subscribeStatusHandler(srv any, stream grpc.ServerStream) error {
	in := new(SubscribeRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(BridgeServer).SubscribeStatus(in, &bridgeSubscribeStatusServer{stream})
}

// BridgeServiceDesc describes the bridge service for grpc.Server.RegisterService.
var BridgeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BridgeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSettings",
			Handler:    unaryHandler(MethodGetSettings, BridgeServer.GetSettings),
		},
		{
			MethodName: "SaveSettings",
			Handler:    unaryHandler(MethodSaveSettings, BridgeServer.SaveSettings),
		},
		{
			MethodName: "GetCurrentStatus",
			Handler:    unaryHandler(MethodGetCurrentStatus, BridgeServer.GetCurrentStatus),
		},
		{
			MethodName: "Refresh",
			Handler:    unaryHandler(MethodRefresh, BridgeServer.Refresh),
		},
		{
			MethodName: "GetDaemonStatus",
			Handler:    unaryHandler(MethodGetDaemonStatus, BridgeServer.GetDaemonStatus),
		},
		{
			MethodName: "Shutdown",
			Handler:    unaryHandler(MethodShutdown, BridgeServer.Shutdown),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeStatus",
			Handler:       subscribeStatusHandler,
			ServerStreams: true,
		},
	},
	Metadata: "easysurf/bridge",
}

// RegisterBridgeServer registers the bridge service with the gRPC server.
func RegisterBridgeServer(s grpc.ServiceRegistrar, srv BridgeServer) {
	s.RegisterService(&BridgeServiceDesc, srv)
}
