package rpc

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/easysurf/easysurf/internal/config"
)

// Client is a typed bridge client.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an existing connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// DialOptions returns the options every bridge connection needs.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
}

// Connect establishes a connection to the running daemon using daemon.yaml.
func Connect() (*grpc.ClientConn, error) {
	info, err := config.LoadDaemonInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to load daemon info: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("daemon not running")
	}

	addr := fmt.Sprintf("%s:%d", info.Host, info.Port)
	conn, err := grpc.NewClient(addr, DialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	return conn, nil
}

// GetSettings fetches the current settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	out := new(Settings)
	if err := c.cc.Invoke(ctx, MethodGetSettings, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveSettings submits a settings write.
func (c *Client) SaveSettings(ctx context.Context, in *SaveSettingsRequest) (*SaveSettingsResponse, error) {
	out := new(SaveSettingsResponse)
	if err := c.cc.Invoke(ctx, MethodSaveSettings, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCurrentStatus fetches the current status.
func (c *Client) GetCurrentStatus(ctx context.Context) (*CurrentStatus, error) {
	out := new(CurrentStatus)
	if err := c.cc.Invoke(ctx, MethodGetCurrentStatus, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Refresh triggers an immediate poll.
func (c *Client) Refresh(ctx context.Context) (*CurrentStatus, error) {
	out := new(CurrentStatus)
	if err := c.cc.Invoke(ctx, MethodRefresh, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDaemonStatus describes the running daemon.
func (c *Client) GetDaemonStatus(ctx context.Context) (*DaemonStatus, error) {
	out := new(DaemonStatus)
	if err := c.cc.Invoke(ctx, MethodGetDaemonStatus, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Shutdown asks the daemon to quit.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.cc.Invoke(ctx, MethodShutdown, &emptypb.Empty{}, &emptypb.Empty{})
}

// StatusStream receives push events.
type StatusStream interface {
	Recv() (*StatusEvent, error)
	grpc.ClientStream
}

type statusStream struct {
	grpc.ClientStream
}

func (x *statusStream) Recv() (*StatusEvent, error) {
	m := new(StatusEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// SubscribeStatus attaches a settings window to the push channel.
func (c *Client) SubscribeStatus(ctx context.Context, in *SubscribeRequest) (StatusStream, error) {
	stream, err := c.cc.NewStream(ctx, &BridgeServiceDesc.Streams[0], MethodSubscribeStatus)
	if err != nil {
		return nil, err
	}
	x := &statusStream{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// IsEOF reports whether a stream ended normally.
func IsEOF(err error) bool {
	return err == io.EOF
}
