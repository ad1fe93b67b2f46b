package server

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/easysurf/easysurf/internal/daemon/bridge"
	"github.com/easysurf/easysurf/internal/daemon/state"
	"github.com/easysurf/easysurf/internal/models"
	"github.com/easysurf/easysurf/internal/rpc"
)

type bridgeService struct {
	bridge   bridge.Bridge
	controls Controls
	server   *Server
}

func (s *bridgeService) GetSettings(ctx context.Context, _ *emptypb.Empty) (*rpc.Settings, error) {
	return rpc.SettingsFromModel(s.bridge.GetSettings(ctx)), nil
}

func (s *bridgeService) SaveSettings(ctx context.Context, req *rpc.SaveSettingsRequest) (*rpc.SaveSettingsResponse, error) {
	if req.Settings == nil {
		return nil, status.Error(codes.InvalidArgument, "settings are required")
	}
	res := s.bridge.SaveSettings(ctx, req.Settings.Candidate())
	return &rpc.SaveSettingsResponse{
		Success: res.Success,
		Error:   res.Error,
		Errors:  res.Messages,
	}, nil
}

func (s *bridgeService) GetCurrentStatus(ctx context.Context, _ *emptypb.Empty) (*rpc.CurrentStatus, error) {
	return currentStatus(s.bridge.GetCurrentStatus(ctx)), nil
}

func (s *bridgeService) Refresh(ctx context.Context, _ *emptypb.Empty) (*rpc.CurrentStatus, error) {
	st, err := s.bridge.Refresh(ctx)
	out := currentStatus(st)
	if err != nil {
		out.Error = err.Error()
	}
	return out, nil
}

func (s *bridgeService) GetDaemonStatus(ctx context.Context, _ *emptypb.Empty) (*rpc.DaemonStatus, error) {
	mode, interval := s.controls.PollerState()
	return &rpc.DaemonStatus{
		Host:       Host,
		Port:       int32(s.server.Port()),
		Pid:        int32(os.Getpid()),
		StartedAt:  timestamppb.New(s.server.startedAt),
		PollerMode: mode,
		Interval:   int32(interval.Minutes()),
		WindowOpen: s.controls.WindowOpen(),
	}, nil
}

func (s *bridgeService) Shutdown(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	log.Println("[bridge] Shutdown requested")
	// Reply before the daemon starts tearing the server down.
	go s.controls.RequestShutdown()
	return &emptypb.Empty{}, nil
}

func (s *bridgeService) SubscribeStatus(req *rpc.SubscribeRequest, stream rpc.Bridge_SubscribeStatusServer) error {
	id := ""
	if req.Meta != nil {
		id = req.Meta.ClientID
	}
	if id == "" {
		id = uuid.New().String()
	}

	events, detach, err := s.bridge.Subscribe(stream.Context(), id)
	if errors.Is(err, state.ErrWindowOpen) {
		return status.Error(codes.AlreadyExists, err.Error())
	}
	if err != nil {
		return status.Errorf(codes.Internal, "subscribe: %v", err)
	}
	defer detach()

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case <-s.server.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(statusEvent(ev)); err != nil {
				return err
			}
		}
	}
}

func statusEvent(ev state.Event) *rpc.StatusEvent {
	if ev.Kind == state.EventFocus {
		return &rpc.StatusEvent{Kind: rpc.EventFocus}
	}
	return &rpc.StatusEvent{Kind: rpc.EventStatus, Update: statusUpdate(ev.Update)}
}

func statusUpdate(u models.StatusUpdate) *rpc.StatusUpdate {
	out := &rpc.StatusUpdate{
		Color:      string(u.Color),
		Label:      u.Label,
		Level:      u.Level,
		WaveHeight: u.WaveHeight,
		Period:     u.Period,
		Time:       u.Time,
	}
	if !u.FetchedAt.IsZero() {
		out.FetchedAt = timestamppb.New(u.FetchedAt)
	}
	return out
}

func currentStatus(st bridge.Status) *rpc.CurrentStatus {
	out := &rpc.CurrentStatus{Color: string(st.Color), Label: st.Label}
	if st.Last != nil {
		out.LastUpdate = statusUpdate(*st.Last)
	}
	return out
}
