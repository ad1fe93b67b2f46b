package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/easysurf/easysurf/internal/buildinfo"
	"github.com/easysurf/easysurf/internal/rpc"
)

const rpcTimeout = 5 * time.Second

func connectDaemonCmd() tea.Cmd {
	return func() tea.Msg {
		conn, err := rpc.Connect()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DaemonConnectedMsg{Conn: conn}
	}
}

func loadSettingsCmd(client *rpc.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		s, err := client.GetSettings(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load settings: %w", err)}
		}
		return SettingsLoadedMsg{Settings: s}
	}
}

func loadStatusCmd(client *rpc.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		st, err := client.GetCurrentStatus(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load status: %w", err)}
		}
		return StatusLoadedMsg{Status: st}
	}
}

func saveSettingsCmd(client *rpc.Client, clientID string, s *rpc.Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		res, err := client.SaveSettings(ctx, &rpc.SaveSettingsRequest{
			Meta:     requestMeta(clientID),
			Settings: s,
		})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save settings: %w", err)}
		}
		return SavedMsg{Result: res}
	}
}

// refreshCmd has no timeout: a poll takes as long as the forecast service does.
func refreshCmd(client *rpc.Client) tea.Cmd {
	return func() tea.Msg {
		st, err := client.Refresh(context.Background())
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("refresh failed: %w", err)}
		}
		return StatusLoadedMsg{Status: st}
	}
}

// subscribeCmd holds the push stream open for the lifetime of the window.
// Events are delivered through ref; the command's own result is the reason
// the stream ended.
func subscribeCmd(ctx context.Context, client *rpc.Client, clientID string, ref *programRef) tea.Cmd {
	return func() tea.Msg {
		stream, err := client.SubscribeStatus(ctx, &rpc.SubscribeRequest{Meta: requestMeta(clientID)})
		if err != nil {
			return StreamEndedMsg{Err: err}
		}
		for {
			ev, err := stream.Recv()
			if err != nil {
				if status.Code(err) == codes.AlreadyExists {
					return AlreadyOpenMsg{}
				}
				if rpc.IsEOF(err) || ctx.Err() != nil {
					return StreamEndedMsg{}
				}
				return StreamEndedMsg{Err: err}
			}
			switch ev.Kind {
			case rpc.EventFocus:
				ref.Send(FocusMsg{})
			case rpc.EventStatus:
				ref.Send(StatusUpdateMsg{Update: ev.Update})
			}
		}
	}
}

func clearSavedCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return ClearSavedMsg{} })
}

func clearFocusCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return ClearFocusMsg{} })
}

func requestMeta(clientID string) *rpc.RequestMeta {
	return &rpc.RequestMeta{Origin: "window", ClientID: clientID, Version: buildinfo.Version}
}
