package cli

import (
	"context"
	"time"

	"github.com/easysurf/easysurf/internal/rpc"
)

const rpcTimeout = 5 * time.Second

// withDaemon connects to the running daemon and calls fn with a bridge client.
func withDaemon(fn func(ctx context.Context, client *rpc.Client) error) error {
	conn, err := rpc.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()
	return fn(ctx, rpc.NewClient(conn))
}

func cliMeta() *rpc.RequestMeta {
	return &rpc.RequestMeta{Origin: "cli"}
}
