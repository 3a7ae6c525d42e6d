package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/chatwidget/internal/config"
	"github.com/dohr-michael/chatwidget/internal/heartbeat"
	"github.com/dohr-michael/chatwidget/internal/responder"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether a local stub responder is running",
		Action: func(ctx context.Context, _ *cli.Command) error {
			status, hb, err := heartbeat.Check(config.StubHeartbeatPath(), 3*heartbeat.DefaultInterval)
			if err != nil {
				return fmt.Errorf("check heartbeat: %w", err)
			}

			switch status {
			case heartbeat.StatusAlive:
				fmt.Printf("Stub: ALIVE (PID %d, %s%s, uptime %s, %d replies)\n",
					hb.PID, hb.Addr, hb.Endpoint, hb.Uptime, hb.Served)

				checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				defer cancel()
				if _, err := responder.CheckStub(checkCtx, nil, "http://"+hb.Addr); err != nil {
					fmt.Printf("Health: UNREACHABLE (%v)\n", err)
				} else {
					fmt.Println("Health: OK")
				}
			case heartbeat.StatusStale:
				fmt.Printf("Stub: STALE (PID %d, last heartbeat %s ago)\n",
					hb.PID, time.Since(hb.Timestamp).Truncate(time.Second))
			case heartbeat.StatusDead:
				fmt.Println("Stub: NOT RUNNING")
			}

			return nil
		},
	}
}
