package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/commandbar/internal/cli"
	"github.com/aretw0/commandbar/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var drainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Print and remove intents waiting in the redis queue",
	Long: `Pops intents dispatched to the redis queue (sink.kind = "redis") and prints one JSON
envelope per line. With --follow it keeps waiting for new intents until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.Queue == nil {
			return fmt.Errorf("sink.kind is %q; drain needs the redis sink", app.Config.Sink.Kind)
		}
		follow, _ := cmd.Flags().GetBool("follow")
		wait, _ := cmd.Flags().GetDuration("wait")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		enc := json.NewEncoder(os.Stdout)
		for {
			_, env, err := app.Queue.Next(sigCtx, wait)
			switch {
			case errors.Is(err, redis.ErrQueueEmpty):
				if !follow {
					return nil
				}
				continue
			case sigCtx.Err() != nil:
				return nil
			case err != nil:
				return err
			}
			if err := enc.Encode(env); err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(drainCmd)
	drainCmd.Flags().Bool("follow", false, "Keep waiting for new intents")
	drainCmd.Flags().Duration("wait", time.Second, "How long to block for each intent")
}
