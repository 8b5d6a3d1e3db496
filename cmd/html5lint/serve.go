package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/rule"
	"github.com/praetorian-inc/html5lint/pkg/scanner"
	"github.com/praetorian-inc/html5lint/pkg/serve"
)

var serveDisable string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming lint server",
	Long: `Run html5lint as a long-lived server that reads lint requests from
stdin and writes messages to stdout as newline-delimited JSON.

The catalogue is loaded once at startup. Requests are processed until
stdin closes, a close request arrives or SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveDisable, "disable", "", "Comma-separated checks to disable")
}

func runServe(cmd *cobra.Command, args []string) error {
	disabled, err := json.Marshal(rule.ParsePatterns(serveDisable))
	if err != nil {
		return err
	}
	core, err := scanner.NewCore(string(disabled), logger)
	if err != nil {
		return err
	}
	defer core.Close()

	checks, err := scanner.Checks()
	if err != nil {
		return err
	}
	disabledKinds, err := rule.ParseNames(serveDisable)
	if err != nil {
		return err
	}
	off := rule.KindSet(disabledKinds)
	var names []string
	for _, c := range checks {
		if !off[c.Kind] {
			names = append(names, c.Name)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(core, names, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
