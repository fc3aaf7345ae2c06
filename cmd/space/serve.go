package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/signadot/space/system/docd/server"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
	}

	serverConfig := server.DefaultConfig()
	if cfg.ConfigFile != "" {
		serverConfig, err = server.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.apply(serverConfig)

	srv, err := server.New(server.Spec{Config: serverConfig})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return srv.ListenAndServe(ctx)
}

// apply lets flags override the config file.
func (cfg *ServeConfig) apply(c *server.Config) {
	if cfg.Addr != "" {
		c.Addr = cfg.Addr
	}
	if cfg.Dir != "" {
		c.Dir = cfg.Dir
	}
	if cfg.Redis != "" {
		c.Redis.Addr = cfg.Redis
	}
	if cfg.Prefix != "" {
		c.Redis.Prefix = cfg.Prefix
	}
	if cfg.TTL != 0 {
		c.Redis.TTL = cfg.TTL
	}
}

