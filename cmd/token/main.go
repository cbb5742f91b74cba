// Command token mints a bearer token for the tracking API using JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"yellowduck-gpx/internal/auth"
	"yellowduck-gpx/internal/config"
)

func main() {
	if err := run(os.Args[1:], config.Load(), os.Stdout); err != nil {
		slog.Error("token failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, cfg config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	subject := fs.String("sub", "", "token subject, stored as user_id")
	ttl := fs.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := auth.SignToken(cfg.JWTSecret, *subject, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

