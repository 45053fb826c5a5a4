// Command token-generator mints bearer tokens for local development.
// The signing secret, issuer and lifetime come from the same configuration
// the server reads, so generated tokens are accepted by a local server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phrazzld/cityinfo-api/internal/config"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	city := fs.String("city", "", "city claim carried by the token (required)")
	subject := fs.String("subject", "developer", "subject claim")
	configFile := fs.String("config", "", "path to a YAML configuration file")
	lifetime := fs.Duration("lifetime", 0, "token lifetime, overriding auth.token_lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *city == "" {
		return fmt.Errorf("-city is required")
	}

	cfg, err := config.LoadFrom(*configFile)
	if err != nil {
		return err
	}
	authCfg := cfg.Auth
	if *lifetime > 0 {
		authCfg.TokenLifetime = *lifetime
	}

	svc, err := auth.NewJWTService(authCfg)
	if err != nil {
		return err
	}

	token, err := svc.GenerateToken(context.Background(), *subject, *city)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s\n# city=%s subject=%s expires=%s\n",
		token, *city, *subject, time.Now().Add(authCfg.TokenLifetime).UTC().Format(time.RFC3339))
	return err
}
