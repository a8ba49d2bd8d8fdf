package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dekarrin/mgolc/internal/compileserver"
	"github.com/dekarrin/mgolc/internal/config"
	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/tablegen"
	"github.com/spf13/pflag"
)

const (
	EnvListen  = "MGOLC_LISTEN_ADDRESS"
	EnvSecret  = "MGOLC_JWT_SECRET"
	EnvAPIHash = "MGOLC_ADMIN_KEY_HASH"
)

// runServe starts the compile server, consuming the subcommand's own
// argument slice (everything after "serve").
func runServe(args []string) {
	serveFlags := pflag.NewFlagSet("serve", pflag.ExitOnError)
	flagListen := serveFlags.StringP("listen", "l", "", "Listen on the given address")
	flagConfig := serveFlags.StringP("config", "c", "", "Read configuration overrides from the given TOML file")
	serveFlags.Parse(args)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitInitError
		return
	}

	listen := cfg.Server.Listen
	if listen == "" {
		listen = os.Getenv(EnvListen)
	}
	if *flagListen != "" {
		listen = *flagListen
	}
	if listen == "" {
		listen = "localhost:8080"
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		secret = os.Getenv(EnvSecret)
	}
	var jwtSecret []byte
	if secret != "" {
		jwtSecret = []byte(secret)
	} else {
		jwtSecret = make([]byte, 64)
		if _, err := rand.Read(jwtSecret); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not generate a JWT secret: %s\n", err)
			returnCode = ExitInitError
			return
		}
		log.Printf("WARN  using a generated JWT secret; sessions will not survive a restart")
	}

	adminKeyHash := cfg.Server.AdminKeyHash
	if adminKeyHash == "" {
		adminKeyHash = os.Getenv(EnvAPIHash)
	}
	if adminKeyHash == "" {
		fmt.Fprintln(os.Stderr, "ERROR: no admin API key hash configured (set server.admin_key_hash or "+EnvAPIHash+")")
		returnCode = ExitInitError
		return
	}

	tables, conflicts, err := tablegen.Build(mgrammar.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not build parse tables: %s\n", err)
		returnCode = ExitInitError
		return
	}
	for _, c := range conflicts {
		log.Printf("WARN  grammar conflict: state %d, terminal %s, kept %s over %s", c.State, c.Terminal, c.Kept, c.Rejected)
	}

	srv := compileserver.New(tables, jwtSecret, adminKeyHash)
	log.Printf("INFO  mgolc compile server listening on %s", listen)
	if err := http.ListenAndServe(listen, srv.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: server exited: %s\n", err)
		returnCode = ExitInitError
	}
}
