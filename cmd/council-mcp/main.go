package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"council/internal/appdirs"
	"council/internal/cliengine"
	"council/internal/engine"
	"council/internal/envutil"
	"council/internal/logging"
	"council/internal/rpc"
)

func main() {
	_ = godotenv.Load(".env")
	debug := envutil.Bool("COUNCIL_DEBUG")
	// Stdout carries JSON-RPC frames; all diagnostics stay on stderr.
	logger := logging.NewStderrLogger(debug).With("component", "engine")

	configPath := envutil.String("COUNCIL_CONFIG", "")
	if configPath == "" {
		dataDir, err := appdirs.DataDir()
		if err != nil {
			logger.Warn("engine.data_dir_unavailable", "error", err.Error())
		} else {
			configPath = filepath.Join(dataDir, "config.yaml")
		}
	}
	var config cliengine.Config
	if configPath != "" {
		loaded, err := cliengine.LoadConfig(configPath)
		if err != nil {
			logger.Warn("engine.config_load_failed", "path", configPath, "error", err.Error())
		} else {
			config = loaded
		}
	}

	runner := cliengine.New(config, logger.With("component", "cliengine"))
	eng := engine.New(engine.WithLogger(logger), engine.WithRunner(runner))

	server := rpc.NewServer(os.Stdin, os.Stdout, logger)
	server.Register("initialize", eng.Initialize)
	server.Register("tools/list", eng.ToolsList)
	server.Register("tools/call", eng.ToolsCall)

	if err := server.Serve(context.Background()); err != nil {
		logger.Error("rpc.server_error", "error", err.Error())
		log.Fatalf("rpc server error: %v", err)
	}
}
