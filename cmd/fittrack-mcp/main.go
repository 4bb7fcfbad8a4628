package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fittrack/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "FitTrack server URL (e.g. https://fittrack.tail1234.ts.net)")
	historySize := flag.Int("history", 10, "recent workouts used for volume predictions")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fittrack-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: fittrack-mcp -server <URL> [-history N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	srv := mcp.New(mcp.NewHTTPClient(*serverURL), *historySize, Version, log)
	log.Info("serving MCP over stdio", "server", *serverURL)
	if err := server.ServeStdio(srv); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
