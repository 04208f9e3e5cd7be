package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mazegame/api"
	"github.com/wricardo/mazegame/game/service"
	"github.com/wricardo/mazegame/logger"
	"github.com/wricardo/mazegame/transport/mcp"
	"github.com/wricardo/mazegame/transport/websocket"
)

// apiReachable reports whether a maze API answers its health check at baseURL
func apiReachable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the REST API on a random loopback port and returns
// its base URL
func startInternalAPI(ctx context.Context, gameService service.GameService) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Error("Internal HTTP server error")
		}
	}()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	return "http://" + listener.Addr().String(), nil
}

// runStdioMCP runs an MCP stdio server. It reuses the API at externalURL when
// it is reachable and otherwise starts an internal one.
func runStdioMCP(ctx context.Context, gameService service.GameService, externalURL string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	baseURL := externalURL
	if apiReachable(ctx, externalURL) {
		logger.Log.Infof("External API server found at %s, using it for MCP", externalURL)
	} else {
		var err error
		baseURL, err = startInternalAPI(ctx, gameService)
		if err != nil {
			return err
		}
		logger.Log.Infof("No external API server found, internal HTTP server on %s", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Log.Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
