package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/aatrey56/ff-draft-assistant/internal/analytics"
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/config"
	"github.com/aatrey56/ff-draft-assistant/internal/logger"
	"github.com/aatrey56/ff-draft-assistant/internal/tools"
)

const apiKeyEnv = "DRAFTASSIST_MCP_API_KEY"

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "config file (yaml/json); empty uses defaults and DRAFTASSIST_* env")
		addr        = flag.String("addr", "", "HTTP listen address (overrides server.addr)")
		mcpPath     = flag.String("path", "", "HTTP path for MCP endpoint (overrides server.path)")
		catalogPath = flag.String("catalog", "", "player snapshot (.json or .db); overrides catalog.path")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via "+apiKeyEnv)
		authHeader  = flag.String("auth-header", "", "HTTP header to read API key from (overrides server.auth_header)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *mcpPath != "" {
		cfg.Server.Path = *mcpPath
	}
	if *authHeader != "" {
		cfg.Server.AuthHeader = *authHeader
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
		cfg.Catalog.Format = ""
	}
	cfg.Server.RequireAuth = cfg.Server.RequireAuth && *requireAuth
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Component("mcp")

	snap, err := catalog.Open(cfg.Catalog.Path, cfg.Catalog.Format)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	exec, err := tools.NewExecutor(snap, analytics.DefaultPolicy{})
	if err != nil {
		log.Fatalf("tools: %v", err)
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ff-draft-assistant",
			Version: "0.1.0",
		},
		nil,
	)
	registry := registerTools(server, exec, log)

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv(apiKeyEnv))
	if cfg.Server.RequireAuth && apiKey == "" {
		log.Fatalf("%s is required (set env var or run with --require-auth=false)", apiKeyEnv)
	}
	withAuth := authMiddleware(apiKey, cfg.Server.AuthHeader)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc(cfg.Server.Path, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.WithFields(logrus.Fields{"players": snap.Len(), "tools": len(registry)}).
		Infof("MCP HTTP server listening on %s%s", cfg.Server.Addr, cfg.Server.Path)
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatal(err)
	}
}

// registerTools exposes every executor tool with its generated input schema.
func registerTools(server *mcp.Server, exec *tools.Executor, log *logrus.Entry) []toolInfo {
	schemas := exec.Schemas()
	registry := make([]toolInfo, 0, len(schemas))
	for _, s := range schemas {
		name := s.Name
		registry = append(registry, toolInfo{Name: name, Description: s.Description})
		server.AddTool(&mcp.Tool{
			Name:        name,
			Description: s.Description,
			InputSchema: s.Parameters,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			res := exec.Execute(ctx, name, req.Params.Arguments)
			if !res.OK() {
				log.WithFields(logrus.Fields{"tool": name, "error": res.Error}).Warn("tool call failed")
				return toolError(errors.New(res.Error)), nil
			}
			b, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return toolError(err), nil
			}
			return toolJSONBytes(b), nil
		})
	}
	return registry
}

func authMiddleware(apiKey, header string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(header))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
