package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yunitemcp/internal/domain"
)

func TestToolsCommandPrintsGroup(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(zap.NewNop(), &out)
	root.SetArgs([]string{"tools", "--group", "write"})
	require.NoError(t, root.Execute())

	var tools []struct {
		Name  string `json:"name"`
		Group string `json:"group"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &tools))
	require.Len(t, tools, 59)
	for _, tool := range tools {
		require.Equal(t, "write", tool.Group, tool.Name)
	}
}

func TestToolsCommandRejectsUnknownGroup(t *testing.T) {
	root := newRootCmd(zap.NewNop(), &bytes.Buffer{})
	root.SetArgs([]string{"tools", "--group", "admin"})
	require.Error(t, root.Execute())
}

func TestServeOverrideAppliesOnlyChangedFlags(t *testing.T) {
	cmd := newServeCmd(zap.NewNop(), &rootOptions{})
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "7100", "--http-allowed-origin", "https://a.example", "--no-probe"}))

	opts := &serveOptions{}
	opts.port, _ = cmd.Flags().GetInt("port")
	opts.httpAllowedOrigins, _ = cmd.Flags().GetStringArray("http-allowed-origin")
	opts.noProbe, _ = cmd.Flags().GetBool("no-probe")

	cfg := domain.Config{
		Auth:   domain.AuthConfig{ProbeOnStart: true},
		Server: domain.ServerConfig{Host: "10.0.0.1", Port: 7000, Path: "/custom", Transport: domain.TransportSSE},
	}
	serveOverride(cmd.Flags(), opts)(&cfg)

	require.Equal(t, 7100, cfg.Server.Port)
	require.Equal(t, "10.0.0.1", cfg.Server.Host)
	require.Equal(t, "/custom", cfg.Server.Path)
	require.Equal(t, domain.TransportSSE, cfg.Server.Transport)
	require.Equal(t, []string{"https://a.example"}, cfg.Server.AllowedOrigins)
	require.False(t, cfg.Auth.ProbeOnStart)
}

func TestParseToolArgs(t *testing.T) {
	args, err := parseToolArgs("")
	require.NoError(t, err)
	require.Empty(t, args)

	args, err = parseToolArgs(`{"user_id": 4, "is_active": true}`)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"user_id": float64(4), "is_active": true}, args)

	_, err = parseToolArgs(`[1]`)
	require.Error(t, err)
}
