package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat", chatCmd.Use)
}

func TestChatCmd_HasWatchFlag(t *testing.T) {
	flag := chatCmd.Flags().Lookup("watch")
	require.NotNil(t, flag, "watch flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_RequiresWatchDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	oldConfig := chatConfig
	chatConfig = nil
	defer func() {
		chatConfig = oldConfig
	}()

	err := runWatch(watchCmd, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "watch directory not configured")
}

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "port flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}
