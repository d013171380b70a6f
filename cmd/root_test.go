package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRootCommandFlags tests that all expected CLI flags are present
func TestRootCommandFlags(t *testing.T) {
	configFlag := rootCmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	serverFlag := rootCmd.PersistentFlags().Lookup("server")
	assert.NotNil(t, serverFlag)
	assert.Equal(t, "string", serverFlag.Value.Type())

	promptFlag := rootCmd.PersistentFlags().Lookup("prompt")
	assert.NotNil(t, promptFlag)
	assert.Equal(t, "string", promptFlag.Value.Type())

	headlessFlag := rootCmd.PersistentFlags().Lookup("headless")
	assert.NotNil(t, headlessFlag)
	assert.Equal(t, "bool", headlessFlag.Value.Type())

	logLevelFlag := rootCmd.PersistentFlags().Lookup("log-level")
	assert.NotNil(t, logLevelFlag)
	assert.Equal(t, "info", logLevelFlag.DefValue)

	imageFlag := rootCmd.PersistentFlags().Lookup("image")
	assert.NotNil(t, imageFlag)
	assert.Equal(t, "i", imageFlag.Shorthand)
	assert.Equal(t, "stringSlice", imageFlag.Value.Type())

	noStreamFlag := rootCmd.PersistentFlags().Lookup("no-stream")
	assert.NotNil(t, noStreamFlag)
	assert.Equal(t, "bool", noStreamFlag.Value.Type())
}
