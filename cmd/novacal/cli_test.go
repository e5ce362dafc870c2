// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRootCommandForTest(args ...string) (string, error) {
	root := buildRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	output, err := runRootCommandForTest("--help")
	require.NoError(t, err)

	for _, cmd := range []string{"onboard", "run", "chat", "status", "version"} {
		assert.Contains(t, output, cmd)
	}
}

func TestRootWithoutSubcommandFails(t *testing.T) {
	_, err := runRootCommandForTest()
	assert.Error(t, err)
}

func TestChatHelp(t *testing.T) {
	output, err := runRootCommandForTest("chat", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "--message")
}
