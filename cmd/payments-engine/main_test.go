package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_ReportsAccounts(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	path := writeInput(t, `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
`)

	stdout, _, err := execute(t, path)
	require.NoError(t, err)

	expected := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,2.0000,0.0000,2.0000,false\n"
	assert.Equal(t, expected, stdout)
}

func TestRootCmd_ChargebackLocksAccount(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	path := writeInput(t, `type,client,tx,amount
deposit,1,1,10
dispute,1,1,
chargeback,1,1,
deposit,1,2,5
`)

	stdout, _, err := execute(t, path)
	require.NoError(t, err)

	expected := "client,available,held,total,locked\n" +
		"1,0.0000,0.0000,0.0000,true\n"
	assert.Equal(t, expected, stdout)
}

func TestRootCmd_RequiresExactlyOneArgument(t *testing.T) {
	stdout, _, err := execute(t)
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestRootCmd_MissingInputFile(t *testing.T) {
	stdout, _, err := execute(t, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
	assert.Empty(t, stdout)
}

func TestRootCmd_MalformedRecordWritesNoReport(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	path := writeInput(t, `type,client,tx,amount
deposit,1,1,1.0
transfer,1,2,1.0
`)

	stdout, _, err := execute(t, path)
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Setenv("QUEUE_CAPACITY", "0")

	_, _, err := execute(t, writeInput(t, "type,client,tx,amount\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUEUE_CAPACITY")
}

func TestRootCmd_ServesMetricsDuringRun(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("METRICS_ADDR", "127.0.0.1:0")

	stdout, _, err := execute(t, writeInput(t, "type,client,tx,amount\ndeposit,3,1,0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n3,0.5000,0.0000,0.5000,false\n", stdout)
}
