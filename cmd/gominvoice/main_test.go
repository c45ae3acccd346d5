package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Items(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{
		"-student", "Bella Grasso",
		"-item", "Algebra=6",
		"-rate", "350",
		"-number", "INV-1",
		"-date", "2025-09-28",
		"-output-dir", dir,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, filepath.Join(dir, "Invoice_INV-1_Bella_Grasso.pdf"), lines[0])
	assert.Equal(t, "Total: 2100.00", lines[1])
	assert.FileExists(t, lines[0])
}

func TestRun_CoursesAndTax(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{
		"-student", "Bella Grasso",
		"-course", "Monday", "-course", "Wednesday",
		"-hours", "2, 2",
		"-rate", "350",
		"-tax", "0.15",
		"-output-dir", dir,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Total: 1610.00")
}

func TestRun_ValidationExitCode(t *testing.T) {
	dir := t.TempDir()
	for name, args := range map[string][]string{
		"no items":      {"-student", "Bella", "-rate", "350"},
		"bad item":      {"-student", "Bella", "-item", "Algebra"},
		"bad hours":     {"-student", "Bella", "-course", "A", "-hours", "x"},
		"bad tax":       {"-student", "Bella", "-item", "A=1", "-tax", "lots"},
		"bad numbering": {"-student", "Bella", "-item", "A=1", "-numbering", "seq"},
		"mixed items":   {"-student", "Bella", "-item", "A=1", "-course", "B", "-hours", "1"},
	} {
		var stdout, stderr bytes.Buffer
		code := run(append(args, "-output-dir", dir), &stdout, &stderr)
		assert.Equal(t, 1, code, name)
		assert.Empty(t, stdout.String(), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tax_rate: 2\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "-student", "Bella", "-item", "A=1"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "tax_rate")
}
