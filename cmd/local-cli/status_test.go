package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCheck(t *testing.T) {
	var buf bytes.Buffer

	printCheck(&buf, "Host app installed", true)
	printCheck(&buf, "API server ready", false)

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Host app installed")
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "API server ready")
}

func TestStatusReportJSONShape(t *testing.T) {
	report := statusReport{
		AppInstalled:   true,
		AddonInstalled: true,
		AddonActivated: false,
		AppRunning:     true,
		APIReady:       false,
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]bool
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]bool{
		"appInstalled":   true,
		"addonInstalled": true,
		"addonActivated": false,
		"appRunning":     true,
		"apiReady":       false,
	}, decoded)
}
