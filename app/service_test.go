package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/heatplan/config"
	"github.com/kilianp07/heatplan/core/plan"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()
	forecastPath := writeFile(t, dir, "forecast.json", `{
  "demand": [1, 1, 1, 1],
  "price": [0.1, 0.3, 0.3, 0.1],
  "outdoor_temp": [8, 8, 8, 8],
  "start_buffer": 0
}`)
	cfgPath := writeFile(t, dir, "config.yaml", "forecast:\n  path: \""+forecastPath+"\"\n")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, svc.Close())
	}()

	var out bytes.Buffer
	svc.Out = &out
	require.NoError(t, svc.Run(context.Background()))

	var res plan.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res), "output must be valid JSON")
	assert.Len(t, res.Offsets, 4)
	assert.Len(t, res.Buffer, 4)
	assert.NotEmpty(t, res.PlanID)
	assert.False(t, res.Fallback)
}

func TestService_MissingForecast(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "forecast:\n  path: \""+filepath.Join(dir, "missing.json")+"\"\n")
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	svc, err := New(cfg)
	require.NoError(t, err)
	assert.Error(t, svc.Run(context.Background()))
}

func TestLoadForecast_RejectsEmptyVectors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "forecast.json", `{"demand": [], "price": [0.1]}`)
	_, err := LoadForecast(path)
	assert.Error(t, err, "empty demand must be rejected")

	path = writeFile(t, dir, "forecast2.json", `{"demand": [1], "price": []}`)
	_, err = LoadForecast(path)
	assert.Error(t, err, "empty price must be rejected")
}

func TestLoadForecast_ParsesStartBuffer(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "forecast.json", `{
  "demand": [1, 2],
  "price": [0.2, 0.3],
  "outdoor_temp": [4],
  "humidity": [85, 90],
  "start_buffer": 1.5
}`)
	in, err := LoadForecast(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, in.StartBuffer)
	assert.Equal(t, []float64{1, 2}, in.Demand)
	assert.Equal(t, []float64{85, 90}, in.Humidity)
}
