package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/pkg/logger"
)

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

	zl := l.Component("handy")
	zl.Info().Str("op", "customers").Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "handy", line["component"])
	assert.Equal(t, "customers", line["op"])
	assert.Equal(t, "info", line["level"])
}

func TestNivelInvalido_UsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "nope", Output: &buf})

	l.Debug().Msg("oculto")
	assert.Empty(t, buf.String(), "debug no debe escribirse con nivel info")

	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
