package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/pkg/config"
)

func testDBConfig() config.DBConfig {
	return config.DBConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", DBName: "handy_sync", SSLMode: "disable",
		MaxConns: 4, MinConns: 1, MaxConnLifetime: 10 * time.Minute, MaxConnIdleTime: time.Minute,
	}
}

func TestBuildPoolConfig_TomaLimitesDeConfig(t *testing.T) {
	pc, err := buildPoolConfig(testDBConfig())
	require.NoError(t, err)
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, 10*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_IPv4SoloSiSeConfigura(t *testing.T) {
	cfg := testDBConfig()
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Nil(t, pc.ConnConfig.DialFunc)

	cfg.ForceIPv4 = true
	pc, err = buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
	assert.Equal(t, "db", pc.ConnConfig.Host, "el host del DSN no se reescribe")
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://u@host:notaport/x", MaxConns: 1})
	assert.Error(t, err)
}

func TestIPv4Resolver_Literales(t *testing.T) {
	r := ipv4Resolver{}
	ip, err := r.lookup(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)

	_, err = r.lookup(context.Background(), "::1")
	assert.Error(t, err)
}
