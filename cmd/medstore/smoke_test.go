package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/medstore/internal/app"
	"github.com/Skotchmaster/medstore/internal/config"
	"github.com/Skotchmaster/medstore/internal/httpserver"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/testutil"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/client"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

func smokeServer(t *testing.T) (*httptest.Server, httpserver.Services) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.AccessSecret = "a"
	cfg.Auth.RefreshSecret = "r"
	cfg.Auth.AccessTTL = time.Minute
	cfg.Auth.RefreshTTL = time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Pricing = config.Pricing{DiscountPercent: 10, FreeDeliveryThreshold: 299, DeliveryFee: 49}

	svcs := app.NewServices(cfg, repo.New(testutil.NewDB(t)), app.Infra{})
	srv := httptest.NewServer(httpserver.New(&httpserver.Deps{
		Services:     svcs,
		AccessSecret: []byte(cfg.Auth.AccessSecret),
	}, httpserver.Options{}))
	t.Cleanup(srv.Close)
	return srv, svcs
}

func TestRunSmoke(t *testing.T) {
	srv, svcs := smokeServer(t)
	ctx := context.Background()
	_, err := svcs.Catalog.Create(ctx, transport.CreateProductRequest{Name: "ORS", Price: 35, Category: "nutrition", Stock: 4}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	l := logging.NewWithWriter(&out, "debug", true)
	s, err := client.New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, runSmoke(ctx, s, l, "smoke@example.com", "secret1"))
	assert.Contains(t, out.String(), "step=cart")
	assert.Contains(t, out.String(), "step=logout")
	assert.NotContains(t, out.String(), "smoke_step_skipped")
}

func TestRunSmoke_EmptyCatalogSkipsCart(t *testing.T) {
	srv, _ := smokeServer(t)
	s, err := client.New(srv.URL)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runSmoke(context.Background(), s, logging.NewWithWriter(&out, "info", true), "x@example.com", "secret1"))
	assert.Contains(t, out.String(), "smoke_step_skipped")
}

func TestRunSmoke_FailsOnReusedAccount(t *testing.T) {
	srv, _ := smokeServer(t)
	ctx := context.Background()
	s, err := client.New(srv.URL)
	require.NoError(t, err)
	_, err = s.Register(ctx, client.Registration{Email: "dup@example.com", Password: "secret1", FullName: "Dup"})
	require.NoError(t, err)

	err = runSmoke(ctx, s, slog.New(slog.DiscardHandler), "dup@example.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register")
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "create-admin", "smoke"} {
		assert.True(t, names[want], want)
	}
	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "config/config.yaml", flag.DefValue)
}
