// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

// Package drivertest provides helpers to run tests against a PostGIS
// instance. Tests either connect to the database named by the environment or
// start a disposable container.
package drivertest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-units"
	"github.com/jackc/pgx/v5"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Environment variables overriding the default test setup.
const (
	EnvDSN    = "PGGEOM_TEST_DSN"    // connect to an existing database instead of starting a container
	EnvImage  = "PGGEOM_TEST_IMAGE"  // container image (default postgis/postgis:16-3.4)
	EnvMemory = "PGGEOM_TEST_MEMORY" // container memory limit (default 512m)
)

const (
	defaultImage    = "postgis/postgis:16-3.4"
	defaultMemory   = "512m"
	defaultPassword = "pggeom"
	startupTimeout  = 2 * time.Minute
)

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// Server is a PostGIS instance usable by tests.
type Server struct {
	dsn       string
	container tc.Container
	logger    *slog.Logger
}

/*
Start returns a PostGIS server. If EnvDSN is set the named database is used;
otherwise a disposable container is started. The logger may be nil.
*/
func Start(ctx context.Context, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if dsn := os.Getenv(EnvDSN); dsn != "" {
		logger.LogAttrs(ctx, slog.LevelInfo, "using existing database", slog.String("dsn", dsn))
		return &Server{dsn: dsn, logger: logger}, nil
	}

	memory, err := units.RAMInBytes(envOr(EnvMemory, defaultMemory))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvMemory, err)
	}
	image := envOr(EnvImage, defaultImage)

	req := tc.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": defaultPassword,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(startupTimeout),
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Resources = container.Resources{Memory: memory}
		},
	}
	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", image, err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := ctr.MappedPort(ctx, "5432")
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("postgres://postgres:%s@%s:%s/postgres", defaultPassword, host, port.Port())
	logger.LogAttrs(ctx, slog.LevelInfo, "started container", slog.String("image", image), slog.String("dsn", dsn))
	return &Server{dsn: dsn, container: ctr, logger: logger}, nil
}

// DSN returns the connection string of the server.
func (s *Server) DSN() string { return s.dsn }

// Connect opens a pgx connection to the server.
func (s *Server) Connect(ctx context.Context) (*pgx.Conn, error) {
	return pgx.Connect(ctx, s.dsn)
}

// Close terminates the container if one was started.
func (s *Server) Close(ctx context.Context) error {
	if s.container == nil {
		return nil
	}
	return s.container.Terminate(ctx)
}
