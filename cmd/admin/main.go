// Consola de administración posjarabe: login, selección de franquicia,
// productos, ventas, usuarios y reportes contra el backend REST.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/posjarabe-admin/internal/application/auth"
	"github.com/jhoicas/posjarabe-admin/internal/application/permissions"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/api"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/storage"
	"github.com/jhoicas/posjarabe-admin/internal/session"
	"github.com/jhoicas/posjarabe-admin/pkg/config"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	store, err := storage.NewFileStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("abrir storage de sesión")
	}

	sess := session.New(store, log)
	authAPI := api.NewAuthHTTP(cfg.API.BaseURL, cfg.API.Timeout(), nil)
	authClient := auth.NewClient(authAPI, sess, log)
	client := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
	}, sess, authClient, log)

	cli := &console{
		sess:  sess,
		auth:  authClient,
		api:   client,
		perms: permissions.New(sess),
		log:   log,
		out:   os.Stdout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.API.Timeout()+10*time.Second)
	defer cancel()

	if err := cli.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
