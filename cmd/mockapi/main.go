package main

import (
	"github.com/jhoicas/posjarabe-admin/internal/mockapi"
	"github.com/jhoicas/posjarabe-admin/pkg/config"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.Mock.Addr()).
		Msg("iniciando mockapi posjarabe")

	server := mockapi.New(mockapi.Config{
		JWTSecret:     cfg.Mock.JWTSecret,
		JWTExpMinutes: cfg.Mock.JWTExpMinutes,
		JWTIssuer:     cfg.Mock.JWTIssuer,
	}, log)

	if err := server.Listen(cfg.Mock.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor mockapi")
	}
}
