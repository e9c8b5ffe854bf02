package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/Importaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Importaciones-api/pkg/config"
	"github.com/jhoicas/Importaciones-api/pkg/logger"
)

// Uso: migrate [up|down|status|version|redo|reset] [args...]. Las migraciones van embebidas en el binario.
func main() {
	flag.Parse()

	// .env es opcional; sin él se usan las variables del sistema.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})
	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env no encontrado, se usan variables de entorno")
	}

	goose.SetLogger(gooseLogger{log})

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	if err := postgres.RunMigrations(context.Background(), cfg.DB.ConnectionString(), command, args...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migraciones")
	}
	log.Info().Str("command", command).Msg("migraciones ok")
}

// gooseLogger adapta goose.Logger a zerolog.
type gooseLogger struct{ log *logger.Logger }

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatal().Msgf(format, v...) }
func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Info().Msgf(format, v...) }
