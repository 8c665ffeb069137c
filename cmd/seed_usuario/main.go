// seed_usuario crea el usuario inicial de la aplicación. Sin él una
// instalación nueva no tiene con qué iniciar sesión.
//
// Uso: go run ./cmd/seed_usuario <username> <password>
// Usa la misma configuración de BD que el servidor (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dsrcomercial/backoffice-api/internal/application/auth"
	"github.com/dsrcomercial/backoffice-api/internal/infrastructure/postgres"
	"github.com/dsrcomercial/backoffice-api/pkg/config"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_usuario <username> <password>")
		os.Exit(1)
	}
	username, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	authUC := auth.NewUsecase(postgres.NewUsuarioRepository(pool), auth.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})

	usuario, err := authUC.CrearUsuario(ctx, username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("usuario %s creado (id %s)\n", usuario.Username, usuario.ID)
}
