package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Importaciones-api/pkg/config"
	"github.com/jhoicas/Importaciones-api/pkg/jwt"
)

// Emite un JWT de operación (la gestión de usuarios vive fuera de este servicio).
// Uso: token -user <uuid> -company <uuid> -role admin|compras|bodeguero
func main() {
	userID := flag.String("user", "", "user_id del actor")
	companyID := flag.String("company", "", "company_id del actor")
	role := flag.String("role", jwt.RoleCompras, "admin | compras | bodeguero")
	flag.Parse()

	if *userID == "" || *companyID == "" {
		fmt.Fprintln(os.Stderr, "-user y -company son requeridos")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *companyID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
