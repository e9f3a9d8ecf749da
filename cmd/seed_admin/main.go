// seed_admin genera el script SQL que crea (o restablece) la cuenta admin inicial.
//
// Uso: go run ./cmd/seed_admin <email> <password>
// También lee SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_admin.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if len(os.Args) > 2 {
		email, password = os.Args[1], os.Args[2]
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		fmt.Fprintln(os.Stderr, "Uso: seed_admin <email> <password> (password de al menos 8 caracteres)")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar hash: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_admin.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if _, err := out.WriteString(adminSQL(uuid.New().String(), email, string(hash))); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s para %s\n", outPath, email)
}

// adminSQL inserta la cuenta activa con rol admin; si el email ya existe lo
// promueve a admin y reemplaza el password.
func adminSQL(id, email, hash string) string {
	var b strings.Builder
	b.WriteString("-- Cuenta admin inicial (generado por cmd/seed_admin)\n\n")
	b.WriteString("INSERT INTO users (id, email, password_hash, role, status,\n")
	b.WriteString("    can_view_stock_card, can_manage_stock, can_view_all_sales, can_delete_sales,\n")
	b.WriteString("    created_at, updated_at)\n")
	fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', 'admin', 'active', TRUE, TRUE, TRUE, TRUE, NOW(), NOW())\n",
		id, escapeSQL(email), escapeSQL(hash))
	b.WriteString("ON CONFLICT (email) DO UPDATE SET\n")
	b.WriteString("    password_hash = EXCLUDED.password_hash,\n")
	b.WriteString("    role = 'admin',\n")
	b.WriteString("    status = 'active',\n")
	b.WriteString("    updated_at = NOW();\n")
	return b.String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
