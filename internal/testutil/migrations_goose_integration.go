//go:build integration

package testutil

import (
	"context"
	"time"

	pgrepo "github.com/Gunvolt24/order_guard/internal/repo/postgres"
)

// ApplyMigrationsGoose применяет встроенные миграции к тестовой базе.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return pgrepo.Migrate(ctx, dsn)
}
