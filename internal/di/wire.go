//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/catalogkit/product-catalog-service/internal/app"
)

func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		StoreSet,
		RepositorySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	))
}

func InitializeMigrationRunner() (*MigrationRunner, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		ProvideDB,
		NewMigrationRunner,
	))
}
