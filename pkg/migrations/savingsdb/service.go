// Package savingsdb holds all the migrations for the savings API database
package savingsdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the savings API database
var Migrations = migrate.NewMigrations()
