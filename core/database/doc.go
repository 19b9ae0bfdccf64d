// Package database handles the shop database connection and schema
// inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections based on the application's
// configuration.
//
// # Connect
//
// Connect establishes and pings a MySQL connection. It knows nothing about
// the shop schema itself; the models in feature packages define what the
// tables look like.
//
// # Schema Inspection
//
// Shop databases in the field drift: installations rename, drop or re-case
// columns. GetTableColumns retrieves the live column definitions and
// MissingColumns compares them against what the models expect, which is how
// a transformation run verifies the schema before touching any data.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "ServiceHistory")
package database
