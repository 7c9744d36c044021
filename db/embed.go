// Package db provides the embedded PostgreSQL schema.
package db

import _ "embed"

// Schema contains the DDL statements for the catalog, coupon, order and
// staff key tables. Every statement is idempotent.
//
//go:embed migrations/001_schema.sql
var Schema string
