// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column names for the Postgres stores so
// queries are assembled from one source of truth.
package schema

// Qualify returns "table.column" for use in joins.
func Qualify(table, column string) string {
	return table + "." + column
}
