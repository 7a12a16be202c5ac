package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func findTableStatement(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			return stmt
		}
	}
	t.Fatalf("no schema statement for table %s", table)
	return ""
}

// Invoices and order lines exist only as long as their order, so removing an
// order row must take them along.
func TestSchema_OrderChildrenCascade(t *testing.T) {
	invoices := findTableStatement(t, "doc_invoices")
	require.Contains(t, invoices, "REFERENCES doc_orders(id) ON DELETE CASCADE")

	lines := findTableStatement(t, "doc_order_lines")
	require.Contains(t, lines, "REFERENCES doc_orders(id) ON DELETE CASCADE")
}
