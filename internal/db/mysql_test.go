package db

import (
	"regexp"
	"strings"
	"testing"
)

func TestMySQLSchemaEventTextColumns(t *testing.T) {
	var events string
	for _, stmt := range mysqlSchema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS events") {
			events = stmt
		}
	}
	if events == "" {
		t.Fatal("no events table in mysql schema")
	}

	for _, column := range []string{"title", "location"} {
		re := regexp.MustCompile(`(?m)^\s*` + column + `\s+(\w+)`)
		m := re.FindStringSubmatch(events)
		if m == nil {
			t.Fatalf("column %s not found", column)
		}
		if m[1] != "TEXT" {
			t.Fatalf("column %s is %s, want TEXT", column, m[1])
		}
	}

	altered := strings.Join(mysqlSchema, "\n")
	for _, stmt := range []string{"MODIFY title TEXT", "MODIFY location TEXT"} {
		if !strings.Contains(altered, stmt) {
			t.Fatalf("schema does not migrate existing tables with %q", stmt)
		}
	}
}
