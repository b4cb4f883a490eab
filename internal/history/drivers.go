package history

import (
	"fmt"
	"sort"
	"strings"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/mattn/go-sqlite3"     // SQLite (cgo)
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite (pure Go)
)

// dialect covers the differences between the supported databases that
// matter for the history table.
type dialect struct {
	placeholder func(n int) string
	text        string
	integer     string
}

func question(int) string { return "?" }

var (
	standard = dialect{placeholder: question, text: "VARCHAR", integer: "INTEGER"}

	drivers = map[string]dialect{
		"sqlite3":     standard,
		"sqlite":      standard,
		"mysql":       standard,
		"firebirdsql": standard,
		"postgres": {
			placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
			text:        "VARCHAR",
			integer:     "INTEGER",
		},
		"sqlserver": {
			placeholder: func(n int) string { return fmt.Sprintf("@p%d", n) },
			text:        "VARCHAR",
			integer:     "INTEGER",
		},
		"oracle": {
			placeholder: func(n int) string { return fmt.Sprintf(":%d", n) },
			text:        "VARCHAR2",
			integer:     "NUMBER(10)",
		},
	}
)

// Drivers returns the supported driver names, sorted.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for k := range drivers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// placeholders returns n comma separated parameter markers.
func (d dialect) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = d.placeholder(i + 1)
	}
	return strings.Join(marks, ", ")
}

func (d dialect) createTable() string {
	return fmt.Sprintf(`CREATE TABLE %s (
    session_id %s(64),
    seq %s,
    source_text %s(4000),
    outcome %s(4000),
    failed %s,
    created_at %s(40)
)`, tableName, d.text, d.integer, d.text, d.text, d.integer, d.text)
}
