package migrate

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string) error {
	t.Helper()
	return os.WriteFile(filepath.Join(dir, name), []byte("select 1;\n"), 0o644)
}

func TestSplitStatementsRespectsStringLiterals(t *testing.T) {
	script := `insert into lists(title) values ('a;b');create index idx on lists(title);`
	got := splitStatements(script)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if !strings.Contains(got[0], "'a;b'") {
		t.Fatalf("literal semicolon split: %q", got[0])
	}
}

func TestSplitStatementsKeepsTrailingStatement(t *testing.T) {
	got := splitStatements(`select 1; select 2`)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
}

func TestSQLFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_sessions.up.sql", "001_users.up.sql", "001_users.down.sql", "notes.txt"} {
		if err := writeFile(t, dir, name); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	got, err := sqlFiles(dir, ".up.sql")
	if err != nil {
		t.Fatalf("sqlFiles: %v", err)
	}
	want := []string{"001_users.up.sql", "002_sessions.up.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSQLFilesMissingDirIsEmpty(t *testing.T) {
	got, err := sqlFiles("/nonexistent/migrations", ".up.sql")
	if err != nil {
		t.Fatalf("sqlFiles: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no files, got %v", got)
	}
}
