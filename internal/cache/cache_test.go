package cache

import (
	"path/filepath"
	"testing"

	"github.com/goxlang/gox/internal/ircode"
	"github.com/goxlang/gox/internal/types"
)

func testProgram(buildID string) *ircode.Program {
	return &ircode.Program{
		BuildID: buildID,
		Globals: []string{"x"},
		Functions: []*ircode.Function{
			{
				Name:       ircode.EntryFunction,
				ReturnType: types.Int,
				Code: []ircode.Instruction{
					{Op: ircode.OP_CONSTI, Int: 42},
					{Op: ircode.OP_STOREG, Name: "x"},
					{Op: ircode.OP_CONSTI, Int: 0},
					{Op: ircode.OP_RET},
				},
			},
		},
	}
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMissThenHit(t *testing.T) {
	c := openTestCache(t)
	source := []byte("var x int = 42;")

	if _, hit, err := c.Get(source); err != nil || hit {
		t.Fatalf("fresh cache: hit=%v err=%v, want miss", hit, err)
	}

	if err := c.Put(source, testProgram("build-1")); err != nil {
		t.Fatal(err)
	}

	program, hit, err := c.Get(source)
	if err != nil || !hit {
		t.Fatalf("after put: hit=%v err=%v, want hit", hit, err)
	}
	if program.BuildID != "build-1" {
		t.Errorf("build id %s, want build-1", program.BuildID)
	}
	if len(program.Functions) != 1 || len(program.Functions[0].Code) != 4 {
		t.Errorf("program did not survive storage: %+v", program)
	}
}

func TestDifferentSourcesDoNotCollide(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put([]byte("print 1;"), testProgram("a")); err != nil {
		t.Fatal(err)
	}
	if err := c.Put([]byte("print 2;"), testProgram("b")); err != nil {
		t.Fatal(err)
	}

	program, hit, err := c.Get([]byte("print 2;"))
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if program.BuildID != "b" {
		t.Errorf("build id %s, want b", program.BuildID)
	}

	if n, err := c.Len(); err != nil || n != 2 {
		t.Errorf("len=%d err=%v, want 2", n, err)
	}
}

func TestPutReplacesExistingEntry(t *testing.T) {
	c := openTestCache(t)
	source := []byte("print 1;")

	c.Put(source, testProgram("old"))
	c.Put(source, testProgram("new"))

	program, hit, _ := c.Get(source)
	if !hit || program.BuildID != "new" {
		t.Errorf("got %+v, want the replacement entry", program)
	}
	if n, _ := c.Len(); n != 1 {
		t.Errorf("len=%d, want 1", n)
	}
}

func TestCorruptEntryTreatedAsMiss(t *testing.T) {
	c := openTestCache(t)
	source := []byte("print 1;")

	_, err := c.db.Exec(
		`INSERT INTO programs (source_hash, build_id, data, created_at) VALUES (?, ?, ?, ?)`,
		Key(source), "junk", []byte("not a program"), "2026-01-01",
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(source); err != nil || hit {
		t.Errorf("hit=%v err=%v, want silent miss", hit, err)
	}
	// Corrupt row is evicted.
	if n, _ := c.Len(); n != 0 {
		t.Errorf("len=%d, want 0 after eviction", n)
	}
}

func TestKeyIsStable(t *testing.T) {
	a := Key([]byte("print 1;"))
	b := Key([]byte("print 1;"))
	other := Key([]byte("print 2;"))
	if a != b {
		t.Error("same source must produce the same key")
	}
	if a == other {
		t.Error("different sources must produce different keys")
	}
	if len(a) != 64 {
		t.Errorf("key length %d, want 64 hex chars", len(a))
	}
}
