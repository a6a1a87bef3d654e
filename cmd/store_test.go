package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestOpenRootStoreRequiresStoreRoot(t *testing.T) {
	if _, err := openRootStore(); err == nil {
		t.Fatal("expected an error when --store-root is unset")
	}
}

func TestRunStoreSetGetLS(t *testing.T) {
	dir := t.TempDir()
	fs := RootCommand.PersistentFlags()
	if err := fs.Set("store-root", dir); err != nil {
		t.Fatalf("Set: %v", err)
	}
	defer fs.Set("store-root", "")

	if err := runStoreSet(strings.NewReader("hello"), "greeting.txt"); err != nil {
		t.Fatalf("runStoreSet: %v", err)
	}

	var buf bytes.Buffer
	if err := runStoreGet(&buf, "greeting.txt"); err != nil {
		t.Fatalf("runStoreGet: %v", err)
	}
	if buf.String() != "hello" {
		t.Fatalf("unexpected content: %q", buf.String())
	}

	var ls bytes.Buffer
	if err := runStoreLS(&ls, ""); err != nil {
		t.Fatalf("runStoreLS: %v", err)
	}
	if !strings.Contains(ls.String(), "greeting.txt") {
		t.Fatalf("expected greeting.txt in listing, got %q", ls.String())
	}
}
