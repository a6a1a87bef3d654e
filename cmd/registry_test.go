package cmd

import (
	"bytes"
	"testing"

	"github.com/orest-d/liquer-go/command"
)

func TestRunRegistryListEmptyByDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := runRegistryList(&buf, false); err != nil {
		t.Fatalf("runRegistryList: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected at least a table header")
	}
}

func TestRunRegistryListLongDoesNotError(t *testing.T) {
	var buf bytes.Buffer
	if err := runRegistryList(&buf, true); err != nil {
		t.Fatalf("runRegistryList: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected at least a table header")
	}
}

func TestDescribeArguments(t *testing.T) {
	cm := &command.CommandMetadata{
		Name: "lower",
		Arguments: []command.ArgInfo{
			{Name: "column", Type: command.TypeString},
			{Name: "extra", Type: command.TypeInteger, Multiple: true},
		},
	}
	got := describeArguments(cm)
	want := "column:String, extra:Integer*"
	if got != want {
		t.Fatalf("describeArguments = %q, want %q", got, want)
	}
}

func TestDescribeArgumentsEmpty(t *testing.T) {
	cm := &command.CommandMetadata{Name: "noop"}
	if got := describeArguments(cm); got != "" {
		t.Fatalf("describeArguments = %q, want empty", got)
	}
}
