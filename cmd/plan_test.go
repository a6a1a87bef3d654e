package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPlanPureResource(t *testing.T) {
	var buf bytes.Buffer
	if err := runPlan(&buf, "-R/hello.txt"); err != nil {
		t.Fatalf("runPlan: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "get_resource") {
		t.Fatalf("expected a get_resource row, got:\n%s", out)
	}
	if !strings.Contains(out, "hello.txt") {
		t.Fatalf("expected the key in the detail column, got:\n%s", out)
	}
}

func TestRunPlanInvalidQuery(t *testing.T) {
	var buf bytes.Buffer
	if err := runPlan(&buf, "not-a-registered-action"); err == nil {
		t.Fatal("expected an error for an unregistered action")
	}
}

func TestRunPlanResourceMetadata(t *testing.T) {
	var buf bytes.Buffer
	if err := runPlan(&buf, "-R-meta/hello.txt"); err != nil {
		t.Fatalf("runPlan: %v", err)
	}
	if !strings.Contains(buf.String(), "get_resource_metadata") {
		t.Fatalf("expected a get_resource_metadata row, got:\n%s", buf.String())
	}
}
