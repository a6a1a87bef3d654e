package metadata

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWithFilenameSetsMediaType(t *testing.T) {
	m := New().WithFilename("out.txt")
	if m.Filename != "out.txt" {
		t.Fatalf("unexpected filename: %q", m.Filename)
	}
	if m.MediaType != "text/plain" {
		t.Fatalf("unexpected media type: %q", m.MediaType)
	}
}

func TestWithFilenameUnknownExtensionLeavesMediaType(t *testing.T) {
	m := New().WithMediaType("application/x-custom").WithFilename("out.weird")
	if m.MediaType != "application/x-custom" {
		t.Fatalf("unexpected media type: %q", m.MediaType)
	}
}

func TestWithCorrelationIDDoesNotOverwrite(t *testing.T) {
	m := New().WithCorrelationID("first")
	if m.CorrelationID != "first" {
		t.Fatalf("unexpected correlation id: %q", m.CorrelationID)
	}
	m2 := m.WithCorrelationID("second")
	if m2.CorrelationID != "first" {
		t.Fatalf("expected an existing correlation id to be kept, got %q", m2.CorrelationID)
	}
}

func TestLogAppendIsCopyOnWrite(t *testing.T) {
	nowFunc = func() time.Time { return time.Unix(0, 0).UTC() }
	defer func() { nowFunc = time.Now }()

	base := New()
	withInfo := base.Info("hello")
	if len(base.Log) != 0 {
		t.Fatalf("base metadata mutated: %v", base.Log)
	}
	if len(withInfo.Log) != 1 || withInfo.Log[0].Message != "hello" || withInfo.Log[0].Level != LevelInfo {
		t.Fatalf("unexpected log: %+v", withInfo.Log)
	}
}

func TestErrorSetsStatusAndMessage(t *testing.T) {
	m := New().Error("boom")
	if !m.IsError || m.Status != StatusError || m.Message != "boom" {
		t.Fatalf("unexpected error metadata: %+v", m)
	}
}

func TestStrictRoundTrip(t *testing.T) {
	m := New().WithQuery("hello/greet-world").WithStatus(StatusReady).WithFilename("out.txt").Info("done")
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.IsLegacy() {
		t.Fatalf("expected strict decode")
	}
	if decoded.Query != m.Query || decoded.MediaType != m.MediaType || decoded.Status != m.Status {
		t.Fatalf("round trip mismatch: %+v != %+v", decoded, m)
	}
}

func TestLegacyFallback(t *testing.T) {
	data := []byte(`{"query": "hello", "mimetype": "text/csv", "extra_field": 42}`)
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.IsLegacy() {
		t.Fatalf("expected legacy decode")
	}
	if decoded.Query != "hello" || decoded.MediaType != "text/csv" {
		t.Fatalf("unexpected legacy fields: %+v", decoded)
	}
	if v, ok := decoded.LegacyField("extra_field"); !ok || v.(float64) != 42 {
		t.Fatalf("unexpected legacy field lookup: %v, %v", v, ok)
	}

	// Legacy metadata must never be re-serialized in legacy form.
	reencoded, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var probe map[string]interface{}
	if err := json.Unmarshal(reencoded, &probe); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := probe["mimetype"]; ok {
		t.Fatalf("re-encoded metadata must not carry legacy mimetype key: %s", reencoded)
	}
}
