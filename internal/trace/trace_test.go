package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"driver", LevelDriver, false},
		{"PASS", LevelPass, false},
		{"unit", LevelUnit, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelDriver, ScopeDriver, true},
		{LevelDriver, ScopePass, false},
		{LevelPass, ScopePass, true},
		{LevelPass, ScopeUnit, false},
		{LevelUnit, ScopeUnit, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestSpanRoundTripThroughRing(t *testing.T) {
	ring := NewRingTracer(16, LevelUnit)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := StartSpan(ctx, ScopeDriver, "check")
	_, inner := StartSpan(ctx, ScopeUnit, "unit:a.tig")
	inner.WithExtra("tokens", "3").End("ok")
	outer.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("want 4 events, got %d", len(events))
	}
	if events[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", events[1].ParentID, outer.ID())
	}
	if events[2].Kind != KindSpanEnd || events[2].Extra["tokens"] != "3" || events[2].Detail != "ok" {
		t.Errorf("unexpected inner end %+v", events[2])
	}
}

func TestDisabledScopeYieldsInertSpan(t *testing.T) {
	ring := NewRingTracer(4, LevelDriver)
	s := Begin(ring, ScopeUnit, "unit", 0)
	if s.ID() != 0 {
		t.Fatalf("filtered span got id %d", s.ID())
	}
	s.End("")
	if n := len(ring.Snapshot()); n != 0 {
		t.Fatalf("filtered span emitted %d events", n)
	}
	if d := Begin(nil, ScopeDriver, "x", 0).End(""); d != 0 {
		t.Fatalf("nil tracer span reported duration %v", d)
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelUnit)
	for i := range 5 {
		ring.Emit(&Event{Seq: uint64(i + 1), Kind: KindPoint, Scope: ScopeDriver})
	}
	events := ring.Snapshot()
	if len(events) != 3 || events[0].Seq != 3 || events[2].Seq != 5 {
		t.Fatalf("unexpected snapshot %+v", events)
	}
}

func TestStreamFormats(t *testing.T) {
	var text, nd bytes.Buffer
	ev := &Event{Seq: 7, Kind: KindSpanEnd, Scope: ScopePass, Name: "parse", Detail: "ok", Extra: map[string]string{"b": "2", "a": "1"}, ParentID: 1}

	NewStreamTracer(&text, LevelPass, FormatText).Emit(ev)
	if got, want := text.String(), "#7      [pass]   ← parse (ok) {a=1, b=2}\n"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}

	NewStreamTracer(&nd, LevelPass, FormatNDJSON).Emit(ev)
	var decoded map[string]any
	if err := json.Unmarshal(nd.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", nd.String(), err)
	}
	if decoded["name"] != "parse" || decoded["kind"] != "end" || decoded["scope"] != "pass" {
		t.Errorf("unexpected NDJSON %v", decoded)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamRemembersWriteError(t *testing.T) {
	st := NewStreamTracer(failingWriter{}, LevelDriver, FormatText)
	st.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: "x"})
	if err := st.Flush(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Flush() = %v, want write error", err)
	}
}

func TestNewSelectsImplementation(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff: %v, enabled=%v", err, tr.Enabled())
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPass, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("ModeBoth built %T", tr)
	}
	var ring *RingTracer
	for _, child := range multi.tracers {
		if r, ok := child.(*RingTracer); ok {
			ring = r
		}
	}
	if ring == nil {
		t.Fatal("ModeBoth has no ring")
	}
	Point(tr, ScopeDriver, "start", "", 0)
	if buf.Len() == 0 || len(ring.Snapshot()) != 1 {
		t.Fatal("event not fanned out")
	}
	if _, err := New(Config{Level: LevelPass}); err == nil {
		t.Fatal("missing mode accepted")
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat started on a disabled tracer")
	}
	ring := NewRingTracer(64, LevelDriver)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(ring.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
}
