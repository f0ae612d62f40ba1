package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewPassEvent(1, "audit", 0))
	l.Log(NewScoreEvent(1, "moves", 1, 2, 5))

	events := l.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Seq != 1 || events[1].Seq != 2 {
		t.Errorf("expected sequence 1,2, got %d,%d", events[0].Seq, events[1].Seq)
	}
	if got := l.EventsOfType(EventScore); len(got) != 1 || got[0].Player != 1 {
		t.Errorf("expected one score event for P2, got %+v", got)
	}
	if l.LastEvent().Type != EventScore {
		t.Errorf("expected last event Score, got %s", l.LastEvent().Type)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewWinEvent(7, "game-over", 0, "score reached 25"))

	out := buf.String()
	if !strings.Contains(out, "P1 wins!") {
		t.Errorf("expected win line, got %q", out)
	}
	if !strings.HasPrefix(out, "T7 ") {
		t.Errorf("expected turn prefix, got %q", out)
	}
	if len(l.Events()) != 1 {
		t.Errorf("text logger should also retain events")
	}
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		r.Append(s)
	}
	if got := strings.Join(r.Lines, ""); got != "cde" {
		t.Errorf("expected cde, got %s", got)
	}

	c := r.Clone()
	c.Append("f")
	if strings.Join(r.Lines, "") != "cde" {
		t.Errorf("clone must not alias the original")
	}
}
