package chatparse

import (
	"strings"
	"testing"
)

func TestNewStateMarkerAbsentFromInput(t *testing.T) {
	input := `{"name":"search","arguments":{"q":"weather`
	s := NewState(input, true)
	if s.Marker == "" {
		t.Fatal("expected a non-empty marker")
	}
	if strings.Contains(input, s.Marker) {
		t.Errorf("marker %q occurs in input %q", s.Marker, input)
	}
	if s.Cursor.Pos() != 0 {
		t.Error("a fresh state's cursor should start at position 0")
	}
}

func TestStateFinishCompletesOnFullConsumption(t *testing.T) {
	s := NewState("hello", false)
	s.Builder.AddContent(s.Cursor.ConsumeRest())
	msg, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() error: %v", err)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
}

func TestStateFinishErrorsOnLeftoverCompleteInput(t *testing.T) {
	s := NewState("hello", false)
	if _, err := s.Finish(); err == nil {
		t.Error("Finish() should error when complete input has unconsumed bytes left")
	}
}
