package chatparse

import "testing"

func TestParsePartialJSONCompleteValue(t *testing.T) {
	v, pos, healing, err := parsePartialJSON(`{"a":1,"b":"x"}`, "MARK")
	if err != nil {
		t.Fatalf("parsePartialJSON() error: %v", err)
	}
	if !healing.Empty() {
		t.Error("expected no healing for a complete value")
	}
	if pos != 15 {
		t.Errorf("pos = %d, want 15", pos)
	}
	if v.Kind != KindObject || len(v.Obj) != 2 {
		t.Fatalf("unexpected value shape: %+v", v)
	}
}

func TestParsePartialJSONHealsMissingValue(t *testing.T) {
	v, _, healing, err := parsePartialJSON(`{"name":"sum","arguments":{"a":1,"b":`, "MARK")
	if err != nil {
		t.Fatalf("parsePartialJSON() error: %v", err)
	}
	if healing.Empty() {
		t.Fatal("expected healing for truncated input")
	}
	args, ok := v.Get("arguments")
	if !ok {
		t.Fatal("expected arguments key")
	}
	bVal, ok := args.Get("b")
	if !ok || bVal.Kind != KindString || bVal.Str != "MARK" {
		t.Errorf("expected missing value 'b' healed to the marker string, got %+v", bVal)
	}
}

func TestParsePartialJSONHealsTruncatedStringValue(t *testing.T) {
	v, _, healing, err := parsePartialJSON(`{"text":"hello wor`, "MARK")
	if err != nil {
		t.Fatalf("parsePartialJSON() error: %v", err)
	}
	if healing.Empty() {
		t.Fatal("expected healing")
	}
	textVal, ok := v.Get("text")
	if !ok || textVal.Kind != KindString {
		t.Fatalf("expected string value, got %+v", textVal)
	}
	if textVal.Str != "hello worMARK" {
		t.Errorf("healed string = %q, want %q", textVal.Str, "hello worMARK")
	}
}

func TestParsePartialJSONHardErrorOnMalformedSyntax(t *testing.T) {
	if _, _, _, err := parsePartialJSON(`{"a": }`, "MARK"); err == nil {
		t.Error("expected hard error for malformed JSON with trailing bytes, got nil")
	}
}

func TestParsePartialJSONHealsTruncatedNumber(t *testing.T) {
	v, _, healing, err := parsePartialJSON(`{"n":1.`, "MARK")
	if err != nil {
		t.Fatalf("parsePartialJSON() error: %v", err)
	}
	if healing.Empty() {
		t.Fatal("expected healing for a truncated number")
	}
	nVal, ok := v.Get("n")
	if !ok || nVal.Kind != KindString {
		t.Fatalf("expected truncated number healed to marker string, got %+v", nVal)
	}
}

func TestParsePartialJSONHealsTruncatedLiteral(t *testing.T) {
	_, _, healing, err := parsePartialJSON(`tr`, "MARK")
	if err != nil {
		t.Fatalf("parsePartialJSON() error: %v", err)
	}
	if healing.Empty() {
		t.Error("expected healing for a truncated 'true' literal")
	}
}

func TestValueSerializeRoundTrip(t *testing.T) {
	v, _, _, err := parsePartialJSON(`{"a":1,"b":[true,false,null,"x"]}`, "MARK")
	if err != nil {
		t.Fatalf("parsePartialJSON() error: %v", err)
	}
	got := v.Serialize()
	want := `{"a":1,"b":[true,false,null,"x"]}`
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestCursorTryConsumeJSON(t *testing.T) {
	c := NewCursor(`{"a":1} trailing`, false)
	v, healing, ok, err := c.TryConsumeJSON("MARK")
	if err != nil || !ok {
		t.Fatalf("TryConsumeJSON() ok=%v err=%v", ok, err)
	}
	if !healing.Empty() {
		t.Error("expected no healing")
	}
	if v.Kind != KindObject {
		t.Errorf("Kind = %v, want KindObject", v.Kind)
	}
	if c.Remaining() != " trailing" {
		t.Errorf("Remaining() = %q, want %q", c.Remaining(), " trailing")
	}
}

func TestCursorTryConsumeJSONHealedOnCompleteInputIsPartialError(t *testing.T) {
	c := NewCursor(`{"a":`, false)
	_, _, ok, err := c.TryConsumeJSON("MARK")
	if ok {
		t.Fatal("expected ok=false when healing occurs on claimed-complete input")
	}
	if _, isPartial := err.(*Partial); !isPartial {
		t.Errorf("expected *Partial error, got %T: %v", err, err)
	}
}

func TestCursorTryConsumeJSONHealedOnPartialInputSucceeds(t *testing.T) {
	c := NewCursor(`{"a":`, true)
	_, healing, ok, err := c.TryConsumeJSON("MARK")
	if err != nil || !ok {
		t.Fatalf("TryConsumeJSON() on partial input ok=%v err=%v", ok, err)
	}
	if healing.Empty() {
		t.Error("expected healing info to be populated")
	}
}
