package jsoncodec

import "testing"

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "null", input: "null"},
		{name: "true", input: "true"},
		{name: "false", input: "false"},
		{name: "integer", input: "42"},
		{name: "negative", input: "-7"},
		{name: "float", input: "3.14"},
		{name: "exponent", input: "1e10"},
		{name: "string", input: `"hello"`},
		{name: "trailing garbage", input: "42 garbage", wantErr: true},
		{name: "unterminated string", input: `"abc`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseUint64PreservesRawToken(t *testing.T) {
	v, err := Parse([]byte("18446744073709551615")) // math.MaxUint64
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, ok := v.Uint64()
	if !ok {
		t.Fatalf("Uint64() ok=false")
	}
	if got != 18446744073709551615 {
		t.Errorf("Uint64() = %d, want max uint64", got)
	}
}

func TestParseUnicodeEscapes(t *testing.T) {
	// U+1F600 GRINNING FACE as a UTF-16 surrogate pair.
	v, err := Parse([]byte("\"\\ud83d\\ude00\""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := "\U0001F600"
	if v.Str != want {
		t.Errorf("Str = %q, want %q", v.Str, want)
	}
}

func TestParseObjectPreservesOrder(t *testing.T) {
	v, err := Parse([]byte(`{"b":1,"a":2,"c":3}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(v.Members) != 3 {
		t.Fatalf("len(Members) = %d, want 3", len(v.Members))
	}
	wantKeys := []string{"b", "a", "c"}
	for i, m := range v.Members {
		if m.Key != wantKeys[i] {
			t.Errorf("Members[%d].Key = %q, want %q", i, m.Key, wantKeys[i])
		}
	}
}

func TestParseArray(t *testing.T) {
	v, err := Parse([]byte(`[1,2,3]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(v.Array) != 3 {
		t.Fatalf("len(Array) = %d, want 3", len(v.Array))
	}
}

func TestRoundTripEncodeDecode(t *testing.T) {
	obj := Obj().
		Set("name", Str("gbf")).
		Set("version", Uint(1)).
		Set("nested", Obj().Set("x", Bool(true))).
		Set("list", Arr(Int(1), Int(2), Null()))

	data := Marshal(obj)
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal(obj)) failed: %v", err)
	}
	if parsed.GetString("name") != "gbf" {
		t.Errorf("name = %q, want gbf", parsed.GetString("name"))
	}
	version, ok := parsed.GetUint64("version")
	if !ok || version != 1 {
		t.Errorf("version = (%d, %v), want (1, true)", version, ok)
	}
	if !parsed.Get("nested").GetBool("x") {
		t.Errorf("nested.x = false, want true")
	}
}
