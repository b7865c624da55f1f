package types

import (
	"math"
	"testing"
	"time"
)

func TestIntValue(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		wantStr string
	}{
		{"positive", 42, "42"},
		{"negative", -123, "-123"},
		{"zero", 0, "0"},
		{"max", 9223372036854775807, "9223372036854775807"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val := Int(tt.value)
			if got := val.Type(); got != IntType {
				t.Errorf("Int.Type() = %v, want int", got)
			}
			if got := val.String(); got != tt.wantStr {
				t.Errorf("Int.String() = %v, want %v", got, tt.wantStr)
			}
		})
	}
}

func TestCrossTypeEquality(t *testing.T) {
	tests := []struct {
		name string
		lhs  Value
		rhs  Value
	}{
		{"int vs uint", Int(1), Uint(1)},
		{"int vs double", Int(1), Double(1)},
		{"string vs bytes", String("a"), Bytes("a")},
		{"bool vs int", True, Int(1)},
		{"null vs int", NullValue, IntZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lhs.Equal(tt.rhs); got != False {
				t.Errorf("%v == %v yielded %v, want false", tt.lhs, tt.rhs, got)
			}
		})
	}
}

func TestEqualityErrorPropagation(t *testing.T) {
	err := DivideByZeroErr()
	if got := Equal(err, Int(1)); got != err {
		t.Errorf("Equal(error, 1) = %v, want the error", got)
	}
	if got := Equal(Int(1), err); got != err {
		t.Errorf("Equal(1, error) = %v, want the error", got)
	}
	unk := NewUnknown(3)
	if got := Equal(unk, Int(1)); !IsUnknown(got) {
		t.Errorf("Equal(unknown, 1) = %v, want unknown", got)
	}
	// The error dominates the unknown.
	if got := Equal(unk, err); got != err {
		t.Errorf("Equal(unknown, error) = %v, want the error", got)
	}
}

func TestDoubleNaN(t *testing.T) {
	nan := Double(0).Divide(Double(0))
	if got := nan.Equal(nan); got != False {
		t.Errorf("NaN == NaN yielded %v, want false", got)
	}
}

func TestDoubleDivideByZero(t *testing.T) {
	got := Double(1).Divide(Double(0))
	d, ok := got.(Double)
	if !ok || !math.IsInf(float64(d), 1) {
		t.Errorf("1.0/0.0 = %v, want +Inf", got)
	}
	got = Double(-1).Divide(Double(0))
	d, ok = got.(Double)
	if !ok || !math.IsInf(float64(d), -1) {
		t.Errorf("-1.0/0.0 = %v, want -Inf", got)
	}
}

func TestBoolCompare(t *testing.T) {
	if got := False.Compare(True); got != IntNegOne {
		t.Errorf("false < true yielded %v", got)
	}
	if got := True.Compare(True); got != IntZero {
		t.Errorf("true cmp true yielded %v", got)
	}
}

func TestStringOps(t *testing.T) {
	s := String("héllo")
	if got := s.Size(); got != Int(5) {
		t.Errorf("size(%q) = %v, want 5 code points", s, got)
	}
	if got := String("foo").Add(String("bar")); got != String("foobar") {
		t.Errorf("string concat = %v", got)
	}
	if got := String("foo").Add(Int(1)); !IsError(got) {
		t.Errorf("string + int = %v, want no_such_overload", got)
	}
	if got := String("abc").Compare(String("abd")); got != IntNegOne {
		t.Errorf("compare = %v, want -1", got)
	}
	if got := String("hello").Receive("startsWith", "", []Value{String("he")}); got != True {
		t.Errorf("startsWith = %v", got)
	}
	if got := String("hello").Match(String("^h.*o$")); got != True {
		t.Errorf("matches = %v", got)
	}
	if got := String("hello").Match(String("(")); !IsError(got) {
		t.Errorf("bad pattern yielded %v, want error", got)
	}
}

func TestTimestampOps(t *testing.T) {
	ts := parseTimestamp("1986-04-26T01:23:40Z")
	tsVal, ok := ts.(Timestamp)
	if !ok {
		t.Fatalf("parseTimestamp returned %v", ts)
	}
	if got := tsVal.ConvertToType(IntType); got != Int(514862620) {
		t.Errorf("timestamp → int = %v, want 514862620", got)
	}
	later := tsVal.Add(DurationOf(time.Hour))
	if got := tsVal.Compare(later); got != IntNegOne {
		t.Errorf("ts < ts+1h yielded %v", got)
	}
	diff := later.(Timestamp).Subtract(tsVal)
	if d, ok := diff.(Duration); !ok || d.dur != time.Hour {
		t.Errorf("ts2 - ts1 = %v, want 1h duration", diff)
	}
}

func TestTimestampRange(t *testing.T) {
	if got := parseTimestamp("9999-12-31T23:59:59-01:00"); !IsError(got) {
		t.Errorf("out of range timestamp parsed to %v, want range error", got)
	}
	if got := parseTimestamp("not-a-time"); !IsError(got) {
		t.Errorf("malformed timestamp parsed to %v, want error", got)
	}
}

func TestDurationOps(t *testing.T) {
	d := parseDuration("90s")
	dur, ok := d.(Duration)
	if !ok {
		t.Fatalf("parseDuration returned %v", d)
	}
	if got := dur.ConvertToType(StringType); got != String("90s") {
		t.Errorf("duration → string = %v, want 90s", got)
	}
	if got := dur.Negate().(Duration).dur; got != -90*time.Second {
		t.Errorf("-90s = %v", got)
	}
	if got := parseDuration("bogus"); !IsError(got) {
		t.Errorf("malformed duration parsed to %v, want error", got)
	}
}

func TestTypeOfTypes(t *testing.T) {
	if got := Int(1).Type(); got.TypeName() != "int" {
		t.Errorf("type name = %v", got.TypeName())
	}
	if got := IntType.Type(); got != TypeType {
		t.Errorf("type of type = %v, want type", got)
	}
	if got := IntType.Equal(IntType); got != True {
		t.Errorf("int == int (types) yielded %v", got)
	}
	if got := IntType.Equal(UintType); got != False {
		t.Errorf("int == uint (types) yielded %v", got)
	}
}

func TestUnknownMerge(t *testing.T) {
	u1 := NewUnknown(1, 3)
	u2 := NewUnknown(3, 2)
	merged := u1.Equal(u2)
	ids := merged.(Unknown).IDs()
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("merged unknown ids = %v, want [1 2 3]", ids)
	}
}
