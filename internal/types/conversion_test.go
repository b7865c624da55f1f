package types

import (
	"math"
	"strconv"
	"testing"
)

func TestStringIntRoundTrip(t *testing.T) {
	for _, x := range []int64{0, 1, -1, 42, math.MaxInt64, math.MinInt64} {
		s := strconv.FormatInt(x, 10)
		parsed := String(s).ConvertToType(IntType)
		if parsed != Int(x) {
			t.Fatalf("int(%q) = %v, want %d", s, parsed, x)
		}
		back := parsed.ConvertToType(StringType)
		if back != String(s) {
			t.Fatalf("string(int(%q)) = %v, want %q", s, back, s)
		}
	}
}

func TestIntUintRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 500, math.MaxInt64} {
		u := Int(n).ConvertToType(UintType)
		if IsError(u) {
			t.Fatalf("uint(%d) errored: %v", n, u)
		}
		back := u.ConvertToType(IntType)
		if back != Int(n) {
			t.Fatalf("int(uint(%d)) = %v", n, back)
		}
	}
}

func TestUintConversionRange(t *testing.T) {
	if got := Int(-1).ConvertToType(UintType); !IsError(got) {
		t.Errorf("uint(-1) = %v, want range error", got)
	} else if got.(*Err).Kind() != KindRange {
		t.Errorf("uint(-1) error kind = %q, want range", got.(*Err).Kind())
	}
	if got := Uint(math.MaxUint64).ConvertToType(IntType); !IsError(got) {
		t.Errorf("int(maxUint) = %v, want range error", got)
	}
}

func TestBytesStringRoundTrip(t *testing.T) {
	b := Bytes("hello, wörld")
	s := b.ConvertToType(StringType)
	if IsError(s) {
		t.Fatalf("string(bytes) errored: %v", s)
	}
	back := s.ConvertToType(BytesType)
	if back.Equal(b) != True {
		t.Errorf("bytes(string(b)) = %v, want %v", back, b)
	}

	invalid := Bytes{0xff, 0xfe}
	if got := invalid.ConvertToType(StringType); !IsError(got) {
		t.Errorf("string(invalid utf-8) = %v, want conversion error", got)
	}
}

func TestDoubleToIntRounding(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{2.5, 3},
		{-2.5, -3},
		{2.4, 2},
		{-2.4, -2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Double(tt.in).ConvertToType(IntType); got != Int(tt.want) {
			t.Errorf("int(%v) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDoubleToIntRange(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e300} {
		got := Double(in).ConvertToType(IntType)
		e, ok := got.(*Err)
		if !ok || e.Kind() != KindRange {
			t.Errorf("int(%v) = %v, want range error", in, got)
		}
	}
	if got := Double(-0.4).ConvertToType(UintType); got != UintZero {
		t.Errorf("uint(-0.4) = %v, want 0", got)
	}
	if got := Double(-1).ConvertToType(UintType); !IsError(got) {
		t.Errorf("uint(-1.0) = %v, want range error", got)
	}
}

func TestIdentityConversions(t *testing.T) {
	vals := []Value{True, Int(1), Uint(1), Double(1), String("s"), Bytes("b"), NullValue}
	for _, v := range vals {
		if got := v.ConvertToType(v.Type()); got.Equal(v) != True {
			t.Errorf("identity conversion of %v yielded %v", v, got)
		}
	}
}

func TestUnsupportedConversion(t *testing.T) {
	got := True.ConvertToType(BytesType)
	e, ok := got.(*Err)
	if !ok || e.Kind() != KindTypeConversion {
		t.Errorf("bytes(true) = %v, want type_conversion error", got)
	}
	if e.Error() != "type conversion error from 'bool' to 'bytes'" {
		t.Errorf("unexpected message: %q", e.Error())
	}
}

func TestStringParsers(t *testing.T) {
	if got := String("123").ConvertToType(IntType); got != Int(123) {
		t.Errorf("int('123') = %v", got)
	}
	if got := String("1.5").ConvertToType(DoubleType); got != Double(1.5) {
		t.Errorf("double('1.5') = %v", got)
	}
	if got := String("true").ConvertToType(BoolType); got != True {
		t.Errorf("bool('true') = %v", got)
	}
	if got := String("nope").ConvertToType(IntType); !IsError(got) {
		t.Errorf("int('nope') = %v, want error", got)
	}
}
