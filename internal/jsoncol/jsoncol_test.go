package jsoncol

import (
	"reflect"
	"testing"
)

func TestListRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   List
	}{
		{name: "empty", in: List{}},
		{name: "single", in: List{"a"}},
		{name: "many", in: List{"a", "b", "c"}},
		{name: "cyrillic", in: List{"нержавеющая сталь", "PVD покрытие"}},
		{name: "html_chars", in: List{"<b>&</b>"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.in.Value()
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			var out List
			if err := out.Scan(v); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if !reflect.DeepEqual(out, tc.in) {
				t.Fatalf("round trip: want=%v got=%v", tc.in, out)
			}
		})
	}
}

func TestListValuePreservesNonASCII(t *testing.T) {
	v, err := List{"каталог"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	got, ok := v.(string)
	if !ok {
		t.Fatalf("Value type: want string got %T", v)
	}
	want := `["каталог"]`
	if got != want {
		t.Fatalf("encoded text: want=%s got=%s", want, got)
	}
}

func TestMapRoundTrip(t *testing.T) {
	in := Map{"type": "PVD покрытие", "colors": []interface{}{"gold", "bronze"}}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var out Map
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip: want=%v got=%v", in, out)
	}
}

func TestScanToleratesBadInput(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
	}{
		{name: "nil", src: nil},
		{name: "empty_string", src: ""},
		{name: "whitespace", src: "   "},
		{name: "garbage", src: "not json"},
		{name: "truncated_list", src: `["a",`},
		{name: "truncated_map", src: `{"k":`},
		{name: "bytes_garbage", src: []byte{0xff, 0xfe}},
		{name: "wrong_shape", src: `{"k":"v"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var l List
			if err := l.Scan(tc.src); err != nil {
				t.Fatalf("List.Scan returned error: %v", err)
			}
			if l == nil || len(l) != 0 {
				t.Fatalf("List.Scan: want empty list, got %v", l)
			}
		})
	}
}

func TestMapScanToleratesBadInput(t *testing.T) {
	for _, src := range []interface{}{nil, "", "garbage", `{"k":`, `["a"]`} {
		var m Map
		if err := m.Scan(src); err != nil {
			t.Fatalf("Map.Scan(%v) returned error: %v", src, err)
		}
		if m == nil || len(m) != 0 {
			t.Fatalf("Map.Scan(%v): want empty map, got %v", src, m)
		}
	}
}

func TestDecodeHeuristic(t *testing.T) {
	cases := []struct {
		name string
		text string
		want interface{}
	}{
		{name: "empty", text: "", want: []interface{}{}},
		{name: "garbage", text: "oops", want: []interface{}{}},
		{name: "truncated_list", text: `["a"`, want: []interface{}{}},
		{name: "truncated_map", text: `{"a"`, want: map[string]interface{}{}},
		{name: "leading_space_map", text: `   {"a"`, want: map[string]interface{}{}},
		{name: "valid_list", text: `["a","b"]`, want: []interface{}{"a", "b"}},
		{name: "valid_map", text: `{"k":"v"}`, want: map[string]interface{}{"k": "v"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Decode(%q): want=%#v got=%#v", tc.text, tc.want, got)
			}
		})
	}
}

func TestEncodePassthrough(t *testing.T) {
	v, err := Encode(`["already","encoded"]`)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v != `["already","encoded"]` {
		t.Fatalf("Encode string passthrough: got %v", v)
	}

	v, err = Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if v != nil {
		t.Fatalf("Encode(nil): want NULL marker, got %v", v)
	}

	v, err = Encode([]string{"а", "б"})
	if err != nil {
		t.Fatalf("Encode(list): %v", err)
	}
	if v != `["а","б"]` {
		t.Fatalf("Encode(list): got %v", v)
	}
}
