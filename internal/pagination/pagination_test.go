package pagination

import (
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name      string
		params    map[string]string
		want      Range
		requested bool
		wantErr   error
		parseErr  bool
	}{
		{"none", map[string]string{}, Range{}, false, nil, false},
		{"nil map", nil, Range{}, false, nil, false},
		{"unrelated keys only", map[string]string{"foo": "bar"}, Range{}, true, ErrMissingParameters, false},
		{"empty key", map[string]string{"": ""}, Range{}, true, ErrMissingParameters, false},
		{"valid with extra key", map[string]string{"start": "0", "end": "1", "foo": "bar"}, Range{0, 1}, true, nil, false},
		{"valid", map[string]string{"start": "1", "end": "3"}, Range{1, 3}, true, nil, false},
		{"equal", map[string]string{"start": "2", "end": "2"}, Range{2, 2}, true, nil, false},
		{"zero", map[string]string{"start": "0", "end": "0"}, Range{0, 0}, true, nil, false},
		{"only start", map[string]string{"start": "1"}, Range{}, true, ErrMissingParameters, false},
		{"only end", map[string]string{"end": "1", "foo": "x"}, Range{}, true, ErrMissingParameters, false},
		{"start > end", map[string]string{"start": "2", "end": "1"}, Range{}, true, ErrInvalidParameters, false},
		{"bad start", map[string]string{"start": "x", "end": "1"}, Range{}, true, nil, true},
		{"bad end", map[string]string{"start": "1", "end": "1.5"}, Range{}, true, nil, true},
		{"negative", map[string]string{"start": "-1", "end": "1"}, Range{}, true, nil, true},
		{"empty value", map[string]string{"start": "", "end": "1"}, Range{}, true, nil, true},
		{"overflow", map[string]string{"start": "0", "end": "999999999999999999999999"}, Range{}, true, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, requested, err := Resolve(tc.params)
			if requested != tc.requested {
				t.Fatalf("requested = %v; want %v", requested, tc.requested)
			}
			if tc.parseErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("err = %v; want *ParseError", err)
				}
				if pe.Err == nil || pe.Error() == "" {
					t.Fatalf("ParseError missing cause: %#v", pe)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v; want %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Fatalf("range = %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestParseError_UnwrapsCause(t *testing.T) {
	_, _, err := Resolve(map[string]string{"start": "abc", "end": "1"})
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("expected ParseError to wrap strconv.ErrSyntax, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Param != ParamStart || pe.Value != "abc" {
		t.Fatalf("unexpected ParseError: %#v", pe)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(3, 1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("New(3,1) err = %v", err)
	}
	if _, err := New(-1, 1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("New(-1,1) err = %v", err)
	}
	r, err := New(1, 4)
	if err != nil || r.Len() != 3 {
		t.Fatalf("New(1,4) = %+v, %v", r, err)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name    string
		in      Range
		length  int
		want    Range
		wantErr bool
	}{
		{"within", Range{1, 3}, 5, Range{1, 3}, false},
		{"end at length", Range{0, 5}, 5, Range{0, 5}, false},
		{"end beyond", Range{0, 10}, 1, Range{0, 1}, false},
		{"start at length", Range{3, 9}, 3, Range{3, 3}, false},
		{"start beyond", Range{4, 9}, 3, Range{}, true},
		{"empty collection", Range{0, 5}, 0, Range{0, 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Clamp(tc.in, tc.length)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidParameters) {
					t.Fatalf("err = %v; want ErrInvalidParameters", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Clamp(%+v, %d) = %+v; want %+v", tc.in, tc.length, got, tc.want)
			}
		})
	}
}

func TestPage_SubRangeOfFullResult(t *testing.T) {
	items := []int{10, 11, 12, 13, 14}
	for start := 0; start <= len(items); start++ {
		for end := start; end <= len(items)+3; end++ {
			r, err := New(start, end)
			if err != nil {
				t.Fatalf("New(%d,%d): %v", start, end, err)
			}
			r, err = Clamp(r, len(items))
			if err != nil {
				t.Fatalf("Clamp(%d,%d): %v", start, end, err)
			}
			got := Page(items, r)
			wantEnd := min(end, len(items))
			if !reflect.DeepEqual(got, items[start:wantEnd]) {
				t.Fatalf("Page[%d:%d] = %v; want %v", start, end, got, items[start:wantEnd])
			}
		}
	}
}

func TestFromQuery(t *testing.T) {
	q := url.Values{
		"start": {"1", "9"},
		"end":   {"2"},
		"flag":  {},
	}
	got := FromQuery(q)
	want := map[string]string{"start": "1", "end": "2", "flag": ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FromQuery = %v; want %v", got, want)
	}
}
