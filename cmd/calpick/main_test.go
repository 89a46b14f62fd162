package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectDateArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"calpick"},
			want: []string{"calpick"},
		},
		{
			name: "direct date first token",
			in:   []string{"calpick", "2024-03-05"},
			want: []string{"calpick", "pick", "--selected", "2024-03-05"},
		},
		{
			name: "date with time",
			in:   []string{"calpick", "2024-03-05 10:30"},
			want: []string{"calpick", "pick", "--selected", "2024-03-05 10:30"},
		},
		{
			name: "today keyword",
			in:   []string{"calpick", "today"},
			want: []string{"calpick", "pick", "--selected", "today"},
		},
		{
			name: "date after value flag",
			in:   []string{"calpick", "--locale", "en-GB", "2024-03-05"},
			want: []string{"calpick", "--locale", "en-GB", "pick", "--selected", "2024-03-05"},
		},
		{
			name: "date after equals flag",
			in:   []string{"calpick", "--kind=datetime", "2024-03-05"},
			want: []string{"calpick", "--kind=datetime", "pick", "--selected", "2024-03-05"},
		},
		{
			name: "date after bool flag",
			in:   []string{"calpick", "--pretty", "2024-03-05"},
			want: []string{"calpick", "--pretty", "pick", "--selected", "2024-03-05"},
		},
		{
			name: "date after double dash",
			in:   []string{"calpick", "--", "2024-03-05"},
			want: []string{"calpick", "pick", "--selected", "2024-03-05"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"calpick", "grid", "--date", "2024-03-05"},
			want: []string{"calpick", "grid", "--date", "2024-03-05"},
		},
		{
			name: "flag value that looks like a date is not rewritten",
			in:   []string{"calpick", "--dir", "2024-03-05"},
			want: []string{"calpick", "--dir", "2024-03-05"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectDateArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
