package services

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace runs inside lines",
			in:   "Data   Analyst\t resume",
			want: "Data Analyst resume",
		},
		{
			name: "drops blank lines",
			in:   "Skills: Python\n\n\nExperience\n",
			want: "Skills: Python\nExperience",
		},
		{
			name: "trims leading and trailing spaces per line",
			in:   "  Objective  \n   Skills: SQL   ",
			want: "Objective\nSkills: SQL",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   " \t \n  \n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "Objective\n  Seeking a   data role\n\nSkills:  Python, SQL"
	once := Normalize(in)
	twice := Normalize(once)
	if once != twice {
		t.Errorf("Normalize not idempotent: %q vs %q", once, twice)
	}
}
