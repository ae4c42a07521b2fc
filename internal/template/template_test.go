package template

import (
	"errors"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Placeholder
	}{
		{
			name:    "no tokens",
			content: "plain text, nothing bracketed\n",
			want:    nil,
		},
		{
			name:    "single token",
			content: "# Welcome to [PROJECT_NAME]\n",
			want: []Placeholder{
				{Token: "PROJECT_NAME", File: "a.md", Line: 1, Context: "# Welcome to [PROJECT_NAME]"},
			},
		},
		{
			name:    "repeated token reported once at first occurrence",
			content: "[TEAM_NAME] owns this.\nPing [TEAM_NAME] on weekdays.\n",
			want: []Placeholder{
				{Token: "TEAM_NAME", File: "a.md", Line: 1, Context: "[TEAM_NAME] owns this."},
			},
		},
		{
			name:    "two tokens one line",
			content: "[PROJECT_NAME] by [TEAM_NAME]\n",
			want: []Placeholder{
				{Token: "PROJECT_NAME", File: "a.md", Line: 1, Context: "[PROJECT_NAME] by [TEAM_NAME]"},
				{Token: "TEAM_NAME", File: "a.md", Line: 1, Context: "[PROJECT_NAME] by [TEAM_NAME]"},
			},
		},
		{
			name:    "later line numbers are one-based",
			content: "line one\nline two\n[THIRD_LINE] here\n",
			want: []Placeholder{
				{Token: "THIRD_LINE", File: "a.md", Line: 3, Context: "[THIRD_LINE] here"},
			},
		},
		{
			name:    "context is trimmed",
			content: "    [INDENTED] deep\n",
			want: []Placeholder{
				{Token: "INDENTED", File: "a.md", Line: 1, Context: "[INDENTED] deep"},
			},
		},
		{
			name:    "markdown link text is not a token",
			content: "see [the docs](https://example.com) and [x]\n",
			want:    nil,
		},
		{
			name:    "single capital letter is not a token",
			content: "grade [A] work\n",
			want:    nil,
		},
		{
			name:    "digits and underscores allowed after the first letter",
			content: "use [V2_NAME] here\n",
			want: []Placeholder{
				{Token: "V2_NAME", File: "a.md", Line: 1, Context: "use [V2_NAME] here"},
			},
		},
		{
			name:    "lowercase is not a token",
			content: "[project_name] stays literal\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan([]byte(tt.content), "a.md")
			if len(got) != len(tt.want) {
				t.Fatalf("Scan() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Scan()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	subs := map[string]string{
		"PROJECT_NAME": "orrery",
		"TEAM_NAME":    "Night Shift",
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "substitutes a token",
			content: "# [PROJECT_NAME]\n",
			want:    "# orrery\n",
		},
		{
			name:    "substitutes every occurrence",
			content: "[PROJECT_NAME] and [PROJECT_NAME] again, by [TEAM_NAME]\n",
			want:    "orrery and orrery again, by Night Shift\n",
		},
		{
			name:    "content without tokens unchanged",
			content: "nothing to do here\n",
			want:    "nothing to do here\n",
		},
		{
			name:    "non-token brackets untouched",
			content: "array[0] and [lowercase] and [A]\n",
			want:    "array[0] and [lowercase] and [A]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render([]byte(tt.content), subs, "a.md")
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_Unresolved(t *testing.T) {
	content := "known [PROJECT_NAME], unknown [MYSTERY_TOKEN]\n"

	out, err := Render([]byte(content), map[string]string{"PROJECT_NAME": "x"}, "greet.md")
	if out != nil {
		t.Error("Render() returned output alongside an unresolved token")
	}

	var unresolved *UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error = %T, want *UnresolvedError", err)
	}
	if unresolved.Token != "MYSTERY_TOKEN" {
		t.Errorf("Token = %q, want MYSTERY_TOKEN", unresolved.Token)
	}
	if unresolved.File != "greet.md" {
		t.Errorf("File = %q, want greet.md", unresolved.File)
	}
	if unresolved.Line != 1 {
		t.Errorf("Line = %d, want 1", unresolved.Line)
	}
}

func TestRender_EmptySubstitutionValue(t *testing.T) {
	got, err := Render([]byte("a[GAP]b\n"), map[string]string{"GAP": ""}, "a.md")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != "ab\n" {
		t.Errorf("Render() = %q, want \"ab\\n\"", got)
	}
}
