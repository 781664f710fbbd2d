package profile

import "testing"

func TestAppendLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial string
		lines   []string
		expect  string
	}{
		{
			name:   "empty value gets no separator",
			lines:  []string{"Aptitude Result: Strong logical reasoning skills."},
			expect: "Aptitude Result: Strong logical reasoning skills.",
		},
		{
			name:    "existing value is preserved",
			initial: "Go, SQL",
			lines:   []string{"Aptitude Result: Developing logical reasoning."},
			expect:  "Go, SQL\nAptitude Result: Developing logical reasoning.",
		},
		{
			name:    "two appends are separated by a single newline",
			initial: "  Python \n",
			lines:   []string{"first", "second"},
			expect:  "  Python \n\nfirst\nsecond",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(tt.initial)
			for _, line := range tt.lines {
				p.AppendLine(line)
			}

			if got := p.Read(); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestSetAndLines(t *testing.T) {
	p := New("")
	p.Set("Go\n\nDocker")
	p.AppendLine("Aptitude Result: x")

	lines := p.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if lines[2] != "Aptitude Result: x" {
		t.Fatalf("unexpected last line: %q", lines[2])
	}
}
