package redact

import (
	"bytes"
	"testing"
)

func TestCreditCardPattern(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			name:      "dashed card keeps last four",
			input:     "Card: 4111-1111-1111-1111",
			want:      "Card: XXXX-XXXX-XXXX-1111",
			wantCount: 1,
		},
		{
			name:      "bare sixteen digits",
			input:     "Card: 4111111111111111",
			want:      "Card: XXXXXXXXXXXX1111",
			wantCount: 1,
		},
		{
			name:      "two cards in one body",
			input:     "Card1: 4111-1111-1111-1111, Card2: 5500-0000-0000-0004",
			want:      "Card1: XXXX-XXXX-XXXX-1111, Card2: XXXX-XXXX-XXXX-0004",
			wantCount: 2,
		},
		{
			name:      "seventeen digits is not a card",
			input:     "ref 41111111111111111",
			want:      "ref 41111111111111111",
			wantCount: 0,
		},
		{
			name:      "card at end of input",
			input:     "4111-1111-1111-1111",
			want:      "XXXX-XXXX-XXXX-1111",
			wantCount: 1,
		},
		{
			name:      "no match leaves input untouched",
			input:     "Hello, World!",
			want:      "Hello, World!",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := creditCardPattern{}.Apply([]byte(tt.input))
			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestSSNPattern(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			name:      "plain ssn",
			input:     "SSN: 123-45-6789",
			want:      "SSN: XXX-XX-XXXX",
			wantCount: 1,
		},
		{
			name:      "ssn inside json",
			input:     `{"ssn": "123-45-6789"}`,
			want:      `{"ssn": "XXX-XX-XXXX"}`,
			wantCount: 1,
		},
		{
			name:      "surrounding text preserved",
			input:     "Before 123-45-6789 After",
			want:      "Before XXX-XX-XXXX After",
			wantCount: 1,
		},
		{
			name:      "embedded in word is not an ssn",
			input:     "id123-45-6789x",
			want:      "id123-45-6789x",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := ssnPattern{}.Apply([]byte(tt.input))
			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			name:      "simple address",
			input:     "Contact: user@example.com",
			want:      "Contact: [EMAIL REDACTED]",
			wantCount: 1,
		},
		{
			name:      "dotted local part",
			input:     "Email: john.doe@example.com",
			want:      "Email: [EMAIL REDACTED]",
			wantCount: 1,
		},
		{
			name:      "address inside json",
			input:     `{"email": "a+b@mail.example.org"}`,
			want:      `{"email": "[EMAIL REDACTED]"}`,
			wantCount: 1,
		},
		{
			name:      "domain without dot is not an address",
			input:     "user@localhost",
			want:      "user@localhost",
			wantCount: 0,
		},
		{
			name:      "bare at sign",
			input:     "look @ this",
			want:      "look @ this",
			wantCount: 0,
		},
		{
			name:      "second at sign abuts a replaced span",
			input:     "a@b.com@c.d",
			want:      "[EMAIL REDACTED]@c.d",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := emailPattern{}.Apply([]byte(tt.input))
			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestPhoneUSPattern(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			name:      "dashed phone keeps last four",
			input:     "Phone: 555-123-4567",
			want:      "Phone: (XXX) XXX-4567",
			wantCount: 1,
		},
		{
			name:      "dotted phone",
			input:     "call 555.123.4567 now",
			want:      "call (XXX) XXX-4567 now",
			wantCount: 1,
		},
		{
			name:      "mixed separators rejected",
			input:     "555-123.4567",
			want:      "555-123.4567",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := phoneUSPattern{}.Apply([]byte(tt.input))
			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestPatternsPreserveInvalidUTF8(t *testing.T) {
	// Truncated multibyte rune around an SSN; the scanner must not panic and
	// must still mask the structural match.
	input := append([]byte{0xE4, 0xB8}, []byte(" 123-45-6789 ")...)
	got, count := ssnPattern{}.Apply(input)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	want := append([]byte{0xE4, 0xB8}, []byte(" XXX-XX-XXXX ")...)
	if !bytes.Equal(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}
