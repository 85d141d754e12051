package entities

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "bare date", input: "2025-01-10", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2025-01-10T08:30:00Z", want: time.Date(2025, 1, 10, 8, 30, 0, 0, time.UTC)},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong order", input: "10-01-2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAttachmentToken(t *testing.T) {
	if got := AttachmentToken("abc"); got != "{{attachment:abc}}" {
		t.Errorf("AttachmentToken() = %q", got)
	}
}

func TestNote_Attachment(t *testing.T) {
	note := Note{Attachments: []NoteAttachment{{ID: "a"}, {ID: "b"}}}

	if att, ok := note.Attachment("b"); !ok || att.ID != "b" {
		t.Errorf("Attachment(b) = (%+v, %t)", att, ok)
	}
	if _, ok := note.Attachment("c"); ok {
		t.Error("Attachment(c) should not be found")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, p := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh} {
		if !p.IsValid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if TaskPriority("urgent").IsValid() || TaskPriority("").IsValid() {
		t.Error("unknown priority accepted")
	}

	for _, s := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TaskStatus("paused").IsValid() {
		t.Error("unknown status accepted")
	}
}
