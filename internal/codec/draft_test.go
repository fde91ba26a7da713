package codec

import (
	"testing"

	"valentine/internal/model"
	"valentine/internal/theme"
)

func TestFromDraftValid(t *testing.T) {
	cat := theme.Default()

	tests := []struct {
		name  string
		draft model.Draft
		want  model.Record
	}{
		{
			name:  "Custom question trimmed",
			draft: model.Draft{From: "  Alex ", To: "Sam\t", Question: " Will you? ", Style: "cats"},
			want:  model.Record{From: "Alex", To: "Sam", Question: "Will you?", Style: "cats"},
		},
		{
			name:  "Explicit custom preset",
			draft: model.Draft{From: "Alex", To: "Sam", QuestionPreset: model.CustomQuestion, Question: "Dinner?", Style: "dogs", YesText: " Yay "},
			want:  model.Record{From: "Alex", To: "Sam", Question: "Dinner?", Style: "dogs", YesText: "Yay"},
		},
		{
			name:  "Preset wins over typed text",
			draft: model.Draft{From: "Alex", To: "Sam", QuestionPreset: "classic", Question: "ignored", Style: "cute"},
			want:  model.Record{From: "Alex", To: "Sam", Question: "Will you be my Valentine? 💝", Style: "cute"},
		},
		{
			name:  "Blank yes text dropped",
			draft: model.Draft{From: "Alex", To: "Sam", Question: "q", Style: "memes", YesText: "   "},
			want:  model.Record{From: "Alex", To: "Sam", Question: "q", Style: "memes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, errs := FromDraft(tt.draft, cat)
			if len(errs) != 0 {
				t.Fatalf("Expected no field errors, got %v", errs)
			}
			if rec != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, rec)
			}
			if err := Validate(rec, cat); err != nil {
				t.Errorf("Expected valid record, got %v", err)
			}
		})
	}
}

func TestFromDraftFieldErrors(t *testing.T) {
	cat := theme.Default()

	tests := []struct {
		name   string
		draft  model.Draft
		fields []string
	}{
		{"Everything missing", model.Draft{}, []string{model.FieldFrom, model.FieldTo, model.FieldQuestion, model.FieldStyle}},
		{"Blank names", model.Draft{From: " ", To: " ", Question: "q", Style: "cats"}, []string{model.FieldFrom, model.FieldTo}},
		{"Custom preset without text", model.Draft{From: "a", To: "b", QuestionPreset: model.CustomQuestion, Style: "cats"}, []string{model.FieldQuestion}},
		{"Unknown preset", model.Draft{From: "a", To: "b", QuestionPreset: "sonnet", Style: "cats"}, []string{model.FieldQuestion}},
		{"Unknown style", model.Draft{From: "a", To: "b", Question: "q", Style: "dragons"}, []string{model.FieldStyle}},
		{"Invalid UTF-8", model.Draft{From: "A\xff", To: "b", Question: "q\xc3", Style: "cats", YesText: "\xfe"}, []string{model.FieldFrom, model.FieldQuestion, model.FieldYesText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, errs := FromDraft(tt.draft, cat)
			if rec != (model.Record{}) {
				t.Errorf("Expected zero record, got %+v", rec)
			}
			if len(errs) != len(tt.fields) {
				t.Fatalf("Expected %d field errors, got %v", len(tt.fields), errs)
			}
			for i, field := range tt.fields {
				if errs[i].Field != field {
					t.Errorf("Expected error %d on %q, got %q", i, field, errs[i].Field)
				}
				if errs[i].Message == "" {
					t.Errorf("Expected a message for %q", field)
				}
			}
		})
	}
}
