package codec

import (
	"strings"
	"unicode/utf8"

	"valentine/internal/model"
	"valentine/internal/theme"
)

// FromDraft validates form input and builds a record from it. On failure it
// returns one FieldError per offending field, in form order, and a zero
// record. All fields are trimmed; an empty yes text is dropped.
func FromDraft(d model.Draft, cat *theme.Catalog) (model.Record, []model.FieldError) {
	var errs []model.FieldError

	rec := model.Record{
		From:    strings.TrimSpace(d.From),
		To:      strings.TrimSpace(d.To),
		Style:   strings.TrimSpace(d.Style),
		YesText: strings.TrimSpace(d.YesText),
	}

	switch {
	case rec.From == "":
		errs = append(errs, model.FieldError{Field: model.FieldFrom, Message: "enter your name"})
	case !utf8.ValidString(rec.From):
		errs = append(errs, invalidText(model.FieldFrom))
	}
	switch {
	case rec.To == "":
		errs = append(errs, model.FieldError{Field: model.FieldTo, Message: "enter the recipient's name"})
	case !utf8.ValidString(rec.To):
		errs = append(errs, invalidText(model.FieldTo))
	}

	question, qerr := resolveQuestion(d, cat)
	if qerr != nil {
		errs = append(errs, *qerr)
	}
	rec.Question = question

	switch {
	case rec.Style == "":
		errs = append(errs, model.FieldError{Field: model.FieldStyle, Message: "pick a style"})
	case cat == nil:
		errs = append(errs, model.FieldError{Field: model.FieldStyle, Message: "no styles available"})
	default:
		if _, ok := cat.Lookup(rec.Style); !ok {
			errs = append(errs, model.FieldError{Field: model.FieldStyle, Message: "unknown style " + rec.Style})
		}
	}

	if !utf8.ValidString(rec.YesText) {
		errs = append(errs, invalidText(model.FieldYesText))
	}

	if len(errs) > 0 {
		return model.Record{}, errs
	}
	return rec, nil
}

func resolveQuestion(d model.Draft, cat *theme.Catalog) (string, *model.FieldError) {
	preset := strings.TrimSpace(d.QuestionPreset)
	custom := strings.TrimSpace(d.Question)

	if preset == "" || preset == model.CustomQuestion {
		if custom == "" {
			return "", &model.FieldError{Field: model.FieldQuestion, Message: "write a question or pick one"}
		}
		if !utf8.ValidString(custom) {
			fe := invalidText(model.FieldQuestion)
			return "", &fe
		}
		return custom, nil
	}

	if cat != nil {
		if p, ok := cat.Preset(preset); ok {
			return p.Text, nil
		}
	}
	return "", &model.FieldError{Field: model.FieldQuestion, Message: "unknown question " + preset}
}

func invalidText(field string) model.FieldError {
	return model.FieldError{Field: field, Message: "contains invalid characters"}
}
