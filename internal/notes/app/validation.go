package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/domain/query"
)

// Заголовок и текст после обрезки пробелов должны содержать не меньше двух символов.
type createForm struct {
	NotebookID string `json:"notebookId" validate:"required"`
	Title      string `json:"title" validate:"min=2"`
	Content    string `json:"content" validate:"min=2"`
}

type updateForm struct {
	Title   string `json:"title" validate:"min=2"`
	Content string `json:"content" validate:"min=2"`
}

// NoteValidator проверяет поля формы и возвращает нормализованные значения.
type NoteValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewNoteValidator настраивает validator с английскими сообщениями и именами полей из json-тегов.
func NewNoteValidator() (*NoteValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &NoteValidator{validate: validate, trans: trans}, nil
}

// Create проверяет данные новой заметки.
func (v *NoteValidator) Create(notebookID, title, content string, tags []string) (string, entities.NoteFields, error) {
	form := createForm{
		NotebookID: strings.TrimSpace(notebookID),
		Title:      strings.TrimSpace(title),
		Content:    strings.TrimSpace(content),
	}
	if err := v.check(form); err != nil {
		return "", entities.NoteFields{}, err
	}
	return form.NotebookID, fields(form.Title, form.Content, tags), nil
}

// Update проверяет данные редактирования.
func (v *NoteValidator) Update(title, content string, tags []string) (entities.NoteFields, error) {
	form := updateForm{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if err := v.check(form); err != nil {
		return entities.NoteFields{}, err
	}
	return fields(form.Title, form.Content, tags), nil
}

func (v *NoteValidator) check(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate note: %w", err)
	}

	verr := &entities.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = fe.Translate(v.trans)
	}
	return verr
}

func fields(title, content string, tags []string) entities.NoteFields {
	return entities.NoteFields{
		Title:   title,
		Content: content,
		Tags:    query.NormalizeTags(tags),
	}
}
