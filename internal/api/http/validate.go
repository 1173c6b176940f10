package http

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/user"
)

var (
	validate   = validator.New()
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names rather than Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// requestError is a client error carrying optional per-field messages.
type requestError struct {
	msg    string
	fields map[string]string
}

func (e *requestError) Error() string { return e.msg }

func (e *requestError) write(w http.ResponseWriter) {
	body := map[string]any{"error": e.msg}
	if len(e.fields) > 0 {
		body["fields"] = e.fields
	}
	writeJSON(w, http.StatusBadRequest, body)
}

// decodeValid decodes a JSON body into dst and runs struct validation.
// msg is the top-level message used when validation fails.
func decodeValid(r *http.Request, dst any, msg string) *requestError {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &requestError{msg: msg}
		}
		var numErr *numberError
		if errors.As(err, &numErr) {
			return &requestError{msg: msg, fields: map[string]string{numErr.field: numErr.Error()}}
		}
		return &requestError{msg: "invalid JSON body"}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &requestError{msg: msg}
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Translate(translator)
		}
		return &requestError{msg: msg, fields: fields}
	}
	return nil
}

// passwordTooLong reports a password bcrypt cannot hash. The max tag counts
// runes, so multi-byte input can still exceed the byte limit.
func passwordTooLong(w http.ResponseWriter, field, msg string) {
	(&requestError{msg: msg, fields: map[string]string{field: user.ErrPasswordTooLong.Error()}}).write(w)
}
