// Package messages renders user-facing text in the supported languages.
//
// Catalog keys are the English format strings, so English output needs no
// translation entry and unknown languages fall back to English.
package messages

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/algc-lang/algc/internal/types"
)

// Keys of the catalog.
const (
	keyTypeRedefinition        = "redefinition of type %[1]s"
	keyConstructorRedefinition = "redefinition of constructor %[1]s"
	keyFunctionRedefinition    = "redefinition of function %[1]s"
	keyFunctionNameMismatch    = "function name %[1]s in pattern does not match signature name %[2]s"
	keyArgumentCountMismatch   = "argument count (%[1]s) does not match signature (%[2]s)"
	keyRepeatedVariable        = "repeated variable %[1]s in pattern"
	keyUnknownVariable         = "unknown variable %[1]s"
	keyUnknownType             = "unknown type %[1]s"
	keyUnknownConstructor      = "unknown constructor %[1]s"
	keyUnknownFunction         = "unknown function %[1]s"
	keyTypeMismatch            = "type mismatch: expected %[1]s, got %[2]s"

	keySuccess  = "no semantic errors found"
	keyLocated  = "error %[1]s: %[2]s"
	keyInternal = "internal error: %[1]s"
)

var russian = map[string]string{
	keyTypeRedefinition:        "Переопределение типа %[1]s",
	keyConstructorRedefinition: "Переопределение конструктора %[1]s",
	keyFunctionRedefinition:    "Переопределение функции %[1]s",
	keyFunctionNameMismatch:    "Имя функции в образце %[1]s не совпадает с именем в сигнатуре %[2]s",
	keyArgumentCountMismatch:   "Количество аргументов (%[1]s) не совпадает с сигнатурой (%[2]s)",
	keyRepeatedVariable:        "Повторная переменная %[1]s в образце",
	keyUnknownVariable:         "Неизвестная переменная %[1]s",
	keyUnknownType:             "Неизвестный тип %[1]s",
	keyUnknownConstructor:      "Неизвестный конструктор %[1]s",
	keyUnknownFunction:         "Неизвестная функция %[1]s",
	keyTypeMismatch:            "Несоответствие типов: ожидался %[1]s, получен %[2]s",

	keySuccess:  "Семантических ошибок не найдено",
	keyLocated:  "Ошибка %[1]s: %[2]s",
	keyInternal: "Внутренняя ошибка: %[1]s",
}

// Supported lists the languages with a catalog, English first.
var Supported = []language.Tag{language.English, language.Russian}

var (
	cat     = newCatalog()
	matcher = language.NewMatcher(Supported)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range russian {
		if err := b.SetString(language.Russian, key, msg); err != nil {
			panic(fmt.Sprintf("messages: bad catalog entry %q: %v", key, err))
		}
	}
	return b
}

// ErrUnsupportedLanguage is returned by ParseLanguage for a language without
// a catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseLanguage maps a BCP 47 tag such as "ru" or "en-GB" to a supported
// language.
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %v", ErrUnsupportedLanguage, s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, fmt.Errorf("%w %q", ErrUnsupportedLanguage, s)
	}
	return Supported[idx], nil
}

// Localizer renders messages in one language.
type Localizer struct {
	printer *message.Printer
}

// New returns a Localizer for tag. Languages without a catalog get English.
func New(tag language.Tag) *Localizer {
	return &Localizer{printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Semantic returns the message of err without its position.
func (l *Localizer) Semantic(err *types.Error) string {
	switch err.Kind {
	case types.TypeRedefinition:
		return l.printer.Sprintf(keyTypeRedefinition, err.Name)
	case types.ConstructorRedefinition:
		return l.printer.Sprintf(keyConstructorRedefinition, err.Name)
	case types.FunctionRedefinition:
		return l.printer.Sprintf(keyFunctionRedefinition, err.Name)
	case types.FunctionNameMismatch:
		return l.printer.Sprintf(keyFunctionNameMismatch, err.Actual, err.Expected)
	case types.ArgumentCountMismatch:
		return l.printer.Sprintf(keyArgumentCountMismatch, err.Actual, err.Expected)
	case types.RepeatedVariable:
		return l.printer.Sprintf(keyRepeatedVariable, err.Name)
	case types.UnknownVariable:
		return l.printer.Sprintf(keyUnknownVariable, err.Name)
	case types.UnknownType:
		return l.printer.Sprintf(keyUnknownType, err.Name)
	case types.UnknownConstructor:
		return l.printer.Sprintf(keyUnknownConstructor, err.Name)
	case types.UnknownFunction:
		return l.printer.Sprintf(keyUnknownFunction, err.Name)
	case types.TypeMismatch:
		return l.printer.Sprintf(keyTypeMismatch, err.Expected, err.Actual)
	}
	return err.Message()
}

// Located returns the message of err prefixed with its position, as in
// "error (3, 7): unknown function foo".
func (l *Localizer) Located(err *types.Error) string {
	return l.printer.Sprintf(keyLocated, err.Span.String(), l.Semantic(err))
}

// Success returns the text reported for a program without semantic errors.
func (l *Localizer) Success() string {
	return l.printer.Sprintf(keySuccess)
}

// Internal returns the text reported for an internal fault.
func (l *Localizer) Internal(err error) string {
	return l.printer.Sprintf(keyInternal, err.Error())
}
