package runner

import (
	"fmt"
	"strings"
)

// language family the stub knows how to describe; nothing is ever executed
type Category int

const (
	CategoryUnsupported Category = iota
	CategoryScript
	CategoryPython
	CategoryMarkup
)

func (c Category) String() string {
	switch c {
	case CategoryScript:
		return "script"
	case CategoryPython:
		return "python"
	case CategoryMarkup:
		return "markup"
	default:
		return "unsupported"
	}
}

// result of a run request, Error is nil unless the stub itself failed
type Output struct {
	Category Category `json:"-"`
	Output   string   `json:"output"`
	Error    *string  `json:"error"`
}

func Classify(language string) Category {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "javascript", "typescript", "react":
		return CategoryScript
	case "python":
		return CategoryPython
	case "html", "css":
		return CategoryMarkup
	default:
		return CategoryUnsupported
	}
}

// describes what running the code would need; the code itself is not inspected
func Run(_ string, language string) Output {
	category := Classify(language)

	var text string

	switch category {
	case CategoryScript:
		text = "JavaScript code validation successful. Full execution requires additional sandbox setup."
	case CategoryPython:
		text = "Python execution requires a Python runtime environment"
	case CategoryMarkup:
		text = "HTML/CSS code is best viewed in the Preview tab"
	default:
		text = fmt.Sprintf("Execution for %s is not yet supported", language)
	}

	return Output{Category: category, Output: text}
}
