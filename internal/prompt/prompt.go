// Package prompt builds the instruction text sent to the language model.
//
// Two independent builders exist: Generation asks the model to invent a
// practice problem, and Solve wraps a user question in the solving
// template. Neither escapes its input; the model interprets the embedded
// text as-is.
package prompt

import (
	"strings"
	"text/template"
)

// DefaultLanguage is the programming language answers are requested in.
const DefaultLanguage = "Python"

// Builder produces prompts for a target programming language.
// The zero value uses DefaultLanguage.
type Builder struct {
	Language string
}

// DefaultBuilder returns a Builder targeting DefaultLanguage.
func DefaultBuilder() Builder {
	return Builder{Language: DefaultLanguage}
}

func (b Builder) language() string {
	if l := strings.TrimSpace(b.Language); l != "" {
		return l
	}
	return DefaultLanguage
}

// Generation builds the prompt that asks the model for a new practice
// problem. A non-blank topic is appended as a steering hint.
func (b Builder) Generation(topic string) string {
	return render(generationTemplate, templateData{
		Language: b.language(),
		Topic:    strings.TrimSpace(topic),
	})
}

// Solve builds the prompt that asks the model to solve question. The
// question is embedded verbatim.
func (b Builder) Solve(question string) string {
	return render(solveTemplate, templateData{
		Language: b.language(),
		Question: question,
	})
}

// BuildGenerationPrompt is Generation on the default builder.
func BuildGenerationPrompt(topic string) string {
	return DefaultBuilder().Generation(topic)
}

// BuildSolvePrompt is Solve on the default builder.
func BuildSolvePrompt(question string) string {
	return DefaultBuilder().Solve(question)
}

type templateData struct {
	Language string
	Topic    string
	Question string
}

func render(t *template.Template, data templateData) string {
	var b strings.Builder
	// Templates are static and data holds only strings, so Execute can
	// only fail on a programming error.
	if err := t.Execute(&b, data); err != nil {
		panic("prompt: " + err.Error())
	}
	return b.String()
}
