// Package service provides prompt building and draft generation for the
// drafting flow.
package service

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/allisson/replydesk/internal/drafting/domain"
	apperrors "github.com/allisson/replydesk/internal/errors"
)

// conditionAlways always includes a section, same as an absent condition.
const conditionAlways = "always"

// conditionIsSetPrefix includes a section when the named field is non-empty.
const conditionIsSetPrefix = "isset:"

// reviewPreamble is appended ahead of the review text as the final prompt
// section.
const reviewPreamble = "Hier ist die Bewertung, auf die du bitte antwortest:\n\n"

// placeholderPattern matches {{ field }} placeholders inside section text.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^}]+)\s*\}\}`)

// defaultTemplate is used when no template path is configured.
const defaultTemplate = `sections:
  - text: >-
      Du bist Community-Manager einer Physiotherapie-Gruppe und beantwortest
      öffentliche Google-Bewertungen im Namen des Unternehmens. Gehe konkret
      auf den Inhalt der Bewertung ein und bedanke dich für das Feedback.
  - condition: languageMode=de
    text: Antworte ausschließlich auf Deutsch und bleibe in der Sie-Form.
  - condition: languageMode=en
    text: Write the reply in English.
  - condition: selectedTone=friendly
    text: Formuliere warm und nahbar, ohne übertrieben förmlich zu klingen.
  - condition: selectedTone=formal
    text: Formuliere sachlich und professionell.
  - condition: isset:salutation
    text: Beginne die Antwort mit der Anrede "{{ salutation }}".
  - condition: isset:rating
    text: Die Bewertung hat {{ rating }} von 5 Sternen.
  - condition: isset:reviewType
    text: Es handelt sich um eine Bewertung vom Typ "{{ reviewType }}".
  - condition: isset:contactEmail
    text: >-
      Biete bei Kritik an, das Anliegen persönlich zu klären, und nenne dafür
      die E-Mail-Adresse {{ contactEmail }}.
  - condition: isset:corporateSignature
    text: Beende die Antwort mit der Grußformel "{{ corporateSignature }}".
  - text: >-
      Wenn die Bewertung konkrete, intern verwertbare Hinweise enthält, hänge
      nach der Antwort einen Abschnitt an, der mit "INSIGHTS:" beginnt und
      die Hinweise stichpunktartig auflistet. Gibt es keine Hinweise, lasse
      den Abschnitt weg.
`

// PromptTemplate is the document shape of a YAML prompt template.
type PromptTemplate struct {
	Sections []PromptSection `yaml:"sections"`
}

// PromptSection is one block of the prompt. An absent or "always" condition
// includes the block unconditionally; "isset:<field>" includes it when the
// field is non-empty; "<field>=<value>" includes it on equality. Sections
// with an unrecognized condition are skipped.
type PromptSection struct {
	Condition string `yaml:"condition,omitempty"`
	Text      string `yaml:"text"`
}

// PromptBuilder renders the generation prompt for a single review entry.
type PromptBuilder interface {
	Build(entry *domain.DraftEntry, settings *domain.DraftSettings) string
}

// promptBuilder implements PromptBuilder over a parsed template.
type promptBuilder struct {
	template *PromptTemplate
}

// Build evaluates each section condition against the entry and settings,
// substitutes placeholders, and appends the review block. Sections are
// joined with blank lines.
func (b *promptBuilder) Build(entry *domain.DraftEntry, settings *domain.DraftSettings) string {
	fields := promptFields(entry, settings)

	sections := make([]string, 0, len(b.template.Sections)+1)
	for _, section := range b.template.Sections {
		if !evaluateCondition(section.Condition, fields) {
			continue
		}
		text := strings.TrimSpace(section.Text)
		if text == "" {
			continue
		}
		sections = append(sections, substitutePlaceholders(text, fields))
	}

	sections = append(sections, reviewPreamble+entry.Review)
	return strings.Join(sections, "\n\n")
}

// promptFields flattens an entry and its settings into the field map used
// for conditions and placeholders. A zero rating is treated as unset.
func promptFields(entry *domain.DraftEntry, settings *domain.DraftSettings) map[string]string {
	rating := ""
	if entry.Rating > 0 {
		rating = strconv.Itoa(entry.Rating)
	}

	return map[string]string{
		"review":             entry.Review,
		"rating":             rating,
		"reviewType":         entry.ReviewType,
		"salutation":         entry.Salutation,
		"selectedTone":       settings.SelectedTone,
		"corporateSignature": settings.CorporateSignature,
		"contactEmail":       settings.ContactEmail,
		"languageMode":       settings.LanguageMode,
	}
}

func evaluateCondition(condition string, fields map[string]string) bool {
	condition = strings.TrimSpace(condition)
	if condition == "" || condition == conditionAlways {
		return true
	}

	if key, ok := strings.CutPrefix(condition, conditionIsSetPrefix); ok {
		return fields[strings.TrimSpace(key)] != ""
	}

	if key, value, ok := strings.Cut(condition, "="); ok {
		return fields[strings.TrimSpace(key)] == strings.TrimSpace(value)
	}

	return false
}

func substitutePlaceholders(text string, fields map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := strings.TrimSpace(placeholderPattern.FindStringSubmatch(match)[1])
		return fields[key]
	})
}

// NewPromptBuilder loads the prompt template from path. An empty path uses
// the built-in template.
func NewPromptBuilder(path string) (PromptBuilder, error) {
	if path == "" {
		template, err := parseTemplate([]byte(defaultTemplate))
		if err != nil {
			// This should never happen with the built-in template.
			panic(err)
		}
		return &promptBuilder{template: template}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "failed to read prompt template %s: %v", path, err)
	}

	template, err := parseTemplate(data)
	if err != nil {
		return nil, err
	}
	return &promptBuilder{template: template}, nil
}

// parseTemplate unmarshals a YAML template and rejects empty documents.
func parseTemplate(data []byte) (*PromptTemplate, error) {
	var template PromptTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "failed to parse prompt template: %v", err)
	}
	if len(template.Sections) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "prompt template has no sections")
	}
	return &template, nil
}
