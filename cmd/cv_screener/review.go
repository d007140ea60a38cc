package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/manifoldco/promptui"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/extraction"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// fieldPrompter asks the operator for one field value.
type fieldPrompter interface {
	Prompt(label string, validate promptui.ValidateFunc) (string, error)
}

// terminalPrompter prompts on the controlling terminal.
type terminalPrompter struct{}

func (terminalPrompter) Prompt(label string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	return prompt.Run()
}

var fieldValidator = validator.New()

func validateEmail(input string) error {
	if err := fieldValidator.Var(strings.TrimSpace(input), "omitempty,email"); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

func validatePhone(input string) error {
	if strings.TrimSpace(input) != "" && parsePhone(input) == "" {
		return errors.New("expected a phone number")
	}
	return nil
}

// reviewResult prompts for every field the extractor left absent and fills in what the
// operator enters. An empty answer keeps the field absent. Values go through the same
// normalization as extracted ones.
func reviewResult(result *types.ExtractionResult, p fieldPrompter) error {
	for _, field := range result.MissingFields() {
		var err error
		switch field {
		case "name":
			err = ask(p, "Candidate name", nil, func(v string) {
				result.Name = strings.Join(strings.Fields(v), " ")
			})
		case "email":
			err = ask(p, "Email", validateEmail, func(v string) {
				result.Email = strings.ToLower(v)
			})
		case "phone":
			err = ask(p, "Phone", validatePhone, func(v string) {
				result.Phone = parsePhone(v)
			})
		case "github":
			err = ask(p, "GitHub username or URL", nil, func(v string) {
				result.Links.GitHub = profileURL(v, "github").GitHub
			})
		case "linkedin":
			err = ask(p, "LinkedIn username or URL", nil, func(v string) {
				result.Links.LinkedIn = profileURL(v, "linkedin").LinkedIn
			})
		case "skills":
			err = ask(p, "Skills (comma separated)", nil, func(v string) {
				result.Skills = extraction.ExtractSkills("Skills: " + v)
			})
		}
		if err != nil {
			return fmt.Errorf("failed to review %s: %w", field, err)
		}
	}
	return nil
}

func ask(p fieldPrompter, label string, validate promptui.ValidateFunc, apply func(string)) error {
	value, err := p.Prompt(label, validate)
	if err != nil {
		return err
	}
	if value = strings.TrimSpace(value); value != "" {
		apply(value)
	}
	return nil
}

func parsePhone(input string) string {
	return extraction.ExtractPhone("phone: " + input)
}

// profileURL accepts either a profile URL or a bare username.
func profileURL(value, label string) types.Links {
	if links := extraction.ExtractLinks(value); links != (types.Links{}) {
		return links
	}
	return extraction.ExtractLinks(label + ": " + value)
}
