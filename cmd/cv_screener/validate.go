package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <result.json>",
	Short: "Validate an extraction result against its JSON schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchemaFile string

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "Path to a JSON schema file (default: the built-in extraction result schema)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var err error
	if validateSchemaFile != "" {
		err = schemas.ValidateJSON(validateSchemaFile, args[0])
	} else {
		err = schemas.ValidateResultFile(args[0])
	}
	if err == nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s failed validation with %d error(s)", args[0], len(validationErr.Errors))
	}
	return err
}
