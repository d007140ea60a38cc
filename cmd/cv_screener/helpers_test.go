package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every command flag variable to its default so commands can be
// executed repeatedly in one process.
func resetFlags() {
	cfgFile = ""

	extractOutFile = ""
	extractVerbose = false
	extractInteractive = false

	batchOutFile = ""
	batchXLSXFile = ""
	batchConcurrency = 0
	batchTitle = ""
	batchMandatory = nil
	batchPreferred = nil

	scoreResultFile = ""
	scoreOutFile = ""
	scoreVerbose = false
	scoreMandatory = nil
	scorePreferred = nil

	validateSchemaFile = ""

	qualityOutFile = ""
	qualityVerbose = false

	servePort = 0
}

const samplePDF = `%PDF-1.4
1 0 obj << /Length 80 >>
stream
BT (Jane Doe\nSkills: Go, Docker, Kubernetes\njane@acme.io) Tj ET
endstream
endobj
%%EOF`

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// scriptedPrompter answers prompts by label and records what was asked.
type scriptedPrompter struct {
	answers map[string]string
	asked   []string
	err     error
}

func (p *scriptedPrompter) Prompt(label string, validate promptui.ValidateFunc) (string, error) {
	p.asked = append(p.asked, label)
	if p.err != nil {
		return "", p.err
	}
	answer := p.answers[label]
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}
