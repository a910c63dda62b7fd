package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRunChainsListsTemplates(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := runChains(cmd, nil); err != nil {
		t.Fatalf("run chains: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "1\t") {
		t.Fatalf("expected chain 1 first, got %q", out)
	}
	if !strings.Contains(out, "[api-key]") {
		t.Fatalf("template should keep the key placeholder: %q", out)
	}
}
