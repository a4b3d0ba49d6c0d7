// Package main provides the Veo video generation CLI.
//
// Usage:
//
//	veo [flags] <command> [args]
//
// Commands:
//
//	generate - Generate a video from a text prompt
//	models   - List model names and identifiers
//	schema   - Print the JSON schema of the predict body
//	history  - Inspect past generations
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.google-clients/veo/
//	Use 'veo config' commands to manage contexts. GOOGLE_GENAI_* variables
//	(and a .env file) override context settings.
package main

import (
	"fmt"
	"os"

	"github.com/vivekmathapati01/google-clients/cmd/veo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
