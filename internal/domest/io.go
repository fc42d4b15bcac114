// Package domest plans and executes the domestication of DNA sequences
// for Type IIS (Golden Gate) assembly: removing internal recognition
// sites by silent mutation or by mutagenic fragment junctions, and
// picking the overhang set with the best assembly fidelity
package domest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// stderr is for logging to the stderr of the terminal
var stderr = log.New(os.Stderr, "", 0)

// guessOutput gets an output path from an input path (if no output path
// is specified). It uses the same name as the input path
func guessOutput(in string) (out string) {
	ext := filepath.Ext(in)
	noExt := in[0 : len(in)-len(ext)]
	return noExt + ".domest.json"
}

// writeJSON marshals a plan or result and writes it to the fs at
// the output path. "-" or an empty path means stdout
func writeJSON(filename string, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %v", err)
	}

	if filename == "" || filename == "-" {
		fmt.Println(string(output))
		return nil
	}

	if err = os.WriteFile(filename, output, 0666); err != nil {
		return fmt.Errorf("failed to write the output: %v", err)
	}
	return nil
}
