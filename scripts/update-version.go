package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Bumps APP_VERSION in src/types.go. Run from the project root:
//
//	go run scripts/update-version.go 0.2.0
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: go run scripts/update-version.go <version>")
		os.Exit(1)
	}

	version := os.Args[1]
	matched, _ := regexp.MatchString(`^\d+\.\d+\.\d+$`, version)
	if !matched {
		fmt.Fprintln(os.Stderr, "Error: Version must be in format X.Y.Z (e.g., 1.0.0)")
		os.Exit(1)
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	typesGoPath := filepath.Join(projectRoot, "src", "types.go")
	typesContent, err := os.ReadFile(typesGoPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading types.go: %v\n", err)
		os.Exit(1)
	}

	re := regexp.MustCompile(`APP_VERSION\s*=\s*"[^"]+"`)
	if !re.Match(typesContent) {
		fmt.Fprintln(os.Stderr, "Error: APP_VERSION constant not found in src/types.go")
		os.Exit(1)
	}
	updated := re.ReplaceAllString(string(typesContent), fmt.Sprintf(`APP_VERSION = "%s"`, version))

	if err := os.WriteFile(typesGoPath, []byte(updated), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing types.go: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated version to %s\n", version)
}
