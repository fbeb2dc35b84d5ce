//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedDeskevalPath holds the path to a shared deskeval binary built once for all tests.
	sharedDeskevalPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDeskevalBinary returns the path to the deskeval binary, building it once if needed.
func getDeskevalBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "deskeval-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		deskevalPath := filepath.Join(tempDir, "deskeval")
		buildCmd := exec.Command("go", "build", "-o", deskevalPath, "./cmd/deskeval")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build deskeval: %v", err))
		}

		sharedDeskevalPath = deskevalPath
	})

	return sharedDeskevalPath
}

// writeSampleExport writes a small ticket export for CLI runs.
func writeSampleExport(t *testing.T) string {
	t.Helper()
	const sample = `responsible;client_name;waiting_time;duration;rating;created_at
Maria Silva;Acme;01:40;02:00;4,0;2024-01-10 09:00:00
Maria Silva;Globex;01:50;03:00;5,0;2024-01-12 11:00:00
Pedro Souza;Acme;00:30;01:00;3,0;2024-02-01 14:00:00
`
	path := filepath.Join(t.TempDir(), "tickets.csv")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("failed to write sample export: %v", err)
	}
	return path
}
