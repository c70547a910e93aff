package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Polish/config"
)

// FileManager decides where enhanced images are written.
//
// Every output lands directly in the output directory as
// <YYYYMMDDHHMMSS><original name>.jpg. Two inputs with the same name
// processed within the same second map to the same path; the later one wins.
type FileManager struct {
	outputDir string
	clock     Clock
}

// NewFileManager creates a FileManager writing into outputDir.
// A nil clock means SystemClock.
func NewFileManager(outputDir string, clock Clock) *FileManager {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FileManager{
		outputDir: outputDir,
		clock:     clock,
	}
}

// OutputDir returns the directory outputs are written to.
func (fm *FileManager) OutputDir() string {
	return fm.outputDir
}

// CheckOutputDir verifies the output directory exists. It is never created.
func (fm *FileManager) CheckOutputDir() error {
	info, err := os.Stat(fm.outputDir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", fm.outputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", fm.outputDir)
	}
	return nil
}

// validateName ensures the name cannot escape the output directory.
func (fm *FileManager) validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

// OutputPath returns the timestamped output path for an input file name.
func (fm *FileManager) OutputPath(name string) (string, error) {
	if err := fm.validateName(name); err != nil {
		return "", err
	}
	stamp := fm.clock.Now().Format(config.TimestampLayout)
	return filepath.Join(fm.outputDir, stamp+name+config.OutputExt), nil
}
