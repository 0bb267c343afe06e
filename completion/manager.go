package completion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/napalu/argtree/errs"
)

// CompletionManager generates the completion script of a program for one shell and installs it
// in the user's completion directory
type CompletionManager struct {
	Shell       string
	ProgramName string
	Paths       CompletionPaths
	generator   Generator
	script      string
}

// NewCompletionManager creates a CompletionManager for shell. Only the base name of programName
// is used.
func NewCompletionManager(shell, programName string) (*CompletionManager, error) {
	generator := GetGenerator(shell)
	if generator == nil {
		return nil, errs.ErrUnsupportedShell.WithArgs(shell)
	}

	dirs, err := currentUserDirs()
	if err != nil {
		return nil, err
	}
	paths, err := pathsFor(dirs, shell)
	if err != nil {
		return nil, err
	}

	return &CompletionManager{
		Shell:       shell,
		ProgramName: filepath.Base(programName),
		Paths:       paths,
		generator:   generator,
	}, nil
}

// Accept generates the completion script from data
func (cm *CompletionManager) Accept(data CompletionData) {
	cm.script = cm.generator.Generate(cm.ProgramName, data)
}

// Script returns the script generated by Accept
func (cm *CompletionManager) Script() string {
	return cm.script
}

// SaveCompletion writes the script generated by Accept to the first completion directory which
// can be created and returns the path of the file
func (cm *CompletionManager) SaveCompletion() (string, error) {
	if cm.script == "" {
		return "", errors.New("no completion script generated")
	}

	dir, err := cm.completionDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, cm.fileName())
	if err := os.WriteFile(path, []byte(cm.script), filePerm); err != nil {
		return "", fmt.Errorf("failed to write completion file: %w", err)
	}

	return path, ensurePermission(path, filePerm)
}

func (cm *CompletionManager) completionDir() (string, error) {
	var failures []error
	for _, dir := range []string{cm.Paths.Primary, cm.Paths.Fallback} {
		if dir == "" {
			continue
		}
		err := os.MkdirAll(dir, dirPerm)
		if err == nil {
			err = ensurePermission(dir, dirPerm)
		}
		if err == nil {
			return dir, nil
		}
		failures = append(failures, err)
	}

	return "", fmt.Errorf("failed to create completion directory: %w", errors.Join(failures...))
}

// fileName follows the naming each shell expects: zsh autoloads _name functions, fish sources
// name.fish and bash-completion looks up the bare command name
func (cm *CompletionManager) fileName() string {
	if cm.Shell == "zsh" {
		return "_" + cm.ProgramName
	}

	return cm.ProgramName + cm.Paths.Extension
}
