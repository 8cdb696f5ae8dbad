// Package config describes the one knob the code generator reads from
// outside the core pipeline: which assembler target to emit for, and
// where to find the external assembler/linker the CLI shells out to
// once codegen.Generate returns. It is read-only input to
// codegen.Generator — nothing in the core pipeline mutates it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Target describes the assembly dialect and toolchain codegen and the
// CLI target. The only dialect this compiler emits today is Linux
// x86-64 System V, but the field exists so a config file can name it
// explicitly rather than have it hardcoded.
type Target struct {
	Arch   string `yaml:"arch"`
	ABI    string `yaml:"abi"`
	As     string `yaml:"as"`     // assembler executable
	Ld     string `yaml:"ld"`     // linker executable (usually invoked via As as a driver)
	Prefix string `yaml:"prefix"` // label prefix for generated control-flow labels
}

// DefaultTarget is used when no config file is given: Linux x86-64
// System V, %rbp/%rsp frames, cc as the assembler/linker driver.
func DefaultTarget() Target {
	return Target{
		Arch:   "x86-64",
		ABI:    "sysv",
		As:     "cc",
		Ld:     "cc",
		Prefix: "_",
	}
}

// Load reads a YAML config file and overlays it onto DefaultTarget,
// so a file only needs to name the fields it overrides.
func Load(path string) (Target, error) {
	t := DefaultTarget()
	data, err := os.ReadFile(path)
	if err != nil {
		return Target{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Target{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if t.Arch != "x86-64" || t.ABI != "sysv" {
		return Target{}, fmt.Errorf("config: unsupported target %s/%s (only x86-64/sysv is implemented)", t.Arch, t.ABI)
	}
	return t, nil
}
