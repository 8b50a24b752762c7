package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stockroom/internal/inventory"
)

// Scenario defines a catalog scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed is an optional catalog file loaded before the first step.
	// Relative paths resolve against the scenario file's directory.
	Seed string `yaml:"seed,omitempty"`

	// Steps run in order against one System.
	Steps []Step `yaml:"steps"`

	// Final, when set, must equal the catalog after the last step.
	Final []inventory.Item `yaml:"final,omitempty"`

	baseDir string
}

// Step is one catalog operation.
type Step struct {
	Op        string  `yaml:"op"`
	SKU       string  `yaml:"sku,omitempty"`
	Quantity  int     `yaml:"quantity,omitempty"`
	UnitPrice float64 `yaml:"unit_price,omitempty"`
	Delta     int     `yaml:"delta,omitempty"`
	Threshold int     `yaml:"threshold,omitempty"`
	Path      string  `yaml:"path,omitempty"`

	// Expect specifies the expected outcome. If nil the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Error is the expected error code (VALIDATION, NOT_FOUND, PERSISTENCE).
	// Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Quantity is checked against the returned item (add, adjust, get).
	Quantity *int `yaml:"quantity,omitempty"`

	// SKUs is checked against the returned items in order (list, low).
	SKUs []string `yaml:"skus,omitempty"`

	// Count is checked against the number of returned items (list, low).
	Count *int `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpAdjust = "adjust"
	OpGet    = "get"
	OpList   = "list"
	OpLow    = "low"
	OpSave   = "save"
	OpLoad   = "load"
)

var validErrorCodes = []string{
	string(inventory.ErrCodeValidation),
	string(inventory.ErrCodeNotFound),
	string(inventory.ErrCodePersistence),
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.baseDir = filepath.Dir(path)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// seedPath resolves Seed against the scenario's directory.
func (s *Scenario) seedPath() string {
	if s.Seed == "" || filepath.IsAbs(s.Seed) || s.baseDir == "" {
		return s.Seed
	}
	return filepath.Join(s.baseDir, s.Seed)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if s.Seed != "" {
		if _, err := os.Stat(s.seedPath()); os.IsNotExist(err) {
			return fmt.Errorf("seed file not found: %s", s.seedPath())
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st *Step) error {
	switch st.Op {
	case OpAdd, OpRemove, OpAdjust, OpGet:
		if st.SKU == "" {
			return fmt.Errorf("steps[%d]: sku is required for %s", index, st.Op)
		}
	case OpSave, OpLoad:
		if st.Path == "" {
			return fmt.Errorf("steps[%d]: path is required for %s", index, st.Op)
		}
		if !filepath.IsLocal(st.Path) {
			return fmt.Errorf("steps[%d]: path %q must stay inside the work directory", index, st.Path)
		}
	case OpList, OpLow:
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	if st.Expect != nil && st.Expect.Error != "" && !slices.Contains(validErrorCodes, st.Expect.Error) {
		return fmt.Errorf("steps[%d].expect: unknown error code %q", index, st.Expect.Error)
	}
	return nil
}
