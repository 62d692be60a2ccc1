package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/Karin-Goldin/wedding-app/pkg/rule"
)

type uploadLimits struct {
	Window int   `rule:"min=1"`
	Limit  int   `rule:"min=1"`
	Max    int64 `rule:"min=1"`
}

// TestEngine verifies the shared engine is available.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct checks the "rule" tag is honored on structs.
func TestValidateStruct(t *testing.T) {
	valid := uploadLimits{Window: 60, Limit: 50, Max: 50 << 20}

	err := rule.ValidateStruct(valid)
	if err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	invalid := uploadLimits{Window: 0, Limit: 50, Max: 1}

	err = rule.ValidateStruct(invalid)
	if err == nil {
		t.Error("Expected error for zero window, got nil")
	}
}

// TestValidateVar checks single-value validation.
func TestValidateVar(t *testing.T) {
	err := rule.ValidateVar("localhost:9000", "hostname_port")
	if err != nil {
		t.Errorf("Expected no error for valid hostname:port, got %v", err)
	}

	err = rule.ValidateVar("not a host", "hostname_port")
	if err == nil {
		t.Error("Expected error for invalid hostname:port, got nil")
	}

	err = rule.ValidateVar(25, "gte=18")
	if err != nil {
		t.Errorf("Expected no error for valid number, got %v", err)
	}

	err = rule.ValidateVar(15, "gte=18")
	if err == nil {
		t.Error("Expected error for invalid number, got nil")
	}
}

// TestRegisterValidation registers and exercises a custom rule.
func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("media_ext", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		return str == "jpg" || str == "mp4"
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	err = rule.ValidateVar("jpg", "media_ext")
	if err != nil {
		t.Errorf("Expected no error for allowed extension, got %v", err)
	}

	err = rule.ValidateVar("exe", "media_ext")
	if err == nil {
		t.Error("Expected error for disallowed extension, got nil")
	}
}

// TestRegisterAlias registers and exercises an alias rule.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("caption", "max=500")

	err := rule.ValidateVar("mazel tov!", "caption")
	if err != nil {
		t.Errorf("Expected no error for short caption, got %v", err)
	}
}
