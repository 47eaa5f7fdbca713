package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Slot Errors (E101-E109)
	// ============================================

	"E101": {
		Category: CategorySlot,
		Message:  "View slot anchor is nil",
		Detail:   "A view slot needs a document node to insert views relative to.",
	},
	"E102": {
		Category: CategorySlot,
		Message:  "View index out of range",
		Detail:   "The index does not address a child of the slot.",
	},
	"E103": {
		Category: CategorySlot,
		Message:  "View not found in slot",
		Detail:   "The view is not one of the slot's children. It may already have been removed.",
	},
	"E104": {
		Category: CategoryProjection,
		Message:  "Content selectors already installed",
		Detail:   "A slot switches to projection mode once and cannot be switched again.",
	},
	"E105": {
		Category: CategorySlot,
		Message:  "View is nil",
		Detail:   "Add, Insert and Swap require a non-nil view.",
	},
	"E106": {
		Category: CategorySlot,
		Message:  "View slot anchor is detached",
		Detail:   "A comment marker anchor must have a parent before views can be placed before it.",
	},

	// ============================================
	// Animation Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryAnimation,
		Message:  "Transition rejected",
		Detail:   "The animator reported a failure while running an enter or leave transition.",
	},
	"E111": {
		Category: CategoryProjection,
		Message:  "Invalid content selector",
		Detail:   "The selector expression could not be parsed.",
	},

	// ============================================
	// Configuration Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid viewslot.json",
		Detail:   "The configuration file could not be parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid animation duration",
		Detail:   "Animation durations must be valid, non-negative Go durations such as \"250ms\".",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "logLevel must be one of debug, info, warn or error.",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No viewslot.json was found at the given path.",
	},

	// ============================================
	// Scenario Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryScenario,
		Message:  "Invalid scenario file",
		Detail:   "The scenario could not be parsed as JSON or YAML.",
	},
	"E131": {
		Category: CategoryScenario,
		Message:  "Unknown scenario operation",
		Detail:   "The step names an operation the runner does not support.",
	},
	"E132": {
		Category: CategoryScenario,
		Message:  "Unknown view in scenario",
		Detail:   "The step refers to a view name that was never declared.",
	},
	"E133": {
		Category: CategoryScenario,
		Message:  "Scenario step failed",
		Detail:   "The slot rejected the operation requested by this step.",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Missing argument",
		Detail:   "The command requires an argument that was not provided.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Inspector server failed",
		Detail:   "The HTTP inspector could not be started or stopped cleanly.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
