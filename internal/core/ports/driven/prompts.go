package driven

// PromptStore supplies user-editable prompt templates by name.
type PromptStore interface {
	// Load returns the template for name, or an error when no usable
	// template exists. Callers fall back to their built-in prompt.
	Load(name string) (string, error)

	// Reload drops cached templates so the next Load reads them again.
	Reload()
}

// Prompt names.
const (
	// PromptGenerationSystem is the identity and style directive for section
	// writing. It takes the organisation name.
	PromptGenerationSystem = "generation_system"

	// PromptRefineSystem is the directive for refining a section. It takes
	// the section name in words, then the organisation name.
	PromptRefineSystem = "refine_system"
)

// PromptArgs is the number of %s verbs each known template must carry.
var PromptArgs = map[string]int{
	PromptGenerationSystem: 1,
	PromptRefineSystem:     2,
}
