package models

// StackTag is the technology stack inferred from the changed files. It only
// drives which reviewer persona the prompt uses, so a wrong guess costs a
// slightly mistuned persona, never a wrong finding.
type StackTag string

const (
	StackLaravel   StackTag = "laravel"
	StackWordPress StackTag = "wordpress"
	StackDjango    StackTag = "django"
	StackFlask     StackTag = "flask"
	StackNext      StackTag = "next"
	StackReact     StackTag = "react"
	StackNuxt      StackTag = "nuxt"
	StackVue       StackTag = "vue"
	StackGeneric   StackTag = "generic"
)

// SupportedStacks lists every stack tag a user may force via configuration.
func SupportedStacks() []StackTag {
	return []StackTag{
		StackLaravel,
		StackWordPress,
		StackDjango,
		StackFlask,
		StackNext,
		StackReact,
		StackNuxt,
		StackVue,
		StackGeneric,
	}
}

// ValidStack reports whether s is one of the supported stack tags.
func ValidStack(s StackTag) bool {
	for _, tag := range SupportedStacks() {
		if s == tag {
			return true
		}
	}
	return false
}
