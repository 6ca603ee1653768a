package review

import (
	"path"
	"strings"

	"github.com/thomas-vilte/matereview/internal/models"
)

// roleDescriptions maps every stack tag to the reviewer persona used in the
// prompt. The generic entry is the stack-agnostic fallback.
var roleDescriptions = map[models.StackTag]string{
	models.StackLaravel:   "a senior Laravel engineer with deep knowledge of Eloquent, the service container, queues and the framework's security conventions",
	models.StackWordPress: "a senior WordPress developer focused on plugin/theme correctness, hooks, sanitization and escaping of user input",
	models.StackDjango:    "a senior Django engineer who cares about ORM efficiency, middleware, migrations and Django's security model",
	models.StackFlask:     "a senior Python engineer experienced with Flask, blueprints, request handling and WSGI deployment concerns",
	models.StackNext:      "a senior Next.js engineer fluent in React server components, routing, data fetching and rendering strategies",
	models.StackReact:     "a senior React engineer focused on component design, hooks correctness, state management and rendering performance",
	models.StackNuxt:      "a senior Nuxt engineer fluent in Vue, server-side rendering, composables and the Nitro server",
	models.StackVue:       "a senior Vue.js engineer focused on the composition API, reactivity pitfalls and single-file component structure",
	models.StackGeneric:   "a senior software engineer with broad experience reviewing production code across stacks",
}

// RoleForStack returns the reviewer persona for the given stack tag.
// Unknown tags resolve to the generic persona.
func RoleForStack(tag models.StackTag) string {
	if role, ok := roleDescriptions[tag]; ok {
		return role
	}
	return roleDescriptions[models.StackGeneric]
}

// DetectStack infers the technology stack from the changed files. Checks run
// in a fixed priority order and the first match wins; unmatched evidence
// always resolves to generic. Total function, never fails.
func DetectStack(files []models.ChangedFile) (models.StackTag, string) {
	checks := []func([]models.ChangedFile) (models.StackTag, bool){
		detectPHPFramework,
		detectCMS,
		detectPythonEntrypoint,
		detectPythonImport,
		detectJSManifest,
		detectByExtension,
	}

	for _, check := range checks {
		if tag, ok := check(files); ok {
			return tag, RoleForStack(tag)
		}
	}
	return models.StackGeneric, RoleForStack(models.StackGeneric)
}

// detectPHPFramework looks for a composer manifest that references a known
// framework package.
func detectPHPFramework(files []models.ChangedFile) (models.StackTag, bool) {
	for _, f := range files {
		if path.Base(f.Filename) != "composer.json" {
			continue
		}
		if strings.Contains(f.Patch, "laravel/framework") {
			return models.StackLaravel, true
		}
	}
	return "", false
}

// detectCMS matches paths under the WordPress content directory.
func detectCMS(files []models.ChangedFile) (models.StackTag, bool) {
	for _, f := range files {
		if strings.HasPrefix(f.Filename, "wp-content/") {
			return models.StackWordPress, true
		}
	}
	return "", false
}

// detectPythonEntrypoint matches framework-specific Python entry point or
// settings files.
func detectPythonEntrypoint(files []models.ChangedFile) (models.StackTag, bool) {
	for _, f := range files {
		base := path.Base(f.Filename)
		if base == "manage.py" {
			return models.StackDjango, true
		}
		if base == "settings.py" && strings.Contains(f.Patch, "django") {
			return models.StackDjango, true
		}
	}
	return "", false
}

// detectPythonImport matches changed Python files importing a micro-framework.
func detectPythonImport(files []models.ChangedFile) (models.StackTag, bool) {
	for _, f := range files {
		if !strings.HasSuffix(f.Filename, ".py") {
			continue
		}
		if strings.Contains(f.Patch, "import flask") || strings.Contains(f.Patch, "from flask") {
			return models.StackFlask, true
		}
	}
	return "", false
}

// detectJSManifest inspects package manifest diffs for framework dependency
// declarations. Meta-frameworks win over the libraries they are built on, so
// next is checked before react and nuxt before vue.
func detectJSManifest(files []models.ChangedFile) (models.StackTag, bool) {
	deps := []struct {
		declaration string
		tag         models.StackTag
	}{
		{`"next"`, models.StackNext},
		{`"nuxt"`, models.StackNuxt},
		{`"react"`, models.StackReact},
		{`"vue"`, models.StackVue},
	}

	for _, f := range files {
		if path.Base(f.Filename) != "package.json" {
			continue
		}
		for _, dep := range deps {
			if strings.Contains(f.Patch, dep.declaration) {
				return dep.tag, true
			}
		}
	}
	return "", false
}

// detectByExtension matches framework-specific file extensions.
func detectByExtension(files []models.ChangedFile) (models.StackTag, bool) {
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Filename, ".vue"):
			return models.StackVue, true
		case strings.HasSuffix(f.Filename, ".jsx"), strings.HasSuffix(f.Filename, ".tsx"):
			return models.StackReact, true
		}
	}
	return "", false
}
