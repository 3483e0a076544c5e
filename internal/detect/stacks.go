// stacks.go contains language and framework detection rules.
package detect

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// stackRuleFunc examines dir and returns a StackInfo + true if its indicator
// files are present. Returns zero StackInfo + false otherwise.
type stackRuleFunc func(dir string) (StackInfo, bool)

// stackRules is evaluated in order; first match wins.
var stackRules = []stackRuleFunc{
	detectTypeScript,
	detectGo,
	detectPython,
	detectRust,
	detectJava,
}

// ---------------------------------------------------------------------------
// TypeScript / JavaScript
// ---------------------------------------------------------------------------

// packageJSON is the minimal structure we parse from package.json.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func detectTypeScript(dir string) (StackInfo, bool) {
	pkgPath := filepath.Join(dir, "package.json")
	if !fileExists(pkgPath) {
		return StackInfo{}, false
	}

	var pkg packageJSON
	data := readFile(pkgPath)
	if data != "" {
		_ = json.Unmarshal([]byte(data), &pkg)
	}

	lang := "javascript"
	if fileExists(filepath.Join(dir, "tsconfig.json")) {
		lang = "typescript"
	}

	return StackInfo{
		Language:       lang,
		Framework:      detectJSFramework(pkg),
		PackageManager: detectJSPackageManager(dir),
	}, true
}

func detectJSFramework(pkg packageJSON) string {
	hasMainDep := func(name string) bool {
		_, ok := pkg.Dependencies[name]
		return ok
	}

	switch {
	case hasMainDep("next"):
		return "next"
	case hasMainDep("react"):
		return "react"
	case hasMainDep("vue"):
		return "vue"
	case hasMainDep("express"):
		return "express"
	default:
		return "node"
	}
}

func detectJSPackageManager(dir string) string {
	switch {
	case fileExists(filepath.Join(dir, "pnpm-lock.yaml")):
		return "pnpm"
	case fileExists(filepath.Join(dir, "yarn.lock")):
		return "yarn"
	case fileExists(filepath.Join(dir, "bun.lockb")):
		return "bun"
	default:
		return "npm"
	}
}

// ---------------------------------------------------------------------------
// Go
// ---------------------------------------------------------------------------

func detectGo(dir string) (StackInfo, bool) {
	modPath := filepath.Join(dir, "go.mod")
	if !fileExists(modPath) {
		return StackInfo{}, false
	}

	return StackInfo{
		Language:       "go",
		Framework:      detectGoFramework(readFile(modPath)),
		PackageManager: "go",
	}, true
}

func detectGoFramework(modContent string) string {
	switch {
	case strings.Contains(modContent, "github.com/gin-gonic/gin"):
		return "gin"
	case strings.Contains(modContent, "github.com/labstack/echo"):
		return "echo"
	case strings.Contains(modContent, "github.com/go-chi/chi"):
		return "chi"
	default:
		return "stdlib"
	}
}

// ---------------------------------------------------------------------------
// Python
// ---------------------------------------------------------------------------

func detectPython(dir string) (StackInfo, bool) {
	hasPyproject := fileExists(filepath.Join(dir, "pyproject.toml"))
	hasRequirements := fileExists(filepath.Join(dir, "requirements.txt"))
	hasSetupPy := fileExists(filepath.Join(dir, "setup.py"))

	if !hasPyproject && !hasRequirements && !hasSetupPy {
		return StackInfo{}, false
	}

	var combined string
	if hasPyproject {
		combined += readFile(filepath.Join(dir, "pyproject.toml"))
	}
	if hasRequirements {
		combined += readFile(filepath.Join(dir, "requirements.txt"))
	}
	if hasSetupPy {
		combined += readFile(filepath.Join(dir, "setup.py"))
	}

	return StackInfo{
		Language:       "python",
		Framework:      detectPythonFramework(combined),
		PackageManager: detectPythonPackageManager(dir, hasPyproject),
	}, true
}

func detectPythonFramework(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "django"):
		return "django"
	case strings.Contains(lower, "flask"):
		return "flask"
	case strings.Contains(lower, "fastapi"):
		return "fastapi"
	default:
		return "script"
	}
}

func detectPythonPackageManager(dir string, hasPyproject bool) string {
	if hasPyproject {
		content := readFile(filepath.Join(dir, "pyproject.toml"))
		if strings.Contains(content, "[tool.poetry]") {
			return "poetry"
		}
	}
	if fileExists(filepath.Join(dir, "uv.lock")) {
		return "uv"
	}
	return "pip"
}

// ---------------------------------------------------------------------------
// Rust
// ---------------------------------------------------------------------------

func detectRust(dir string) (StackInfo, bool) {
	cargoPath := filepath.Join(dir, "Cargo.toml")
	if !fileExists(cargoPath) {
		return StackInfo{}, false
	}

	content := readFile(cargoPath)
	framework := "lib"
	switch {
	case strings.Contains(content, "actix-web"):
		framework = "actix-web"
	case strings.Contains(content, "axum"):
		framework = "axum"
	}

	return StackInfo{
		Language:       "rust",
		Framework:      framework,
		PackageManager: "cargo",
	}, true
}

// ---------------------------------------------------------------------------
// Java / Kotlin
// ---------------------------------------------------------------------------

func detectJava(dir string) (StackInfo, bool) {
	hasPom := fileExists(filepath.Join(dir, "pom.xml"))
	hasGradle := fileExists(filepath.Join(dir, "build.gradle"))
	hasGradleKts := fileExists(filepath.Join(dir, "build.gradle.kts"))

	if !hasPom && !hasGradle && !hasGradleKts {
		return StackInfo{}, false
	}

	lang := "java"
	if hasGradleKts {
		lang = "kotlin"
	}

	pm := "maven"
	if hasGradle || hasGradleKts {
		pm = "gradle"
	}

	var content string
	switch {
	case hasPom:
		content = readFile(filepath.Join(dir, "pom.xml"))
	case hasGradleKts:
		content = readFile(filepath.Join(dir, "build.gradle.kts"))
	case hasGradle:
		content = readFile(filepath.Join(dir, "build.gradle"))
	}

	framework := "java"
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "spring-boot"):
		framework = "spring-boot"
	case strings.Contains(lower, "quarkus"):
		framework = "quarkus"
	}

	return StackInfo{
		Language:       lang,
		Framework:      framework,
		PackageManager: pm,
	}, true
}
