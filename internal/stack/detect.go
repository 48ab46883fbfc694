package stack

import (
	"os"
	"path/filepath"
	"strings"
)

// Detect inspects the project root and returns a fused stack report.
// The root must exist and be a directory.
func Detect(root string) (*Detection, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &NotADirectoryError{Path: root}
	}

	m := loadManifests(root)
	census := runCensus(root)
	html := rootHTML(root)

	det := &Detection{
		FileCount:           census.total,
		HasExistingClaudeMd: fileExists(filepath.Join(root, "CLAUDE.md")),
	}

	det.Language = detectLanguage(root, census)
	det.Framework = detectFramework(root, m, det.Language, html)
	det.Database = detectDatabase(root, m)
	det.Testing = detectTesting(m, det.Language)
	det.Styling = detectStyling(root, m, html)
	det.ProjectType = inferProjectType(det.Framework, det.Language, m)
	det.ProjectName = projectName(root, m)
	det.Confidence = bucketFor(det.Language)

	return det, nil
}

// NotADirectoryError reports a detection root that is missing or not a
// directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return "not a directory: " + e.Path
}

// ---------------------------------------------------------------------------
// Language
// ---------------------------------------------------------------------------

// markerRule is a root marker file mapped to a language.
type markerRule struct {
	file       string
	lang       string
	confidence float64
}

// languageMarkers in strict priority order; the first present file wins.
// package.json only claims JavaScript when tsconfig.json is absent, which
// the ordering already guarantees.
var languageMarkers = []markerRule{
	{"tsconfig.json", "TypeScript", 0.95},
	{"Cargo.toml", "Rust", 0.95},
	{"pyproject.toml", "Python", 0.95},
	{"setup.py", "Python", 0.90},
	{"requirements.txt", "Python", 0.90},
	{"go.mod", "Go", 0.95},
	{"pubspec.yaml", "Dart", 0.95},
	{"pom.xml", "Java", 0.95},
	{"build.gradle", "Java", 0.85},
	{"build.gradle.kts", "Java", 0.85},
	{"Gemfile", "Ruby", 0.95},
	{"composer.json", "PHP", 0.95},
	{"package.json", "JavaScript", 0.80},
	{"Package.swift", "Swift", 0.95},
}

func detectLanguage(root string, census censusResult) *DetectedValue {
	for _, rule := range languageMarkers {
		if fileExists(filepath.Join(root, rule.file)) {
			return &DetectedValue{Value: rule.lang, Confidence: rule.confidence, Source: rule.file}
		}
	}
	// Fallback only: census never outranks a marker file.
	return census.winner()
}

// ---------------------------------------------------------------------------
// Framework
// ---------------------------------------------------------------------------

// jsFrameworkRules in fixed priority order over package.json dependency
// keys. More specific frameworks come before the libraries they build on,
// so react+next resolves to Next.js.
var jsFrameworkRules = []struct {
	dep   string
	value string
}{
	{"next", "Next.js"},
	{"nuxt", "Nuxt"},
	{"@remix-run/react", "Remix"},
	{"@angular/core", "Angular"},
	{"vue", "Vue"},
	{"svelte", "Svelte"},
	{"solid-js", "SolidJS"},
	{"react", "React"},
	{"express", "Express"},
	{"fastify", "Fastify"},
	{"hono", "Hono"},
	{"@nestjs/core", "NestJS"},
	{"electron", "Electron"},
}

// uiFrameworks qualify for the "+ Vite" source annotation.
var uiFrameworks = map[string]bool{
	"React": true, "Vue": true, "Svelte": true, "SolidJS": true,
}

var pyFrameworks = []string{"django", "fastapi", "flask", "starlette", "tornado"}

var pyFrameworkNames = map[string]string{
	"django": "Django", "fastapi": "FastAPI", "flask": "Flask",
	"starlette": "Starlette", "tornado": "Tornado",
}

var rustFrameworks = []struct {
	dep   string
	value string
}{
	{"tauri", "Tauri"},
	{"actix-web", "Actix Web"},
	{"axum", "Axum"},
	{"rocket", "Rocket"},
	{"warp", "Warp"},
	{"leptos", "Leptos"},
	{"yew", "Yew"},
	{"dioxus", "Dioxus"},
}

var goFrameworks = []struct {
	path  string
	value string
}{
	{"gin-gonic/gin", "Gin"},
	{"gofiber/fiber", "Fiber"},
	{"labstack/echo", "Echo"},
	{"gorilla/mux", "Gorilla Mux"},
}

func detectFramework(root string, m *manifests, lang *DetectedValue, html string) *DetectedValue {
	// A src-tauri directory wins over every manifest signal.
	if dirExists(filepath.Join(root, "src-tauri")) {
		return &DetectedValue{Value: "Tauri", Confidence: 0.95, Source: "src-tauri directory"}
	}
	// A manifest.json with manifest_version forces a browser extension,
	// even when package.json would claim a UI framework.
	if m.chromeExt {
		return &DetectedValue{Value: "Chrome Extension", Confidence: 0.95, Source: "manifest.json"}
	}

	langName := ""
	if lang != nil {
		langName = lang.Value
	}

	switch langName {
	case "TypeScript", "JavaScript":
		if fw := jsFramework(m); fw != nil {
			return fw
		}
		// CDN fallback when package.json is absent or yielded nothing.
		return matchCDN(html, cdnFrameworks)

	case "Python":
		for _, dep := range pyFrameworks {
			if m.pyproject.hasDep(dep) {
				return &DetectedValue{Value: pyFrameworkNames[dep], Confidence: 0.90, Source: "pyproject.toml"}
			}
		}
		for _, dep := range pyFrameworks {
			if hasRequirement(m.reqs, dep) {
				return &DetectedValue{Value: pyFrameworkNames[dep], Confidence: 0.85, Source: "requirements.txt"}
			}
		}

	case "Rust":
		for _, rule := range rustFrameworks {
			if m.cargo.hasDep(rule.dep) {
				return &DetectedValue{Value: rule.value, Confidence: 0.90, Source: "Cargo.toml"}
			}
		}

	case "Go":
		for _, rule := range goFrameworks {
			if m.goMod.hasRequire(rule.path) {
				return &DetectedValue{Value: rule.value, Confidence: 0.90, Source: "go.mod"}
			}
		}

	case "Ruby":
		if hasGem(m.gemfile, "rails") {
			return &DetectedValue{Value: "Rails", Confidence: 0.90, Source: "Gemfile"}
		}
		if hasGem(m.gemfile, "sinatra") {
			return &DetectedValue{Value: "Sinatra", Confidence: 0.90, Source: "Gemfile"}
		}

	case "PHP":
		if m.composer.hasVendor("laravel") {
			return &DetectedValue{Value: "Laravel", Confidence: 0.90, Source: "composer.json"}
		}
		if m.composer.hasVendor("symfony") {
			return &DetectedValue{Value: "Symfony", Confidence: 0.90, Source: "composer.json"}
		}

	case "Dart":
		if m.pubspec.hasDep("flutter") {
			return &DetectedValue{Value: "Flutter", Confidence: 0.90, Source: "pubspec.yaml"}
		}
	}

	return nil
}

func jsFramework(m *manifests) *DetectedValue {
	if m.pkg == nil {
		return nil
	}
	for _, rule := range jsFrameworkRules {
		if !m.pkg.hasDep(rule.dep) {
			continue
		}
		det := &DetectedValue{Value: rule.value, Confidence: 0.90, Source: "package.json"}
		if uiFrameworks[rule.value] && m.pkg.hasDep("vite") {
			det.Source = rule.value + " + Vite"
		}
		return det
	}
	return nil
}

// ---------------------------------------------------------------------------
// Database
// ---------------------------------------------------------------------------

var jsDatabaseRules = []struct {
	dep   string
	value string
}{
	{"pg", "PostgreSQL"},
	{"postgres", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"mysql2", "MySQL"},
	{"sqlite3", "SQLite"},
	{"better-sqlite3", "SQLite"},
	{"mongodb", "MongoDB"},
	{"mongoose", "MongoDB"},
	{"redis", "Redis"},
	{"ioredis", "Redis"},
	{"@supabase/supabase-js", "Supabase"},
	{"firebase", "Firebase"},
	{"firebase-admin", "Firebase"},
}

var composeDatabaseImages = []struct {
	image string
	value string
}{
	{"postgres", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"mariadb", "MySQL"},
	{"mongo", "MongoDB"},
	{"redis", "Redis"},
}

var prismaProviders = map[string]string{
	"postgresql": "PostgreSQL",
	"mysql":      "MySQL",
	"sqlite":     "SQLite",
	"mongodb":    "MongoDB",
}

var pyDatabaseDeps = []struct {
	dep   string
	value string
}{
	{"psycopg2", "PostgreSQL"},
	{"asyncpg", "PostgreSQL"},
	{"pymysql", "MySQL"},
	{"pymongo", "MongoDB"},
	{"redis", "Redis"},
}

func detectDatabase(root string, m *manifests) *DetectedValue {
	// Config tier: docker-compose service images, then the Prisma schema.
	for _, rule := range composeDatabaseImages {
		if img := m.compose.serviceImage(rule.image); img != "" {
			return &DetectedValue{Value: rule.value, Confidence: 0.95, Source: "docker-compose"}
		}
	}
	if m.prismaText != "" {
		for provider, value := range prismaProviders {
			if containsProvider(m.prismaText, provider) {
				return &DetectedValue{Value: value, Confidence: 0.95, Source: "prisma/schema.prisma"}
			}
		}
	}

	// Dependency tier.
	for _, rule := range jsDatabaseRules {
		if m.pkg.hasDep(rule.dep) {
			return &DetectedValue{Value: rule.value, Confidence: 0.90, Source: "package.json"}
		}
	}
	for _, rule := range pyDatabaseDeps {
		if m.pyproject.hasDep(rule.dep) || hasRequirement(m.reqs, rule.dep) {
			return &DetectedValue{Value: rule.value, Confidence: 0.85, Source: "python dependencies"}
		}
	}
	if m.cargo.hasDep("rusqlite") {
		return &DetectedValue{Value: "SQLite", Confidence: 0.85, Source: "Cargo.toml"}
	}
	if m.cargo.hasDep("sqlx") || m.cargo.hasDep("diesel") {
		return &DetectedValue{Value: "PostgreSQL", Confidence: 0.70, Source: "Cargo.toml"}
	}
	if m.goMod.hasRequire("jackc/pgx") || m.goMod.hasRequire("lib/pq") {
		return &DetectedValue{Value: "PostgreSQL", Confidence: 0.90, Source: "go.mod"}
	}
	if m.goMod.hasRequire("go-sql-driver/mysql") {
		return &DetectedValue{Value: "MySQL", Confidence: 0.90, Source: "go.mod"}
	}
	if m.goMod.hasRequire("sqlite") {
		return &DetectedValue{Value: "SQLite", Confidence: 0.90, Source: "go.mod"}
	}

	return nil
}

// containsProvider matches a `provider = "x"` line in a Prisma schema.
func containsProvider(schema, provider string) bool {
	return strings.Contains(schema, `provider = "`+provider+`"`) ||
		strings.Contains(schema, `provider="`+provider+`"`)
}

// ---------------------------------------------------------------------------
// Testing
// ---------------------------------------------------------------------------

var jsTestingRules = []struct {
	dep   string
	value string
}{
	{"vitest", "Vitest"},
	{"jest", "Jest"},
	{"@playwright/test", "Playwright"},
	{"playwright", "Playwright"},
	{"cypress", "Cypress"},
}

func detectTesting(m *manifests, lang *DetectedValue) *DetectedValue {
	for _, rule := range jsTestingRules {
		if m.pkg.hasDep(rule.dep) {
			return &DetectedValue{Value: rule.value, Confidence: 0.90, Source: "package.json"}
		}
	}
	if m.pyproject.hasDep("pytest") || hasRequirement(m.reqs, "pytest") {
		return &DetectedValue{Value: "pytest", Confidence: 0.90, Source: "python dependencies"}
	}

	// Rust and Go ship a test framework; give built-in credit.
	langName := ""
	if lang != nil {
		langName = lang.Value
	}
	switch langName {
	case "Rust":
		return &DetectedValue{Value: "cargo test", Confidence: 0.90, Source: "built-in"}
	case "Go":
		return &DetectedValue{Value: "go test", Confidence: 0.90, Source: "built-in"}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Styling
// ---------------------------------------------------------------------------

var tailwindConfigs = []string{"tailwind.config.js", "tailwind.config.ts", "tailwind.config.mjs"}

var jsStylingRules = []struct {
	dep   string
	value string
}{
	{"tailwindcss", "Tailwind"},
	{"@chakra-ui/react", "Chakra"},
	{"@mui/material", "MUI"},
	{"styled-components", "Styled Components"},
	{"sass", "Sass"},
	{"bootstrap", "Bootstrap"},
}

func detectStyling(root string, m *manifests, html string) *DetectedValue {
	// Config tier: a tailwind config at the root is near-certain.
	for _, name := range tailwindConfigs {
		if fileExists(filepath.Join(root, name)) {
			return &DetectedValue{Value: "Tailwind", Confidence: 0.95, Source: name}
		}
	}
	for _, rule := range jsStylingRules {
		if m.pkg.hasDep(rule.dep) {
			return &DetectedValue{Value: rule.value, Confidence: 0.90, Source: "package.json"}
		}
	}
	return matchCDN(html, cdnStyling)
}

// ---------------------------------------------------------------------------
// Project type and name
// ---------------------------------------------------------------------------

var webAppFrameworks = map[string]bool{
	"Next.js": true, "Nuxt": true, "Remix": true, "Angular": true,
	"Vue": true, "Svelte": true, "SolidJS": true, "React": true,
}

var apiFrameworks = map[string]bool{
	"Express": true, "Fastify": true, "Hono": true, "NestJS": true,
	"Django": true, "FastAPI": true, "Flask": true, "Starlette": true, "Tornado": true,
	"Actix Web": true, "Axum": true, "Rocket": true, "Warp": true,
	"Gin": true, "Fiber": true, "Echo": true, "Gorilla Mux": true,
	"Rails": true, "Sinatra": true, "Laravel": true, "Symfony": true,
}

func inferProjectType(fw, lang *DetectedValue, m *manifests) string {
	fwName := ""
	if fw != nil {
		fwName = fw.Value
	}
	langName := ""
	if lang != nil {
		langName = lang.Value
	}

	switch {
	case fwName == "Chrome Extension":
		return "Extension"
	case fwName == "Tauri" || fwName == "Electron":
		return "Desktop"
	case fwName == "Flutter":
		return "Mobile"
	case webAppFrameworks[fwName]:
		return "Web App"
	case apiFrameworks[fwName]:
		return "API"
	case langName == "Swift":
		return "Mobile"
	case langName == "Rust" && (m.cargo.hasDep("clap") || m.cargo.hasDep("structopt")):
		return "CLI"
	default:
		return "Library"
	}
}

// projectName prefers the name a root manifest declares, falling back to
// the root directory's base name.
func projectName(root string, m *manifests) string {
	if m.pkg != nil && m.pkg.Name != "" {
		return m.pkg.Name
	}
	if m.cargo != nil && m.cargo.Package.Name != "" {
		return m.cargo.Package.Name
	}
	if name := m.pyproject.name(); name != "" {
		return name
	}
	if m.pubspec != nil && m.pubspec.Name != "" {
		return m.pubspec.Name
	}
	if m.goMod != nil && m.goMod.Module != "" {
		return filepath.Base(m.goMod.Module)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}
