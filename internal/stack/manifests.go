package stack

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// manifests holds every root manifest the detector managed to read.
// Missing or malformed files leave nil fields; detection rules treat a nil
// manifest as "signal absent" rather than an error.
type manifests struct {
	root string

	pkg        *packageJSON
	cargo      *cargoToml
	pyproject  *pyprojectToml
	pubspec    *pubspecYaml
	compose    *composeFile
	goMod      *goModFile
	gemfile    []string // gem names
	composer   *composerJSON
	reqs       []string // requirements.txt package names
	chromeExt  bool     // manifest.json with a manifest_version key
	prismaText string   // prisma/schema.prisma content
}

// loadManifests reads whichever root manifests exist. Every reader
// swallows its own errors.
func loadManifests(root string) *manifests {
	m := &manifests{root: root}
	m.pkg = readPackageJSON(filepath.Join(root, "package.json"))
	m.cargo = readCargoToml(filepath.Join(root, "Cargo.toml"))
	m.pyproject = readPyprojectToml(filepath.Join(root, "pyproject.toml"))
	m.pubspec = readPubspecYaml(filepath.Join(root, "pubspec.yaml"))
	m.compose = readCompose(root)
	m.goMod = readGoMod(filepath.Join(root, "go.mod"))
	m.gemfile = readGemfile(filepath.Join(root, "Gemfile"))
	m.composer = readComposerJSON(filepath.Join(root, "composer.json"))
	m.reqs = readRequirements(filepath.Join(root, "requirements.txt"))
	m.chromeExt = readChromeManifest(filepath.Join(root, "manifest.json"))
	if data, err := os.ReadFile(filepath.Join(root, "prisma", "schema.prisma")); err == nil {
		m.prismaText = string(data)
	}
	return m
}

// fileExists reports a regular file at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// dirExists reports a directory at path.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ---------------------------------------------------------------------------
// package.json
// ---------------------------------------------------------------------------

type packageJSON struct {
	Name             string            `json:"name"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

func readPackageJSON(path string) *packageJSON {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}
	return &pkg
}

// hasDep checks the union of dependencies, devDependencies, and
// peerDependencies for an exact key.
func (p *packageJSON) hasDep(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	if _, ok := p.DevDependencies[name]; ok {
		return true
	}
	_, ok := p.PeerDependencies[name]
	return ok
}

// ---------------------------------------------------------------------------
// Cargo.toml
// ---------------------------------------------------------------------------

type cargoToml struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`

	// raw keeps the file text for substring fallback when the TOML does
	// not parse structurally.
	raw string
}

func readCargoToml(path string) *cargoToml {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var c cargoToml
	if err := toml.Unmarshal(data, &c); err != nil {
		c = cargoToml{}
	}
	c.raw = string(data)
	return &c
}

// hasDep checks dependencies and dev-dependencies, falling back to a
// substring scan of the raw file for malformed TOML.
func (c *cargoToml) hasDep(name string) bool {
	if c == nil {
		return false
	}
	if _, ok := c.Dependencies[name]; ok {
		return true
	}
	if _, ok := c.DevDependencies[name]; ok {
		return true
	}
	if len(c.Dependencies) == 0 && len(c.DevDependencies) == 0 {
		return strings.Contains(c.raw, name)
	}
	return false
}

// ---------------------------------------------------------------------------
// pyproject.toml
// ---------------------------------------------------------------------------

type pyprojectToml struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`

	raw string
}

func readPyprojectToml(path string) *pyprojectToml {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var p pyprojectToml
	if err := toml.Unmarshal(data, &p); err != nil {
		p = pyprojectToml{}
	}
	p.raw = string(data)
	return &p
}

// hasDep checks PEP 621 dependencies and Poetry dependencies, then falls
// back to a raw substring scan.
func (p *pyprojectToml) hasDep(name string) bool {
	if p == nil {
		return false
	}
	for _, d := range p.Project.Dependencies {
		if strings.HasPrefix(strings.ToLower(d), name) {
			return true
		}
	}
	if _, ok := p.Tool.Poetry.Dependencies[name]; ok {
		return true
	}
	return strings.Contains(p.raw, name)
}

func (p *pyprojectToml) name() string {
	if p == nil {
		return ""
	}
	if p.Project.Name != "" {
		return p.Project.Name
	}
	return p.Tool.Poetry.Name
}

// ---------------------------------------------------------------------------
// pubspec.yaml
// ---------------------------------------------------------------------------

type pubspecYaml struct {
	Name         string         `yaml:"name"`
	Dependencies map[string]any `yaml:"dependencies"`
}

func readPubspecYaml(path string) *pubspecYaml {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var p pubspecYaml
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

func (p *pubspecYaml) hasDep(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Dependencies[name]
	return ok
}

// ---------------------------------------------------------------------------
// docker-compose.{yml,yaml}
// ---------------------------------------------------------------------------

type composeFile struct {
	Services map[string]struct {
		Image string `yaml:"image"`
	} `yaml:"services"`
}

func readCompose(root string) *composeFile {
	for _, name := range []string{"docker-compose.yml", "docker-compose.yaml"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		var c composeFile
		if err := yaml.Unmarshal(data, &c); err != nil {
			continue
		}
		return &c
	}
	return nil
}

// serviceImage returns the first service image containing the substring.
func (c *composeFile) serviceImage(sub string) string {
	if c == nil {
		return ""
	}
	for _, svc := range c.Services {
		if strings.Contains(svc.Image, sub) {
			return svc.Image
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// go.mod
// ---------------------------------------------------------------------------

type goModFile struct {
	Module   string
	Requires []string // module paths
}

func readGoMod(path string) *goModFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	g := &goModFile{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "module "):
			g.Module = strings.TrimSpace(line[len("module "):])
		case strings.HasPrefix(line, "require "):
			fields := strings.Fields(line[len("require "):])
			if len(fields) > 0 && fields[0] != "(" {
				g.Requires = append(g.Requires, fields[0])
			}
		default:
			// Inside a require block lines look like "path v1.2.3".
			fields := strings.Fields(line)
			if len(fields) >= 2 && strings.Contains(fields[0], "/") && strings.HasPrefix(fields[1], "v") {
				g.Requires = append(g.Requires, fields[0])
			}
		}
	}
	return g
}

// hasRequire reports a require whose module path contains the substring.
func (g *goModFile) hasRequire(sub string) bool {
	if g == nil {
		return false
	}
	for _, r := range g.Requires {
		if strings.Contains(r, sub) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// requirements.txt / Gemfile / composer.json / manifest.json
// ---------------------------------------------------------------------------

func readRequirements(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pkgs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Strip version specifiers: pkg==1.0, pkg>=2, pkg[extra].
		name := line
		for _, sep := range []string{"==", ">=", "<=", "~=", ">", "<", "[", ";", " "} {
			if i := strings.Index(name, sep); i >= 0 {
				name = name[:i]
			}
		}
		if name != "" {
			pkgs = append(pkgs, strings.ToLower(name))
		}
	}
	return pkgs
}

func hasRequirement(reqs []string, name string) bool {
	for _, r := range reqs {
		if r == name {
			return true
		}
	}
	return false
}

func readGemfile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var gems []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		rest := strings.TrimSpace(line[len("gem "):])
		rest = strings.Trim(rest, `'"`)
		if i := strings.IndexAny(rest, `'",`); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			gems = append(gems, rest)
		}
	}
	return gems
}

func hasGem(gems []string, name string) bool {
	for _, g := range gems {
		if g == name {
			return true
		}
	}
	return false
}

type composerJSON struct {
	Name    string            `json:"name"`
	Require map[string]string `json:"require"`
}

func readComposerJSON(path string) *composerJSON {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var c composerJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// hasVendor reports a require key whose vendor segment matches, e.g.
// "laravel" matches "laravel/framework".
func (c *composerJSON) hasVendor(vendor string) bool {
	if c == nil {
		return false
	}
	for key := range c.Require {
		if strings.HasPrefix(key, vendor+"/") || key == vendor {
			return true
		}
	}
	return false
}

// readChromeManifest reports a manifest.json carrying a manifest_version
// key, the marker of a browser extension.
func readChromeManifest(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	_, ok := m["manifest_version"]
	return ok
}
