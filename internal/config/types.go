package config

// Config is the top-level configuration structure parsed from typegate.yaml.
type Config struct {
	Checker Checker `yaml:"checker"`
	Collect Collect `yaml:"collect"`
	Report  Report  `yaml:"report"`
}

// Checker selects the external type checker and how it is invoked.
type Checker struct {
	Enabled              bool     `yaml:"enabled"`
	Preset               string   `yaml:"preset"`
	Command              string   `yaml:"command"`
	Args                 []string `yaml:"args"`
	IgnoreMissingImports bool     `yaml:"ignore_missing_imports"`
	FilesFromConfig      bool     `yaml:"files_from_config"`
}

// Collect controls which files become check items.
type Collect struct {
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
}

// Report controls how results are rendered.
type Report struct {
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}
