package domain

import "os"

const (
	// DirPerm is the permission used for directories created by tasks.
	DirPerm os.FileMode = 0o755
	// FilePerm is the permission used for files written by tasks.
	FilePerm os.FileMode = 0o644
)

// ConfigFileName is the optional project configuration file.
const ConfigFileName = "sitepipe.yaml"

// EnvFileName is the optional dotenv file loaded before the environment is inspected.
const EnvFileName = ".env"

// Layout holds the fixed project-relative paths the tasks read and write.
type Layout struct {
	// GeneratorBinDir holds the bundled generator binaries (hugo.<platform>).
	GeneratorBinDir string
	// SiteDir is the generator source directory.
	SiteDir string
	// SiteDest is the generator destination, relative to SiteDir.
	SiteDest string
	// SiteConfig is the generator config file, relative to SiteDir.
	SiteConfig string
	// OutputDir is the directory served by the development server.
	OutputDir string

	StyleGlob      string
	StyleEntry     string
	StyleOutputDir string
	StyleWatchGlob string

	ScriptEntry     string
	ScriptOutput    string
	ScriptWatchGlob string

	IconGlob    string
	IconPartial string

	SiteWatchGlob string
}

// DefaultLayout returns the project layout the pipeline is built around.
func DefaultLayout() Layout {
	return Layout{
		GeneratorBinDir: "bin",
		SiteDir:         "site",
		SiteDest:        "../dist",
		SiteConfig:      "config.toml",
		OutputDir:       "dist",

		StyleGlob:      "src/css/*.css",
		StyleEntry:     "src/css/main.css",
		StyleOutputDir: "dist/css",
		StyleWatchGlob: "src/css/**/*.css",

		ScriptEntry:     "src/index.js",
		ScriptOutput:    "dist/app.js",
		ScriptWatchGlob: "src/js/**/*.js",

		IconGlob:    "site/static/img/icons-*.svg",
		IconPartial: "site/layouts/partials/svg.html",

		SiteWatchGlob: "site/**/*",
	}
}
