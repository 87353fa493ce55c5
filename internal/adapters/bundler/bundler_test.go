package bundler_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitepipe/internal/adapters/bundler"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestStyles_Run(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/css/main.css", `@import "./partials/base.css";
.card {
  color: #ff0000;
  .title { font-weight: bold; }
}
`)
	writeFile(t, root, "src/css/partials/base.css", "body { margin: 0; }\n")
	writeFile(t, root, "src/css/print.css", "@media print { .nav { display: none; } }\n")

	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	reloader.EXPECT().Inject([]string{"/css/main.css", "/css/print.css"}).Times(1)

	styles := bundler.NewStyles(domain.DefaultConfig(root), reloader, log)
	assert.Equal(t, domain.TaskCSS, styles.Name())
	require.NoError(t, styles.Run(t.Context()))

	main := readFile(t, root, "dist/css/main.css")
	assert.Contains(t, main, "body{margin:0}", "imports are inlined and minified")
	assert.Contains(t, main, ".card .title{", "nesting is lowered")
	assert.NotContains(t, main, "@import")

	assert.FileExists(t, filepath.Join(root, "dist", "css", "print.css"))
	assert.NoFileExists(t, filepath.Join(root, "dist", "css", "partials", "base.css"))
}

func TestStyles_Run_ImportError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/css/main.css", `@import "./missing.css";`)

	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	err := bundler.NewStyles(domain.DefaultConfig(root), reloader, log).Run(t.Context())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStyleBuildFailed.Error())
	assert.ErrorContains(t, err, "missing.css")
}

func TestStyles_Run_NoSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	require.NoError(t, bundler.NewStyles(domain.DefaultConfig(t.TempDir()), reloader, log).Run(t.Context()))
}

func TestStyles_Run_InvalidTarget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/css/main.css", "a{color:red}")

	cfg := domain.DefaultConfig(root)
	cfg.BrowserTargets = []string{"mosaic1"}

	ctrl := gomock.NewController(t)
	err := bundler.NewStyles(cfg, mocks.NewMockReloader(ctrl), mocks.NewMockLogger(ctrl)).Run(t.Context())
	assert.ErrorContains(t, err, domain.ErrInvalidBrowserTarget.Error())
}

func TestScripts_Run(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.js", `import { greet } from "./js/greet.js";
document.addEventListener("DOMContentLoaded", () => greet("world"));
`)
	writeFile(t, root, "src/js/greet.js", `export const greet = async (name) => {
  const message = `+"`hello ${name}`"+`;
  console.log(message ?? "nobody");
};
`)

	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)
	reloader.EXPECT().Reload().Times(1)

	var summary bytes.Buffer
	scripts := bundler.NewScripts(domain.DefaultConfig(root), reloader, &summary)
	assert.Equal(t, domain.TaskJS, scripts.Name())
	require.NoError(t, scripts.Run(t.Context()))

	bundle := readFile(t, root, "dist/app.js")
	assert.Contains(t, bundle, "hello")
	assert.NotContains(t, bundle, "??", "nullish coalescing is lowered for es2017")
	assert.Contains(t, bundle, "sourceMappingURL=app.js.map")
	assert.FileExists(t, filepath.Join(root, "dist", "app.js.map"))

	assert.Contains(t, summary.String(), "app.js")
}

func TestScripts_Run_Error(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.js", `import "./js/nowhere.js";`)

	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)

	var summary bytes.Buffer
	err := bundler.NewScripts(domain.DefaultConfig(root), reloader, &summary).Run(t.Context())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrScriptBuildFailed.Error())
	assert.ErrorContains(t, err, "nowhere.js")
	assert.Empty(t, summary.String(), "no summary is printed for a failed bundle")
	assert.NoFileExists(t, filepath.Join(root, "dist", "app.js"))
}
