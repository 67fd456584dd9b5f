package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}
}

func TestDiscover_UnitAndE2E(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"tests/test_app.py",
		"src/cart.spec.ts",
		"app/src/test/kotlin/CartTest.kt",
		"internal/api/handler_test.go",
		"tests/e2e/test_checkout.py",
		"cypress/login.spec.js",
		"tests/Integration/test_db.py",
		"src/app.py",
		"README.md",
	)

	p := discovery.New().Discover(root)

	assert.True(t, p.UnitTestsFound)
	assert.Equal(t, []string{
		"app/src/test/kotlin/CartTest.kt",
		"internal/api/handler_test.go",
		"src/cart.spec.ts",
		"tests/test_app.py",
	}, p.UnitTestFiles)
	assert.Equal(t, 4, p.UnitTestsCount)

	assert.True(t, p.E2ETestsFound)
	assert.Equal(t, []string{
		"cypress/login.spec.js",
		"tests/Integration/test_db.py",
		"tests/e2e/test_checkout.py",
	}, p.E2ETestFiles)
	assert.Equal(t, 3, p.E2ETestsCount)
}

func TestDiscover_SkipsDependencyDirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"node_modules/lib/index.test.js",
		"venv/lib/site-packages/pkg/test_x.py",
		".venv/lib/test_y.py",
		"web/dist/bundle.test.js",
		"build/gen/test_gen.py",
		"src/distance_test.py",
	)

	p := discovery.New().Discover(root)

	assert.Equal(t, []string{"src/distance_test.py"}, p.UnitTestFiles,
		"only whole directory names are excluded")
	assert.False(t, p.E2ETestsFound)
}

func TestDiscover_HonorsRepositoryGitignore(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "generated/test_stub.py", "tests/test_real.py")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("generated/\n"), 0644))

	p := discovery.New().Discover(root)
	assert.Equal(t, []string{"tests/test_real.py"}, p.UnitTestFiles)
}

func TestDiscover_WithExcludes(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "legacy/test_old.py", "tests/test_new.py")

	p := discovery.New().WithExcludes("legacy/").Discover(root)
	assert.Equal(t, []string{"tests/test_new.py"}, p.UnitTestFiles)
}

func TestDiscover_EmptyTree(t *testing.T) {
	p := discovery.New().Discover(t.TempDir())

	assert.False(t, p.UnitTestsFound)
	assert.False(t, p.E2ETestsFound)
	assert.NotNil(t, p.UnitTestFiles)
	assert.NotNil(t, p.E2ETestFiles)
}
