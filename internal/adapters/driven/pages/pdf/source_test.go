package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

func TestSource_Extensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().Extensions())
	assert.Equal(t, "pdf", New().Name())
}

func TestSource_Load_MissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_Load_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	_, err := New().Load(context.Background(), path)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
