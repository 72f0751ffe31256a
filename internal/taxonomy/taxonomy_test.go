package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	tax := Default()
	require.NoError(t, tax.Validate())
	assert.Len(t, tax, 17)
	assert.Equal(t, "Python", tax[0].Name)
	assert.Equal(t, "AI", tax[len(tax)-1].Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tax     Taxonomy
		wantErr string
	}{
		{"empty taxonomy is valid", Taxonomy{}, ""},
		{"blank name", Taxonomy{{Name: " ", Patterns: []string{"go"}}}, "name is required"},
		{"duplicate name", Taxonomy{{Name: "Go", Patterns: []string{"go"}}, {Name: "Go", Patterns: []string{"golang"}}}, "duplicate"},
		{"no patterns", Taxonomy{{Name: "Go"}}, "at least one pattern"},
		{"blank pattern", Taxonomy{{Name: "Go", Patterns: []string{"go", ""}}}, "blank pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tax.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsPhrase(t *testing.T) {
	assert.True(t, IsPhrase("machine learning"))
	assert.True(t, IsPhrase("amazon  web services"))
	assert.False(t, IsPhrase("python"))
	assert.False(t, IsPhrase(" k8s "))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	content := `
skills:
  - name: Go
    patterns: [golang, go]
  - name: Rust
    patterns: [rust]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tax, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, tax.Names())
	assert.Equal(t, []string{"golang", "go"}, tax[0].Patterns)
}

func TestLoad_InvalidTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills:\n  - name: Go\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one pattern")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
