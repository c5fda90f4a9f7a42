package modelsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

type fileSource struct {
	path string
}

// NewFileSource reads coefficients from a YAML, JSON or TOML file; the format
// follows the file extension.
func NewFileSource(path string) ports.CoefficientSource {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (*domain.CoefficientSet, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCoefficientSetNotFound, s.path)
		}
		return nil, fmt.Errorf("read coefficient file: %w", err)
	}
	return unmarshal(v)
}

func (s *fileSource) Describe() string {
	return "file " + s.path
}
