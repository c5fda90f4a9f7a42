package kube

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"nomogram-service/internal/adapters/secondary/modelsource"
	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

type configMapSource struct {
	client    kubernetes.Interface
	namespace string
	name      string
	key       string
}

// NewConfigMapSource reads a coefficient document stored under key in a
// ConfigMap. The key's extension selects the format; yaml is assumed when it
// has none.
func NewConfigMapSource(client kubernetes.Interface, namespace, name, key string) ports.CoefficientSource {
	return &configMapSource{
		client:    client,
		namespace: namespace,
		name:      name,
		key:       key,
	}
}

func (s *configMapSource) Load(ctx context.Context) (*domain.CoefficientSet, error) {
	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, s.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: configmap %s/%s", domain.ErrCoefficientSetNotFound, s.namespace, s.name)
		}
		return nil, fmt.Errorf("get configmap %s/%s: %w", s.namespace, s.name, err)
	}

	doc, ok := cm.Data[s.key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q not in configmap %s/%s", domain.ErrCoefficientSetNotFound, s.key, s.namespace, s.name)
	}

	set, err := modelsource.Decode(strings.NewReader(doc), formatOf(s.key))
	if err != nil {
		return nil, err
	}

	// Fall back to the object's identity when the document omits it.
	if set.Name == "" {
		set.Name = cm.Name
	}
	if set.Version == "" {
		set.Version = cm.ResourceVersion
	}
	return set, nil
}

func (s *configMapSource) Describe() string {
	return fmt.Sprintf("configmap %s/%s[%s]", s.namespace, s.name, s.key)
}

func formatOf(key string) string {
	switch ext := strings.TrimPrefix(filepath.Ext(key), "."); ext {
	case "json", "toml", "yaml", "yml":
		return ext
	default:
		return "yaml"
	}
}
