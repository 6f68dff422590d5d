package assets

import (
	"github.com/Faultbox/texset/internal/config"
)

// NewFromConfig creates a manager with the charset, color key and search
// roots of cfg. Roots are added in order, so later roots win.
func NewFromConfig(cfg config.AssetsConfig, opts ...Option) (*Manager, error) {
	all := append([]Option{
		WithEncoding(cfg.Encoding),
		WithMagentaKey(cfg.MagentaKey),
	}, opts...)

	m, err := NewManager(all...)
	if err != nil {
		return nil, err
	}
	for _, dir := range cfg.Roots {
		if err := m.AddRoot(dir); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}
