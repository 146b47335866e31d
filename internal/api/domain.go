package api

import (
	"fmt"

	"github.com/JaimeStill/catalog-console/internal/catalog"
	"github.com/JaimeStill/catalog-console/internal/collection"
)

// Domain holds one view-model per console screen, in navigation order.
type Domain struct {
	Screens []*collection.ViewModel
}

// NewDomain creates every screen view-model from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	screens := catalog.Screens(runtime.OperationTimeout)
	domain := &Domain{Screens: make([]*collection.ViewModel, 0, len(screens))}

	for _, opts := range screens {
		vm, err := collection.New(opts, runtime.Store, runtime.Assets, runtime.Logger)
		if err != nil {
			return nil, fmt.Errorf("screen %s: %w", opts.Name, err)
		}
		domain.Screens = append(domain.Screens, vm)
	}

	return domain, nil
}

// ScreenInfo describes a screen for navigation.
type ScreenInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Collection string `json:"collection"`
	ReadOnly   bool   `json:"read_only"`
}

// Index lists the screens in navigation order.
func (d *Domain) Index() []ScreenInfo {
	out := make([]ScreenInfo, len(d.Screens))
	for i, vm := range d.Screens {
		opts := vm.Options()
		out[i] = ScreenInfo{
			Name:       opts.Name,
			Title:      opts.Title,
			Collection: opts.Collection,
			ReadOnly:   opts.ReadOnly,
		}
	}
	return out
}
