package sources

import "context"

// PackCapable loads every provider in one category sequentially and returns
// the names whose source reports pack capability.
//
// Unlike Discover, this path is not fault tolerant per item: the first load
// failure aborts the call and surfaces to the caller. It backs a narrow,
// operator-facing listing where a broken provider should be visible, and it
// is not performance critical enough to parallelize.
func (d *Discovery) PackCapable(ctx context.Context, category string) ([]string, error) {
	var names []string
	for _, desc := range d.enumerateCategory(ctx, category, true) {
		loaded, err := d.loader.Load(desc)
		if err != nil {
			return nil, err
		}
		if loaded.Source.PackCapable() {
			names = append(names, loaded.Name)
		}
	}
	return names, nil
}
