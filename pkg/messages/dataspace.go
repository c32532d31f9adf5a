package messages

import "github.com/bardasz/etp/pkg/protocol"

// Dataspace is a named partition of a store.
type Dataspace struct {
	URI            string
	Path           string
	StoreLastWrite int64
	StoreCreated   int64
	CustomData     map[string]DataValue
}

func (d *Dataspace) Native() map[string]any {
	return map[string]any{
		"uri":            d.URI,
		"path":           d.Path,
		"storeLastWrite": d.StoreLastWrite,
		"storeCreated":   d.StoreCreated,
		"customData":     dataValueMapNative(d.CustomData),
	}
}

// DataspaceFromNative converts a decoded Dataspace record.
func DataspaceFromNative(v any) (*Dataspace, error) {
	r := newReader("Dataspace", v)
	d := &Dataspace{
		URI:            r.Str("uri"),
		Path:           r.Str("path"),
		StoreLastWrite: r.Int64("storeLastWrite"),
		StoreCreated:   r.Int64("storeCreated"),
		CustomData:     r.DataValueMap("customData"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return d, nil
}

type GetDataspaces struct {
	StoreLastWriteFilter *int64
}

func (m *GetDataspaces) MessageKey() protocol.Key { return protocol.DataspaceGetDataspaces }

func (m *GetDataspaces) Native() map[string]any {
	return map[string]any{"storeLastWriteFilter": optionalInt64Native(m.StoreLastWriteFilter)}
}

func GetDataspacesFromNative(v any) (*GetDataspaces, error) {
	r := newReader("GetDataspaces", v)
	m := &GetDataspaces{StoreLastWriteFilter: r.OptionalInt64("storeLastWriteFilter")}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

type GetDataspacesResponse struct {
	Dataspaces []*Dataspace
}

func (m *GetDataspacesResponse) MessageKey() protocol.Key {
	return protocol.DataspaceGetDataspacesResponse
}

func (m *GetDataspacesResponse) Native() map[string]any {
	items := make([]any, len(m.Dataspaces))
	for i, d := range m.Dataspaces {
		items[i] = d.Native()
	}
	return map[string]any{"dataspaces": items}
}

func GetDataspacesResponseFromNative(v any) (*GetDataspacesResponse, error) {
	r := newReader("GetDataspacesResponse", v)
	items := r.Array("dataspaces")
	if r.err != nil {
		return nil, r.err
	}
	m := &GetDataspacesResponse{Dataspaces: make([]*Dataspace, 0, len(items))}
	for _, it := range items {
		d, err := DataspaceFromNative(it)
		if err != nil {
			return nil, err
		}
		m.Dataspaces = append(m.Dataspaces, d)
	}
	return m, nil
}
