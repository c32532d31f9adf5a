package messages

import (
	"github.com/linkedin/goavro/v2"

	"github.com/bardasz/etp/pkg/protocol"
)

// DataObject is a resource with its serialized content.
type DataObject struct {
	Resource *Resource
	Format   string

	// BlobID is set when Data is sent separately in Chunk messages.
	BlobID *Uuid
	Data   []byte
}

func (d *DataObject) Native() map[string]any {
	var blob any
	if d.BlobID != nil {
		blob = goavro.Union(typeUuid, d.BlobID.Native())
	}
	format := d.Format
	if format == "" {
		format = "xml"
	}
	res := d.Resource
	if res == nil {
		res = &Resource{}
	}
	data := d.Data
	if data == nil {
		data = []byte{}
	}
	return map[string]any{
		"resource": res.Native(),
		"format":   format,
		"blobId":   blob,
		"data":     data,
	}
}

// DataObjectFromNative converts a decoded DataObject record.
func DataObjectFromNative(v any) (*DataObject, error) {
	r := newReader("DataObject", v)
	d := &DataObject{
		Format: r.StrOr("format", "xml"),
		Data:   r.Bytes("data"),
	}
	if branch, x := r.Union("blobId"); branch == typeUuid {
		u, err := UuidFromNative(x)
		r.setErr(err)
		d.BlobID = &u
	}
	res, err := ResourceFromNative(r.Record("resource"))
	r.setErr(err)
	d.Resource = res
	if r.err != nil {
		return nil, r.err
	}
	return d, nil
}

// GetDataObjects fetches data objects by URI. The map keys are echoed in
// the response.
type GetDataObjects struct {
	URIs   map[string]string
	Format string
}

func (m *GetDataObjects) MessageKey() protocol.Key { return protocol.StoreGetDataObjects }

func (m *GetDataObjects) Native() map[string]any {
	format := m.Format
	if format == "" {
		format = "xml"
	}
	return map[string]any{
		"uris":   stringMapNative(m.URIs),
		"format": format,
	}
}

func GetDataObjectsFromNative(v any) (*GetDataObjects, error) {
	r := newReader("GetDataObjects", v)
	m := &GetDataObjects{
		URIs:   r.StringMap("uris"),
		Format: r.StrOr("format", "xml"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

type GetDataObjectsResponse struct {
	DataObjects map[string]*DataObject
}

func (m *GetDataObjectsResponse) MessageKey() protocol.Key {
	return protocol.StoreGetDataObjectsResponse
}

func (m *GetDataObjectsResponse) Native() map[string]any {
	objs := make(map[string]any, len(m.DataObjects))
	for k, d := range m.DataObjects {
		objs[k] = d.Native()
	}
	return map[string]any{"dataObjects": objs}
}

func GetDataObjectsResponseFromNative(v any) (*GetDataObjectsResponse, error) {
	r := newReader("GetDataObjectsResponse", v)
	objs := r.Map("dataObjects")
	if r.err != nil {
		return nil, r.err
	}
	m := &GetDataObjectsResponse{DataObjects: make(map[string]*DataObject, len(objs))}
	for k, o := range objs {
		d, err := DataObjectFromNative(o)
		if err != nil {
			return nil, err
		}
		m.DataObjects[k] = d
	}
	return m, nil
}
