package messages

import "github.com/bardasz/etp/pkg/protocol"

// DataItem is one channel value at one index.
type DataItem struct {
	ChannelID       int64
	Indexes         []IndexValue
	Value           DataValue
	ValueAttributes []DataAttribute
}

func (d DataItem) Native() map[string]any {
	indexes := make([]any, len(d.Indexes))
	for i, ix := range d.Indexes {
		indexes[i] = IndexValueNative(ix)
	}
	attrs := make([]any, len(d.ValueAttributes))
	for i, a := range d.ValueAttributes {
		attrs[i] = a.Native()
	}
	return map[string]any{
		"channelId":       d.ChannelID,
		"indexes":         indexes,
		"value":           DataValueNative(d.Value),
		"valueAttributes": attrs,
	}
}

// DataItemFromNative converts a decoded DataItem record.
func DataItemFromNative(v any) (DataItem, error) {
	r := newReader("DataItem", v)
	d := DataItem{ChannelID: r.Int64("channelId")}
	indexes := r.Array("indexes")
	value := r.Record("value")
	attrs := r.Array("valueAttributes")
	if r.err != nil {
		return DataItem{}, r.err
	}

	d.Indexes = make([]IndexValue, 0, len(indexes))
	for _, ix := range indexes {
		iv, err := IndexValueFromNative(ix)
		if err != nil {
			return DataItem{}, err
		}
		d.Indexes = append(d.Indexes, iv)
	}

	dv, err := DataValueFromNative(value)
	if err != nil {
		return DataItem{}, err
	}
	d.Value = dv

	d.ValueAttributes = make([]DataAttribute, 0, len(attrs))
	for _, a := range attrs {
		attr, err := DataAttributeFromNative(a)
		if err != nil {
			return DataItem{}, err
		}
		d.ValueAttributes = append(d.ValueAttributes, attr)
	}
	return d, nil
}

// ChannelData carries data points. The same shape is used by
// ChannelStreaming, ChannelSubscribe and ChannelDataLoad; Key picks the
// protocol and defaults to ChannelSubscribe.
type ChannelData struct {
	Key  protocol.Key
	Data []DataItem
}

func (m *ChannelData) MessageKey() protocol.Key {
	if m.Key == (protocol.Key{}) {
		return protocol.ChannelSubscribeChannelData
	}
	return m.Key
}

func (m *ChannelData) Native() map[string]any {
	items := make([]any, len(m.Data))
	for i, d := range m.Data {
		items[i] = d.Native()
	}
	return map[string]any{"data": items}
}

// ChannelDataFromNative converts a decoded ChannelData body received under key.
func ChannelDataFromNative(key protocol.Key, v any) (*ChannelData, error) {
	r := newReader("ChannelData", v)
	items := r.Array("data")
	if r.err != nil {
		return nil, r.err
	}
	m := &ChannelData{Key: key, Data: make([]DataItem, 0, len(items))}
	for _, it := range items {
		d, err := DataItemFromNative(it)
		if err != nil {
			return nil, err
		}
		m.Data = append(m.Data, d)
	}
	return m, nil
}
