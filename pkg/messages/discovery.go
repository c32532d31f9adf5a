package messages

import (
	"github.com/linkedin/goavro/v2"

	"github.com/bardasz/etp/pkg/protocol"
)

// ActiveStatusKind reports whether an object is still being updated.
type ActiveStatusKind string

const (
	StatusActive   ActiveStatusKind = "Active"
	StatusInactive ActiveStatusKind = "Inactive"
)

// ContextScopeKind selects which side of the graph a discovery walks.
type ContextScopeKind string

const (
	ScopeSelf          ContextScopeKind = "self"
	ScopeSources       ContextScopeKind = "sources"
	ScopeTargets       ContextScopeKind = "targets"
	ScopeSourcesOrSelf ContextScopeKind = "sourcesOrSelf"
	ScopeTargetsOrSelf ContextScopeKind = "targetsOrSelf"
)

// RelationshipKind classifies graph edges.
type RelationshipKind string

const (
	RelationshipPrimary   RelationshipKind = "Primary"
	RelationshipSecondary RelationshipKind = "Secondary"
	RelationshipBoth      RelationshipKind = "Both"
)

// ContextInfo is the starting point and extent of a discovery.
type ContextInfo struct {
	URI                     string
	Depth                   int32
	DataObjectTypes         []string
	NavigableEdges          RelationshipKind
	IncludeSecondaryTargets bool
	IncludeSecondarySources bool
}

func (c ContextInfo) Native() map[string]any {
	return map[string]any{
		"uri":                     c.URI,
		"depth":                   c.Depth,
		"dataObjectTypes":         stringsNative(c.DataObjectTypes),
		"navigableEdges":          string(c.NavigableEdges),
		"includeSecondaryTargets": c.IncludeSecondaryTargets,
		"includeSecondarySources": c.IncludeSecondarySources,
	}
}

func contextInfoFromNative(v any) (ContextInfo, error) {
	r := newReader("ContextInfo", v)
	c := ContextInfo{
		URI:                     r.Str("uri"),
		Depth:                   r.Int32("depth"),
		DataObjectTypes:         r.Strings("dataObjectTypes"),
		NavigableEdges:          RelationshipKind(r.Str("navigableEdges")),
		IncludeSecondaryTargets: r.Bool("includeSecondaryTargets"),
		IncludeSecondarySources: r.Bool("includeSecondarySources"),
	}
	return c, r.err
}

// Resource describes one data object without its content.
type Resource struct {
	URI            string
	AlternateURIs  []string
	Name           string
	SourceCount    *int32
	TargetCount    *int32
	LastChanged    int64
	StoreLastWrite int64
	StoreCreated   int64
	ActiveStatus   ActiveStatusKind
	CustomData     map[string]DataValue
}

func (res *Resource) Native() map[string]any {
	return map[string]any{
		"uri":            res.URI,
		"alternateUris":  stringsNative(res.AlternateURIs),
		"name":           res.Name,
		"sourceCount":    optionalInt32Native(res.SourceCount),
		"targetCount":    optionalInt32Native(res.TargetCount),
		"lastChanged":    res.LastChanged,
		"storeLastWrite": res.StoreLastWrite,
		"storeCreated":   res.StoreCreated,
		"activeStatus":   string(res.ActiveStatus),
		"customData":     dataValueMapNative(res.CustomData),
	}
}

// ResourceFromNative converts a decoded Resource record.
func ResourceFromNative(v any) (*Resource, error) {
	r := newReader("Resource", v)
	res := &Resource{
		URI:            r.Str("uri"),
		AlternateURIs:  r.Strings("alternateUris"),
		Name:           r.Str("name"),
		SourceCount:    r.OptionalInt32("sourceCount"),
		TargetCount:    r.OptionalInt32("targetCount"),
		LastChanged:    r.Int64("lastChanged"),
		StoreLastWrite: r.Int64("storeLastWrite"),
		StoreCreated:   r.Int64("storeCreated"),
		ActiveStatus:   ActiveStatusKind(r.Str("activeStatus")),
		CustomData:     r.DataValueMap("customData"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return res, nil
}

// Edge is a relationship between two resources.
type Edge struct {
	SourceURI        string
	TargetURI        string
	RelationshipKind RelationshipKind
	CustomData       map[string]DataValue
}

func (e *Edge) Native() map[string]any {
	return map[string]any{
		"sourceUri":        e.SourceURI,
		"targetUri":        e.TargetURI,
		"relationshipKind": string(e.RelationshipKind),
		"customData":       dataValueMapNative(e.CustomData),
	}
}

// EdgeFromNative converts a decoded Edge record.
func EdgeFromNative(v any) (*Edge, error) {
	r := newReader("Edge", v)
	e := &Edge{
		SourceURI:        r.Str("sourceUri"),
		TargetURI:        r.Str("targetUri"),
		RelationshipKind: RelationshipKind(r.Str("relationshipKind")),
		CustomData:       r.DataValueMap("customData"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return e, nil
}

// GetResources lists the resources reachable from a context.
type GetResources struct {
	Context              ContextInfo
	Scope                ContextScopeKind
	CountObjects         bool
	StoreLastWriteFilter *int64
	ActiveStatusFilter   *ActiveStatusKind
	IncludeEdges         bool
}

// NewGetResources returns a one-level GetResources for uri.
func NewGetResources(uri string, scope ContextScopeKind) *GetResources {
	return &GetResources{
		Context: ContextInfo{
			URI:            uri,
			Depth:          1,
			NavigableEdges: RelationshipPrimary,
		},
		Scope: scope,
	}
}

func (m *GetResources) MessageKey() protocol.Key { return protocol.DiscoveryGetResources }

func (m *GetResources) Native() map[string]any {
	var status any
	if m.ActiveStatusFilter != nil {
		status = goavro.Union(typeActiveStatusKind, string(*m.ActiveStatusFilter))
	}
	return map[string]any{
		"context":              m.Context.Native(),
		"scope":                string(m.Scope),
		"countObjects":         m.CountObjects,
		"storeLastWriteFilter": optionalInt64Native(m.StoreLastWriteFilter),
		"activeStatusFilter":   status,
		"includeEdges":         m.IncludeEdges,
	}
}

func GetResourcesFromNative(v any) (*GetResources, error) {
	r := newReader("GetResources", v)
	m := &GetResources{
		Scope:                ContextScopeKind(r.Str("scope")),
		CountObjects:         r.Bool("countObjects"),
		StoreLastWriteFilter: r.OptionalInt64("storeLastWriteFilter"),
		IncludeEdges:         r.Bool("includeEdges"),
	}
	ctx, err := contextInfoFromNative(r.Record("context"))
	r.setErr(err)
	m.Context = ctx
	if branch, x := r.Union("activeStatusFilter"); branch == typeActiveStatusKind {
		if s, ok := x.(string); ok {
			status := ActiveStatusKind(s)
			m.ActiveStatusFilter = &status
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// GetResourcesResponse is one part of the answer to GetResources.
type GetResourcesResponse struct {
	Resources []*Resource
}

func (m *GetResourcesResponse) MessageKey() protocol.Key {
	return protocol.DiscoveryGetResourcesResponse
}

func (m *GetResourcesResponse) Native() map[string]any {
	items := make([]any, len(m.Resources))
	for i, res := range m.Resources {
		items[i] = res.Native()
	}
	return map[string]any{"resources": items}
}

func GetResourcesResponseFromNative(v any) (*GetResourcesResponse, error) {
	r := newReader("GetResourcesResponse", v)
	items := r.Array("resources")
	if r.err != nil {
		return nil, r.err
	}
	m := &GetResourcesResponse{Resources: make([]*Resource, 0, len(items))}
	for _, it := range items {
		res, err := ResourceFromNative(it)
		if err != nil {
			return nil, err
		}
		m.Resources = append(m.Resources, res)
	}
	return m, nil
}
