package messages

import (
	"github.com/bardasz/etp/pkg/protocol"
)

// Message is a typed ETP message body.
type Message interface {
	// MessageKey returns the (protocol, messageType) the body is sent under.
	MessageKey() protocol.Key

	// Native returns the goavro native record for the body.
	Native() map[string]any
}

// Raw is a message body without a typed model.
type Raw struct {
	Key  protocol.Key
	Body map[string]any
}

func (r *Raw) MessageKey() protocol.Key { return r.Key }
func (r *Raw) Native() map[string]any   { return r.Body }

type decodeFunc func(v any) (Message, error)

func typed[T Message](f func(any) (T, error)) decodeFunc {
	return func(v any) (Message, error) {
		m, err := f(v)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

var decoders = map[protocol.Key]decodeFunc{
	protocol.CoreRequestSession:    typed(RequestSessionFromNative),
	protocol.CoreOpenSession:       typed(OpenSessionFromNative),
	protocol.CoreCloseSession:      typed(CloseSessionFromNative),
	protocol.CoreAuthorize:         typed(AuthorizeFromNative),
	protocol.CoreAuthorizeResponse: typed(AuthorizeResponseFromNative),
	protocol.CorePing:              typed(PingFromNative),
	protocol.CorePong:              typed(PongFromNative),
	protocol.CoreProtocolException: typed(ProtocolExceptionFromNative),
	protocol.CoreAcknowledge:       func(any) (Message, error) { return &Acknowledge{}, nil },

	protocol.DiscoveryGetResources:         typed(GetResourcesFromNative),
	protocol.DiscoveryGetResourcesResponse: typed(GetResourcesResponseFromNative),

	protocol.StoreGetDataObjects:         typed(GetDataObjectsFromNative),
	protocol.StoreGetDataObjectsResponse: typed(GetDataObjectsResponseFromNative),

	protocol.TransactionStartTransaction:            typed(StartTransactionFromNative),
	protocol.TransactionStartTransactionResponse:    typed(StartTransactionResponseFromNative),
	protocol.TransactionCommitTransaction:           typed(CommitTransactionFromNative),
	protocol.TransactionRollbackTransaction:         typed(RollbackTransactionFromNative),
	protocol.TransactionCommitTransactionResponse:   typed(CommitTransactionResponseFromNative),
	protocol.TransactionRollbackTransactionResponse: typed(RollbackTransactionResponseFromNative),

	protocol.DataspaceGetDataspaces:         typed(GetDataspacesFromNative),
	protocol.DataspaceGetDataspacesResponse: typed(GetDataspacesResponseFromNative),
}

func init() {
	for _, k := range []protocol.Key{
		protocol.ChannelStreamingChannelData,
		protocol.ChannelSubscribeChannelData,
		protocol.ChannelDataLoadChannelData,
	} {
		k := k
		decoders[k] = func(v any) (Message, error) {
			return ChannelDataFromNative(k, v)
		}
	}
}

// Decode converts a decoded body into its typed message. Bodies without a
// typed model are returned as *Raw. ProtocolException and Acknowledge are
// typed in every protocol.
func Decode(key protocol.Key, native any) (Message, error) {
	f, ok := decoders[key]
	if !ok {
		switch {
		case key.IsProtocolException():
			f = decoders[protocol.CoreProtocolException]
		case key.IsAcknowledge():
			f = decoders[protocol.CoreAcknowledge]
		}
	}
	if f == nil {
		r := newReader("body", native)
		if r.err != nil {
			return nil, r.err
		}
		return &Raw{Key: key, Body: r.rec}, nil
	}
	m, err := f(native)
	if err != nil {
		return nil, err
	}
	switch x := m.(type) {
	case *ProtocolException:
		x.Key = key
	case *Acknowledge:
		x.Key = key
	}
	return m, nil
}
