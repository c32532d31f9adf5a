// Package schema holds the ETP 1.2 Avro schema catalog and the codecs built
// from it.
//
// The catalog is embedded as JSON files under catalog/. Files are loaded in
// lexical order and the definitions inside each file in array order, so a
// definition may only reference names declared before it:
//
//	00_datatypes.avsc.json       Uuid, Version, DataValue, SupportedProtocol, ...
//	01_indexes.avsc.json         PassIndexedDepth, IndexValue, channel enums
//	02_object.avsc.json          Resource, DataObject, Dataspace, ...
//	...
//	p00_core.avsc.json           Core protocol messages
//	p21_channelsubscribe.avsc.json
//
// Every record in an Energistics.Etp.v12.Protocol.* namespace that carries
// "protocol" and "messageType" attributes is a message and gets a codec,
// addressable by its protocol.Key.
//
// # Usage
//
//	reg := schema.Default()
//
//	body, err := reg.SerializeBody(protocol.CorePing, map[string]any{
//	    "currentDateTime": protocol.TimeToETP(time.Now()),
//	})
//
//	native, rest, err := reg.DeserializeBody(protocol.CorePing, body)
//
// Values use goavro's native representation: records and maps are
// map[string]any, arrays are []any, unions are nil or a single-entry
// map[string]any keyed by the branch type name, bytes and fixed are []byte.
package schema
