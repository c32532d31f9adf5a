// Package messages is the typed Go model of the ETP 1.2 payloads a client
// works with most.
//
// Each message type implements Message and converts to the goavro native
// form with Native. The matching XxxFromNative function turns a decoded body
// back into the typed form. Messages without a typed model travel as Raw.
//
// Avro unions are modelled as closed sum types:
//
//	var v messages.DataValue = messages.DoubleValue(34.1)
//	switch x := v.(type) {
//	case messages.DoubleValue:
//	case messages.ArrayOfLong:
//	}
//
// A nil DataValue or IndexValue encodes as the null branch.
package messages
