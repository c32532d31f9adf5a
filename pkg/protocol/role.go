package protocol

import "time"

// Role names used in SupportedProtocol.role.
const (
	RoleClient   = "client"
	RoleServer   = "server"
	RoleCustomer = "customer"
	RoleStore    = "store"
	RoleProducer = "producer"
	RoleConsumer = "consumer"
)

// SubProtocol is the websocket sub-protocol identifier for ETP 1.2.
const SubProtocol = "etp12.energistics.org"

// TimeToETP converts t to ETP's timestamp unit, milliseconds since the Unix epoch.
func TimeToETP(t time.Time) int64 {
	return t.UnixMilli()
}

// TimeFromETP converts an ETP timestamp back to a time.Time in UTC.
func TimeFromETP(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
