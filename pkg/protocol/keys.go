package protocol

// Protocol is an ETP sub-protocol number.
type Protocol int32

const (
	ProtocolCore                      Protocol = 0
	ProtocolChannelStreaming          Protocol = 1
	ProtocolChannelDataFrame          Protocol = 2
	ProtocolDiscovery                 Protocol = 3
	ProtocolStore                     Protocol = 4
	ProtocolStoreNotification         Protocol = 5
	ProtocolGrowingObject             Protocol = 6
	ProtocolGrowingObjectNotification Protocol = 7
	ProtocolDataArray                 Protocol = 9
	ProtocolDiscoveryQuery            Protocol = 13
	ProtocolStoreQuery                Protocol = 14
	ProtocolGrowingObjectQuery        Protocol = 16
	ProtocolTransaction               Protocol = 18
	ProtocolChannelSubscribe          Protocol = 21
	ProtocolChannelDataLoad           Protocol = 22
	ProtocolDataspace                 Protocol = 24
	ProtocolSupportedTypes            Protocol = 25

	// ProtocolWitsmlSoap is a private extension bridging WITSML SOAP calls.
	ProtocolWitsmlSoap Protocol = 2100
)

// String returns the protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolCore:
		return "Core"
	case ProtocolChannelStreaming:
		return "ChannelStreaming"
	case ProtocolChannelDataFrame:
		return "ChannelDataFrame"
	case ProtocolDiscovery:
		return "Discovery"
	case ProtocolStore:
		return "Store"
	case ProtocolStoreNotification:
		return "StoreNotification"
	case ProtocolGrowingObject:
		return "GrowingObject"
	case ProtocolGrowingObjectNotification:
		return "GrowingObjectNotification"
	case ProtocolDataArray:
		return "DataArray"
	case ProtocolDiscoveryQuery:
		return "DiscoveryQuery"
	case ProtocolStoreQuery:
		return "StoreQuery"
	case ProtocolGrowingObjectQuery:
		return "GrowingObjectQuery"
	case ProtocolTransaction:
		return "Transaction"
	case ProtocolChannelSubscribe:
		return "ChannelSubscribe"
	case ProtocolChannelDataLoad:
		return "ChannelDataLoad"
	case ProtocolDataspace:
		return "Dataspace"
	case ProtocolSupportedTypes:
		return "SupportedTypes"
	case ProtocolWitsmlSoap:
		return "WitsmlSoap"
	default:
		return "Unknown"
	}
}

func key(p Protocol, messageType int32) Key {
	return Key{Protocol: int32(p), MessageType: messageType}
}

// Core (0)
var (
	CoreRequestSession    = key(ProtocolCore, 1)
	CoreOpenSession       = key(ProtocolCore, 2)
	CoreCloseSession      = key(ProtocolCore, 5)
	CoreAuthorize         = key(ProtocolCore, 6)
	CoreAuthorizeResponse = key(ProtocolCore, 7)
	CorePing              = key(ProtocolCore, 8)
	CorePong              = key(ProtocolCore, 9)
	CoreProtocolException = key(ProtocolCore, MessageTypeProtocolException)
	CoreAcknowledge       = key(ProtocolCore, MessageTypeAcknowledge)
)

// ChannelStreaming (1)
var (
	ChannelStreamingChannelMetadata  = key(ProtocolChannelStreaming, 1)
	ChannelStreamingChannelData      = key(ProtocolChannelStreaming, 2)
	ChannelStreamingStartStreaming   = key(ProtocolChannelStreaming, 3)
	ChannelStreamingStopStreaming    = key(ProtocolChannelStreaming, 4)
	ChannelStreamingTruncateChannels = key(ProtocolChannelStreaming, 5)
)

// ChannelDataFrame (2)
var (
	ChannelDataFrameGetFrameMetadata         = key(ProtocolChannelDataFrame, 1)
	ChannelDataFrameGetFrameMetadataResponse = key(ProtocolChannelDataFrame, 2)
	ChannelDataFrameGetFrame                 = key(ProtocolChannelDataFrame, 3)
	ChannelDataFrameGetFrameResponseHeader   = key(ProtocolChannelDataFrame, 4)
	ChannelDataFrameCancelGetFrame           = key(ProtocolChannelDataFrame, 5)
	ChannelDataFrameGetFrameResponseRows     = key(ProtocolChannelDataFrame, 6)
)

// Discovery (3)
var (
	DiscoveryGetResources                = key(ProtocolDiscovery, 1)
	DiscoveryGetResourcesResponse        = key(ProtocolDiscovery, 4)
	DiscoveryGetDeletedResources         = key(ProtocolDiscovery, 5)
	DiscoveryGetDeletedResourcesResponse = key(ProtocolDiscovery, 6)
	DiscoveryGetResourcesEdgesResponse   = key(ProtocolDiscovery, 7)
)

// Store (4)
var (
	StoreGetDataObjects            = key(ProtocolStore, 1)
	StorePutDataObjects            = key(ProtocolStore, 2)
	StoreDeleteDataObjects         = key(ProtocolStore, 3)
	StoreGetDataObjectsResponse    = key(ProtocolStore, 4)
	StoreChunk                     = key(ProtocolStore, 8)
	StorePutDataObjectsResponse    = key(ProtocolStore, 9)
	StoreDeleteDataObjectsResponse = key(ProtocolStore, 10)
)

// StoreNotification (5)
var (
	StoreNotificationObjectChanged                  = key(ProtocolStoreNotification, 2)
	StoreNotificationObjectDeleted                  = key(ProtocolStoreNotification, 3)
	StoreNotificationUnsubscribeNotifications       = key(ProtocolStoreNotification, 4)
	StoreNotificationObjectAccessRevoked            = key(ProtocolStoreNotification, 5)
	StoreNotificationSubscribeNotifications         = key(ProtocolStoreNotification, 6)
	StoreNotificationSubscriptionEnded              = key(ProtocolStoreNotification, 7)
	StoreNotificationUnsolicitedStoreNotifications  = key(ProtocolStoreNotification, 8)
	StoreNotificationChunk                          = key(ProtocolStoreNotification, 9)
	StoreNotificationSubscribeNotificationsResponse = key(ProtocolStoreNotification, 10)
	StoreNotificationObjectActiveStatusChanged      = key(ProtocolStoreNotification, 11)
)

// GrowingObject (6)
var (
	GrowingObjectDeleteParts                         = key(ProtocolGrowingObject, 1)
	GrowingObjectGetParts                            = key(ProtocolGrowingObject, 3)
	GrowingObjectGetPartsByRange                     = key(ProtocolGrowingObject, 4)
	GrowingObjectPutParts                            = key(ProtocolGrowingObject, 5)
	GrowingObjectGetPartsResponse                    = key(ProtocolGrowingObject, 6)
	GrowingObjectReplacePartsByRange                 = key(ProtocolGrowingObject, 7)
	GrowingObjectGetPartsMetadata                    = key(ProtocolGrowingObject, 8)
	GrowingObjectGetPartsMetadataResponse            = key(ProtocolGrowingObject, 9)
	GrowingObjectGetPartsByRangeResponse             = key(ProtocolGrowingObject, 10)
	GrowingObjectDeletePartsResponse                 = key(ProtocolGrowingObject, 11)
	GrowingObjectPutPartsResponse                    = key(ProtocolGrowingObject, 13)
	GrowingObjectGetGrowingDataObjectsHeader         = key(ProtocolGrowingObject, 14)
	GrowingObjectGetGrowingDataObjectsHeaderResponse = key(ProtocolGrowingObject, 15)
	GrowingObjectPutGrowingDataObjectsHeader         = key(ProtocolGrowingObject, 16)
	GrowingObjectPutGrowingDataObjectsHeaderResponse = key(ProtocolGrowingObject, 17)
	GrowingObjectGetChangeAnnotations                = key(ProtocolGrowingObject, 19)
	GrowingObjectGetChangeAnnotationsResponse        = key(ProtocolGrowingObject, 20)
)

// GrowingObjectNotification (7)
var (
	GrowingObjectNotificationPartsChanged                       = key(ProtocolGrowingObjectNotification, 2)
	GrowingObjectNotificationPartsDeleted                       = key(ProtocolGrowingObjectNotification, 3)
	GrowingObjectNotificationUnsubscribePartNotification        = key(ProtocolGrowingObjectNotification, 4)
	GrowingObjectNotificationPartsReplacedByRange               = key(ProtocolGrowingObjectNotification, 6)
	GrowingObjectNotificationSubscribePartNotifications         = key(ProtocolGrowingObjectNotification, 7)
	GrowingObjectNotificationPartSubscriptionEnded              = key(ProtocolGrowingObjectNotification, 8)
	GrowingObjectNotificationUnsolicitedPartNotifications       = key(ProtocolGrowingObjectNotification, 9)
	GrowingObjectNotificationSubscribePartNotificationsResponse = key(ProtocolGrowingObjectNotification, 10)
)

// DataArray (9)
var (
	DataArrayGetDataArraysResponse              = key(ProtocolDataArray, 1)
	DataArrayGetDataArrays                      = key(ProtocolDataArray, 2)
	DataArrayGetDataSubarrays                   = key(ProtocolDataArray, 3)
	DataArrayPutDataArrays                      = key(ProtocolDataArray, 4)
	DataArrayPutDataSubarrays                   = key(ProtocolDataArray, 5)
	DataArrayGetDataArrayMetadata               = key(ProtocolDataArray, 6)
	DataArrayGetDataArrayMetadataResponse       = key(ProtocolDataArray, 7)
	DataArrayGetDataSubarraysResponse           = key(ProtocolDataArray, 8)
	DataArrayPutUninitializedDataArrays         = key(ProtocolDataArray, 9)
	DataArrayPutDataArraysResponse              = key(ProtocolDataArray, 10)
	DataArrayPutDataSubarraysResponse           = key(ProtocolDataArray, 11)
	DataArrayPutUninitializedDataArraysResponse = key(ProtocolDataArray, 12)
)

// DiscoveryQuery (13), StoreQuery (14), GrowingObjectQuery (16)
var (
	DiscoveryQueryFindResources         = key(ProtocolDiscoveryQuery, 1)
	DiscoveryQueryFindResourcesResponse = key(ProtocolDiscoveryQuery, 2)

	StoreQueryFindDataObjects         = key(ProtocolStoreQuery, 1)
	StoreQueryFindDataObjectsResponse = key(ProtocolStoreQuery, 2)
	StoreQueryChunk                   = key(ProtocolStoreQuery, 3)

	GrowingObjectQueryFindParts         = key(ProtocolGrowingObjectQuery, 1)
	GrowingObjectQueryFindPartsResponse = key(ProtocolGrowingObjectQuery, 2)
)

// Transaction (18)
var (
	TransactionStartTransaction            = key(ProtocolTransaction, 1)
	TransactionStartTransactionResponse    = key(ProtocolTransaction, 2)
	TransactionCommitTransaction           = key(ProtocolTransaction, 3)
	TransactionRollbackTransaction         = key(ProtocolTransaction, 4)
	TransactionCommitTransactionResponse   = key(ProtocolTransaction, 5)
	TransactionRollbackTransactionResponse = key(ProtocolTransaction, 6)
)

// ChannelSubscribe (21)
var (
	ChannelSubscribeGetChannelMetadata           = key(ProtocolChannelSubscribe, 1)
	ChannelSubscribeGetChannelMetadataResponse   = key(ProtocolChannelSubscribe, 2)
	ChannelSubscribeSubscribeChannels            = key(ProtocolChannelSubscribe, 3)
	ChannelSubscribeChannelData                  = key(ProtocolChannelSubscribe, 4)
	ChannelSubscribeRangeReplaced                = key(ProtocolChannelSubscribe, 6)
	ChannelSubscribeUnsubscribeChannels          = key(ProtocolChannelSubscribe, 7)
	ChannelSubscribeSubscriptionsStopped         = key(ProtocolChannelSubscribe, 8)
	ChannelSubscribeGetRanges                    = key(ProtocolChannelSubscribe, 9)
	ChannelSubscribeGetRangesResponse            = key(ProtocolChannelSubscribe, 10)
	ChannelSubscribeCancelGetRanges              = key(ProtocolChannelSubscribe, 11)
	ChannelSubscribeSubscribeChannelsResponse    = key(ProtocolChannelSubscribe, 12)
	ChannelSubscribeChannelsTruncated            = key(ProtocolChannelSubscribe, 13)
	ChannelSubscribeGetChangeAnnotations         = key(ProtocolChannelSubscribe, 14)
	ChannelSubscribeGetChangeAnnotationsResponse = key(ProtocolChannelSubscribe, 15)
)

// ChannelDataLoad (22)
var (
	ChannelDataLoadOpenChannels             = key(ProtocolChannelDataLoad, 1)
	ChannelDataLoadOpenChannelsResponse     = key(ProtocolChannelDataLoad, 2)
	ChannelDataLoadCloseChannels            = key(ProtocolChannelDataLoad, 3)
	ChannelDataLoadChannelData              = key(ProtocolChannelDataLoad, 4)
	ChannelDataLoadReplaceRange             = key(ProtocolChannelDataLoad, 6)
	ChannelDataLoadChannelsClosed           = key(ProtocolChannelDataLoad, 7)
	ChannelDataLoadReplaceRangeResponse     = key(ProtocolChannelDataLoad, 8)
	ChannelDataLoadTruncateChannels         = key(ProtocolChannelDataLoad, 9)
	ChannelDataLoadTruncateChannelsResponse = key(ProtocolChannelDataLoad, 10)
)

// Dataspace (24), SupportedTypes (25)
var (
	DataspaceGetDataspaces            = key(ProtocolDataspace, 1)
	DataspaceGetDataspacesResponse    = key(ProtocolDataspace, 2)
	DataspacePutDataspaces            = key(ProtocolDataspace, 3)
	DataspaceDeleteDataspaces         = key(ProtocolDataspace, 4)
	DataspaceDeleteDataspacesResponse = key(ProtocolDataspace, 5)
	DataspacePutDataspacesResponse    = key(ProtocolDataspace, 6)

	SupportedTypesGetSupportedTypes         = key(ProtocolSupportedTypes, 1)
	SupportedTypesGetSupportedTypesResponse = key(ProtocolSupportedTypes, 2)
)

// WitsmlSoap (2100)
var (
	WitsmlSoapAddToStore              = key(ProtocolWitsmlSoap, 1)
	WitsmlSoapAddToStoreResponse      = key(ProtocolWitsmlSoap, 2)
	WitsmlSoapDeleteFromStore         = key(ProtocolWitsmlSoap, 3)
	WitsmlSoapDeleteFromStoreResponse = key(ProtocolWitsmlSoap, 4)
	WitsmlSoapGetBaseMsg              = key(ProtocolWitsmlSoap, 5)
	WitsmlSoapGetBaseMsgResponse      = key(ProtocolWitsmlSoap, 6)
	WitsmlSoapGetCap                  = key(ProtocolWitsmlSoap, 7)
	WitsmlSoapGetCapResponse          = key(ProtocolWitsmlSoap, 8)
	WitsmlSoapGetFromStore            = key(ProtocolWitsmlSoap, 9)
	WitsmlSoapGetFromStoreResponse    = key(ProtocolWitsmlSoap, 10)
	WitsmlSoapGetVersion              = key(ProtocolWitsmlSoap, 11)
	WitsmlSoapGetVersionResponse      = key(ProtocolWitsmlSoap, 12)
	WitsmlSoapUpdateInStore           = key(ProtocolWitsmlSoap, 13)
	WitsmlSoapUpdateInStoreResponse   = key(ProtocolWitsmlSoap, 14)
)
