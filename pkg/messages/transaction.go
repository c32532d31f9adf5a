package messages

import "github.com/bardasz/etp/pkg/protocol"

// StartTransaction opens a transaction over one or more dataspaces.
type StartTransaction struct {
	ReadOnly      bool
	Message       string
	DataspaceURIs []string
}

func (m *StartTransaction) MessageKey() protocol.Key { return protocol.TransactionStartTransaction }

func (m *StartTransaction) Native() map[string]any {
	uris := m.DataspaceURIs
	if uris == nil {
		uris = []string{""}
	}
	return map[string]any{
		"readOnly":      m.ReadOnly,
		"message":       m.Message,
		"dataspaceUris": stringsNative(uris),
	}
}

func StartTransactionFromNative(v any) (*StartTransaction, error) {
	r := newReader("StartTransaction", v)
	m := &StartTransaction{
		ReadOnly:      r.Bool("readOnly"),
		Message:       r.Str("message"),
		DataspaceURIs: r.Strings("dataspaceUris"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// TransactionResult is the common body of the three transaction responses.
type TransactionResult struct {
	TransactionUUID Uuid
	Successful      bool
	FailureReason   string
}

func (t TransactionResult) native() map[string]any {
	return map[string]any{
		"transactionUuid": t.TransactionUUID.Native(),
		"successful":      t.Successful,
		"failureReason":   t.FailureReason,
	}
}

func transactionResultFromNative(name string, v any) (TransactionResult, error) {
	r := newReader(name, v)
	t := TransactionResult{
		TransactionUUID: r.Uuid("transactionUuid"),
		Successful:      r.BoolOr("successful", true),
		FailureReason:   r.Str("failureReason"),
	}
	return t, r.err
}

type StartTransactionResponse struct{ TransactionResult }

func (m *StartTransactionResponse) MessageKey() protocol.Key {
	return protocol.TransactionStartTransactionResponse
}
func (m *StartTransactionResponse) Native() map[string]any { return m.native() }

func StartTransactionResponseFromNative(v any) (*StartTransactionResponse, error) {
	t, err := transactionResultFromNative("StartTransactionResponse", v)
	if err != nil {
		return nil, err
	}
	return &StartTransactionResponse{t}, nil
}

type CommitTransactionResponse struct{ TransactionResult }

func (m *CommitTransactionResponse) MessageKey() protocol.Key {
	return protocol.TransactionCommitTransactionResponse
}
func (m *CommitTransactionResponse) Native() map[string]any { return m.native() }

func CommitTransactionResponseFromNative(v any) (*CommitTransactionResponse, error) {
	t, err := transactionResultFromNative("CommitTransactionResponse", v)
	if err != nil {
		return nil, err
	}
	return &CommitTransactionResponse{t}, nil
}

type RollbackTransactionResponse struct{ TransactionResult }

func (m *RollbackTransactionResponse) MessageKey() protocol.Key {
	return protocol.TransactionRollbackTransactionResponse
}
func (m *RollbackTransactionResponse) Native() map[string]any { return m.native() }

func RollbackTransactionResponseFromNative(v any) (*RollbackTransactionResponse, error) {
	t, err := transactionResultFromNative("RollbackTransactionResponse", v)
	if err != nil {
		return nil, err
	}
	return &RollbackTransactionResponse{t}, nil
}

// CommitTransaction commits the transaction opened by StartTransaction.
type CommitTransaction struct {
	TransactionUUID Uuid
}

func (m *CommitTransaction) MessageKey() protocol.Key { return protocol.TransactionCommitTransaction }

func (m *CommitTransaction) Native() map[string]any {
	return map[string]any{"transactionUuid": m.TransactionUUID.Native()}
}

func CommitTransactionFromNative(v any) (*CommitTransaction, error) {
	r := newReader("CommitTransaction", v)
	m := &CommitTransaction{TransactionUUID: r.Uuid("transactionUuid")}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

type RollbackTransaction struct {
	TransactionUUID Uuid
}

func (m *RollbackTransaction) MessageKey() protocol.Key {
	return protocol.TransactionRollbackTransaction
}

func (m *RollbackTransaction) Native() map[string]any {
	return map[string]any{"transactionUuid": m.TransactionUUID.Native()}
}

func RollbackTransactionFromNative(v any) (*RollbackTransaction, error) {
	r := newReader("RollbackTransaction", v)
	m := &RollbackTransaction{TransactionUUID: r.Uuid("transactionUuid")}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}
