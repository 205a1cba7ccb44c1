package validators

import (
	"context"

	"github.com/MKhiriev/go-gene-consent/models"
)

// Field names accepted by TransactionValidator for scoped validation.
const (
	FieldKind         = "kind"
	FieldFrom         = "from"
	FieldSigner       = "signer"
	FieldIdentityHash = "identity_hash"
	FieldDataHash     = "data_hash"
	FieldTarget       = "target"
	FieldRequestID    = "request_id"
	FieldMethod       = "method"
	FieldResultRef    = "result_ref"
	FieldNonce        = "nonce"
	FieldIssuedAt     = "issued_at"
	FieldSignature    = "signature"
)

// fieldsByKind lists what each transaction kind must carry.
var fieldsByKind = map[models.TxKind][]string{
	models.TxRegister:           {FieldFrom, FieldIdentityHash, FieldDataHash},
	models.TxUpdateRegistration: {FieldFrom, FieldIdentityHash, FieldDataHash},
	models.TxRequestAnalysis:    {FieldFrom, FieldTarget},
	models.TxGrantConsent:       {FieldFrom, FieldRequestID, FieldMethod},
	models.TxFailRequest:        {FieldFrom, FieldRequestID},
	models.TxCompleteRequest:    {FieldFrom, FieldRequestID, FieldResultRef},
}

// TransactionValidator checks the structural shape of ledger transactions.
// State-dependent rules (who may grant, which transitions are legal) are
// the ledger's job, not this validator's.
type TransactionValidator struct{}

func NewTransactionValidator() Validator {
	return &TransactionValidator{}
}

func (v *TransactionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Transaction:
		return v.validateTransaction(ctx, value, fields...)
	case *models.Transaction:
		return v.validateTransaction(ctx, *value, fields...)

	case models.SignedTx:
		return v.validateSignedTx(ctx, value, fields...)
	case *models.SignedTx:
		return v.validateSignedTx(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TransactionValidator) validateSignedTx(ctx context.Context, signed models.SignedTx, fields ...string) error {
	if signed.Signature == "" {
		return ErrEmptySignature
	}
	if err := v.validateTransaction(ctx, signed.Tx, FieldSigner); err != nil {
		return err
	}
	return v.validateTransaction(ctx, signed.Tx, fields...)
}

func (v *TransactionValidator) validateTransaction(_ context.Context, tx models.Transaction, fields ...string) error {
	if len(fields) == 0 {
		if !tx.Kind.IsValid() {
			return ErrInvalidKind
		}
		fields = append([]string{FieldNonce, FieldIssuedAt}, fieldsByKind[tx.Kind]...)
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !tx.Kind.IsValid() {
				return ErrInvalidKind
			}
		case FieldFrom:
			if tx.From == (models.Address{}) {
				return ErrEmptySender
			}
		case FieldSigner:
			if tx.Signer == (models.Address{}) {
				return ErrEmptySigner
			}
		case FieldIdentityHash:
			if tx.IdentityHash == (models.Hash{}) {
				return ErrEmptyIdentityHash
			}
		case FieldDataHash:
			if tx.DataHash == (models.Hash{}) {
				return ErrEmptyDataHash
			}
		case FieldTarget:
			if tx.Target == (models.Address{}) {
				return ErrEmptyTarget
			}
		case FieldRequestID:
			if tx.RequestID <= 0 {
				return ErrInvalidRequestID
			}
		case FieldMethod:
			if !tx.Method.IsValid() {
				return ErrInvalidMethod
			}
			if tx.Method == models.MethodDirect && len(tx.KeyMaterial) == 0 {
				return ErrMissingKeyMaterial
			}
			if tx.Method == models.MethodIndirect && tx.RetrievalRef == "" {
				return ErrMissingRetrievalRef
			}
		case FieldResultRef:
			if tx.ResultRef == "" {
				return ErrEmptyResultRef
			}
		case FieldNonce:
			if tx.Nonce == "" {
				return ErrEmptyNonce
			}
		case FieldIssuedAt:
			if tx.IssuedAt <= 0 {
				return ErrInvalidIssuedAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
