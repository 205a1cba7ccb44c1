package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrEmptySender         = errors.New("sender address is required")
	ErrEmptyIdentityHash   = errors.New("identity hash is required")
	ErrEmptyDataHash       = errors.New("data hash is required")
	ErrEmptyTarget         = errors.New("target address is required")
	ErrInvalidRequestID    = errors.New("invalid request id")
	ErrInvalidMethod       = errors.New("invalid consent method")
	ErrMissingKeyMaterial  = errors.New("direct consent requires key material")
	ErrMissingRetrievalRef = errors.New("indirect consent requires a retrieval reference")
	ErrEmptyResultRef      = errors.New("result reference is required")
	ErrEmptyNonce          = errors.New("nonce is required")
	ErrInvalidIssuedAt     = errors.New("invalid issue time")
	ErrEmptySignature      = errors.New("signature is required")
	ErrEmptySigner         = errors.New("signer address is required")
)
