package ledger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MKhiriev/go-gene-consent/models"
)

// nextEvent links a new, sealed event for tx onto head. RecordedAt is kept
// at microsecond precision, which is what the Postgres store round-trips.
func nextEvent(head models.LedgerEvent, tx models.Transaction, digest models.Hash, now time.Time) models.LedgerEvent {
	ev := models.LedgerEvent{
		Seq:        head.Seq + 1,
		Kind:       tx.Kind,
		From:       tx.From,
		RequestID:  requestRef(tx),
		Digest:     digest,
		PrevHash:   head.Hash,
		RecordedAt: now.Truncate(time.Microsecond),
	}
	ev.Hash = eventHash(ev)
	return ev
}

// requestRef is the request an event points at before it is applied.
// request_analysis only learns its id from the store.
func requestRef(tx models.Transaction) int64 {
	switch tx.Kind {
	case models.TxGrantConsent, models.TxFailRequest, models.TxCompleteRequest:
		return tx.RequestID
	}
	return 0
}

// eventHash commits to every field of ev except Hash itself:
//
//	Keccak256(seq || keccak(kind) || from || request_id || digest || prev_hash || recorded_at)
//
// with integers as 8-byte big endian and recorded_at in Unix microseconds.
func eventHash(ev models.LedgerEvent) models.Hash {
	var seq, requestID, recordedAt [8]byte
	binary.BigEndian.PutUint64(seq[:], uint64(ev.Seq))
	binary.BigEndian.PutUint64(requestID[:], uint64(ev.RequestID))
	binary.BigEndian.PutUint64(recordedAt[:], uint64(ev.RecordedAt.UnixMicro()))

	return crypto.Keccak256Hash(
		seq[:],
		crypto.Keccak256([]byte(ev.Kind)),
		ev.From.Bytes(),
		requestID[:],
		ev.Digest.Bytes(),
		ev.PrevHash.Bytes(),
		recordedAt[:],
	)
}

// VerifyChain checks that events form a contiguous hash chain. The first
// event may start mid-chain; its own hash is still recomputed.
func VerifyChain(events []models.LedgerEvent) error {
	for i, ev := range events {
		if ev.Hash != eventHash(ev) {
			return fmt.Errorf("%w: event %d hash mismatch", ErrBrokenChain, ev.Seq)
		}
		if i == 0 {
			if ev.Seq == 1 && ev.PrevHash != (models.Hash{}) {
				return fmt.Errorf("%w: genesis event has a parent", ErrBrokenChain)
			}
			continue
		}
		prev := events[i-1]
		if ev.Seq != prev.Seq+1 {
			return fmt.Errorf("%w: gap between %d and %d", ErrBrokenChain, prev.Seq, ev.Seq)
		}
		if ev.PrevHash != prev.Hash {
			return fmt.Errorf("%w: event %d does not link to %d", ErrBrokenChain, ev.Seq, prev.Seq)
		}
	}
	return nil
}
