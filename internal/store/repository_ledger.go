// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

// ledgerStateRepository is the Postgres-backed [ledger.StateStore].
//
// Writers are serialized by locking the single ledger_head row, which also
// carries the request id counter, so ids are issued 1, 2, ... without gaps.
// Unique constraints on registrations and consent_grants back the rules up.
type ledgerStateRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func NewLedgerStateRepository(db *DB, logger *logger.Logger) ledger.StateStore {
	logger.Debug().Msg("creating ledger state repository")
	return &ledgerStateRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}
}

var (
	registrationColumns = []string{"address", "identity_hash", "data_hash", "tx_ref", "registered_at", "updated_at"}
	requestColumns      = []string{"request_id", "requester", "target", "status", "result_ref", "failure_reason", "created_at", "updated_at"}
	grantColumns        = []string{"request_id", "granter", "method", "key_material", "retrieval_ref", "tx_ref", "granted_at"}
	eventColumns        = []string{"seq", "kind", "sender", "request_id", "digest", "prev_hash", "hash", "recorded_at"}
	bindingColumns      = []string{"address", "signer", "tx_ref", "bound_at"}
)

const lockLedgerHead = `SELECT last_request_id FROM ledger_head WHERE id = 1 FOR UPDATE`

func (r *ledgerStateRepository) Atomically(ctx context.Context, fn func(tx ledger.StateTx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		log.Err(err).Str("func", "*ledgerStateRepository.Atomically").Msg("failed to begin transaction")
		return r.db.wrapDBError(ErrBeginningTransaction.Error(), err)
	}
	defer tx.Rollback()

	var lastRequestID int64
	if err = tx.QueryRowContext(ctx, lockLedgerHead).Scan(&lastRequestID); err != nil {
		log.Err(err).Str("func", "*ledgerStateRepository.Atomically").Msg("failed to lock ledger head")
		return r.db.wrapDBError("lock ledger head", err)
	}

	if err = fn(&pgStateTx{q: tx, db: r.db, builder: r.builder}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*ledgerStateRepository.Atomically").Msg("failed to commit transaction")
		return r.db.wrapDBError(ErrCommitingTransaction.Error(), err)
	}
	return nil
}

func (r *ledgerStateRepository) reader() *pgStateTx {
	return &pgStateTx{q: r.db.DB, db: r.db, builder: r.builder}
}

func (r *ledgerStateRepository) Registration(ctx context.Context, addr models.Address) (models.Registration, error) {
	return r.reader().Registration(ctx, addr)
}

func (r *ledgerStateRepository) Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	return r.reader().Request(ctx, requestID)
}

func (r *ledgerStateRepository) Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error) {
	return r.reader().Grant(ctx, requestID)
}

func (r *ledgerStateRepository) RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select(requestColumns...).
		From("analysis_requests").
		Where(sq.Or{sq.Eq{"requester": addr.Hex()}, sq.Eq{"target": addr.Hex()}}).
		OrderBy("request_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ledgerStateRepository.RequestsByAddress").Str("address", addr.Hex()).Msg("failed to query requests")
		return nil, r.db.wrapDBError("requests by address", err)
	}
	defer rows.Close()

	var out []models.AnalysisRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.wrapDBError("requests by address", err)
	}
	return out, nil
}

func (r *ledgerStateRepository) Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error) {
	log := logger.FromContext(ctx)

	builder := r.builder.Select(eventColumns...).
		From("ledger_events").
		Where(sq.Gt{"seq": afterSeq}).
		OrderBy("seq")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ledgerStateRepository.Events").Int64("after", afterSeq).Msg("failed to query events")
		return nil, r.db.wrapDBError("events", err)
	}
	defer rows.Close()

	var out []models.LedgerEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.wrapDBError("events", err)
	}
	return out, nil
}

// pgStateTx runs the ledger.StateTx operations on a querier, which is the
// open transaction inside Atomically and the pool for plain reads.
type pgStateTx struct {
	q       querier
	db      *DB
	builder sq.StatementBuilderType
}

func (t *pgStateTx) Head(ctx context.Context) (models.LedgerEvent, error) {
	query, args, err := t.builder.Select(eventColumns...).
		From("ledger_events").
		OrderBy("seq DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.LedgerEvent{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ev, err := scanEvent(t.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerEvent{}, nil
	}
	if err != nil {
		return models.LedgerEvent{}, t.db.wrapDBError("head", err)
	}
	return ev, nil
}

func (t *pgStateTx) AppendEvent(ctx context.Context, ev models.LedgerEvent) error {
	query, args, err := t.builder.Insert("ledger_events").
		Columns(eventColumns...).
		Values(ev.Seq, string(ev.Kind), ev.From.Hex(), ev.RequestID, ev.Digest.Hex(), ev.PrevHash.Hex(), ev.Hash.Hex(), ev.RecordedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.AppendEvent").Int64("seq", ev.Seq).Msg("failed to append event")
		return t.db.wrapDBError("append event", err)
	}
	return nil
}

func (t *pgStateTx) Registration(ctx context.Context, addr models.Address) (models.Registration, error) {
	query, args, err := t.builder.Select(registrationColumns...).
		From("registrations").
		Where(sq.Eq{"address": addr.Hex()}).
		ToSql()
	if err != nil {
		return models.Registration{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	reg, err := scanRegistration(t.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.Registration{}, t.db.wrapDBError("registration", err)
	}
	return reg, nil
}

func (t *pgStateTx) InsertRegistration(ctx context.Context, reg models.Registration) error {
	query, args, err := t.builder.Insert("registrations").
		Columns(registrationColumns...).
		Values(reg.Address.Hex(), reg.IdentityHash.Hex(), reg.DataHash.Hex(), reg.TxRef, reg.RegisteredAt, reg.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.InsertRegistration").Str("address", reg.Address.Hex()).Msg("failed to insert registration")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ledger.ErrAlreadyRegistered
		}
		return t.db.wrapDBError("insert registration", err)
	}
	return nil
}

func (t *pgStateTx) UpdateRegistration(ctx context.Context, reg models.Registration) error {
	query, args, err := t.builder.Update("registrations").
		Set("data_hash", reg.DataHash.Hex()).
		Set("tx_ref", reg.TxRef).
		Set("updated_at", reg.UpdatedAt).
		Where(sq.Eq{"address": reg.Address.Hex()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.execOne(ctx, "update registration", query, args)
}

const nextRequestID = `UPDATE ledger_head SET last_request_id = last_request_id + 1 WHERE id = 1 RETURNING last_request_id`

func (t *pgStateTx) InsertRequest(ctx context.Context, req models.AnalysisRequest) (int64, error) {
	if err := t.q.QueryRowContext(ctx, nextRequestID).Scan(&req.RequestID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.InsertRequest").Msg("failed to issue request id")
		return 0, t.db.wrapDBError("next request id", err)
	}

	query, args, err := t.builder.Insert("analysis_requests").
		Columns(requestColumns...).
		Values(req.RequestID, req.Requester.Hex(), req.Target.Hex(), string(req.Status), req.ResultRef, req.FailureReason, req.CreatedAt, req.UpdatedAt).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.InsertRequest").Int64("request_id", req.RequestID).Msg("failed to insert request")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return 0, ledger.ErrUnknownTarget
		}
		return 0, t.db.wrapDBError("insert request", err)
	}
	return req.RequestID, nil
}

func (t *pgStateTx) Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	query, args, err := t.builder.Select(requestColumns...).
		From("analysis_requests").
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	req, err := scanRequest(t.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AnalysisRequest{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.AnalysisRequest{}, t.db.wrapDBError("request", err)
	}
	return req, nil
}

func (t *pgStateTx) UpdateRequest(ctx context.Context, req models.AnalysisRequest) error {
	query, args, err := t.builder.Update("analysis_requests").
		Set("status", string(req.Status)).
		Set("result_ref", req.ResultRef).
		Set("failure_reason", req.FailureReason).
		Set("updated_at", req.UpdatedAt).
		Where(sq.Eq{"request_id": req.RequestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.execOne(ctx, "update request", query, args)
}

func (t *pgStateTx) Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error) {
	query, args, err := t.builder.Select(grantColumns...).
		From("consent_grants").
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return models.ConsentGrant{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	grant, err := scanGrant(t.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConsentGrant{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.ConsentGrant{}, t.db.wrapDBError("grant", err)
	}
	return grant, nil
}

func (t *pgStateTx) InsertGrant(ctx context.Context, grant models.ConsentGrant) error {
	query, args, err := t.builder.Insert("consent_grants").
		Columns(grantColumns...).
		Values(grant.RequestID, grant.Granter.Hex(), string(grant.Method), grant.EncryptedKeyMaterial, grant.RetrievalRef, grant.TxRef, grant.GrantedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.InsertGrant").Int64("request_id", grant.RequestID).Msg("failed to insert grant")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ledger.ErrAlreadyGranted
		}
		return t.db.wrapDBError("insert grant", err)
	}
	return nil
}

func (t *pgStateTx) SignerBinding(ctx context.Context, addr models.Address) (models.SignerBinding, error) {
	query, args, err := t.builder.Select(bindingColumns...).
		From("signer_bindings").
		Where(sq.Eq{"address": addr.Hex()}).
		ToSql()
	if err != nil {
		return models.SignerBinding{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		binding         models.SignerBinding
		address, signer string
	)
	err = t.q.QueryRowContext(ctx, query, args...).Scan(&address, &signer, &binding.TxRef, &binding.BoundAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SignerBinding{}, ledger.ErrNotFound
	}
	if err != nil {
		return models.SignerBinding{}, t.db.wrapDBError("signer binding", err)
	}
	binding.Address = common.HexToAddress(address)
	binding.Signer = common.HexToAddress(signer)
	return binding, nil
}

func (t *pgStateTx) BindSigner(ctx context.Context, binding models.SignerBinding) error {
	query, args, err := t.builder.Insert("signer_bindings").
		Columns(bindingColumns...).
		Values(binding.Address.Hex(), binding.Signer.Hex(), binding.TxRef, binding.BoundAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.BindSigner").Str("address", binding.Address.Hex()).Msg("failed to bind signer")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ledger.ErrSignerBound
		}
		return t.db.wrapDBError("bind signer", err)
	}
	return nil
}

// execOne runs a statement that must touch exactly one row.
func (t *pgStateTx) execOne(ctx context.Context, op, query string, args []any) error {
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pgStateTx.execOne").Str("op", op).Msg("statement failed")
		return t.db.wrapDBError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return t.db.wrapDBError(op, err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func scanRegistration(row rowScanner) (models.Registration, error) {
	var (
		reg                    models.Registration
		addr, identity, digest string
	)
	if err := row.Scan(&addr, &identity, &digest, &reg.TxRef, &reg.RegisteredAt, &reg.UpdatedAt); err != nil {
		return models.Registration{}, err
	}
	reg.Address = common.HexToAddress(addr)
	reg.IdentityHash = common.HexToHash(identity)
	reg.DataHash = common.HexToHash(digest)
	return reg, nil
}

func scanRequest(row rowScanner) (models.AnalysisRequest, error) {
	var (
		req               models.AnalysisRequest
		requester, target string
		status            string
	)
	if err := row.Scan(&req.RequestID, &requester, &target, &status, &req.ResultRef, &req.FailureReason, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return models.AnalysisRequest{}, err
	}
	req.Requester = common.HexToAddress(requester)
	req.Target = common.HexToAddress(target)
	req.Status = models.RequestStatus(status)
	return req, nil
}

func scanGrant(row rowScanner) (models.ConsentGrant, error) {
	var (
		grant           models.ConsentGrant
		granter, method string
	)
	if err := row.Scan(&grant.RequestID, &granter, &method, &grant.EncryptedKeyMaterial, &grant.RetrievalRef, &grant.TxRef, &grant.GrantedAt); err != nil {
		return models.ConsentGrant{}, err
	}
	grant.Granter = common.HexToAddress(granter)
	grant.Method = models.ConsentMethod(method)
	return grant, nil
}

func scanEvent(row rowScanner) (models.LedgerEvent, error) {
	var (
		ev                          models.LedgerEvent
		kind, sender                string
		digest, prevHash, eventHash string
	)
	if err := row.Scan(&ev.Seq, &kind, &sender, &ev.RequestID, &digest, &prevHash, &eventHash, &ev.RecordedAt); err != nil {
		return models.LedgerEvent{}, err
	}
	ev.Kind = models.TxKind(kind)
	ev.From = common.HexToAddress(sender)
	ev.Digest = common.HexToHash(digest)
	ev.PrevHash = common.HexToHash(prevHash)
	ev.Hash = common.HexToHash(eventHash)
	return ev, nil
}
