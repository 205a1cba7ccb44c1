package store

import "fmt"

// sealedEntryQueries are the statements for one table laid out like
// vault_entries. signing_keys shares that layout.
type sealedEntryQueries struct {
	upsert, get, exists, remove string
}

func sealedEntryQueriesFor(table string) sealedEntryQueries {
	return sealedEntryQueries{
		upsert: fmt.Sprintf(`
		INSERT INTO %s (subject_key, ciphertext, nonce, kdf_salt, key_policy, data_hash, uploaded_at, size_bytes, file_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (subject_key) DO UPDATE SET
			ciphertext  = excluded.ciphertext,
			nonce       = excluded.nonce,
			kdf_salt    = excluded.kdf_salt,
			key_policy  = excluded.key_policy,
			data_hash   = excluded.data_hash,
			uploaded_at = excluded.uploaded_at,
			size_bytes  = excluded.size_bytes,
			file_name   = excluded.file_name`, table),

		get: fmt.Sprintf(`
		SELECT subject_key, ciphertext, nonce, kdf_salt, key_policy, data_hash, uploaded_at, size_bytes, file_name
		FROM %s
		WHERE subject_key = ?`, table),

		exists: fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE subject_key = ?)`, table),

		remove: fmt.Sprintf(`DELETE FROM %s WHERE subject_key = ?`, table),
	}
}

var (
	vaultEntryQueries = sealedEntryQueriesFor("vault_entries")
	signingKeyQueries = sealedEntryQueriesFor("signing_keys")
)

// SQLite queries used by the client-side repositories.
const (
	insertCachedRequest = `
		INSERT INTO analysis_requests (request_id, requester_address, target_address, status, result_ref, failure_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (request_id) DO NOTHING`

	overwriteCachedRequest = `
		INSERT INTO analysis_requests (request_id, requester_address, target_address, status, result_ref, failure_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (request_id) DO UPDATE SET
			requester_address = excluded.requester_address,
			target_address    = excluded.target_address,
			status            = excluded.status,
			result_ref        = excluded.result_ref,
			failure_reason    = excluded.failure_reason,
			created_at        = excluded.created_at,
			updated_at        = excluded.updated_at`

	getCachedRequest = `
		SELECT request_id, requester_address, target_address, status, result_ref, failure_reason, created_at, updated_at
		FROM analysis_requests
		WHERE request_id = ?`

	listCachedRequests = `
		SELECT request_id, requester_address, target_address, status, result_ref, failure_reason, created_at, updated_at
		FROM analysis_requests
		WHERE requester_address = ? OR target_address = ?
		ORDER BY request_id`

	updateCachedRequestStatus = `
		UPDATE analysis_requests
		SET status = ?, result_ref = ?, failure_reason = ?, updated_at = ?
		WHERE request_id = ?`
)
