package store

import (
	"database/sql"
	"net/http"
	"net/url"
	"time"

	serializer "github.com/appcacheshim/appcache/pkg/response-serializer"
)

// PutResponse stores res under (bucket, url) — the Go analog of opening the
// Cache Storage bucket named by a manifest-version hash and calling
// cache.put(url, response). Reuses the teacher's response-serializer
// encoding so a round trip through storage preserves status, headers, body,
// and the request/response timestamps needed for Age calculation.
func (db *DB) PutResponse(bucket, rawURL string, res *http.Response, requestTime, responseTime time.Time) error {
	db.write.Lock()
	defer db.write.Unlock()

	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	res.Request = &http.Request{Method: http.MethodGet, URL: u}

	blob, err := serializer.StoredResponseToBytes(serializer.TimedResponse{
		Response:     res,
		RequestTime:  requestTime,
		ResponseTime: responseTime,
	})
	if err != nil {
		return err
	}

	_, err = db.sql.Exec(
		`INSERT INTO cache_entries (bucket, url, bytes, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(bucket, url) DO UPDATE SET bytes = excluded.bytes, created_at = excluded.created_at`,
		bucket, rawURL, blob, responseTime.Unix(),
	)
	return err
}

// GetResponse returns the stored response for (bucket, url), if any.
func (db *DB) GetResponse(bucket, rawURL string) (serializer.TimedResponse, bool, error) {
	var blob []byte
	err := db.sql.QueryRow(
		"SELECT bytes FROM cache_entries WHERE bucket = ? AND url = ?", bucket, rawURL,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return serializer.TimedResponse{}, false, nil
	}
	if err != nil {
		return serializer.TimedResponse{}, false, err
	}
	tr, err := serializer.BytesToStoredResponse(blob)
	if err != nil {
		return serializer.TimedResponse{}, false, err
	}
	return tr, true, nil
}

// HasResponse reports whether (bucket, url) has a stored entry, without
// paying the cost of decoding it.
func (db *DB) HasResponse(bucket, rawURL string) (bool, error) {
	var one int
	err := db.sql.QueryRow(
		"SELECT 1 FROM cache_entries WHERE bucket = ? AND url = ?", bucket, rawURL,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// EvictResponse removes a single (bucket, url) entry — used for the
// Installer's 404/410/no-store eviction rule (spec.md §4.1).
func (db *DB) EvictResponse(bucket, rawURL string) error {
	db.write.Lock()
	defer db.write.Unlock()
	_, err := db.sql.Exec("DELETE FROM cache_entries WHERE bucket = ? AND url = ?", bucket, rawURL)
	return err
}

// DeleteBucket removes every entry in bucket — the Go analog of
// caches.delete(hash), used by the GC Sweeper once a manifest version is no
// longer referenced by any live client or current manifest.
func (db *DB) DeleteBucket(bucket string) error {
	db.write.Lock()
	defer db.write.Unlock()
	_, err := db.sql.Exec("DELETE FROM cache_entries WHERE bucket = ?", bucket)
	return err
}

// BucketExists reports whether any entry remains in bucket. Used by tests
// asserting the "cache-name = hash" invariant (spec.md §8): either the
// bucket named v.Hash exists, or v has been GC-deleted.
func (db *DB) BucketExists(bucket string) (bool, error) {
	var one int
	err := db.sql.QueryRow("SELECT 1 FROM cache_entries WHERE bucket = ? LIMIT 1", bucket).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
