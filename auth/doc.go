// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and pack ownership keys.

# IDs

Every record (pack, card, session, comparison, result) gets a random UUID:

	id := auth.NewID()
	ok := auth.IsID(id)

# Admin Keys

Creating a pack returns an admin key derived with HMAC-SHA256:

	adminKey := auth.GenerateAdminKey(packID, salt)
	err := auth.ValidateAdminKey(packID, adminKey, salt)

Keys are URL-safe base64 without padding. They are deterministic, so nothing
is stored; the key is recomputed and compared in constant time. Writes to a
pack (adding cards, deleting the pack) send it in the X-Admin-Key header.

# Share Slugs

	slug := auth.GenerateShareSlug(packID, salt)

Slugs are base62 (alphanumeric only), derived from the first 8 bytes of an
HMAC. Admin keys and slugs use distinct HMAC domains, so one never reveals
the other even when both salts are equal.

# Client Hashing

	key := auth.HashClientIP(ip, salt)

Returns 16 hex chars. The rate limiter keys its buckets by this value.
*/
package auth
