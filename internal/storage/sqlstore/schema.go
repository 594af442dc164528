package sqlstore

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profile (
		uid BIGINT PRIMARY KEY,
		nickname TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL DEFAULT '',
		net_publish INTEGER NOT NULL DEFAULT 0,
		hidewall INTEGER NOT NULL DEFAULT 0,
		page_flags INTEGER NOT NULL DEFAULT 0,
		contact_id BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS contact (
		id BIGINT PRIMARY KEY,
		uid BIGINT NOT NULL,
		blocked INTEGER NOT NULL DEFAULT 0,
		pending INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS post (
		id BIGINT PRIMARY KEY,
		uri TEXT NOT NULL DEFAULT '',
		thread_id BIGINT NOT NULL,
		uid BIGINT NOT NULL,
		contact_id BIGINT NOT NULL,
		received_us BIGINT NOT NULL,
		visible INTEGER NOT NULL DEFAULT 1,
		deleted INTEGER NOT NULL DEFAULT 0,
		moderated INTEGER NOT NULL DEFAULT 0,
		wall INTEGER NOT NULL DEFAULT 0,
		pinned INTEGER NOT NULL DEFAULT 0,
		pinned_us BIGINT NOT NULL DEFAULT 0,
		unseen INTEGER NOT NULL DEFAULT 0,
		private INTEGER NOT NULL DEFAULT 0,
		allow_cid TEXT NOT NULL DEFAULT '',
		allow_gid TEXT NOT NULL DEFAULT '',
		deny_cid TEXT NOT NULL DEFAULT '',
		deny_gid TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS post_uid_received ON post (uid, received_us)`,
	`CREATE TABLE IF NOT EXISTS term (
		oid BIGINT NOT NULL,
		uid BIGINT NOT NULL,
		term TEXT NOT NULL,
		otype INTEGER NOT NULL,
		type INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS term_lookup ON term (uid, otype, type, term)`,
	`CREATE TABLE IF NOT EXISTS pconfig (
		uid BIGINT PRIMARY KEY,
		itemspage_network INTEGER NOT NULL DEFAULT 0,
		itemspage_mobile_network INTEGER NOT NULL DEFAULT 0
	)`,
}
