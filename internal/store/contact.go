package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const upsertContact = `
	INSERT INTO contacts (jid, name, push_name, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(jid) DO UPDATE SET
		name = CASE WHEN excluded.name != '' THEN excluded.name ELSE contacts.name END,
		push_name = CASE WHEN excluded.push_name != '' THEN excluded.push_name ELSE contacts.push_name END,
		updated_at = excluded.updated_at`

// UpsertContact inserts or updates a contact. Empty names keep the stored value.
func (db *DB) UpsertContact(c *Contact) error {
	_, err := db.Exec(upsertContact, c.JID, c.Name, c.PushName, time.Now().UnixMilli())
	return err
}

// BulkUpsertContacts upserts contacts in a single transaction.
func (db *DB) BulkUpsertContacts(contacts []Contact) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(upsertContact)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UnixMilli()
	for _, c := range contacts {
		if _, err := stmt.Exec(c.JID, c.Name, c.PushName, now); err != nil {
			return fmt.Errorf("upsert contact %q: %w", c.JID, err)
		}
	}
	return tx.Commit()
}

// GetContact returns a contact by JID, or nil when it is unknown.
func (db *DB) GetContact(jid string) (*Contact, error) {
	var c Contact
	err := db.QueryRow(`SELECT jid, name, push_name FROM contacts WHERE jid = ?`, jid).
		Scan(&c.JID, &c.Name, &c.PushName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DisplayName returns the compact name shown in activity labels: the first
// word of the contact's full name, else the push name, else the user part
// of the JID.
func (db *DB) DisplayName(jid string) string {
	c, err := db.GetContact(jid)
	if err == nil && c != nil {
		if first, _, _ := strings.Cut(strings.TrimSpace(c.Name), " "); first != "" {
			return first
		}
		if push := strings.TrimSpace(c.PushName); push != "" {
			return push
		}
	}
	user, _, _ := strings.Cut(jid, "@")
	return user
}
