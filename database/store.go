package database

import (
	"database/sql"
	"log"

	"github.com/thangnd96/hybrid-app/structs"
)

// SaveSessionBlob writes the serialized session state under the given
// storage key, replacing whatever was there.
func SaveSessionBlob(key string, version int, data []byte) error {
	_, err := DB.Exec(
		`INSERT INTO session_state (key, version, data) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET version = excluded.version, data = excluded.data,
		 updated_at = CURRENT_TIMESTAMP`,
		key, version, string(data))
	if err != nil {
		log.Printf("SaveSessionBlob: error writing state for key %s: %v", key, err)
	}
	return err
}

// LoadSessionBlob reads back the persisted session state. A missing key is
// not an error: it returns version 0 and no data, which callers treat as
// empty state.
func LoadSessionBlob(key string) (int, []byte, error) {
	var version int
	var data string
	err := DB.QueryRow(`SELECT version, data FROM session_state WHERE key = ?`, key).Scan(&version, &data)
	if err == sql.ErrNoRows {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return version, []byte(data), nil
}

// DeleteSessionKey removes an obsolete storage key
func DeleteSessionKey(key string) {
	if _, err := DB.Exec(`DELETE FROM session_state WHERE key = ?`, key); err != nil {
		log.Printf("DeleteSessionKey: error deleting key %s: %v", key, err)
	}
}

// AddRosterUser appends a registered user to the durable roster
func AddRosterUser(u structs.User) error {
	_, err := DB.Exec(
		`INSERT INTO roster (id, username, email, first_name, last_name, image, password, access_token, refresh_token)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Image, u.Password, u.AccessToken, u.RefreshToken)
	if err != nil {
		log.Printf("AddRosterUser: error inserting user %s: %v", u.Username, err)
	}
	return err
}

// FetchRoster returns every user ever registered locally, oldest first
func FetchRoster() ([]structs.User, error) {
	rows, err := DB.Query(
		`SELECT id, username, email, first_name, last_name, image, password, access_token, refresh_token
		 FROM roster ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []structs.User
	for rows.Next() {
		var u structs.User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Image, &u.Password, &u.AccessToken, &u.RefreshToken)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
