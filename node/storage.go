package node

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/wildosvpn/fleet/structs"
)

var usersBucket = []byte("users")

// StoredUser is the node-local record of a user and the inbound tags it is
// entitled to on this node.
type StoredUser struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Key      string   `json:"key"`
	Inbounds []string `json:"inbounds"`
}

// Storage is the node's durable user table, backed by bbolt so that a node
// restart does not lose provisioning state before the panel resyncs.
type Storage struct {
	db *bolt.DB
}

// OpenStorage opens (or creates) the user database at path.
func OpenStorage(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open node storage: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users bucket: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

func userKey(id int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

// GetUser returns the stored user, or nil when absent.
func (s *Storage) GetUser(id int64) (*StoredUser, error) {
	var user *StoredUser
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(usersBucket).Get(userKey(id))
		if raw == nil {
			return nil
		}
		user = new(StoredUser)
		return json.Unmarshal(raw, user)
	})
	return user, err
}

// PutUser inserts or replaces the stored user. Inbound tags are sorted so
// that repeated writes of the same set are byte-identical.
func (s *Storage) PutUser(user *StoredUser) error {
	sort.Strings(user.Inbounds)
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).Put(userKey(user.ID), raw)
	})
}

// DeleteUser removes the stored user. Deleting an absent user is a no-op.
func (s *Storage) DeleteUser(id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).Delete(userKey(id))
	})
}

// ListUsers returns all stored users ordered by id.
func (s *Storage) ListUsers() ([]*StoredUser, error) {
	var users []*StoredUser
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).ForEach(func(_, raw []byte) error {
			user := new(StoredUser)
			if err := json.Unmarshal(raw, user); err != nil {
				return err
			}
			users = append(users, user)
			return nil
		})
	})
	return users, err
}

// AsUser converts the stored record to the shared model type.
func (u *StoredUser) AsUser() structs.User {
	return structs.User{ID: u.ID, Username: u.Username, Key: u.Key}
}
